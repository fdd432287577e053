package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/termblog/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that termblog can load its articles and state",
	Long: `Check the health of termblog by verifying:
  • Data directory detection
  • Manifest parsing and tree building
  • Article content access
  • State store access
  • Settings document

This command is useful for debugging a custom --manifest or --content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		fmt.Println(sectionStyle.Render("🔍 termblog Health Check"))
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 1: Detecting data directory..."))
		paths, err := internal.DetectDataPaths(dataDir)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to detect data directory:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Println(successStyle.Render("✅ Data directory detected"))
		if healthcheckVerbose {
			fmt.Printf("   Base path: %s\n", paths.BasePath)
			fmt.Printf("   State database: %s\n", paths.StateDBPath())
			fmt.Printf("   Transcripts: %s\n", paths.TranscriptDir())
		}
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 2: Loading manifest..."))
		manifest := internal.DefaultManifest()
		if manifestPath != "" {
			if manifest, err = internal.LoadManifest(manifestPath); err != nil {
				fmt.Println(errorStyle.Render("❌ Failed to load manifest:"), err)
				return fmt.Errorf("health check failed: %w", err)
			}
		}
		fsys, err := internal.NewFileSystem(manifest)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Manifest does not build a tree:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		var articles []*internal.Node
		_ = fsys.Walk(func(p string, n *internal.Node, depth int) error {
			if !n.IsDir() && n.Source != "" {
				articles = append(articles, n)
			}
			return nil
		})
		fmt.Println(successStyle.Render(fmt.Sprintf("✅ Manifest loaded: %d article(s)", len(articles))))
		if healthcheckVerbose && manifestPath == "" {
			fmt.Println("   Using the built-in manifest")
		}
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 3: Reading article content..."))
		content, err := internal.NewContentSource(contentRoot)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Content root unavailable:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		missing := 0
		for _, n := range articles {
			if _, err := content.Open(ctx, n.Source); err != nil {
				missing++
				if healthcheckVerbose {
					fmt.Printf("   Missing: %s (%v)\n", n.Source, err)
				}
			}
		}
		if missing == 0 {
			fmt.Println(successStyle.Render("✅ All articles readable"))
		} else {
			fmt.Println(warningStyle.Render(fmt.Sprintf("⚠️  %d of %d article(s) unreadable", missing, len(articles))))
		}
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 4: Opening state store..."))
		store, err := internal.OpenStateStore(driver, paths)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to open state store:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		defer func() { _ = store.Close() }()
		history, err := store.History()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to read history:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✅ State store open (%s, %d history entries)", driver, len(history))))
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 5: Loading settings..."))
		settings := internal.NewSettingsStore(store, internal.FileSeed(configPath))
		if err := settings.Reload(ctx); err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to load settings:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		view := settings.View()
		fmt.Println(successStyle.Render("✅ Settings loaded"))
		if healthcheckVerbose {
			fmt.Printf("   User: %s\n", view.User)
			fmt.Printf("   Theme: %s\n", view.Theme)
			fmt.Printf("   Font: %s %dpx\n", view.FontFamily, view.FontSize)
		}
		fmt.Println()

		fmt.Println(sectionStyle.Render("📊 Summary"))
		fmt.Println()
		if missing > 0 {
			fmt.Println(warningStyle.Render("⚠️  Health check passed with warnings"))
			fmt.Printf("   • %d article(s) cannot be opened\n", missing)
			return nil
		}
		fmt.Println(successStyle.Render("✅ Health check passed!"))
		fmt.Println(successStyle.Render(fmt.Sprintf("   • Articles: %d", len(articles))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckVerbose, "verbose", "v", false, "Show detailed diagnostic information")
}
