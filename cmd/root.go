package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/iksnae/termblog/internal"
	"github.com/iksnae/termblog/internal/commands"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	dataDir      string
	driver       string
	manifestPath string
	contentRoot  string
	configPath   string
	version      string = "dev"
	commit       string = "unknown"
	date         string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "termblog",
	Short: "A blog you browse like a shell",
	Long: `termblog serves a tree of markdown articles as a small interactive shell.

Articles are listed with ls, opened with cat and searched with find. Settings
live in a config.toml you can edit in place with vi, and every session can be
recorded as a transcript and exported (JSONL, Markdown, YAML, JSON).

Quick Start:
  termblog shell                          # Start the interactive shell
  termblog run -c "ls" -c "cat readme.md" # Run lines without a terminal
  termblog list                           # List recorded transcripts
  termblog export --format md             # Export transcripts as Markdown`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default $TERMBLOG_HOME or ~/.termblog)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", internal.DriverSQLite, "State store driver (sqlite, bolt)")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "Manifest file describing the article tree (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&contentRoot, "content", "", "Article root: a directory or a base URL")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config.toml used to seed the settings")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// shellEnv is everything a command needs to run shell lines
type shellEnv struct {
	paths     internal.DataPaths
	store     internal.StateStore
	settings  *internal.SettingsStore
	session   *internal.Session
	startedAt time.Time
}

// openShell wires a session from the persistent flags
func openShell(ctx context.Context) (*shellEnv, error) {
	paths, err := internal.DetectDataPaths(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to detect data paths: %w", err)
	}

	manifest := internal.DefaultManifest()
	if manifestPath != "" {
		manifest, err = internal.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
	}

	content, err := internal.NewContentSource(contentRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open content: %w", err)
	}

	store, err := internal.OpenStateStore(driver, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	settings := internal.NewSettingsStore(store, internal.FileSeed(configPath))
	if err := settings.Reload(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	fsys, err := internal.NewFileSystem(manifest.WithDownloads(settings.View().Downloads))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	session, err := internal.NewSession(internal.SessionConfig{
		FileSystem:  fsys,
		Registry:    commands.NewRegistry(),
		Settings:    settings,
		Store:       store,
		Content:     content,
		DownloadDir: paths.DownloadDir(),
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &shellEnv{
		paths:     paths,
		store:     store,
		settings:  settings,
		session:   session,
		startedAt: time.Now(),
	}, nil
}

// record archives the conversations of this run as a transcript
func (e *shellEnv) record() (*internal.Transcript, error) {
	convs := e.session.Log().All()
	t := internal.NewTranscript(e.settings.View().User, e.startedAt, convs)
	if len(convs) == 0 {
		internal.LogDebug("Nothing to record")
		return t, nil
	}
	archive := internal.NewTranscriptArchive(e.paths.TranscriptDir())
	if err := archive.Save(t); err != nil {
		return nil, fmt.Errorf("failed to record transcript: %w", err)
	}
	internal.LogInfo("Recorded transcript %s", t.ID)
	return t, nil
}

func (e *shellEnv) Close() error {
	_ = e.session.Close()
	return e.store.Close()
}

// openArchive returns the transcript archive under the data dir
func openArchive() (*internal.TranscriptArchive, error) {
	paths, err := internal.DetectDataPaths(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to detect data paths: %w", err)
	}
	return internal.NewTranscriptArchive(paths.TranscriptDir()), nil
}
