package cmd

import (
	"fmt"

	"github.com/iksnae/termblog/internal"
	"github.com/spf13/cobra"
)

var historyClear bool

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print or clear the shell history",
	Long:  `Print the persisted command history, oldest first, or clear it with --clear.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := internal.DetectDataPaths(dataDir)
		if err != nil {
			return fmt.Errorf("failed to detect data paths: %w", err)
		}
		store, err := internal.OpenStateStore(driver, paths)
		if err != nil {
			return fmt.Errorf("failed to open state store: %w", err)
		}
		defer func() { _ = store.Close() }()

		if historyClear {
			if err := store.ClearHistory(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			internal.PrintSuccess("History cleared")
			return nil
		}

		entries, err := store.History()
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, dateStyle.Render("No history yet"))
			return nil
		}
		for i, line := range entries {
			fmt.Fprintf(out, "%s  %s\n", idStyle.Render(fmt.Sprintf("%4d", i+1)), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Clear the history")
}
