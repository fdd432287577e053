package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iksnae/termblog/internal"
	"github.com/iksnae/termblog/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	shellRecord      bool
	shellWatchConfig bool
)

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Start the interactive shell.

Tab completes commands and paths, Up/Down walk the history, PgUp/PgDn scroll
and Ctrl+C quits. When stdin is not a terminal the lines are run as with
'termblog run'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		env, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := env.Close(); err != nil {
				internal.LogWarn("Failed to close state store: %v", err)
			}
		}()

		if !isatty.IsTerminal(os.Stdin.Fd()) {
			internal.LogDebug("stdin is not a terminal, running in batch mode")
			if err := newBatchRunner(env.session, cmd.OutOrStdout()).Run(cmd.InOrStdin()); err != nil {
				return err
			}
			return recordIf(env)
		}

		if err := env.paths.Ensure(); err != nil {
			return err
		}
		logFile, err := os.OpenFile(env.paths.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = logFile.Close() }()
		internal.SetLogOutput(logFile)
		defer internal.SetLogOutput(os.Stderr)

		p := tea.NewProgram(tui.New(env.session), tea.WithAltScreen(), tea.WithContext(ctx))
		env.session.OnRedraw(func() { p.Send(tui.RedrawMsg{}) })

		if shellWatchConfig {
			if configPath == "" {
				internal.PrintWarning("--watch-config needs --config, not watching")
			} else {
				watcher, err := internal.NewSettingsWatcher(configPath, env.settings, func() {
					p.Send(tui.RedrawMsg{})
				})
				if err != nil {
					return fmt.Errorf("failed to watch %s: %w", configPath, err)
				}
				if err := watcher.Start(ctx); err != nil {
					watcher.Stop()
					return fmt.Errorf("failed to watch %s: %w", configPath, err)
				}
				defer watcher.Stop()
			}
		}

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("shell failed: %w", err)
		}
		return recordIf(env)
	},
}

func recordIf(env *shellEnv) error {
	if !shellRecord {
		return nil
	}
	_, err := env.record()
	return err
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().BoolVar(&shellRecord, "record", false, "Archive the session as a transcript on exit")
	shellCmd.Flags().BoolVar(&shellWatchConfig, "watch-config", false, "Reload settings when the --config file changes")
}
