package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/termblog/internal"
	"github.com/iksnae/termblog/internal/export"
	"github.com/spf13/cobra"
)

var (
	runLines  []string
	runFormat string
	runOutput string
	runRecord bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run shell lines without the terminal UI",
	Long: `Run shell lines and print what each one outputs.

Lines come from repeated -c flags, or from stdin when none are given. Lines
after a prompting command (vi, clear-config) answer that prompt.

Examples:
  termblog run -c "ls" -c "cat readme.md"
  printf 'vi notes.txt\nhello\n:wq\n' | termblog run
  termblog run -c "tree" --format md --output tree.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var exporter export.Exporter
		if runFormat != "" {
			var err error
			if exporter, err = export.NewExporter(runFormat); err != nil {
				return err
			}
		}

		env, err := openShell(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if err := env.Close(); err != nil {
				internal.LogWarn("Failed to close state store: %v", err)
			}
		}()

		runner := newBatchRunner(env.session, cmd.OutOrStdout())
		if len(runLines) > 0 {
			for _, line := range runLines {
				if err := runner.Submit(line); err != nil {
					return err
				}
			}
		} else if err := runner.Run(cmd.InOrStdin()); err != nil {
			return err
		}

		var t *internal.Transcript
		if runRecord {
			if t, err = env.record(); err != nil {
				return err
			}
		}
		if exporter == nil {
			return nil
		}
		if t == nil {
			t = internal.NewTranscript(env.settings.View().User, env.startedAt, env.session.Log().All())
		}
		return writeTranscript(exporter, t, runOutput)
	},
}

// writeTranscript exports t to path, or to stdout when path is empty
func writeTranscript(exporter export.Exporter, t *internal.Transcript, path string) error {
	if path == "" || path == "-" {
		return exporter.Export(t, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := exporter.Export(t, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	internal.PrintSuccess(fmt.Sprintf("Transcript written to %s", path))
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayVarP(&runLines, "command", "c", nil, "Line to run (repeatable)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "Also export the run (jsonl, md, yaml, json)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Export file (default stdout)")
	runCmd.Flags().BoolVar(&runRecord, "record", false, "Archive the run as a transcript")
}
