package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/termblog/internal"
	"github.com/iksnae/termblog/internal/export"
	"github.com/spf13/cobra"
)

var (
	format       string
	outputDir    string
	transcriptID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export transcripts to file",
	Long: `Export recorded transcripts to various formats (jsonl, md, yaml, json).

You can export every transcript or a single one by ID (or unique prefix).
Use 'termblog list' to see available transcript IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		archive, err := openArchive()
		if err != nil {
			return err
		}

		var transcripts []*internal.Transcript
		if transcriptID != "" {
			t, err := archive.Find(transcriptID)
			if err != nil {
				return fmt.Errorf("%w (use 'termblog list' to see available transcripts)", err)
			}
			transcripts = []*internal.Transcript{t}
		} else {
			transcripts, err = archive.LoadAll()
			if err != nil {
				return err
			}
		}

		if len(transcripts) == 0 {
			internal.PrintInfo("No transcripts to export")
			return nil
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		exported := 0
		ctx := context.Background()
		err = internal.ShowProgress(ctx, fmt.Sprintf("Exporting %d transcript(s) to %s", len(transcripts), outputDir), func() error {
			exported = exportTranscripts(exporter, transcripts, outputDir)
			return nil
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d transcript(s) exported to %s", exported, outputDir))
		return nil
	},
}

// exportTranscripts writes one file per transcript and returns how many
// succeeded. Failures are logged and skipped.
func exportTranscripts(exporter export.Exporter, transcripts []*internal.Transcript, dir string) int {
	n := 0
	for _, t := range transcripts {
		if t == nil {
			internal.LogWarn("Skipping nil transcript")
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("transcript_%s.%s", t.ID, exporter.Extension()))

		file, err := os.Create(path)
		if err != nil {
			internal.LogError("Failed to create file %s: %v", path, err)
			continue
		}
		if err := exporter.Export(t, file); err != nil {
			_ = file.Close()
			internal.LogError("Failed to export transcript %s: %v", t.ID, err)
			continue
		}
		if err := file.Close(); err != nil {
			internal.LogWarn("Failed to close file %s: %v", path, err)
			continue
		}
		n++
	}
	return n
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&transcriptID, "id", "", "Export a specific transcript by ID")
}
