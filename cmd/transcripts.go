package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/granolaexport/internal/config"
	"github.com/teemow/granolaexport/internal/fetch"
)

// apiDelay spaces out per-document API calls during a fetch run.
const apiDelay = 100 * time.Millisecond

func newTranscriptsCmd() *cobra.Command {
	var (
		output string
		days   int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "transcripts",
		Short: "Download meeting transcripts as JSON files",
		Long: `Enumerate your meetings and download each one's transcript into the
transcripts directory, one JSON file per meeting.

Meetings that already have a file are skipped unless --force is given, so
re-running the command only picks up what is new. Meetings without a
transcript are reported in the end-of-run summary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.TranscriptsDir = output
			}

			client, err := newAPIClient(ctx, cfg)
			if err != nil {
				return err
			}

			summary, err := fetch.Transcripts(ctx, client, fetch.Options{
				OutputDir: cfg.TranscriptsDir,
				Days:      days,
				Force:     force,
				Delay:     apiDelay,
			})
			if err != nil {
				return fmt.Errorf("downloading transcripts: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Transcripts: %s\nFiles saved to: %s\n", summary, cfg.TranscriptsDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory for transcript files")
	cmd.Flags().IntVarP(&days, "days", "d", 0, "Only download meetings from the last N days (default: all time)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	return cmd
}
