package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/granolaexport/internal/config"
	"github.com/teemow/granolaexport/internal/fetch"
)

func newMeetingsCmd() *cobra.Command {
	var (
		output string
		days   int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "meetings",
		Short: "Download meeting notes and metadata as JSON files",
		Long: `Enumerate your meetings and save each one's structured record into the
meetings directory, one JSON file per meeting.

A meeting record carries the notes in plain and markdown form, the AI summary
panel, calendar event payloads and sharing metadata. Existing files are
skipped unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.MeetingsDir = output
			}

			client, err := newAPIClient(ctx, cfg)
			if err != nil {
				return err
			}

			summary, err := fetch.Meetings(ctx, client, fetch.Options{
				OutputDir: cfg.MeetingsDir,
				Days:      days,
				Force:     force,
			})
			if err != nil {
				return fmt.Errorf("downloading meetings: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Meetings: %s\nFiles saved to: %s\n", summary, cfg.MeetingsDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory for meeting files")
	cmd.Flags().IntVarP(&days, "days", "d", 0, "Only download meetings from the last N days (default: all time)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	return cmd
}
