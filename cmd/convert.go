package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/granolaexport/internal/config"
	"github.com/teemow/granolaexport/internal/markdown"
)

func newConvertCmd() *cobra.Command {
	var (
		transcriptsDir string
		meetingsDir    string
		output         string
		force          bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Render downloaded records into markdown documents",
		Long: `Pair the downloaded transcript and meeting records by document id and
render one markdown file per meeting into the markdown directory.

A meeting covered by only one of the two fetch commands still converts; the
sections the missing record would feed are simply left out. Malformed JSON
files are skipped without stopping the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if transcriptsDir != "" {
				cfg.TranscriptsDir = transcriptsDir
			}
			if meetingsDir != "" {
				cfg.MeetingsDir = meetingsDir
			}
			if output != "" {
				cfg.MarkdownDir = output
			}

			summary, err := markdown.Convert(markdown.Options{
				TranscriptsDir: cfg.TranscriptsDir,
				MeetingsDir:    cfg.MeetingsDir,
				OutputDir:      cfg.MarkdownDir,
				Force:          force,
			})
			if err != nil {
				return fmt.Errorf("converting records: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Markdown: %s\nFiles saved to: %s\n", summary, cfg.MarkdownDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&transcriptsDir, "transcripts", "", "Input directory with transcript JSON files")
	cmd.Flags().StringVar(&meetingsDir, "meetings", "", "Input directory with meeting JSON files")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory for markdown files")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing markdown files")
	return cmd
}
