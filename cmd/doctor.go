package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teemow/granolaexport/internal/auth"
	"github.com/teemow/granolaexport/internal/config"
	"github.com/teemow/granolaexport/internal/logging"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check credentials and configuration without touching the network",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			cfg, err := config.Load()
			if err != nil {
				check(w, "Configuration", false, err.Error())
				return nil
			}
			check(w, "Configuration", true, config.FilePath())

			cred, err := auth.LoadCredentials(cfg.CredentialsPath)
			switch {
			case err != nil:
				check(w, "Credentials", false, fmt.Sprintf("%v. Open the Granola app and sign in.", err))
			case cred.Expired():
				check(w, "Credentials", false, fmt.Sprintf("token expired %s. Open the Granola app to refresh it.",
					cred.Expiry.Format("2006-01-02 15:04")))
			default:
				detail := logging.SanitizeToken(cred.AccessToken)
				if !cred.Expiry.IsZero() {
					detail = fmt.Sprintf("%s, expires %s", detail, cred.Expiry.Format("2006-01-02 15:04"))
				}
				check(w, "Credentials", true, detail)
			}

			check(w, "API endpoint", true, cfg.APIBaseURL)
			check(w, "Transcripts directory", true, cfg.TranscriptsDir)
			check(w, "Meetings directory", true, cfg.MeetingsDir)
			check(w, "Markdown directory", true, cfg.MarkdownDir)
			return nil
		},
	}
}

func check(w io.Writer, name string, ok bool, detail string) {
	mark := "✅"
	if !ok {
		mark = "❌"
	}
	fmt.Fprintf(w, "%s %-22s %s\n", mark, name, detail)
}
