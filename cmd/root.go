package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/granolaexport/internal/auth"
	"github.com/teemow/granolaexport/internal/config"
	"github.com/teemow/granolaexport/internal/granola"
	"github.com/teemow/granolaexport/internal/logging"
)

// rootCmd represents the base command for the granolaexport application
var rootCmd = &cobra.Command{
	Use:   "granolaexport",
	Short: "Export Granola meeting transcripts and notes to local files",
	Long: `granolaexport downloads meeting transcripts and structured meeting notes
from the Granola service and converts them into markdown documents.

It reuses the session the Granola desktop app keeps on this machine, so no
separate login is needed. The typical workflow runs three commands in order:

  granolaexport transcripts   # fetch transcripts as JSON files
  granolaexport meetings      # fetch meeting notes and metadata as JSON files
  granolaexport convert       # render paired records into markdown`,
	SilenceUsage: true,
}

var verbose bool

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "granolaexport version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cobra.OnInitialize(func() {
		logging.Setup(verbose)
	})

	rootCmd.AddCommand(newTranscriptsCmd())
	rootCmd.AddCommand(newMeetingsCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "granolaexport version %s\n", version)
		},
	}
}

// newAPIClient loads the desktop app's cached credentials and builds the API
// client the fetch commands share. Credential failures are fatal.
func newAPIClient(ctx context.Context, cfg *config.Config) (*granola.Client, error) {
	cred, err := auth.LoadCredentials(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded credentials",
		logging.Path(cfg.CredentialsPath),
		slog.String("token", logging.SanitizeToken(cred.AccessToken)))

	if cred.Expired() {
		slog.Warn("cached token is past its expiry; open the Granola app to refresh it",
			logging.Path(cfg.CredentialsPath))
	}

	return granola.NewClient(ctx, cred.TokenSource(), cfg.APIBaseURL), nil
}
