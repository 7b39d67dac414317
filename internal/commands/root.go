package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/smsledger/smsledger/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "smsledger",
		Short:   "Turn bank and wallet SMS alerts into a transaction ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "log why each message was dropped")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newClassifyCommand())
	rootCmd.AddCommand(newInboxCommand())
	rootCmd.AddCommand(newSummaryCommand())

	return rootCmd
}

// newLogger builds the command's logger on its stderr, at debug level with --verbose.
func newLogger(cmd *cobra.Command) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "smsledger",
	})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
