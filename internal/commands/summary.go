package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smsledger/smsledger/internal/ledger"
)

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <ledger.csv>",
		Short: "Print monthly and per-platform totals for a ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening ledger: %w", err)
			}
			defer f.Close()

			records, err := ledger.ReadRecords(f)
			if err != nil {
				return fmt.Errorf("reading ledger: %w", err)
			}
			return ledger.WriteSummary(cmd.OutOrStdout(), ledger.Summarize(records))
		},
	}
}
