package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/dashboard"
	"github.com/cleared-dev/reckon/internal/model"
)

func newDashboardCommand(repoDir *string) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Cash, profit and open documents at a glance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			rng, err := rf.resolve(b.cfg)
			if err != nil {
				return err
			}
			entries, err := b.entries()
			if err != nil {
				return err
			}
			bills, err := b.docs.List(model.KindBill)
			if err != nil {
				return err
			}
			invoices, err := b.docs.List(model.KindInvoice)
			if err != nil {
				return err
			}

			summary, err := dashboard.Summarize(entries, b.chart, bills, invoices, rng, now())
			if err != nil {
				return err
			}
			return b.printer(cmd.OutOrStdout()).Dashboard(summary)
		},
	}

	rf.register(cmd)
	return cmd
}
