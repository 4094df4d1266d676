package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/reports"
)

func newAgingCommand(repoDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aging",
		Short: "Aging schedules of open invoices and bills",
	}
	cmd.AddCommand(
		newAgingKindCommand(repoDir, "receivables", model.KindInvoice),
		newAgingKindCommand(repoDir, "payables", model.KindBill),
	)
	return cmd
}

func newAgingKindCommand(repoDir *string, use string, kind model.DocumentKind) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   use,
		Short: "Age open " + string(kind) + "s by days overdue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			at := now()
			if asOf != "" {
				if at, err = parseDate("as-of", asOf); err != nil {
					return err
				}
			}

			docs, err := b.docs.List(kind)
			if err != nil {
				return err
			}
			dir, err := b.docs.Directory()
			if err != nil {
				return err
			}
			return b.printer(cmd.OutOrStdout()).Aging(reports.Aging(docs, kind, dir, at))
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "aging date, YYYY-MM-DD (default now)")
	return cmd
}
