package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/reports"
)

func newReportCommand(repoDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial statements",
	}
	cmd.AddCommand(
		newTrialBalanceCommand(repoDir),
		newBalanceSheetCommand(repoDir),
		newProfitAndLossCommand(repoDir),
		newCashFlowCommand(repoDir),
	)
	return cmd
}

func newTrialBalanceCommand(repoDir *string) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Debit and credit totals per account for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			typ, err := rf.periodType(b.cfg)
			if err != nil {
				return err
			}
			ref, err := rf.referenceMonth()
			if err != nil {
				return err
			}
			start, err := b.cfg.FiscalStartMonth()
			if err != nil {
				return err
			}
			tol, err := b.cfg.ToleranceDecimal()
			if err != nil {
				return err
			}

			entries, err := b.entries()
			if err != nil {
				return err
			}
			tb, err := reports.TrialBalanceFiscal(entries, b.chart, typ, ref, start, tol)
			if err != nil {
				return err
			}
			return b.printer(cmd.OutOrStdout()).TrialBalance(tb)
		},
	}

	cmd.Flags().StringVar(&rf.period, "period", "", "monthly, quarterly or yearly (default from reckon.yaml)")
	cmd.Flags().StringVar(&rf.month, "month", "", "reference month, YYYY-MM (default current month)")
	return cmd
}

func newBalanceSheetCommand(repoDir *string) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Assets, liabilities and equity as of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			date, err := optionalDate("as-of", asOf, time.Time{})
			if err != nil {
				return err
			}
			tol, err := b.cfg.ToleranceDecimal()
			if err != nil {
				return err
			}

			entries, err := b.entries()
			if err != nil {
				return err
			}
			bs, err := reports.BalanceSheet(entries, b.chart, date, tol)
			if err != nil {
				return err
			}
			return b.printer(cmd.OutOrStdout()).BalanceSheet(bs)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "last day included, YYYY-MM-DD (default all entries)")
	return cmd
}

func newProfitAndLossCommand(repoDir *string) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:     "pnl",
		Aliases: []string{"profit-and-loss"},
		Short:   "Revenue, expenses and net profit for a period",
		Args:    cobra.NoArgs,
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
			pnl, err := reports.ProfitAndLoss(entries, b.chart, rng)
			if err != nil {
				return err
			}
			return b.printer(cmd.OutOrStdout()).ProfitAndLoss(pnl)
		},
	}

	rf.register(cmd)
	return cmd
}

func newCashFlowCommand(repoDir *string) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Operating, investing and financing cash movements for a period",
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
			cf, err := reports.CashFlow(entries, b.chart, rng)
			if err != nil {
				return err
			}
			return b.printer(cmd.OutOrStdout()).CashFlow(cf)
		},
	}

	rf.register(cmd)
	return cmd
}
