package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/importer"
	"github.com/cleared-dev/reckon/internal/journal"
	"github.com/cleared-dev/reckon/internal/recon"
)

func newReconcileCommand(repoDir *string) *cobra.Command {
	var account int

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match a bank statement against the ledger",
	}
	cmd.PersistentFlags().IntVar(&account, "account", 0, "cash account to reconcile (required)")
	_ = cmd.MarkPersistentFlagRequired("account")

	cmd.AddCommand(
		newReconcileAutoCommand(repoDir, &account),
		newReconcileMatchCommand(repoDir, &account),
		newReconcileStatusCommand(repoDir, &account),
		newReconcileFinalizeCommand(repoDir, &account),
	)
	return cmd
}

// openSession rebuilds the session for account from its statement, the
// journal and the match log.
func openSession(b *books, account int) (*recon.Session, error) {
	if !b.chart.Exists(account) {
		return nil, fmt.Errorf("--account: unknown account %d", account)
	}

	bank, err := importer.ReadStatement(b.root, account)
	if err != nil {
		return nil, err
	}
	entries, err := b.journal.List(journal.Filter{})
	if err != nil {
		return nil, err
	}
	ledgerLines := recon.LedgerLinesFromJournal(entries, account)

	s, err := recon.NewSession(bank, ledgerLines,
		recon.WithLogger(b.logger),
		recon.WithClock(now))
	if err != nil {
		return nil, err
	}

	log, err := recon.ReadLog(b.root, account)
	if err != nil {
		return nil, err
	}
	s.Replay(log)
	return s, nil
}

// saveMatches appends the session's new matches to the log.
func saveMatches(b *books, account int, s *recon.Session) error {
	matches := s.Matches()
	if len(matches) == 0 {
		return nil
	}
	return recon.AppendLog(b.root, account, recon.MatchLog(s.ID(), matches))
}

func newReconcileAutoCommand(repoDir *string, account *int) *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Pair unmatched lines with equal amounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			s, err := openSession(b, *account)
			if err != nil {
				return err
			}
			n, err := s.AutoMatch()
			if err != nil {
				return err
			}
			if err := saveMatches(b, *account, s); err != nil {
				return err
			}
			if n > 0 {
				b.commit(fmt.Sprintf("reconcile %d: auto-matched %d", *account, n))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Auto-matched %d pairs\n", n)
			return b.printer(cmd.OutOrStdout()).Reconciliation(s.Status())
		},
	}
}

func newReconcileMatchCommand(repoDir *string, account *int) *cobra.Command {
	var bankID, ledgerID string
	var confirm bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Pair one bank line with one ledger line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			s, err := openSession(b, *account)
			if err != nil {
				return err
			}

			err = s.ManualMatch(bankID, ledgerID, confirm)
			var mismatch *recon.AmountMismatchError
			if errors.As(err, &mismatch) {
				return fmt.Errorf("%w; rerun with --confirm to match anyway", err)
			}
			if err != nil {
				return err
			}
			if err := saveMatches(b, *account, s); err != nil {
				return err
			}
			b.commit(fmt.Sprintf("reconcile %d: match %s with %s", *account, bankID, ledgerID))

			fmt.Fprintf(cmd.OutOrStdout(), "Matched %s with %s\n", bankID, ledgerID)
			return nil
		},
	}

	cmd.Flags().StringVar(&bankID, "bank", "", "bank line id")
	cmd.Flags().StringVar(&ledgerID, "ledger", "", "ledger line id")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "match even when the amounts differ")
	return cmd
}

func newReconcileStatusCommand(repoDir *string, account *int) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show totals, variance and unmatched lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			s, err := openSession(b, *account)
			if err != nil {
				return err
			}
			return b.printer(cmd.OutOrStdout()).Reconciliation(s.Status())
		},
	}
}

func newReconcileFinalizeCommand(repoDir *string, account *int) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize",
		Short: "Close the reconciliation when the totals agree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			s, err := openSession(b, *account)
			if err != nil {
				return err
			}
			summary, err := s.Finalize()
			if err != nil {
				return err
			}

			if err := recon.AppendLog(b.root, *account, []recon.LogEntry{s.FinalizeLog()}); err != nil {
				return err
			}
			b.commit(fmt.Sprintf("reconcile %d: finalized", *account))

			return b.printer(cmd.OutOrStdout()).Reconciliation(summary)
		},
	}
}
