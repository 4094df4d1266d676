package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/journal"
	"github.com/cleared-dev/reckon/internal/ledger"
)

func newJournalCommand(repoDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Record and inspect journal entries",
	}
	cmd.AddCommand(
		newJournalAddCommand(repoDir),
		newJournalListCommand(repoDir),
		newJournalDeleteCommand(repoDir),
		newJournalLedgerCommand(repoDir),
	)
	return cmd
}

func newJournalAddCommand(repoDir *string) *cobra.Command {
	var dateStr, amountStr, desc string
	var debit, credit int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			date, err := optionalDate("date", dateStr, today())
			if err != nil {
				return err
			}
			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}

			entryID, err := b.journal.AddEntry(journal.AddParams{
				Date:          date,
				Description:   desc,
				DebitAccount:  debit,
				CreditAccount: credit,
				Amount:        amount,
			})
			if err != nil {
				return err
			}

			b.commit("journal: add " + entryID)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s / %s\n",
				entryID, b.printer(cmd.OutOrStdout()).Amount(amount), b.chart.Name(debit), b.chart.Name(credit))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "entry date, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&debit, "debit", 0, "debit account id (required)")
	cmd.Flags().IntVar(&credit, "credit", 0, "credit account id (required)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	cmd.Flags().StringVar(&desc, "description", "", "description")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newJournalListCommand(repoDir *string) *cobra.Command {
	var rf rangeFlags
	var account int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			filter := journal.Filter{AccountID: account}
			if rf.from != "" || rf.to != "" || rf.month != "" || rf.period != "" {
				if filter.Range, err = rf.resolve(b.cfg); err != nil {
					return err
				}
			}

			entries, err := b.journal.List(filter)
			if err != nil {
				return err
			}
			return b.printer(cmd.OutOrStdout()).Entries(entries, b.chart.Name)
		},
	}

	rf.register(cmd)
	cmd.Flags().IntVar(&account, "account", 0, "only entries touching this account")
	return cmd
}

func newJournalDeleteCommand(repoDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			if err := b.journal.Delete(args[0]); err != nil {
				return err
			}
			b.commit("journal: delete " + args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newJournalLedgerCommand(repoDir *string) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "ledger <account-id>",
		Short: "Show an account's ledger with running balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("account id %q is not a number", args[0])
			}

			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			acct, err := b.chart.Resolve(accountID)
			if err != nil {
				return err
			}

			entries, err := b.entries()
			if err != nil {
				return err
			}
			lines, err := ledger.Lines(entries, b.chart, accountID)
			if err != nil {
				return err
			}

			// Balances run over the whole journal; the range only trims output.
			if rf.from != "" || rf.to != "" || rf.month != "" || rf.period != "" {
				rng, err := rf.resolve(b.cfg)
				if err != nil {
					return err
				}
				kept := lines[:0]
				for _, l := range lines {
					if rng.Contains(l.Date) {
						kept = append(kept, l)
					}
				}
				lines = kept
			}

			title := fmt.Sprintf("%d %s (%s)", acct.ID, acct.Name, acct.Type)
			return b.printer(cmd.OutOrStdout()).Ledger(title, lines)
		},
	}

	rf.register(cmd)
	return cmd
}

