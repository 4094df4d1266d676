package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/documents"
	"github.com/cleared-dev/reckon/internal/journal"
	"github.com/cleared-dev/reckon/internal/model"
)

// docCommand describes the bill and invoice command trees, which differ
// only in names and posting direction.
type docCommand struct {
	kind        model.DocumentKind
	party       string // counterparty flag
	accountFlag string // income statement account posted on add
	cashFlag    string // cash account posted on pay
}

var (
	docBill    = docCommand{kind: model.KindBill, party: "vendor", accountFlag: "expense", cashFlag: "from"}
	docInvoice = docCommand{kind: model.KindInvoice, party: "customer", accountFlag: "revenue", cashFlag: "to"}
)

func (d docCommand) control(b *books) int {
	if d.kind == model.KindBill {
		return b.cfg.Accounts.Payable
	}
	return b.cfg.Accounts.Receivable
}

// addPosting returns the debit and credit accounts recorded when a document
// is entered: expense against payables, or receivables against revenue.
func (d docCommand) addPosting(b *books, account int) (debit, credit int) {
	if d.kind == model.KindBill {
		return account, d.control(b)
	}
	return d.control(b), account
}

// payPosting returns the accounts recorded when a document is settled.
func (d docCommand) payPosting(b *books, cash int) (debit, credit int) {
	if d.kind == model.KindBill {
		return d.control(b), cash
	}
	return cash, d.control(b)
}

func newDocumentCommand(repoDir *string, d docCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(d.kind),
		Short: fmt.Sprintf("Record and settle %ss", d.kind),
	}
	cmd.AddCommand(newDocumentAddCommand(repoDir, d), newDocumentPayCommand(repoDir, d))
	return cmd
}

func newDocumentAddCommand(repoDir *string, d docCommand) *cobra.Command {
	var party, partyName, dateStr, dueStr, amountStr string
	var account int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an unpaid " + string(d.kind),
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
			due, err := parseDate("due", dueStr)
			if err != nil {
				return err
			}
			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}

			var debit, credit int
			if account != 0 {
				debit, credit = d.addPosting(b, account)
				if err := checkPosting(b, debit, credit, amount); err != nil {
					return err
				}
			}

			doc, err := b.docs.Add(d.kind, documents.AddParams{
				CounterpartyID: party,
				Date:           date,
				DueDate:        due,
				Amount:         amount,
			})
			if err != nil {
				return err
			}
			if partyName != "" {
				if err := b.docs.SaveCounterparty(model.Counterparty{ID: party, Name: partyName}); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded %s %s for %s due %s\n", d.kind, doc.ID,
				b.printer(out).Amount(doc.Amount), doc.DueDate.Format(dateLayout))

			if account != 0 {
				if err := postDocument(out, b, doc, debit, credit, doc.Date); err != nil {
					return err
				}
			}
			b.commit(fmt.Sprintf("%s: add %s", d.kind, doc.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&party, d.party, "", d.party+" id (required)")
	cmd.Flags().StringVar(&partyName, d.party+"-name", "", "save or rename the "+d.party)
	cmd.Flags().StringVar(&dateStr, "date", "", "document date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&dueStr, "due", "", "due date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	cmd.Flags().IntVar(&account, d.accountFlag, 0, d.accountFlag+" account to post against (optional)")
	_ = cmd.MarkFlagRequired(d.party)
	_ = cmd.MarkFlagRequired("due")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newDocumentPayCommand(repoDir *string, d docCommand) *cobra.Command {
	var cash int
	var dateStr string

	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark a " + string(d.kind) + " paid",
		Args:  cobra.ExactArgs(1),
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

			doc, err := b.docs.Get(d.kind, args[0])
			if err != nil {
				return err
			}
			if !doc.IsOpen() {
				return fmt.Errorf("%s %s: %w", d.kind, doc.ID, documents.ErrAlreadyPaid)
			}

			var debit, credit int
			if cash != 0 {
				debit, credit = d.payPosting(b, cash)
				if err := checkPosting(b, debit, credit, doc.Amount); err != nil {
					return err
				}
			}

			if doc, err = b.docs.Pay(d.kind, doc.ID); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Marked %s %s paid\n", d.kind, doc.ID)

			if cash != 0 {
				if err := postDocument(out, b, doc, debit, credit, date); err != nil {
					return err
				}
			}
			b.commit(fmt.Sprintf("%s: pay %s", d.kind, doc.ID))
			return nil
		},
	}

	cmd.Flags().IntVar(&cash, d.cashFlag, 0, "cash account to post the payment "+d.cashFlag+" (optional)")
	cmd.Flags().StringVar(&dateStr, "date", "", "payment date, YYYY-MM-DD (default today)")
	return cmd
}

// checkPosting rejects a posting before any document state is written.
func checkPosting(b *books, debit, credit int, amount decimal.Decimal) error {
	entry := model.JournalEntry{DebitAccountID: debit, CreditAccountID: credit, Amount: amount}
	if verrs := journal.ValidatePosting(entry, b.chart); len(verrs) > 0 {
		return fmt.Errorf("posting rejected: %w", journal.Errors(verrs))
	}
	return nil
}

func postDocument(out io.Writer, b *books, doc model.Document, debit, credit int, date time.Time) error {
	entryID, err := b.journal.AddEntry(journal.AddParams{
		Date:          date,
		Description:   fmt.Sprintf("%s %s", doc.ID, doc.CounterpartyID),
		DebitAccount:  debit,
		CreditAccount: credit,
		Amount:        doc.Amount,
	})
	if err != nil {
		return fmt.Errorf("posting %s: %w", doc.ID, err)
	}
	fmt.Fprintf(out, "Posted %s: %s / %s\n", entryID, b.chart.Name(debit), b.chart.Name(credit))
	return nil
}
