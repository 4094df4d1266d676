package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/importer"
)

func newImportCommand(repoDir *string) *cobra.Command {
	var account int
	var format string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank statement exports",
		Long: `Import bank statement exports into statements/<account>.csv.

With no files, every CSV waiting in import/ is imported and moved to
import/processed/. Lines already present in the statement are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*repoDir)
			if err != nil {
				return err
			}
			defer b.close()

			if !b.chart.Exists(account) {
				return fmt.Errorf("--account: unknown account %d", account)
			}
			if format == "" {
				format = "chase"
				if ba, ok := b.cfg.BankAccount(account); ok && ba.Format != "" {
					format = ba.Format
				}
			}
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("--format: no parser for %q", format)
			}

			var results []importer.Result
			if len(args) == 0 {
				results, err = importer.ImportPending(b.root, account, parser)
			} else {
				for _, path := range args {
					var res importer.Result
					if res, err = importer.ImportFile(b.root, account, parser, path); err != nil {
						break
					}
					results = append(results, res)
				}
			}

			out := cmd.OutOrStdout()
			added := 0
			for _, res := range results {
				fmt.Fprintf(out, "%s: %d new lines\n", res.File, len(res.Lines))
				added += len(res.Lines)
			}
			if len(results) == 0 && err == nil {
				fmt.Fprintln(out, "Nothing to import.")
			}
			if added > 0 {
				b.commit(fmt.Sprintf("import: %d lines into %d", added, account))
			}
			return err
		},
	}

	cmd.Flags().IntVar(&account, "account", 0, "cash account the statement belongs to (required)")
	cmd.Flags().StringVar(&format, "format", "", "statement format (default from reckon.yaml, else chase)")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
