package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/buildinfo"
)

// now is the clock used for aging and default report periods.
var now = time.Now

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var repoDir string

	rootCmd := &cobra.Command{
		Use:     "reckon",
		Short:   "Plain-text double-entry books: reports, aging and bank reconciliation",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&repoDir, "repo", ".", "books directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newJournalCommand(&repoDir),
		newReportCommand(&repoDir),
		newAgingCommand(&repoDir),
		newDocumentCommand(&repoDir, docBill),
		newDocumentCommand(&repoDir, docInvoice),
		newImportCommand(&repoDir),
		newReconcileCommand(&repoDir),
		newDashboardCommand(&repoDir),
	)

	return rootCmd
}
