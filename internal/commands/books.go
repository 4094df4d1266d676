package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cleared-dev/reckon/internal/accounts"
	"github.com/cleared-dev/reckon/internal/config"
	"github.com/cleared-dev/reckon/internal/documents"
	"github.com/cleared-dev/reckon/internal/gitops"
	"github.com/cleared-dev/reckon/internal/journal"
	"github.com/cleared-dev/reckon/internal/logging"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/render"
)

// books is an opened books directory.
type books struct {
	root    string
	cfg     *config.Config
	chart   *accounts.Registry
	journal *journal.Store
	docs    *documents.Store
	logger  *zap.Logger
}

func openBooks(repoDir string) (*books, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadRepo(root)
	if err != nil {
		return nil, err
	}

	chart, err := accounts.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading chart of accounts: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Mode)
	if err != nil {
		return nil, err
	}

	return &books{
		root:    root,
		cfg:     cfg,
		chart:   chart,
		journal: journal.NewStore(root, chart),
		docs:    documents.NewStore(root),
		logger:  logger.With(zap.String("books", root)),
	}, nil
}

func (b *books) close() {
	_ = b.logger.Sync()
}

func (b *books) printer(w io.Writer) *render.Printer {
	return render.New(w, b.cfg.Reporting.Currency)
}

func (b *books) entries() ([]model.JournalEntry, error) {
	return b.journal.List(journal.Filter{})
}

// commit records the change in git when auto-commit is on. A failed commit
// is logged and does not undo the change.
func (b *books) commit(message string) {
	if !b.cfg.Git.AutoCommit || !gitops.IsRepo(b.root) {
		return
	}
	author := gitops.Author{Name: b.cfg.Git.AuthorName, Email: b.cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(b.root, message, author)
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
	case err != nil:
		b.logger.Warn("auto-commit failed", zap.String("message", message), zap.Error(err))
	default:
		b.logger.Debug("committed", zap.String("hash", hash), zap.String("message", message))
	}
}
