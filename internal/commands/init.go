package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/accounts"
	"github.com/cleared-dev/reckon/internal/config"
	"github.com/cleared-dev/reckon/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a new books directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, entityType, useGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "llc_single_member", "entity type")
	cmd.Flags().BoolVar(&useGit, "git", true, "track the books in a git repository")

	return cmd
}

func runInit(out io.Writer, dir, name, entityType string, useGit bool) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	dirs := []string{
		"accounts",
		"documents",
		"statements",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, entityType)
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	chart := accounts.NewRegistry(accounts.DefaultChart(entityType))
	if err := chart.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\nimport/*.csv\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !useGit {
		fmt.Fprintf(out, "Initialized books for %s at %s\n", name, dir)
		return nil
	}

	if err := gitops.Init(dir); err != nil {
		return err
	}
	hash, err := gitops.Commit(dir, "init: Initialize "+name, gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized books for %s at %s (%s)\n", name, dir, hash)
	return nil
}
