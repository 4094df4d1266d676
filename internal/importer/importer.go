// Package importer turns bank statement exports into reconciliation input.
//
// Exports dropped in <repo>/import/ are parsed by a format-specific Parser,
// appended to the account's statement file and moved to import/processed/.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/reckon/internal/model"
)

// Parser converts one bank export format into statement lines.
type Parser interface {
	Parse(r io.Reader) ([]model.StatementLine, error)
	Source() string
}

// Registry holds parsers by source name.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a pending export in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on a duplicate source.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Source())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser source: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for source, or nil.
func (r *Registry) Get(source string) Parser {
	return r.parsers[strings.ToLower(source)]
}

// DefaultRegistry returns a registry with the built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	return r
}

const (
	importDir    = "import"
	processedDir = "import/processed"
)

// Scan returns the CSV exports waiting in <repoRoot>/import/.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves an export from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	dstDir := filepath.Join(repoRoot, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(repoRoot, importDir, fileName)
	if err := os.Rename(src, filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Result reports what ImportFile added.
type Result struct {
	File  string
	Lines []model.StatementLine
}

// ImportFile parses one export with p and appends its lines to the
// statement of accountID. The export is left in place.
func ImportFile(repoRoot string, accountID int, p Parser, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lines, err := p.Parse(f)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	added, err := AppendStatement(repoRoot, accountID, p.Source(), lines)
	if err != nil {
		return Result{}, err
	}
	return Result{File: filepath.Base(path), Lines: added}, nil
}

// ImportPending imports every waiting export for accountID and marks each
// processed once its lines are stored.
func ImportPending(repoRoot string, accountID int, p Parser) ([]Result, error) {
	files, err := Scan(repoRoot)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, fi := range files {
		res, err := ImportFile(repoRoot, accountID, p, fi.Path)
		if err != nil {
			return results, err
		}
		if err := MarkProcessed(repoRoot, fi.Name); err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
