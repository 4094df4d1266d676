package commands

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reckon/internal/accounts"
)

// run executes the CLI in-process and returns everything it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// initBooks creates books without git in a temp dir.
func initBooks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := run(t, "init", dir, "--name", "Test Biz", "--git=false")
	require.NoError(t, err)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initBooks(t)

	for _, d := range []string{
		"accounts",
		"documents",
		"statements",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "init", dir, "--name", "My Company", "--git=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized books for My Company")

	data, err := os.ReadFile(filepath.Join(dir, "reckon.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: My Company")
	assert.Contains(t, contents, "entity_type: llc_single_member")
	assert.Contains(t, contents, "auto_commit: false")
}

func TestInit_Accounts(t *testing.T) {
	dir := initBooks(t)

	chart, err := accounts.Load(dir)
	require.NoError(t, err)
	assert.Len(t, chart.IDs(), 14)
	assert.True(t, chart.Exists(1010))
	assert.True(t, chart.Exists(2100))
}

func TestInit_Gitignore(t *testing.T) {
	dir := initBooks(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".env")
	assert.Contains(t, string(data), "import/*.csv")
}

func TestInit_RefusesExistingBooks(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "init", dir, "--name", "Again", "--git=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := run(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestInit_GitRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	_, err := run(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init: Initialize Test Biz")
	assert.Contains(t, string(out), "Reckon <books@reckon.local>")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "reckon version dev")
}
