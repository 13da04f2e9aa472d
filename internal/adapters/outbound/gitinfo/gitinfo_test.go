package gitinfo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/gitinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitInfo_Revision_OfRuleFileInSubdir(t *testing.T) {
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")

	rulesDir := filepath.Join(dir, "rules")
	require.NoError(t, os.MkdirAll(rulesDir, 0755))
	rulesFile := filepath.Join(rulesDir, "rails.yaml")
	require.NoError(t, os.WriteFile(rulesFile, []byte(`script: "/assets/"`), 0644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "add rules")

	gi := gitinfo.New()
	hash, err := gi.Revision(rulesFile)
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
}

func TestGitInfo_Revision_NotGitRepo(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	_, err := gi.Revision(filepath.Join(dir, "rules.yaml"))
	assert.Error(t, err)
}

func TestGitInfo_Revision_NoCommits(t *testing.T) {
	dir := t.TempDir()
	runGit(t, dir, "init")

	gi := gitinfo.New()
	_, err := gi.Revision(dir)
	assert.Error(t, err)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}
