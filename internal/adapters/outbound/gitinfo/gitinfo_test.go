package gitinfo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/soon-migrate/soon-migrate/internal/adapters/outbound/gitinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitInfo_IsGitRepo_True(t *testing.T) {
	dir := t.TempDir()
	runGit(t, dir, "init")

	gi := gitinfo.New()
	assert.True(t, gi.IsGitRepo(dir))
}

func TestGitInfo_IsGitRepo_Subdirectory(t *testing.T) {
	dir := t.TempDir()
	runGit(t, dir, "init")
	sub := filepath.Join(dir, "programs", "vault")
	require.NoError(t, os.MkdirAll(sub, 0755))

	assert.True(t, gitinfo.New().IsGitRepo(sub))
}

func TestGitInfo_IsGitRepo_False(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	assert.False(t, gi.IsGitRepo(dir))
}

func TestGitInfo_CommitHash_ReturnsHash(t *testing.T) {
	dir := initRepoWithCommit(t)

	gi := gitinfo.New()
	hash, err := gi.CommitHash(dir)
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	_, err := gi.CommitHash(dir)
	assert.Error(t, err)
}

func TestGitInfo_HasUncommittedChanges(t *testing.T) {
	dir := initRepoWithCommit(t)
	gi := gitinfo.New()

	dirty, err := gi.HasUncommittedChanges(dir, "Anchor.toml")
	require.NoError(t, err)
	assert.False(t, dirty, "committed file is clean")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Anchor.toml"), []byte("[provider]\ncluster = \"testnet\"\n"), 0644))
	dirty, err = gi.HasUncommittedChanges(dir, "Anchor.toml")
	require.NoError(t, err)
	assert.True(t, dirty, "modified file is dirty")
}

func TestGitInfo_HasUncommittedChanges_NotGitRepo(t *testing.T) {
	_, err := gitinfo.New().HasUncommittedChanges(t.TempDir(), "Anchor.toml")
	assert.Error(t, err)
}

func initRepoWithCommit(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")

	f := filepath.Join(dir, "Anchor.toml")
	require.NoError(t, os.WriteFile(f, []byte("[provider]\ncluster = \"devnet\"\n"), 0644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}
