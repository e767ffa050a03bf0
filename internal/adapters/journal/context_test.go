package journal

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

func TestFindGitRootFromSubdirectory(t *testing.T) {
	root := initRepo(t)
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	got, ok := FindGitRoot(sub)
	require.True(t, ok)
	assert.Equal(t, root, got)
}

func TestFindGitRootOutsideRepo(t *testing.T) {
	_, ok := FindGitRoot(t.TempDir())
	assert.False(t, ok)
}

func TestDetectProjectJournal(t *testing.T) {
	root := initRepo(t)

	_, ok := DetectProjectJournal(root)
	assert.False(t, ok)

	path, err := CreateProjectJournal(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ProjectFile), path)

	detected, ok := DetectProjectJournal(root)
	require.True(t, ok)
	assert.Equal(t, path, detected)
}

func TestCreateProjectJournalOutsideRepo(t *testing.T) {
	_, err := CreateProjectJournal(t.TempDir())
	assert.ErrorIs(t, err, ErrNotInRepository)
}

func TestAddToGitignore(t *testing.T) {
	root := initRepo(t)
	gitignore := filepath.Join(root, ".gitignore")
	require.NoError(t, os.WriteFile(gitignore, []byte("bin/\n"), 0o644))

	require.NoError(t, AddToGitignore(root))
	data, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.Equal(t, "bin/\n.daybook.md\n", string(data))

	// Idempotent.
	require.NoError(t, AddToGitignore(root))
	data, err = os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.Equal(t, "bin/\n.daybook.md\n", string(data))
}

func TestContextSlots(t *testing.T) {
	root := initRepo(t)
	project, err := CreateProjectJournal(root)
	require.NoError(t, err)

	ctx := NewContext("/tmp/global.md", root)
	assert.Equal(t, "/tmp/global.md", ctx.ActivePath())

	ctx.SetActiveSlot(SlotProject)
	assert.Equal(t, project, ctx.ActivePath())

	// Without a project journal the project slot falls back to global.
	outside := NewContext("/tmp/global.md", t.TempDir())
	outside.SetActiveSlot(SlotProject)
	assert.Equal(t, "/tmp/global.md", outside.ActivePath())
}
