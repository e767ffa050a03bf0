package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// ProjectFile is the name of a repository-local journal.
const ProjectFile = ".daybook.md"

// ErrNotInRepository is returned by project-journal operations run outside
// a git worktree.
var ErrNotInRepository = errors.New("not inside a git repository")

// Slot identifies which journal a Context points at.
type Slot int

const (
	SlotGlobal Slot = iota
	SlotProject
)

// Context tracks the global journal and an optional project journal found
// at the enclosing git root, and which of the two is active.
type Context struct {
	globalPath  string
	projectPath string
	active      Slot
}

// NewContext builds a journal context rooted at the global journal and
// detects a project journal from workingDir.
func NewContext(globalPath, workingDir string) *Context {
	c := &Context{globalPath: globalPath}
	if path, ok := DetectProjectJournal(workingDir); ok {
		c.projectPath = path
	}
	return c
}

// ActivePath returns the journal file the context currently points at.
// A project slot without a detected project journal falls back to the
// global one.
func (c *Context) ActivePath() string {
	if c.active == SlotProject && c.projectPath != "" {
		return c.projectPath
	}
	return c.globalPath
}

// ActiveSlot returns the selected slot.
func (c *Context) ActiveSlot() Slot {
	return c.active
}

// SetActiveSlot selects which journal subsequent operations use.
func (c *Context) SetActiveSlot(slot Slot) {
	c.active = slot
}

// GlobalPath returns the global journal location.
func (c *Context) GlobalPath() string {
	return c.globalPath
}

// ProjectPath returns the detected project journal, if any.
func (c *Context) ProjectPath() (string, bool) {
	return c.projectPath, c.projectPath != ""
}

// SetProjectPath records a freshly created project journal.
func (c *Context) SetProjectPath(path string) {
	c.projectPath = path
}

// FindGitRoot returns the root of the git worktree enclosing dir.
func FindGitRoot(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository, no place for a project journal.
		return "", false
	}
	return wt.Filesystem.Root(), true
}

// DetectProjectJournal reports the project journal of the repository
// enclosing workingDir, when one exists.
func DetectProjectJournal(workingDir string) (string, bool) {
	root, ok := FindGitRoot(workingDir)
	if !ok {
		return "", false
	}
	path := filepath.Join(root, ProjectFile)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// CreateProjectJournal creates an empty project journal at the enclosing
// git root and returns its path. An existing journal is left alone.
func CreateProjectJournal(workingDir string) (string, error) {
	root, ok := FindGitRoot(workingDir)
	if !ok {
		return "", ErrNotInRepository
	}

	path := filepath.Join(root, ProjectFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return "", fmt.Errorf("failed to create project journal: %w", err)
		}
	}
	return path, nil
}

// AddToGitignore appends the project journal to the repository's
// .gitignore unless it is already listed.
func AddToGitignore(workingDir string) error {
	root, ok := FindGitRoot(workingDir)
	if !ok {
		return ErrNotInRepository
	}

	gitignore := filepath.Join(root, ".gitignore")
	content, err := os.ReadFile(gitignore)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read .gitignore: %w", err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ProjectFile {
			return nil
		}
	}

	updated := string(content)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += ProjectFile + "\n"

	if err := os.WriteFile(gitignore, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("failed to update .gitignore: %w", err)
	}
	return nil
}
