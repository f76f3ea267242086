package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	gitexecerrors "gitexec.dev/gitexec/internal/errors"
)

// Location describes which repository an invocation targets. Any field may
// be empty. Values are fixed once built; the With* helpers return copies.
type Location struct {
	// GitDir is the repository control directory (GIT_DIR)
	GitDir string
	// WorkTree is the working tree directory (GIT_WORK_TREE)
	WorkTree string
	// IndexFile is the index file path (GIT_INDEX_FILE)
	IndexFile string
	// Path is the ad-hoc directory used when neither GitDir nor WorkTree is
	// set, typically the target of the last init or clone
	Path string
}

// Dir returns the execution directory: work tree, then control directory,
// then the ad-hoc path, then ".".
func (l Location) Dir() string {
	switch {
	case l.WorkTree != "":
		return l.WorkTree
	case l.GitDir != "":
		return l.GitDir
	case l.Path != "":
		return l.Path
	default:
		return "."
	}
}

// WithIndexFile returns a copy of the location using another index file.
func (l Location) WithIndexFile(path string) Location {
	l.IndexFile = path
	return l
}

// WithPath returns a copy of the location with a new ad-hoc path.
func (l Location) WithPath(path string) Location {
	l.Path = path
	return l
}

// environ returns the GIT_* overrides for the location. Unset fields yield
// an empty value so that inherited variables are cleared.
func (l Location) environ() map[string]string {
	return map[string]string{
		envGitDir:    l.GitDir,
		envWorkTree:  l.WorkTree,
		envIndexFile: l.IndexFile,
	}
}

const (
	envGitDir    = "GIT_DIR"
	envWorkTree  = "GIT_WORK_TREE"
	envIndexFile = "GIT_INDEX_FILE"
)

// DiscoverLocation finds the repository containing path, walking up to the
// enclosing .git like git itself does. A path that is itself a bare
// repository is accepted too; bare repositories get no WorkTree.
func DiscoverLocation(path string) (Location, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Location{}, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		// detection only looks for .git entries, a bare repository is the path itself
		repo, err = gogit.PlainOpen(absPath)
	}
	if err != nil {
		return Location{}, fmt.Errorf("%w: %s: %w", gitexecerrors.ErrNotARepository, absPath, err)
	}

	loc := Location{}
	if storage, ok := repo.Storer.(*filesystem.Storage); ok {
		loc.GitDir = storage.Filesystem().Root()
	}

	worktree, err := repo.Worktree()
	switch {
	case err == nil:
		loc.WorkTree = worktree.Filesystem.Root()
		if loc.GitDir == "" {
			loc.GitDir = filepath.Join(loc.WorkTree, ".git")
		}
		loc.IndexFile = filepath.Join(loc.GitDir, "index")
	case errors.Is(err, gogit.ErrIsBareRepository):
		if loc.GitDir == "" {
			loc.GitDir = absPath
		}
	default:
		return Location{}, fmt.Errorf("failed to get worktree: %w", err)
	}

	return loc, nil
}
