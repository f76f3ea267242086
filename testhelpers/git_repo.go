package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gitexec.dev/gitexec/internal/git"
)

const textFileName = "test.txt"

// GitRepo is a throwaway repository driven directly through the git
// binary, independently of the code under test.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a repository on branch main in dir with a test
// identity configured.
func NewGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %s: %w", output, err)
	}

	repo := &GitRepo{Dir: dir}
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	return repo, nil
}

// Location returns the location of the repository as the client sees it
func (r *GitRepo) Location() git.Location {
	return git.Location{
		WorkTree: r.Dir,
		GitDir:   filepath.Join(r.Dir, ".git"),
	}
}

// gitEnv hides the user's global configuration from test commands
func gitEnv() []string {
	return append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1")
}

// RunGitCommand executes a git command in the repository directory.
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %s: %w", strings.Join(args, " "), output, err)
	}
	return nil
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed
// stdout.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// WriteFile writes content to a path relative to the work tree.
func (r *GitRepo) WriteFile(name, content string) error {
	filePath := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// CreateChange writes textValue to "<prefix>_test.txt" (or "test.txt") and
// stages it unless unstaged is set.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	if err := r.WriteFile(fileName, textValue); err != nil {
		return err
	}
	if !unstaged {
		return r.RunGitCommand("add", fileName)
	}
	return nil
}

// CreateChangeAndCommit creates a file change and commits it with
// textValue as the message.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", textValue)
}

// CreateBranch creates a new branch without checking it out.
func (r *GitRepo) CreateBranch(name string) error {
	return r.RunGitCommand("branch", name)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out a branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", name)
}

// CurrentBranchName returns the name of the current branch.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("branch", "--show-current")
}

// GetRevision returns the SHA of a revision (branch, tag, or commit reference).
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev)
}

// CreateBareRemote creates a bare repository next to the work tree and
// registers it as remote name. Returns the path to the bare repository.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir := r.Dir + "-" + name + ".git"

	cmd := exec.Command("git", "init", "--bare", bareDir)
	cmd.Env = gitEnv()
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}
	if err := r.RunGitCommand("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}
	return bareDir, nil
}

// PushBranch pushes a branch to a remote.
func (r *GitRepo) PushBranch(remote, branch string) error {
	return r.RunGitCommand("push", "-u", remote, branch)
}

// CreateConflict leaves path in a conflicted merge between main and a new
// branch named branch. Our side holds ours, their side holds theirs.
func (r *GitRepo) CreateConflict(branch, path, ours, theirs string) error {
	if err := r.CreateAndCheckoutBranch(branch); err != nil {
		return err
	}
	if err := r.commitFile(path, theirs, "theirs"); err != nil {
		return err
	}
	if err := r.CheckoutBranch("main"); err != nil {
		return err
	}
	if err := r.commitFile(path, ours, "ours"); err != nil {
		return err
	}
	// the merge is expected to stop on the conflict
	_ = r.RunGitCommand("merge", branch)
	return nil
}

func (r *GitRepo) commitFile(path, content, message string) error {
	if err := r.WriteFile(path, content); err != nil {
		return err
	}
	if err := r.RunGitCommand("add", path); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", message)
}
