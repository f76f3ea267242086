package git

import (
	"context"
	"fmt"
)

// AddOptions contains options for git add
type AddOptions struct {
	All   bool
	Force bool
}

// Add stages paths, "." when none are given
func (c *Client) Add(ctx context.Context, paths []string, opts AddOptions) error {
	args := []string{}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, "--")
	args = append(args, defaultPaths(paths)...)

	if _, err := c.Execute(ctx, "add", args); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// RemoveOptions contains options for git rm
type RemoveOptions struct {
	Recursive bool
	Cached    bool
}

// Remove deletes paths from the index (and the work tree unless Cached)
func (c *Client) Remove(ctx context.Context, paths []string, opts RemoveOptions) error {
	args := []string{"-f"}
	if opts.Recursive {
		args = append(args, "-r")
	}
	if opts.Cached {
		args = append(args, "--cached")
	}
	args = append(args, "--")
	args = append(args, defaultPaths(paths)...)

	if _, err := c.Execute(ctx, "rm", args); err != nil {
		return fmt.Errorf("failed to remove paths: %w", err)
	}
	return nil
}

// Mv renames a tracked file
func (c *Client) Mv(ctx context.Context, source, destination string) error {
	if _, err := c.Execute(ctx, "mv", []string{"--", source, destination}); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", source, destination, err)
	}
	return nil
}

// CommitOptions contains options for creating a commit
type CommitOptions struct {
	Amend      bool
	All        bool
	AllowEmpty bool
	Author     string
	Date       string
	NoVerify   bool
}

// Commit records the index with message and returns git's summary output
func (c *Client) Commit(ctx context.Context, message string, opts CommitOptions) (string, error) {
	args := []string{"--message=" + message}
	if opts.Amend {
		args = append(args, "--amend")
	}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.AllowEmpty {
		args = append(args, "--allow-empty")
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}
	if opts.Date != "" {
		args = append(args, "--date="+opts.Date)
	}
	if opts.NoVerify {
		args = append(args, "--no-verify")
	}

	out, err := c.Execute(ctx, "commit", args)
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return out, nil
}

// ResetOptions contains options for git reset
type ResetOptions struct {
	Hard bool
}

// Reset moves HEAD (and the index, and the work tree when Hard) to commit.
// An empty commit resets to HEAD.
func (c *Client) Reset(ctx context.Context, commit string, opts ResetOptions) error {
	args := []string{}
	if opts.Hard {
		args = append(args, "--hard")
	}
	if commit != "" {
		args = append(args, commit)
	}
	if _, err := c.Execute(ctx, "reset", args); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	return nil
}

// CleanOptions contains options for git clean
type CleanOptions struct {
	Force       bool
	Directories bool
	Ignored     bool
}

// Clean removes untracked files from the work tree
func (c *Client) Clean(ctx context.Context, opts CleanOptions) error {
	args := []string{}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.Directories {
		args = append(args, "-d")
	}
	if opts.Ignored {
		args = append(args, "-x")
	}
	if _, err := c.Execute(ctx, "clean", args); err != nil {
		return fmt.Errorf("failed to clean work tree: %w", err)
	}
	return nil
}

// Revert creates a commit undoing commitish, without opening an editor
func (c *Client) Revert(ctx context.Context, commitish string) error {
	if _, err := c.Execute(ctx, "revert", []string{"--no-edit", commitish}); err != nil {
		return fmt.Errorf("failed to revert %s: %w", commitish, err)
	}
	return nil
}

// Apply applies a patch file to the work tree
func (c *Client) Apply(ctx context.Context, patchFile string) error {
	if _, err := c.Execute(ctx, "apply", []string{"--", patchFile}); err != nil {
		return fmt.Errorf("failed to apply %s: %w", patchFile, err)
	}
	return nil
}

// ApplyMail applies a mailbox patch as a commit
func (c *Client) ApplyMail(ctx context.Context, mailFile string) error {
	if _, err := c.Execute(ctx, "am", []string{"--", mailFile}); err != nil {
		return fmt.Errorf("failed to apply mailbox %s: %w", mailFile, err)
	}
	return nil
}

// LsFiles lists the index entries below location, "." when empty
func (c *Client) LsFiles(ctx context.Context, location string) (map[string]IndexEntry, error) {
	if location == "" {
		location = "."
	}
	lines, err := c.ExecuteLines(ctx, "ls-files", []string{"--stage", location})
	if err != nil {
		return nil, fmt.Errorf("failed to list index: %w", err)
	}
	return parseIndex(lines, c.logger), nil
}

// IgnoredFiles lists untracked files matched by ignore rules
func (c *Client) IgnoredFiles(ctx context.Context) ([]string, error) {
	lines, err := c.ExecuteLines(ctx, "ls-files", []string{"--others", "-i", "--exclude-standard"})
	if err != nil {
		return nil, fmt.Errorf("failed to list ignored files: %w", err)
	}
	return unquotePaths(lines), nil
}

// UntrackedFiles lists untracked files not matched by ignore rules
func (c *Client) UntrackedFiles(ctx context.Context) ([]string, error) {
	lines, err := c.ExecuteLines(ctx, "ls-files", []string{"--others", "--exclude-standard"})
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}
	return unquotePaths(lines), nil
}

func defaultPaths(paths []string) []string {
	if len(paths) == 0 {
		return []string{"."}
	}
	return paths
}

func unquotePaths(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, unquotePath(line))
	}
	return out
}
