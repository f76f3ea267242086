package git

import (
	"context"
	"fmt"
	"os"
)

// DiffOptions restricts a diff to a path
type DiffOptions struct {
	PathLimiter string
}

func diffArgs(flag, obj1, obj2 string, opts DiffOptions) []string {
	if obj1 == "" {
		obj1 = "HEAD"
	}
	args := []string{flag, obj1}
	if obj2 != "" {
		args = append(args, obj2)
	}
	if opts.PathLimiter != "" {
		args = append(args, "--", opts.PathLimiter)
	}
	return args
}

// DiffFull returns the patch between obj1 (HEAD when empty) and obj2 (the
// work tree when empty)
func (c *Client) DiffFull(ctx context.Context, obj1, obj2 string, opts DiffOptions) (string, error) {
	out, err := c.Execute(ctx, "diff", diffArgs("-p", obj1, obj2, opts))
	if err != nil {
		return "", fmt.Errorf("failed to diff: %w", err)
	}
	return out, nil
}

// DiffStats returns per-file and total line counts between obj1 and obj2
func (c *Client) DiffStats(ctx context.Context, obj1, obj2 string, opts DiffOptions) (DiffStats, error) {
	lines, err := c.ExecuteLines(ctx, "diff", diffArgs("--numstat", obj1, obj2, opts))
	if err != nil {
		return DiffStats{}, fmt.Errorf("failed to get diff stats: %w", err)
	}
	return parseNumstat(lines, c.logger), nil
}

// DiffFiles compares the work tree with the index
func (c *Client) DiffFiles(ctx context.Context) (map[string]RawDiffEntry, error) {
	lines, err := c.ExecuteLines(ctx, "diff-files", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to diff work tree against index: %w", err)
	}
	return parseRawDiff(lines, c.logger), nil
}

// DiffIndex compares a tree-ish with the work tree through the index
func (c *Client) DiffIndex(ctx context.Context, treeish string) (map[string]RawDiffEntry, error) {
	lines, err := c.ExecuteLines(ctx, "diff-index", []string{treeish})
	if err != nil {
		return nil, fmt.Errorf("failed to diff index against %s: %w", treeish, err)
	}
	return parseRawDiff(lines, c.logger), nil
}

// Unmerged lists the paths with unresolved conflicts
func (c *Client) Unmerged(ctx context.Context) ([]string, error) {
	lines, err := c.ExecuteLines(ctx, "diff", []string{"--cached"})
	if err != nil {
		return nil, fmt.Errorf("failed to list unmerged paths: %w", err)
	}
	return ParseUnmerged(lines), nil
}

// ConflictFunc receives a conflicted path and temporary files holding our
// and their versions
type ConflictFunc func(path, ours, theirs string) error

// Conflicts calls fn for every unmerged path. The temporary files are
// removed once fn returns.
func (c *Client) Conflicts(ctx context.Context, fn ConflictFunc) error {
	paths, err := c.Unmerged(ctx)
	if err != nil {
		return err
	}

	for _, path := range paths {
		if err := c.conflict(ctx, path, fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) conflict(ctx context.Context, path string, fn ConflictFunc) error {
	ours, err := c.stageToTempFile(ctx, 2, path)
	if err != nil {
		return err
	}
	defer os.Remove(ours)

	theirs, err := c.stageToTempFile(ctx, 3, path)
	if err != nil {
		return err
	}
	defer os.Remove(theirs)

	return fn(path, ours, theirs)
}

// stageToTempFile writes ":<stage>:<path>" to a new temporary file through
// a shell redirect and returns the file name
func (c *Client) stageToTempFile(ctx context.Context, stage int, path string) (string, error) {
	f, err := os.CreateTemp("", "gitexec-conflict-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	object := fmt.Sprintf(":%d:%s", stage, path)
	if _, err := c.Execute(ctx, "show", []string{object}, WithRedirect("> "+Escape(name))); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to extract %s: %w", object, err)
	}
	return name, nil
}
