package git

import (
	"context"
	"fmt"
	"strings"
)

// Branches lists local and remote-tracking branches
func (c *Client) Branches(ctx context.Context) ([]Branch, error) {
	lines, err := c.ExecuteLines(ctx, "branch", []string{"-a", "--no-color"})
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return parseBranches(lines, c.logger), nil
}

// CurrentBranch returns the checked out branch, empty when HEAD is detached
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	branches, err := c.Branches(ctx)
	if err != nil {
		return "", err
	}
	for _, b := range branches {
		if b.Current {
			return b.Name, nil
		}
	}
	return "", nil
}

// BranchNew creates a branch at HEAD without checking it out
func (c *Client) BranchNew(ctx context.Context, name string) error {
	if _, err := c.Execute(ctx, "branch", []string{name}); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// BranchDelete force-deletes a local branch
func (c *Client) BranchDelete(ctx context.Context, name string) error {
	if _, err := c.Execute(ctx, "branch", []string{"-D", name}); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	return nil
}

// CheckoutOptions contains options for git checkout
type CheckoutOptions struct {
	// NewBranch creates a branch with this name at StartPoint
	NewBranch  string
	StartPoint string
	Force      bool
}

// Checkout switches to branch, or creates opts.NewBranch
func (c *Client) Checkout(ctx context.Context, branch string, opts CheckoutOptions) error {
	args := []string{}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.NewBranch != "" {
		args = append(args, "-b", opts.NewBranch)
		if opts.StartPoint != "" {
			args = append(args, opts.StartPoint)
		}
	} else if branch != "" {
		args = append(args, branch)
	}

	target := branch
	if opts.NewBranch != "" {
		target = opts.NewBranch
	}
	if _, err := c.Execute(ctx, "checkout", args); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", target, err)
	}
	return nil
}

// CheckoutFile restores file from version (the index when empty)
func (c *Client) CheckoutFile(ctx context.Context, version, file string) error {
	args := []string{}
	if version != "" {
		args = append(args, version)
	}
	args = append(args, "--", file)

	if _, err := c.Execute(ctx, "checkout", args); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", file, err)
	}
	return nil
}

// ChangeHeadBranch points HEAD at a branch without touching the work tree
func (c *Client) ChangeHeadBranch(ctx context.Context, branch string) error {
	ref := branch
	if !strings.HasPrefix(ref, "refs/") {
		ref = "refs/heads/" + branch
	}
	if _, err := c.Execute(ctx, "symbolic-ref", []string{"HEAD", ref}); err != nil {
		return fmt.Errorf("failed to point HEAD at %s: %w", branch, err)
	}
	return nil
}

// MergeOptions contains options for git merge
type MergeOptions struct {
	Message  string
	NoFF     bool
	NoCommit bool
}

// Merge merges branches into the current branch
func (c *Client) Merge(ctx context.Context, branches []string, opts MergeOptions) (string, error) {
	args := []string{"--no-edit"}
	if opts.NoFF {
		args = append(args, "--no-ff")
	}
	if opts.NoCommit {
		args = append(args, "--no-commit")
	}
	if opts.Message != "" {
		args = append(args, "-m", opts.Message)
	}
	args = append(args, branches...)

	out, err := c.Execute(ctx, "merge", args)
	if err != nil {
		return "", fmt.Errorf("failed to merge %s: %w", strings.Join(branches, ", "), err)
	}
	return out, nil
}

// MergeBaseOptions contains options for git merge-base
type MergeBaseOptions struct {
	Octopus     bool
	Independent bool
	ForkPoint   bool
	All         bool
}

// MergeBase returns the best common ancestors of commits. Unrelated
// histories yield an empty result.
func (c *Client) MergeBase(ctx context.Context, commits []string, opts MergeBaseOptions) ([]string, error) {
	args := []string{}
	if opts.Octopus {
		args = append(args, "--octopus")
	}
	if opts.Independent {
		args = append(args, "--independent")
	}
	if opts.ForkPoint {
		args = append(args, "--fork-point")
	}
	if opts.All {
		args = append(args, "--all")
	}
	args = append(args, commits...)

	lines, err := c.ExecuteLines(ctx, "merge-base", args)
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base: %w", err)
	}
	return lines, nil
}
