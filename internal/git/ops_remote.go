package git

import (
	"context"
	"errors"
	"fmt"
)

// RemoteAddOptions contains options for git remote add
type RemoteAddOptions struct {
	// Fetch fetches the remote right after adding it
	Fetch bool
	// Track limits the tracked refs to this branch
	Track string
}

// RemoteAdd registers a remote
func (c *Client) RemoteAdd(ctx context.Context, name, url string, opts RemoteAddOptions) error {
	args := []string{"add"}
	if opts.Fetch {
		args = append(args, "-f")
	}
	if opts.Track != "" {
		args = append(args, "-t", opts.Track)
	}
	args = append(args, "--", name, url)

	if _, err := c.Execute(ctx, "remote", args); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// RemoteRemove deletes a remote and its tracking refs
func (c *Client) RemoteRemove(ctx context.Context, name string) error {
	if _, err := c.Execute(ctx, "remote", []string{"rm", name}); err != nil {
		return fmt.Errorf("failed to remove remote %s: %w", name, err)
	}
	return nil
}

// Remotes lists remote names
func (c *Client) Remotes(ctx context.Context) ([]string, error) {
	lines, err := c.ExecuteLines(ctx, "remote", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return lines, nil
}

// ConfigRemote returns the configuration of a remote with the
// "remote.<name>." prefix removed, e.g. "url" and "fetch"
func (c *Client) ConfigRemote(ctx context.Context, name string) (ConfigMap, error) {
	cfg, err := c.ConfigList(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Section("remote." + name), nil
}

// Tags lists tag names
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	lines, err := c.ExecuteLines(ctx, "tag", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return lines, nil
}

// TagOptions contains options for git tag
type TagOptions struct {
	Annotate bool
	Message  string
	Force    bool
	Delete   bool
	// Target is the commit to tag, HEAD when empty
	Target string
}

var errTagMessageRequired = errors.New("an annotated tag requires a message")

// Tag creates (or deletes) a tag
func (c *Client) Tag(ctx context.Context, name string, opts TagOptions) error {
	if opts.Annotate && opts.Message == "" {
		return errTagMessageRequired
	}

	args := []string{}
	switch {
	case opts.Delete:
		args = append(args, "-d", name)
	default:
		if opts.Force {
			args = append(args, "-f")
		}
		if opts.Annotate {
			args = append(args, "-a")
		}
		if opts.Message != "" {
			args = append(args, "-m", opts.Message)
		}
		args = append(args, name)
		if opts.Target != "" {
			args = append(args, opts.Target)
		}
	}

	if _, err := c.Execute(ctx, "tag", args); err != nil {
		return fmt.Errorf("failed to tag %s: %w", name, err)
	}
	return nil
}

// TagSHA returns the object id a tag ref points at, empty when the tag does
// not exist
func (c *Client) TagSHA(ctx context.Context, name string) (string, error) {
	lines, err := c.ExecuteLines(ctx, "show-ref", []string{"--tags", "-s", name})
	if err != nil {
		return "", fmt.Errorf("failed to resolve tag %s: %w", name, err)
	}
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], nil
}

// FetchOptions contains options for git fetch
type FetchOptions struct {
	Tags  bool
	Prune bool
}

// Fetch downloads objects and refs from remote
func (c *Client) Fetch(ctx context.Context, remote string, opts FetchOptions) error {
	args := []string{}
	if opts.Tags {
		args = append(args, "--tags")
	}
	if opts.Prune {
		args = append(args, "--prune")
	}
	if remote != "" {
		args = append(args, remote)
	}
	if _, err := c.Execute(ctx, "fetch", args); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remote, err)
	}
	return nil
}

// PushOptions contains options for git push
type PushOptions struct {
	Force bool
	// Tags pushes tags in a second push after the branch
	Tags bool
}

// Push updates remote with branch, then its tags when opts.Tags
func (c *Client) Push(ctx context.Context, remote, branch string, opts PushOptions) error {
	if remote == "" {
		remote = "origin"
	}
	if branch == "" {
		branch = "master"
	}

	args := []string{}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, remote, branch)
	if _, err := c.Execute(ctx, "push", args); err != nil {
		return fmt.Errorf("failed to push %s to %s: %w", branch, remote, err)
	}

	if !opts.Tags {
		return nil
	}
	tagArgs := []string{"--tags"}
	if opts.Force {
		tagArgs = append(tagArgs, "--force")
	}
	tagArgs = append(tagArgs, remote)
	if _, err := c.Execute(ctx, "push", tagArgs); err != nil {
		return fmt.Errorf("failed to push tags to %s: %w", remote, err)
	}
	return nil
}

// Pull fetches branch from remote and merges it into the current branch
func (c *Client) Pull(ctx context.Context, remote, branch string) error {
	if remote == "" {
		remote = "origin"
	}
	if branch == "" {
		branch = "master"
	}
	if _, err := c.Execute(ctx, "pull", []string{"--no-rebase", "--no-edit", remote, branch}); err != nil {
		return fmt.Errorf("failed to pull %s from %s: %w", branch, remote, err)
	}
	return nil
}
