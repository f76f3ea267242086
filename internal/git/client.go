package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Client exposes one method per git subcommand. Each method builds an
// argument list and delegates to the embedded CommandRunner and, where the
// output has structure, to a parser.
type Client struct {
	*CommandRunner
}

// NewClient creates a Client targeting loc
func NewClient(loc Location, opts ...RunnerOption) *Client {
	return &Client{CommandRunner: NewCommandRunner(loc, opts...)}
}

// At returns a Client with the same settings targeting another location
func (c *Client) At(loc Location) *Client {
	r := *c.CommandRunner
	r.location = absLocation(loc)
	return &Client{CommandRunner: &r}
}

// InitOptions contains options for git init
type InitOptions struct {
	Bare          bool
	InitialBranch string
}

// Init creates a repository at the client's location. The target
// directory is created when missing.
func (c *Client) Init(ctx context.Context, opts InitOptions) error {
	if err := os.MkdirAll(c.location.Dir(), 0750); err != nil {
		return fmt.Errorf("failed to create repository directory: %w", err)
	}

	args := []string{}
	if opts.Bare {
		args = append(args, "--bare")
	}
	if opts.InitialBranch != "" {
		args = append(args, "--initial-branch="+opts.InitialBranch)
	}

	if _, err := c.Execute(ctx, "init", args); err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}
	return nil
}

// CloneOptions contains options for git clone
type CloneOptions struct {
	// Path is the parent directory of the clone, "." when empty
	Path   string
	Bare   bool
	Remote string
	Branch string
	Depth  int
	Config []string
}

// Clone clones repository into name (below opts.Path) and returns the
// location of the new repository.
func (c *Client) Clone(ctx context.Context, repository, name string, opts CloneOptions) (Location, error) {
	cloneDir := name
	if opts.Path != "" {
		cloneDir = filepath.Join(opts.Path, name)
	}

	args := []string{}
	if opts.Bare {
		args = append(args, "--bare")
	}
	if opts.Remote != "" {
		args = append(args, "-o", opts.Remote)
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", fmt.Sprint(opts.Depth))
	}
	for _, kv := range opts.Config {
		args = append(args, "--config", kv)
	}
	args = append(args, "--", repository, cloneDir)

	// clone must not inherit the client's repository variables
	cloner := c.At(Location{})
	if _, err := cloner.Execute(ctx, "clone", args, WithoutWorkingDir()); err != nil {
		return Location{}, fmt.Errorf("failed to clone %s: %w", repository, err)
	}

	absDir, err := filepath.Abs(cloneDir)
	if err != nil {
		return Location{}, fmt.Errorf("failed to resolve clone directory: %w", err)
	}
	if opts.Bare {
		return Location{GitDir: absDir, Path: absDir}, nil
	}
	return Location{WorkTree: absDir, GitDir: filepath.Join(absDir, ".git"), Path: absDir}, nil
}
