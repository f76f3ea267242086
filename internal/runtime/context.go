package runtime

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"gitexec.dev/gitexec/internal/config"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/output"
)

// Options are the global flags shared by all commands
type Options struct {
	// Dir is the directory commands start from (-C)
	Dir       string
	GitDir    string
	WorkTree  string
	IndexFile string
	Verbose   bool
	// RequireRepo fails when no repository can be located
	RequireRepo bool
	Out         io.Writer
	Err         io.Writer
}

// Context provides access to the git client, output and configuration
type Context struct {
	context.Context
	Client *git.Client
	Splog  *output.Splog
	Config *config.Config
}

// NewContext assembles a context from already built parts
func NewContext(ctx context.Context, client *git.Client, splog *output.Splog, cfg *config.Config) *Context {
	return &Context{
		Context: ctx,
		Client:  client,
		Splog:   splog,
		Config:  cfg,
	}
}

// GetContext loads configuration, opens the log and locates the repository
func GetContext(ctx context.Context, opts Options) (*Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	splog, err := output.NewSplogWithOptions(output.Options{
		Out:     opts.Out,
		Err:     opts.Err,
		LogFile: output.GetLogFilePath(cfg.LogFile, config.Dir()),
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	loc, err := ResolveLocation(opts)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}

	client := git.NewClient(loc, cfg.RunnerOptions(splog.CommandLogger())...)
	if opts.RequireRepo && cfg.MinGitVersion != "" {
		if err := client.MeetsRequiredVersion(ctx, cfg.MinGitVersion); err != nil {
			_ = splog.Close()
			return nil, err
		}
	}

	return NewContext(ctx, client, splog, cfg), nil
}

// ResolveLocation turns the global flags into a repository location.
// Explicit --git-dir or --work-tree win over discovery. Without them the
// repository enclosing Dir is used, or Dir itself when RequireRepo is off.
func ResolveLocation(opts Options) (git.Location, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if opts.GitDir != "" || opts.WorkTree != "" {
		loc := git.Location{
			GitDir:    relativeTo(dir, opts.GitDir),
			WorkTree:  relativeTo(dir, opts.WorkTree),
			IndexFile: relativeTo(dir, opts.IndexFile),
		}
		if loc.GitDir == "" {
			loc.GitDir = filepath.Join(loc.WorkTree, ".git")
		}
		return loc, nil
	}

	loc, err := git.DiscoverLocation(dir)
	if err != nil {
		if opts.RequireRepo {
			return git.Location{}, fmt.Errorf("failed to locate repository: %w", err)
		}
		return git.Location{Path: dir}, nil
	}
	if opts.IndexFile != "" {
		loc = loc.WithIndexFile(relativeTo(dir, opts.IndexFile))
	}
	return loc, nil
}

func relativeTo(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Close releases the log file
func (c *Context) Close() error {
	return c.Splog.Close()
}
