package git

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	gitexecerrors "gitexec.dev/gitexec/internal/errors"
)

// Repack packs loose objects and drops redundant packs
func (c *Client) Repack(ctx context.Context) error {
	if _, err := c.Execute(ctx, "repack", []string{"-a", "-d"}); err != nil {
		return fmt.Errorf("failed to repack: %w", err)
	}
	return nil
}

// GCOptions contains options for git gc
type GCOptions struct {
	Prune      bool
	Aggressive bool
	Auto       bool
}

// GC runs housekeeping on the repository
func (c *Client) GC(ctx context.Context, opts GCOptions) error {
	args := []string{}
	if opts.Prune {
		args = append(args, "--prune")
	}
	if opts.Aggressive {
		args = append(args, "--aggressive")
	}
	if opts.Auto {
		args = append(args, "--auto")
	}
	if _, err := c.Execute(ctx, "gc", args); err != nil {
		return fmt.Errorf("failed to gc: %w", err)
	}
	return nil
}

// ReadTree reads a tree into the index, below prefix when set
func (c *Client) ReadTree(ctx context.Context, treeish, prefix string) error {
	args := []string{}
	if prefix != "" {
		args = append(args, "--prefix="+prefix)
	}
	args = append(args, treeish)
	if _, err := c.Execute(ctx, "read-tree", args); err != nil {
		return fmt.Errorf("failed to read tree %s: %w", treeish, err)
	}
	return nil
}

// WriteTree writes the index as a tree object and returns its id
func (c *Client) WriteTree(ctx context.Context) (string, error) {
	sha, err := c.Execute(ctx, "write-tree", nil)
	if err != nil {
		return "", fmt.Errorf("failed to write tree: %w", err)
	}
	return sha, nil
}

// CommitTreeOptions contains options for git commit-tree
type CommitTreeOptions struct {
	// Message defaults to "commit tree <tree>"
	Message string
	Parents []string
}

// CommitTree creates a commit object for tree and returns its id. The
// message is passed on standard input.
func (c *Client) CommitTree(ctx context.Context, tree string, opts CommitTreeOptions) (string, error) {
	message := opts.Message
	if message == "" {
		message = "commit tree " + tree
	}

	args := []string{tree}
	for _, p := range opts.Parents {
		args = append(args, "-p", p)
	}

	sha, err := c.Execute(ctx, "commit-tree", args, WithStdin(strings.NewReader(message)))
	if err != nil {
		return "", fmt.Errorf("failed to commit tree %s: %w", tree, err)
	}
	return sha, nil
}

// UpdateRef points ref at commit
func (c *Client) UpdateRef(ctx context.Context, ref, commit string) error {
	if _, err := c.Execute(ctx, "update-ref", []string{ref, commit}); err != nil {
		return fmt.Errorf("failed to update %s: %w", ref, err)
	}
	return nil
}

// CheckoutIndexOptions contains options for git checkout-index
type CheckoutIndexOptions struct {
	// Prefix is prepended to every written path; end it with "/" to
	// write into a directory
	Prefix      string
	Force       bool
	All         bool
	PathLimiter string
}

// CheckoutIndex writes index entries to the file system
func (c *Client) CheckoutIndex(ctx context.Context, opts CheckoutIndexOptions) error {
	args := []string{}
	if opts.Prefix != "" {
		args = append(args, "--prefix="+opts.Prefix)
	}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.PathLimiter != "" {
		args = append(args, "--", opts.PathLimiter)
	}
	if _, err := c.Execute(ctx, "checkout-index", args); err != nil {
		return fmt.Errorf("failed to checkout index: %w", err)
	}
	return nil
}

// Archive formats
const (
	ArchiveZip = "zip"
	ArchiveTar = "tar"
	ArchiveTgz = "tgz"
)

// ArchiveOptions contains options for git archive
type ArchiveOptions struct {
	// Format is zip, tar or tgz; zip when empty
	Format string
	Prefix string
	Remote string
	Path   string
}

// Archive writes the tree of sha to file and returns the file name. A
// temporary file is created when file is empty.
func (c *Client) Archive(ctx context.Context, sha, file string, opts ArchiveOptions) (string, error) {
	temporary := file == ""
	if temporary {
		f, err := os.CreateTemp("", "gitexec-archive-*")
		if err != nil {
			return "", fmt.Errorf("failed to create archive file: %w", err)
		}
		file = f.Name()
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close archive file: %w", err)
		}
	}

	format := opts.Format
	if format == "" {
		format = ArchiveZip
	}
	gzipped := format == ArchiveTgz
	if gzipped {
		format = ArchiveTar
	}

	args := []string{"--format=" + format}
	if opts.Prefix != "" {
		args = append(args, "--prefix="+opts.Prefix)
	}
	if opts.Remote != "" {
		args = append(args, "--remote="+opts.Remote)
	}
	args = append(args, sha)
	if opts.Path != "" {
		args = append(args, "--", opts.Path)
	}

	var err error
	if gzipped {
		err = c.Stream(ctx, "archive", args, func(r io.Reader) error {
			return gzipTo(file, r)
		})
	} else {
		_, err = c.Execute(ctx, "archive", args, WithRedirect("> "+Escape(file)))
		err = withRedirectedOutput(err, file)
	}
	if err != nil {
		if temporary {
			_ = os.Remove(file)
		}
		return "", fmt.Errorf("failed to archive %s: %w", sha, err)
	}
	return file, nil
}

// withRedirectedOutput fills in the output of a failed redirected call.
// stderr follows stdout into file, so git's message ends up there.
func withRedirectedOutput(err error, file string) error {
	var execErr *gitexecerrors.ExecutionError
	if !errors.As(err, &execErr) || execErr.Output != "" {
		return err
	}
	data, readErr := os.ReadFile(file) // #nosec G304 -- file was written by the failed call
	if readErr == nil {
		execErr.Output = strings.TrimSuffix(string(data), "\n")
	}
	return err
}

func gzipTo(file string, r io.Reader) error {
	f, err := os.Create(file) // #nosec G304 -- caller-chosen output file
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if _, err := io.Copy(zw, r); err != nil {
		return fmt.Errorf("failed to compress archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress archive: %w", err)
	}
	return f.Close()
}
