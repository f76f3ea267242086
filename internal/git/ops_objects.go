package git

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// LogOptions filters history queries
type LogOptions struct {
	Count       int
	Skip        int
	Since       string
	Until       string
	Grep        string
	Author      string
	Between     [2]string
	Object      string
	PathLimiter string
}

func (o LogOptions) commonArgs() []string {
	args := []string{}
	if o.Count > 0 {
		args = append(args, fmt.Sprintf("-%d", o.Count))
	}
	args = append(args, "--no-color")
	if o.Since != "" {
		args = append(args, "--since="+o.Since)
	}
	if o.Until != "" {
		args = append(args, "--until="+o.Until)
	}
	if o.Grep != "" {
		args = append(args, "--grep="+o.Grep)
	}
	if o.Author != "" {
		args = append(args, "--author="+o.Author)
	}
	if o.Between[0] != "" && o.Between[1] != "" {
		args = append(args, o.Between[0]+".."+o.Between[1])
	}
	return args
}

func (o LogOptions) pathArgs() []string {
	args := []string{}
	if o.Object != "" {
		args = append(args, o.Object)
	}
	if o.PathLimiter != "" {
		args = append(args, "--", o.PathLimiter)
	}
	return args
}

// Log returns the SHAs of the commits matching opts, newest first
func (c *Client) Log(ctx context.Context, opts LogOptions) ([]string, error) {
	args := opts.commonArgs()
	args = append(args, "--pretty=oneline")
	args = append(args, opts.pathArgs()...)

	lines, err := c.ExecuteLines(ctx, "log", args)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}

	shas := make([]string, 0, len(lines))
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 {
			shas = append(shas, fields[0])
		}
	}
	return shas, nil
}

// FullLog returns parsed commits matching opts, newest first
func (c *Client) FullLog(ctx context.Context, opts LogOptions) ([]*Commit, error) {
	args := opts.commonArgs()
	args = append(args, "--pretty=raw")
	if opts.Skip > 0 {
		args = append(args, fmt.Sprintf("--skip=%d", opts.Skip))
	}
	args = append(args, opts.pathArgs()...)

	lines, err := c.ExecuteLines(ctx, "log", args)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	return ParseCommits(lines), nil
}

// RevParse resolves a revision to its object id
func (c *Client) RevParse(ctx context.Context, revision string) (string, error) {
	sha, err := c.Execute(ctx, "rev-parse", []string{revision})
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", revision, err)
	}
	return sha, nil
}

// NameRev returns the symbolic name git gives a revision
func (c *Client) NameRev(ctx context.Context, revision string) (string, error) {
	out, err := c.Execute(ctx, "name-rev", []string{revision})
	if err != nil {
		return "", fmt.Errorf("failed to name %s: %w", revision, err)
	}
	fields := strings.Fields(out)
	if len(fields) < 2 {
		return "", nil
	}
	return fields[1], nil
}

// ObjectType returns "commit", "tree", "blob" or "tag"
func (c *Client) ObjectType(ctx context.Context, sha string) (string, error) {
	out, err := c.Execute(ctx, "cat-file", []string{"-t", sha})
	if err != nil {
		return "", fmt.Errorf("failed to get object type of %s: %w", sha, err)
	}
	return out, nil
}

// ObjectSize returns the size in bytes of an object
func (c *Client) ObjectSize(ctx context.Context, sha string) (int64, error) {
	out, err := c.Execute(ctx, "cat-file", []string{"-s", sha})
	if err != nil {
		return 0, fmt.Errorf("failed to get object size of %s: %w", sha, err)
	}
	size, err := ParseObjectSize(out)
	if err != nil {
		return 0, fmt.Errorf("unexpected object size %q: %w", out, err)
	}
	return size, nil
}

// ObjectContents returns the pretty-printed contents of an object
func (c *Client) ObjectContents(ctx context.Context, sha string) (string, error) {
	out, err := c.Execute(ctx, "cat-file", []string{"-p", sha})
	if err != nil {
		return "", fmt.Errorf("failed to read object %s: %w", sha, err)
	}
	return out, nil
}

// StreamObjectContents hands the object's contents to consume as they are
// produced, without buffering them
func (c *Client) StreamObjectContents(ctx context.Context, sha string, consume func(io.Reader) error) error {
	if err := c.Stream(ctx, "cat-file", []string{"-p", sha}, consume); err != nil {
		return fmt.Errorf("failed to stream object %s: %w", sha, err)
	}
	return nil
}

// CommitData returns the parsed commit for a revision
func (c *Client) CommitData(ctx context.Context, sha string) (*Commit, error) {
	lines, err := c.ExecuteLines(ctx, "log", []string{"-1", "--no-color", "--pretty=raw", sha})
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", sha, err)
	}
	commits := ParseCommits(lines)
	if len(commits) == 0 {
		return ParseCommit(sha, nil), nil
	}
	return commits[0], nil
}

// TagData returns the parsed annotated tag
func (c *Client) TagData(ctx context.Context, name string) (*Tag, error) {
	lines, err := c.ExecuteLines(ctx, "cat-file", []string{"tag", name})
	if err != nil {
		return nil, fmt.Errorf("failed to read tag %s: %w", name, err)
	}
	return ParseTag(name, lines), nil
}

// Show prints an object, or a path inside it when path is set
func (c *Client) Show(ctx context.Context, objectish, path string) (string, error) {
	args := []string{}
	switch {
	case path != "":
		args = append(args, objectish+":"+path)
	case objectish != "":
		args = append(args, objectish)
	}
	out, err := c.Execute(ctx, "show", args)
	if err != nil {
		return "", fmt.Errorf("failed to show %s: %w", objectish, err)
	}
	return out, nil
}

// LsTree lists the direct entries of a tree
func (c *Client) LsTree(ctx context.Context, sha string) (TreeListing, error) {
	lines, err := c.ExecuteLines(ctx, "ls-tree", []string{sha})
	if err != nil {
		return TreeListing{}, fmt.Errorf("failed to list tree %s: %w", sha, err)
	}
	return parseTree(lines, c.logger), nil
}

// FullTree lists every entry below a tree
func (c *Client) FullTree(ctx context.Context, sha string) ([]string, error) {
	lines, err := c.ExecuteLines(ctx, "ls-tree", []string{"-r", sha})
	if err != nil {
		return nil, fmt.Errorf("failed to list tree %s: %w", sha, err)
	}
	return lines, nil
}

// TreeDepth counts every entry below a tree
func (c *Client) TreeDepth(ctx context.Context, sha string) (int, error) {
	lines, err := c.FullTree(ctx, sha)
	if err != nil {
		return 0, err
	}
	return ParseTreeDepth(lines), nil
}

// GrepOptions controls Grep
type GrepOptions struct {
	// Object is the tree-ish searched, HEAD when empty
	Object      string
	IgnoreCase  bool
	InvertMatch bool
	PathLimiter string
}

// Grep searches tracked content. No matches is an empty result.
func (c *Client) Grep(ctx context.Context, pattern string, opts GrepOptions) (GrepMatches, error) {
	object := opts.Object
	if object == "" {
		object = "HEAD"
	}

	args := []string{"-n"}
	if opts.IgnoreCase {
		args = append(args, "-i")
	}
	if opts.InvertMatch {
		args = append(args, "-v")
	}
	args = append(args, "-e", pattern, object)
	if opts.PathLimiter != "" {
		args = append(args, "--", opts.PathLimiter)
	}

	lines, err := c.ExecuteLines(ctx, "grep", args)
	if err != nil {
		return nil, fmt.Errorf("failed to grep for %q: %w", pattern, err)
	}
	return parseGrep(lines, c.logger), nil
}
