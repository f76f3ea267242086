package git

import (
	"context"
	"fmt"
	"strings"
)

const noLocalChanges = "No local changes to save"

// Stashes lists stash entries, most recent first
func (c *Client) Stashes(ctx context.Context) ([]Stash, error) {
	lines, err := c.StashList(ctx)
	if err != nil {
		return nil, err
	}
	return parseStashes(lines, c.logger), nil
}

// StashList returns the raw "git stash list" lines
func (c *Client) StashList(ctx context.Context) ([]string, error) {
	lines, err := c.ExecuteLines(ctx, "stash", []string{"list"})
	if err != nil {
		return nil, fmt.Errorf("failed to list stashes: %w", err)
	}
	return lines, nil
}

// StashSave stashes local changes with message. It reports false when there
// was nothing to stash.
func (c *Client) StashSave(ctx context.Context, message string) (bool, error) {
	args := []string{"push"}
	if message != "" {
		args = append(args, "-m", message)
	}
	out, err := c.Execute(ctx, "stash", args)
	if err != nil {
		return false, fmt.Errorf("failed to stash changes: %w", err)
	}
	return !strings.Contains(out, noLocalChanges), nil
}

// StashApply applies a stash entry, the latest when id is empty
func (c *Client) StashApply(ctx context.Context, id string) error {
	args := []string{"apply"}
	if id != "" {
		args = append(args, id)
	}
	if _, err := c.Execute(ctx, "stash", args); err != nil {
		return fmt.Errorf("failed to apply stash: %w", err)
	}
	return nil
}

// StashClear drops every stash entry
func (c *Client) StashClear(ctx context.Context) error {
	if _, err := c.Execute(ctx, "stash", []string{"clear"}); err != nil {
		return fmt.Errorf("failed to clear stashes: %w", err)
	}
	return nil
}
