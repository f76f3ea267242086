package git

import (
	"context"
	"fmt"
)

// ConfigGet returns the repository value of key, empty when unset
func (c *Client) ConfigGet(ctx context.Context, key string) (string, error) {
	out, err := c.Execute(ctx, "config", []string{"--get", key})
	if err != nil {
		return "", fmt.Errorf("failed to read config %s: %w", key, err)
	}
	return out, nil
}

// ConfigList returns every setting visible to the repository
func (c *Client) ConfigList(ctx context.Context) (ConfigMap, error) {
	lines, err := c.ExecuteLines(ctx, "config", []string{"--list"})
	if err != nil {
		return nil, fmt.Errorf("failed to list config: %w", err)
	}
	return ParseConfigList(lines), nil
}

// ConfigSet writes key to the repository configuration
func (c *Client) ConfigSet(ctx context.Context, key, value string) error {
	if _, err := c.Execute(ctx, "config", []string{key, value}); err != nil {
		return fmt.Errorf("failed to set config %s: %w", key, err)
	}
	return nil
}

// GlobalConfigGet returns the user-level value of key, empty when unset
func (c *Client) GlobalConfigGet(ctx context.Context, key string) (string, error) {
	out, err := c.Execute(ctx, "config", []string{"--global", "--get", key}, WithoutWorkingDir())
	if err != nil {
		return "", fmt.Errorf("failed to read global config %s: %w", key, err)
	}
	return out, nil
}

// GlobalConfigList returns the user-level settings
func (c *Client) GlobalConfigList(ctx context.Context) (ConfigMap, error) {
	lines, err := c.ExecuteLines(ctx, "config", []string{"--global", "--list"}, WithoutWorkingDir())
	if err != nil {
		return nil, fmt.Errorf("failed to list global config: %w", err)
	}
	return ParseConfigList(lines), nil
}

// GlobalConfigSet writes key to the user-level configuration
func (c *Client) GlobalConfigSet(ctx context.Context, key, value string) error {
	if _, err := c.Execute(ctx, "config", []string{"--global", key, value}, WithoutWorkingDir()); err != nil {
		return fmt.Errorf("failed to set global config %s: %w", key, err)
	}
	return nil
}

// ParseConfigFile lists the settings stored in a single config file
func (c *Client) ParseConfigFile(ctx context.Context, file string) (ConfigMap, error) {
	lines, err := c.ExecuteLines(ctx, "config", []string{"--list", "--file", file}, WithoutWorkingDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
	}
	return ParseConfigList(lines), nil
}
