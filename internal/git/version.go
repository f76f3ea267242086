package git

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"

	gitexecerrors "gitexec.dev/gitexec/internal/errors"
)

// MinimumVersion is the oldest git the command layer is known to work with
const MinimumVersion = "1.6.0"

var versionRegex = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts the version from "git version" output, ignoring
// vendor suffixes such as ".windows.1" or "(Apple Git-137)"
func ParseVersion(output string) (*semver.Version, error) {
	m := versionRegex.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no version in %q", output)
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.NewVersion(fmt.Sprintf("%s.%s.%s", m[1], m[2], patch))
}

// Version returns the installed git version
func (c *Client) Version(ctx context.Context) (*semver.Version, error) {
	out, err := c.Execute(ctx, "version", nil, WithoutWorkingDir())
	if err != nil {
		return nil, fmt.Errorf("failed to get git version: %w", err)
	}
	v, err := ParseVersion(out)
	if err != nil {
		return nil, fmt.Errorf("failed to parse git version: %w", err)
	}
	return v, nil
}

// MeetsRequiredVersion checks the installed git against required
// (MinimumVersion when empty). An older git yields an
// UnsupportedVersionError.
func (c *Client) MeetsRequiredVersion(ctx context.Context, required string) error {
	if required == "" {
		required = MinimumVersion
	}
	minVersion, err := semver.NewVersion(required)
	if err != nil {
		return fmt.Errorf("invalid required version %q: %w", required, err)
	}

	installed, err := c.Version(ctx)
	if err != nil {
		return err
	}
	if installed.LessThan(minVersion) {
		return gitexecerrors.NewUnsupportedVersionError(installed.String(), minVersion.String())
	}
	return nil
}
