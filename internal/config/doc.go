// Package config manages gitexec settings.
//
// It handles:
//   - Locating the configuration directory (XDG aware)
//   - Reading and writing config.yaml
//   - Environment overrides for the git binary, timeout and version floor
package config
