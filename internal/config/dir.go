package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "gitexec"

// Dir returns the gitexec configuration directory.
//
// Resolution:
//   - $GITEXEC_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/gitexec if set
//   - %AppData%/gitexec on Windows
//   - ~/.config/gitexec on macOS and Linux
func Dir() string {
	if dir := os.Getenv("GITEXEC_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Path returns the location of the config file, empty when no
// configuration directory can be determined.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
