package output

import (
	"os"
	"path/filepath"
)

// EnvLogFile overrides the log file location
const EnvLogFile = "GITEXEC_LOG_FILE"

// GetLogFilePath returns the path of the rotating log file. GITEXEC_LOG_FILE
// wins over configured, which wins over <configDir>/logs/gitexec.log.
func GetLogFilePath(configured, configDir string) string {
	if customPath := os.Getenv(EnvLogFile); customPath != "" {
		return customPath
	}
	if configured != "" {
		return configured
	}
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, "logs", "gitexec.log")
}
