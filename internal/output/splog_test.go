package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitexec.dev/gitexec/internal/output"
)

func TestSplog(t *testing.T) {
	t.Run("writes messages with prefixes", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := output.NewSplogWithOptions(output.Options{Out: &out, Err: &bytes.Buffer{}})
		require.NoError(t, err)

		splog.Info("hello %s", "world")
		splog.Warn("careful")
		splog.Error("failed: %d", 2)
		splog.Tip("try again")
		splog.Debug("hidden")

		require.Equal(t, "hello world\n⚠️  careful\n❌ failed: 2\n💡 try again\n", out.String())
	})

	t.Run("leaves format verbs alone without args", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := output.NewSplogWithOptions(output.Options{Out: &out})
		require.NoError(t, err)

		splog.Info("100% done")
		require.Equal(t, "100% done\n", out.String())
	})

	t.Run("verbose shows debug and command traces", func(t *testing.T) {
		var out, errOut bytes.Buffer
		splog, err := output.NewSplogWithOptions(output.Options{Out: &out, Err: &errOut, Verbose: true})
		require.NoError(t, err)

		splog.Debug("details")
		splog.CommandLogger().Info("git", "command", "git status 2>&1")

		require.Equal(t, "details\n", out.String())
		require.Contains(t, errOut.String(), `command="git status 2>&1"`)
		require.NotContains(t, out.String(), "git status")
	})

	t.Run("command traces are silent by default", func(t *testing.T) {
		var out, errOut bytes.Buffer
		splog, err := output.NewSplogWithOptions(output.Options{Out: &out, Err: &errOut})
		require.NoError(t, err)

		splog.CommandLogger().Info("git", "command", "git status 2>&1")
		require.Empty(t, out.String())
		require.Empty(t, errOut.String())
	})

	t.Run("quiet suppresses messages", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := output.NewSplogWithOptions(output.Options{Out: &out})
		require.NoError(t, err)

		splog.SetQuiet(true)
		require.True(t, splog.IsQuiet())
		splog.Info("nothing")
		splog.Page("raw")
		require.Empty(t, out.String())
	})

	t.Run("page terminates output with a newline", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := output.NewSplogWithOptions(output.Options{Out: &out})
		require.NoError(t, err)

		splog.Page("a\nb")
		splog.Page("c\n")
		require.Equal(t, "a\nb\nc\n", out.String())
	})

	t.Run("log file records everything", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "gitexec.log")
		var out bytes.Buffer
		splog, err := output.NewSplogWithOptions(output.Options{Out: &out, LogFile: logFile})
		require.NoError(t, err)

		splog.Info("visible")
		splog.Debug("only in file")
		splog.CommandLogger().Info("git", "command", "git log 2>&1")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(data), "msg=visible")
		require.Contains(t, string(data), `msg="only in file"`)
		require.Contains(t, string(data), `command="git log 2>&1"`)
		require.Equal(t, "visible\n", out.String())
	})
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("environment wins", func(t *testing.T) {
		t.Setenv(output.EnvLogFile, "/tmp/custom.log")
		require.Equal(t, "/tmp/custom.log", output.GetLogFilePath("/etc/configured.log", "/cfg"))
	})

	t.Run("configured path next", func(t *testing.T) {
		t.Setenv(output.EnvLogFile, "")
		require.Equal(t, "/etc/configured.log", output.GetLogFilePath("/etc/configured.log", "/cfg"))
	})

	t.Run("falls back to the config directory", func(t *testing.T) {
		t.Setenv(output.EnvLogFile, "")
		require.Equal(t, filepath.Join("/cfg", "logs", "gitexec.log"), output.GetLogFilePath("", "/cfg"))
		require.Empty(t, output.GetLogFilePath("", ""))
	})
}
