package main

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitexec.dev/gitexec/internal/cli"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/testhelpers"
)

func TestBuildVersion(t *testing.T) {
	oldVersion, oldCommit, oldDate := version, commit, date
	t.Cleanup(func() { version, commit, date = oldVersion, oldCommit, oldDate })

	version = "1.2.3"
	require.Equal(t, "1.2.3", buildVersion())

	commit, date = "0123456789abcdef", "2024-01-01"
	require.Equal(t, "1.2.3 (0123456, 2024-01-01)", buildVersion())
}

func TestRootCommandHelp(t *testing.T) {
	cmd := cli.NewRootCmd("test")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	for _, expected := range []string{"gitexec", "Usage:", "--git-dir", "--work-tree", "--index-file", "History Commands:"} {
		require.Contains(t, buf.String(), expected)
	}
}

func TestBinaryExitCodes(t *testing.T) {
	binaryPath, err := testhelpers.GetSharedBinaryPath()
	require.NoError(t, err)

	t.Setenv("GITEXEC_CONFIG_HOME", t.TempDir())
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	t.Run("success", func(t *testing.T) {
		cmd := exec.Command(binaryPath, "raw", "rev-parse --abbrev-ref HEAD")
		cmd.Dir = scene.Dir
		out, err := cmd.Output()
		require.NoError(t, err)
		require.Equal(t, "main", strings.TrimSpace(string(out)))
	})

	t.Run("git failure", func(t *testing.T) {
		cmd := exec.Command(binaryPath, "show", "no-such-ref")
		cmd.Dir = scene.Dir
		err := cmd.Run()
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		require.Equal(t, output.ExitGitError, exitErr.ExitCode())
	})

	t.Run("not a repository", func(t *testing.T) {
		cmd := exec.Command(binaryPath, "log")
		cmd.Dir = t.TempDir()
		err := cmd.Run()
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		require.Equal(t, output.ExitEnvironment, exitErr.ExitCode())
	})

	t.Run("version flag", func(t *testing.T) {
		out, err := exec.Command(binaryPath, "--version").CombinedOutput()
		require.NoError(t, err, string(out))
		require.Contains(t, string(out), "dev")
	})
}
