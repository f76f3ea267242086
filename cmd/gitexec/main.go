// Package main provides the entry point for the gitexec CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"

	"gitexec.dev/gitexec/internal/cli"
	"gitexec.dev/gitexec/internal/output"
)

// Build info set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := cli.NewRootCmd(buildVersion())
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}
