// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/runtime"
)

// Run provides a runtime context bound to the current repository to fn.
// It fails when no repository can be located.
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	return run(cmd, true, fn)
}

// RunAnywhere is Run for commands that also work outside a repository
func RunAnywhere(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	return run(cmd, false, fn)
}

func run(cmd *cobra.Command, requireRepo bool, fn func(ctx *runtime.Context) error) error {
	opts := OptionsFromFlags(cmd)
	opts.RequireRepo = requireRepo

	ctx, err := runtime.GetContext(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Close() }()

	return fn(ctx)
}

// OptionsFromFlags reads the global flags of cmd
func OptionsFromFlags(cmd *cobra.Command) runtime.Options {
	flags := cmd.Flags()
	dir, _ := flags.GetString("directory")
	gitDir, _ := flags.GetString("git-dir")
	workTree, _ := flags.GetString("work-tree")
	indexFile, _ := flags.GetString("index-file")
	verbose, _ := flags.GetBool("verbose")

	return runtime.Options{
		Dir:       dir,
		GitDir:    gitDir,
		WorkTree:  workTree,
		IndexFile: indexFile,
		Verbose:   verbose,
		Out:       cmd.OutOrStdout(),
		Err:       cmd.ErrOrStderr(),
	}
}
