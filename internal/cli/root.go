// Package cli implements the gitexec command tree.
package cli

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/output"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version string) *cobra.Command {
	var colorMode string

	rootCmd := &cobra.Command{
		Use:   "gitexec",
		Short: "Query and drive git repositories through the git executable",
		Long: `gitexec runs the git executable against a repository and renders its
output as structured results: commits, diffs, trees, config, branches,
stashes and grep matches.

The repository is discovered from the working directory, or set explicitly
with --git-dir, --work-tree and --index-file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			output.SetColor(output.ResolveColorMode(colorMode, output.IsTTY(cmd.OutOrStdout())))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("directory", "C", "", "Run as if started in this directory")
	flags.String("git-dir", "", "Path to the repository control directory")
	flags.String("work-tree", "", "Path to the working tree")
	flags.String("index-file", "", "Path to an alternate index file")
	flags.BoolP("verbose", "v", false, "Trace git commands on stderr")
	flags.StringVar(&colorMode, "color", "auto", "Colorize output: auto, always or never")

	rootCmd.AddGroup(&cobra.Group{ID: "history", Title: "History Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "tree", Title: "Tree and Index Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "refs", Title: "Branch and Stash Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})

	addGroupedCommand(rootCmd, newLogCmd(), "history")
	addGroupedCommand(rootCmd, newShowCmd(), "history")
	addGroupedCommand(rootCmd, newDiffCmd(), "history")
	addGroupedCommand(rootCmd, newGrepCmd(), "history")

	addGroupedCommand(rootCmd, newStatusCmd(), "tree")
	addGroupedCommand(rootCmd, newLsTreeCmd(), "tree")
	addGroupedCommand(rootCmd, newLsFilesCmd(), "tree")
	addGroupedCommand(rootCmd, newConflictsCmd(), "tree")
	addGroupedCommand(rootCmd, newCleanCmd(), "tree")
	addGroupedCommand(rootCmd, newArchiveCmd(), "tree")

	addGroupedCommand(rootCmd, newBranchesCmd(), "refs")
	addGroupedCommand(rootCmd, newCheckoutCmd(), "refs")
	addGroupedCommand(rootCmd, newStashCmd(), "refs")

	addGroupedCommand(rootCmd, newConfigCmd(), "admin")
	addGroupedCommand(rootCmd, newSettingsCmd(), "admin")
	addGroupedCommand(rootCmd, newGCCmd(), "admin")
	addGroupedCommand(rootCmd, newDoctorCmd(), "admin")
	addGroupedCommand(rootCmd, newRawCmd(), "admin")

	return rootCmd
}

func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
