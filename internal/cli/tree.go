package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/runtime"
)

func newLsTreeCmd() *cobra.Command {
	var (
		recursive bool
		depth     bool
	)

	cmd := &cobra.Command{
		Use:   "ls-tree [tree-ish]",
		Short: "List the entries of a tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			treeish := "HEAD"
			if len(args) == 1 {
				treeish = args[0]
			}

			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				switch {
				case depth:
					n, err := ctx.Client.TreeDepth(ctx, treeish)
					if err != nil {
						return err
					}
					ctx.Splog.Info("%d", n)
				case recursive:
					lines, err := ctx.Client.FullTree(ctx, treeish)
					if err != nil {
						return err
					}
					for _, line := range lines {
						ctx.Splog.Info(line)
					}
				default:
					listing, err := ctx.Client.LsTree(ctx, treeish)
					if err != nil {
						return err
					}
					for _, line := range formatListing(listing) {
						ctx.Splog.Info(line)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "List every entry below the tree")
	cmd.Flags().BoolVar(&depth, "depth", false, "Print the number of entries below the tree")

	return cmd
}

func newLsFilesCmd() *cobra.Command {
	var (
		untracked bool
		ignored   bool
	)

	cmd := &cobra.Command{
		Use:   "ls-files [path]",
		Short: "List index entries with their mode, object and stage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if untracked || ignored {
					list := ctx.Client.UntrackedFiles
					if ignored {
						list = ctx.Client.IgnoredFiles
					}
					paths, err := list(ctx)
					if err != nil {
						return err
					}
					for _, p := range paths {
						ctx.Splog.Info(p)
					}
					return nil
				}

				location := ""
				if len(args) == 1 {
					location = args[0]
				}
				entries, err := ctx.Client.LsFiles(ctx, location)
				if err != nil {
					return err
				}
				for _, path := range sortedKeys(entries) {
					e := entries[path]
					ctx.Splog.Info("%s %s %s\t%s", e.Mode, e.SHA, e.Stage, e.Path)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&untracked, "untracked", false, "List untracked files instead")
	cmd.Flags().BoolVar(&ignored, "ignored", false, "List ignored files instead")

	return cmd
}

// formatListing renders a listing in ls-tree order: type buckets, then paths
func formatListing(listing git.TreeListing) []string {
	var lines []string
	buckets := []struct {
		kind    string
		entries map[string]git.TreeEntry
	}{
		{"tree", listing.Tree},
		{"blob", listing.Blob},
		{"commit", listing.Commit},
	}
	for _, b := range buckets {
		for _, path := range sortedKeys(b.entries) {
			e := b.entries[path]
			lines = append(lines, fmt.Sprintf("%s %s %s\t%s", e.Mode, b.kind, e.SHA, path))
		}
	}
	return lines
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
