package cli

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show working tree status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				branch, err := ctx.Client.CurrentBranch(ctx)
				if err != nil {
					return err
				}
				if branch == "" {
					ctx.Splog.Info("HEAD detached")
				} else {
					ctx.Splog.Info("On branch %s", output.ColorCurrentBranch(branch))
				}

				changed, err := ctx.Client.DiffIndex(ctx, "HEAD")
				if err != nil {
					return err
				}
				printRawDiff(ctx, "Changes against HEAD:", changed)

				unstaged, err := ctx.Client.DiffFiles(ctx)
				if err != nil {
					return err
				}
				printRawDiff(ctx, "Changes not staged for commit:", unstaged)

				untracked, err := ctx.Client.UntrackedFiles(ctx)
				if err != nil {
					return err
				}
				if len(untracked) > 0 {
					ctx.Splog.Info("Untracked files:")
					for _, path := range untracked {
						ctx.Splog.Info("  ?  %s", path)
					}
				}
				return nil
			})
		},
	}

	return cmd
}

func printRawDiff(ctx *runtime.Context, title string, entries map[string]git.RawDiffEntry) {
	if len(entries) == 0 {
		return
	}
	ctx.Splog.Info(title)
	for _, path := range sortedKeys(entries) {
		ctx.Splog.Info("  %s  %s", entries[path].Type, path)
	}
}
