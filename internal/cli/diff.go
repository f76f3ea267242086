package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newDiffCmd() *cobra.Command {
	var (
		opts  git.DiffOptions
		stats bool
	)

	cmd := &cobra.Command{
		Use:   "diff [from] [to]",
		Short: "Show changes between commits, or between HEAD and the work tree",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var from, to string
			if len(args) > 0 {
				from = args[0]
			}
			if len(args) > 1 {
				to = args[1]
			}

			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if !stats {
					patch, err := ctx.Client.DiffFull(ctx, from, to, opts)
					if err != nil {
						return err
					}
					ctx.Splog.Page(patch)
					return nil
				}

				result, err := ctx.Client.DiffStats(ctx, from, to, opts)
				if err != nil {
					return err
				}
				for _, path := range sortedKeys(result.Files) {
					stat := result.Files[path]
					ctx.Splog.Info(output.FormatDiffStat(path, stat.Insertions, stat.Deletions, false))
				}
				ctx.Splog.Info(output.ColorDim(fmt.Sprintf("%d files changed, %d insertions(+), %d deletions(-)",
					result.Total.Files, result.Total.Insertions, result.Total.Deletions)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&stats, "stat", false, "Show per-file insertion and deletion counts")
	cmd.Flags().StringVar(&opts.PathLimiter, "path", "", "Limit the diff to this path")

	return cmd
}
