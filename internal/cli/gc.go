package cli

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/runtime"
)

func newGCCmd() *cobra.Command {
	var (
		opts   git.GCOptions
		repack bool
	)

	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Garbage collect and optionally repack the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if repack {
					if err := ctx.Client.Repack(ctx); err != nil {
						return err
					}
				}
				if err := ctx.Client.GC(ctx, opts); err != nil {
					return err
				}
				ctx.Splog.Info("Repository maintenance complete")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Prune, "prune", false, "Prune loose objects")
	cmd.Flags().BoolVar(&opts.Aggressive, "aggressive", false, "Optimize harder")
	cmd.Flags().BoolVar(&opts.Auto, "auto", false, "Only run when git thinks it is needed")
	cmd.Flags().BoolVar(&repack, "repack", false, "Repack all objects into one pack first")

	return cmd
}
