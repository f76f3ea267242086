package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newConflictsCmd() *cobra.Command {
	var sizes bool

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List paths with unresolved merge conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if !sizes {
					paths, err := ctx.Client.Unmerged(ctx)
					if err != nil {
						return err
					}
					for _, path := range paths {
						ctx.Splog.Info(path)
					}
					return nil
				}

				return ctx.Client.Conflicts(ctx, func(path, ours, theirs string) error {
					oursSize, err := fileSize(ours)
					if err != nil {
						return err
					}
					theirsSize, err := fileSize(theirs)
					if err != nil {
						return err
					}
					ctx.Splog.Info("%s %s", path, output.ColorDim(fmt.Sprintf("(ours %d bytes, theirs %d bytes)", oursSize, theirsSize)))
					return nil
				})
			})
		},
	}

	cmd.Flags().BoolVar(&sizes, "sizes", false, "Extract both sides of each conflict and report their sizes")

	return cmd
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}
