package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newCleanCmd() *cobra.Command {
	var (
		opts git.CleanOptions
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove untracked files from the work tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				paths, err := ctx.Client.UntrackedFiles(ctx)
				if err != nil {
					return err
				}
				if opts.Ignored {
					ignored, err := ctx.Client.IgnoredFiles(ctx)
					if err != nil {
						return err
					}
					paths = append(paths, ignored...)
				}
				if len(paths) == 0 {
					ctx.Splog.Info("Nothing to clean")
					return nil
				}

				for _, p := range paths {
					ctx.Splog.Info("  %s", output.ColorDim(p))
				}

				if !yes {
					if !output.IsInteractive() {
						return output.NewUserError("refusing to clean without --yes in a non-interactive session")
					}
					confirmed := false
					prompt := &survey.Confirm{
						Message: fmt.Sprintf("Remove %d paths?", len(paths)),
						Default: false,
					}
					if err := survey.AskOne(prompt, &confirmed); err != nil {
						return fmt.Errorf("prompt failed: %w", err)
					}
					if !confirmed {
						ctx.Splog.Info("Aborted")
						return nil
					}
				}

				opts.Force = true
				if err := ctx.Client.Clean(ctx, opts); err != nil {
					return err
				}
				ctx.Splog.Info("Removed %d paths", len(paths))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Directories, "directories", "d", false, "Also remove untracked directories")
	cmd.Flags().BoolVarP(&opts.Ignored, "ignored", "x", false, "Remove ignored files too")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
