package cli

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newBranchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "branches",
		Short:   "List local and remote-tracking branches",
		Aliases: []string{"br"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				branches, err := ctx.Client.Branches(ctx)
				if err != nil {
					return err
				}
				for _, b := range branches {
					ctx.Splog.Info(output.ColorBranchName(b.Name, b.Current))
				}
				return nil
			})
		},
	}

	return cmd
}

func newCheckoutCmd() *cobra.Command {
	var (
		opts   git.CheckoutOptions
		create bool
	)

	cmd := &cobra.Command{
		Use:               "checkout <branch>",
		Short:             "Switch branches, optionally creating the branch",
		Aliases:           []string{"co"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			if create {
				opts.NewBranch = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Client.Checkout(ctx, args[0], opts); err != nil {
					return err
				}
				ctx.Splog.Info("Switched to %s", output.ColorCurrentBranch(args[0]))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&create, "create", "b", false, "Create the branch first")
	cmd.Flags().StringVar(&opts.StartPoint, "start-point", "", "Start the new branch here")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Discard local changes")

	return cmd
}
