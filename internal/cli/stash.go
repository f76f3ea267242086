package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newStashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stash",
		Short: "List, save, apply and clear stashes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stashes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				stashes, err := ctx.Client.Stashes(ctx)
				if err != nil {
					return err
				}
				for _, s := range stashes {
					ctx.Splog.Info("%s %s", output.ColorDim(fmt.Sprintf("stash@{%d}", s.Index)), s.Message)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save <message>",
		Short: "Stash local changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				saved, err := ctx.Client.StashSave(ctx, args[0])
				if err != nil {
					return err
				}
				if !saved {
					ctx.Splog.Info("No local changes to save")
					return nil
				}
				ctx.Splog.Info("Saved %q", args[0])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply [stash]",
		Short: "Apply a stash, the latest by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return ctx.Client.StashApply(ctx, id)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every stash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return ctx.Client.StashClear(ctx)
			})
		},
	})

	return cmd
}
