package cli

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newRawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raw <subcommand> [args...]",
		Short: "Run any git subcommand through the runner",
		Long: `Run any git subcommand against the located repository. A single argument
is split with shell quoting rules, so these are equivalent:

  gitexec raw log -1 --format=%s
  gitexec raw 'log -1 --format=%s'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words := args
			if len(args) == 1 {
				split, err := shellquote.Split(args[0])
				if err != nil {
					return output.NewUserError(fmt.Sprintf("invalid command line: %v", err))
				}
				words = split
			}
			if len(words) == 0 {
				return output.NewUserError("no subcommand given")
			}

			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				out, err := ctx.Client.Execute(ctx, words[0], words[1:])
				if err != nil {
					return err
				}
				ctx.Splog.Page(out)
				return nil
			})
		},
	}

	// everything after the subcommand belongs to git
	cmd.Flags().SetInterspersed(false)

	return cmd
}
