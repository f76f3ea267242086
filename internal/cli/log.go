package cli

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newLogCmd() *cobra.Command {
	var (
		opts    git.LogOptions
		between []string
		full    bool
	)

	cmd := &cobra.Command{
		Use:   "log [revision]",
		Short: "List commits reachable from a revision",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Object = args[0]
			}
			if len(between) > 0 {
				if len(between) != 2 {
					return output.NewUserError("--between takes exactly two revisions")
				}
				opts.Between = [2]string{between[0], between[1]}
			}

			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if !full {
					shas, err := ctx.Client.Log(ctx, opts)
					if err != nil {
						return err
					}
					for _, sha := range shas {
						ctx.Splog.Info(sha)
					}
					return nil
				}

				commits, err := ctx.Client.FullLog(ctx, opts)
				if err != nil {
					return err
				}
				for _, c := range commits {
					author := ""
					if sig, ok := c.AuthorSignature(); ok {
						author = sig.Name
					}
					ctx.Splog.Info(output.FormatCommitLine(c.SHA, c.Subject(), author))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 0, "Limit the number of commits")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "Skip this many commits")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Only commits after this date")
	cmd.Flags().StringVar(&opts.Until, "until", "", "Only commits before this date")
	cmd.Flags().StringVar(&opts.Grep, "grep", "", "Only commits whose message matches")
	cmd.Flags().StringVar(&opts.Author, "author", "", "Only commits by this author")
	cmd.Flags().StringSliceVar(&between, "between", nil, "Only commits in FROM..TO (two revisions)")
	cmd.Flags().StringVar(&opts.PathLimiter, "path", "", "Only commits touching this path")
	cmd.Flags().BoolVar(&full, "full", false, "Show subjects and authors")

	return cmd
}
