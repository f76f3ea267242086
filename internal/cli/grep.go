package cli

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newGrepCmd() *cobra.Command {
	var opts git.GrepOptions

	cmd := &cobra.Command{
		Use:   "grep <pattern>",
		Short: "Search tracked content of a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				matches, err := ctx.Client.Grep(ctx, args[0], opts)
				if err != nil {
					return err
				}
				for _, file := range sortedKeys(matches) {
					for _, m := range matches[file] {
						ctx.Splog.Info(output.FormatGrepMatch(file, m.Line, m.Text))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Object, "object", "", "Tree-ish to search (default HEAD)")
	cmd.Flags().BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "Ignore case")
	cmd.Flags().BoolVar(&opts.InvertMatch, "invert-match", false, "Select non-matching lines")
	cmd.Flags().StringVar(&opts.PathLimiter, "path", "", "Limit the search to this path")

	return cmd
}
