package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newArchiveCmd() *cobra.Command {
	var opts git.ArchiveOptions

	cmd := &cobra.Command{
		Use:   "archive <tree-ish> [file]",
		Short: "Write a zip, tar or tgz archive of a tree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Format {
			case "", git.ArchiveZip, git.ArchiveTar, git.ArchiveTgz:
			default:
				return output.NewUserError(fmt.Sprintf("unknown archive format %q", opts.Format))
			}

			file := ""
			if len(args) == 2 {
				// git runs from the work tree, so relative names would land there
				abs, err := filepath.Abs(args[1])
				if err != nil {
					return fmt.Errorf("failed to resolve %s: %w", args[1], err)
				}
				file = abs
			}

			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				written, err := ctx.Client.Archive(ctx, args[0], file, opts)
				if err != nil {
					return err
				}
				ctx.Splog.Info(written)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", git.ArchiveZip, "Archive format: zip, tar or tgz")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Prepend this prefix to every path")
	cmd.Flags().StringVar(&opts.Remote, "remote", "", "Archive from a remote repository")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Only archive this path")

	return cmd
}
