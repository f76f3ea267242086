package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newShowCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <object> [path]",
		Short: "Describe an object, or print a file as of a revision",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if len(args) == 2 {
					content, err := ctx.Client.Show(ctx, args[0], args[1])
					if err != nil {
						return err
					}
					ctx.Splog.Page(content)
					return nil
				}

				object := args[0]
				if raw {
					return ctx.Client.StreamObjectContents(ctx, object, func(r io.Reader) error {
						_, err := io.Copy(cmd.OutOrStdout(), r)
						return err
					})
				}

				objectType, err := ctx.Client.ObjectType(ctx, object)
				if err != nil {
					return err
				}

				switch objectType {
				case "commit":
					return showCommit(ctx, object)
				case "tag":
					return showTag(ctx, object)
				case "tree":
					return showTree(ctx, object)
				default:
					size, err := ctx.Client.ObjectSize(ctx, object)
					if err != nil {
						return err
					}
					ctx.Splog.Info("%s %s (%d bytes)", objectType, output.ColorSHA(object), size)
					content, err := ctx.Client.ObjectContents(ctx, object)
					if err != nil {
						return err
					}
					ctx.Splog.Page(content)
					return nil
				}
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Stream the object contents as git prints them")

	return cmd
}

func showCommit(ctx *runtime.Context, object string) error {
	commit, err := ctx.Client.CommitData(ctx, object)
	if err != nil {
		return err
	}
	name, err := ctx.Client.NameRev(ctx, commit.SHA)
	if err != nil {
		return err
	}

	header := "commit " + output.ColorSHA(commit.SHA)
	if name != "" && name != "undefined" {
		header += " " + output.ColorDim("("+name+")")
	}
	ctx.Splog.Info(header)
	ctx.Splog.Info("tree      %s", commit.Tree)
	for _, parent := range commit.Parents {
		ctx.Splog.Info("parent    %s", parent)
	}
	if sig, ok := commit.AuthorSignature(); ok {
		ctx.Splog.Info("author    %s <%s> %s", sig.Name, sig.Email, sig.When.Format("2006-01-02 15:04:05 -0700"))
	}
	if sig, ok := commit.CommitterSignature(); ok {
		ctx.Splog.Info("committer %s <%s> %s", sig.Name, sig.Email, sig.When.Format("2006-01-02 15:04:05 -0700"))
	}
	ctx.Splog.Newline()
	ctx.Splog.Page(indent(commit.Message))
	return nil
}

func showTag(ctx *runtime.Context, name string) error {
	tag, err := ctx.Client.TagData(ctx, name)
	if err != nil {
		return err
	}
	ctx.Splog.Info("tag       %s", tag.Name)
	ctx.Splog.Info("object    %s %s", tag.Type, output.ColorSHA(tag.Object))
	ctx.Splog.Info("tagger    %s", tag.Tagger)
	ctx.Splog.Newline()
	ctx.Splog.Page(indent(tag.Message))
	return nil
}

func showTree(ctx *runtime.Context, object string) error {
	listing, err := ctx.Client.LsTree(ctx, object)
	if err != nil {
		return err
	}
	for _, line := range formatListing(listing) {
		ctx.Splog.Info(line)
	}
	return nil
}

func indent(message string) string {
	message = strings.TrimRight(message, "\n")
	if message == "" {
		return ""
	}
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "    " + line
		}
	}
	return fmt.Sprintln(strings.Join(lines, "\n"))
}
