package cli

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/config"
	"gitexec.dev/gitexec/internal/output"
	"gitexec.dev/gitexec/internal/runtime"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the git installation and show where gitexec looks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.RunAnywhere(cmd, func(ctx *runtime.Context) error {
				version, err := ctx.Client.Version(ctx)
				if err != nil {
					return err
				}
				ctx.Splog.Info("git binary:   %s", ctx.Client.Binary())
				ctx.Splog.Info("git version:  %s", version.String())

				loc := ctx.Client.Location()
				if loc.GitDir != "" {
					ctx.Splog.Info("git dir:      %s", loc.GitDir)
				}
				if loc.WorkTree != "" {
					ctx.Splog.Info("work tree:    %s", loc.WorkTree)
				}
				if loc.IndexFile != "" {
					ctx.Splog.Info("index file:   %s", loc.IndexFile)
				}
				if loc.GitDir == "" && loc.WorkTree == "" {
					ctx.Splog.Warn("not inside a git repository")
				}

				ctx.Splog.Info("config file:  %s", output.ColorDim(config.Path()))
				if logFile := output.GetLogFilePath(ctx.Config.LogFile, config.Dir()); logFile != "" {
					ctx.Splog.Info("log file:     %s", output.ColorDim(logFile))
				}

				if err := ctx.Client.MeetsRequiredVersion(ctx, ctx.Config.MinGitVersion); err != nil {
					ctx.Splog.Error("%v", err)
					ctx.Splog.Tip("upgrade git or lower min_git_version in %s", config.Path())
					return err
				}
				ctx.Splog.Info("git %s satisfies the minimum %s", version.String(), ctx.Config.MinGitVersion)
				return nil
			})
		},
	}

	return cmd
}
