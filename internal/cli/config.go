package cli

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/cli/helpers"
	"gitexec.dev/gitexec/internal/git"
	"gitexec.dev/gitexec/internal/runtime"
)

func newConfigCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write git configuration",
	}
	cmd.PersistentFlags().BoolVar(&global, "global", false, "Use the user-level configuration")

	// global configuration needs no repository
	runConfig := func(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
		if global {
			return helpers.RunAnywhere(cmd, fn)
		}
		return helpers.Run(cmd, fn)
	}

	var (
		file    string
		section string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List configuration entries as key=value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run := runConfig
			if file != "" {
				run = helpers.RunAnywhere
			}
			return run(cmd, func(ctx *runtime.Context) error {
				var (
					entries git.ConfigMap
					err     error
				)
				switch {
				case file != "":
					entries, err = ctx.Client.ParseConfigFile(ctx, file)
				case global:
					entries, err = ctx.Client.GlobalConfigList(ctx)
				default:
					entries, err = ctx.Client.ConfigList(ctx)
				}
				if err != nil {
					return err
				}
				if section != "" {
					entries = entries.Section(section)
				}
				for _, key := range sortedKeys(entries) {
					ctx.Splog.Info("%s=%s", key, entries[key])
				}
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&file, "file", "", "Read this config file instead")
	listCmd.Flags().StringVar(&section, "section", "", "Only keys starting with this prefix, with the prefix removed")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, func(ctx *runtime.Context) error {
				get := ctx.Client.ConfigGet
				if global {
					get = ctx.Client.GlobalConfigGet
				}
				value, err := get(ctx, args[0])
				if err != nil {
					return err
				}
				ctx.Splog.Info(value)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, func(ctx *runtime.Context) error {
				set := ctx.Client.ConfigSet
				if global {
					set = ctx.Client.GlobalConfigSet
				}
				return set(ctx, args[0], args[1])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remote <name>",
		Short: "Show the configuration of a remote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				entries, err := ctx.Client.ConfigRemote(ctx, args[0])
				if err != nil {
					return err
				}
				for _, key := range sortedKeys(entries) {
					ctx.Splog.Info("%s=%s", key, entries[key])
				}
				return nil
			})
		},
	})

	return cmd
}
