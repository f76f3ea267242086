package helpers

import (
	"github.com/spf13/cobra"

	"gitexec.dev/gitexec/internal/runtime"
)

// CompleteBranches is a helper for cobra.ValidArgsFunction and RegisterFlagCompletionFunc
// that returns all branch names in the repository.
func CompleteBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var names []string
	err := Run(cmd, func(ctx *runtime.Context) error {
		branches, err := ctx.Client.Branches(ctx)
		if err != nil {
			return err
		}
		for _, b := range branches {
			names = append(names, b.Name)
		}
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
