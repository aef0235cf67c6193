// Package common provides shared helper functions for CLI commands.
package common

import (
	"github.com/spf13/cobra"

	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Splog.Close() }()
	return fn(ctx)
}

// CompleteRemotes is a helper for RegisterFlagCompletionFunc that returns
// the configured remote names.
func CompleteRemotes(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	if err := git.InitDefaultRepo(); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	repo, err := git.GetDefaultRepo()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	remotes, err := repo.ListRemotes()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, len(remotes))
	for i, remote := range remotes {
		names[i] = remote.Name
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
