package cli

import (
	"github.com/spf13/cobra"

	"pushbot.dev/pushbot/internal/actions"
	"pushbot.dev/pushbot/internal/cli/common"
	"pushbot.dev/pushbot/internal/runtime"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var (
		upstreamRemote string
		upstreamBranch string
		pushRemote     string
		prefix         string
		noInteractive  bool
	)

	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Record the upstream boundary and push destination for this repository",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return actions.InitAction(ctx, actions.InitOptions{
					UpstreamRemote: upstreamRemote,
					UpstreamBranch: upstreamBranch,
					PushRemote:     pushRemote,
					Prefix:         prefix,
					NoInteractive:  noInteractive,
				})
			})
		},
	}

	cmd.Flags().StringVar(&upstreamRemote, "upstream-remote", "", "Remote that provides the upstream boundary")
	cmd.Flags().StringVar(&upstreamBranch, "upstream-branch", "", "Branch that marks the upstream boundary")
	cmd.Flags().StringVar(&pushRemote, "push-remote", "", "Remote the topic branches are pushed to")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for the pushed branch names")
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Disable interactive prompts")

	_ = cmd.RegisterFlagCompletionFunc("upstream-remote", common.CompleteRemotes)
	_ = cmd.RegisterFlagCompletionFunc("push-remote", common.CompleteRemotes)

	return cmd
}
