package cli

import (
	"github.com/spf13/cobra"

	"pushbot.dev/pushbot/internal/actions"
	"pushbot.dev/pushbot/internal/cli/common"
	"pushbot.dev/pushbot/internal/runtime"
)

// newPlanCmd creates the plan command
func newPlanCmd() *cobra.Command {
	var (
		remote string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a push would do without touching the repository",
		Long: `Scan the commits between the upstream boundary and HEAD, group them by topic
and report per topic branch whether a push would rebuild it. Topics deferred
by dependencies are listed too. Nothing is built, pushed or prompted.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return actions.PlanAction(ctx, actions.PlanOptions{
					Remote: remote,
					Prefix: prefix,
				})
			})
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "Remote whose tracking refs inform the comparison")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for the planned branch names")

	_ = cmd.RegisterFlagCompletionFunc("remote", common.CompleteRemotes)

	return cmd
}
