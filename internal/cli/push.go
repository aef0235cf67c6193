package cli

import (
	"github.com/spf13/cobra"

	"pushbot.dev/pushbot/internal/actions"
	"pushbot.dev/pushbot/internal/cli/common"
	"pushbot.dev/pushbot/internal/runtime"
)

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	var (
		dryRun bool
		yes    bool
		remote string
		prefix string
		open   bool
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Rebuild and force-push a branch per topic found above the upstream boundary",
		Long: `Scan the commits between the upstream boundary and HEAD, group them by their
topic#<tag> annotation and rebuild one branch per topic on top of the upstream
head. Branches whose content already matches are left alone. Topics that
declare dependencies on other topics are skipped.

Each replayed commit is pushed with a cleaned message; the topic annotations
stay local. The original branch is checked out again when the run finishes.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return actions.PushAction(ctx, actions.PushOptions{
					DryRun: dryRun,
					Yes:    yes,
					Remote: remote,
					Prefix: prefix,
					Open:   open,
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the plan without building or pushing anything")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Push without asking for confirmation")
	cmd.Flags().StringVar(&remote, "remote", "", "Remote to push the topic branches to")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for the pushed branch names")
	cmd.Flags().BoolVar(&open, "open", false, "Open a compare page for each pushed branch")

	_ = cmd.RegisterFlagCompletionFunc("remote", common.CompleteRemotes)

	return cmd
}
