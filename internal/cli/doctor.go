package cli

import (
	"github.com/spf13/cobra"

	"pushbot.dev/pushbot/internal/actions/doctor"
	"pushbot.dev/pushbot/internal/output"
	"pushbot.dev/pushbot/internal/runtime"
)

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues with your pushbot setup",
		Long: `Run diagnostic checks on your pushbot environment and repository.

The doctor command checks:
  - Environment: Git version, GitHub CLI, and authentication
  - Repository: committer identity, working tree state, and the upstream boundary
  - Configuration: recorded settings, topic branches, and the last run`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Doctor diagnoses broken setups, so a missing repository must
			// not keep it from running.
			ctx, err := runtime.GetContext(cmd.Context())
			if err != nil {
				splog := output.NewSplog()
				splog.Warn("%v", err)
				ctx = &runtime.Context{
					Context: cmd.Context(),
					Splog:   splog,
				}
			}
			return doctor.Action(ctx)
		},
	}

	return cmd
}
