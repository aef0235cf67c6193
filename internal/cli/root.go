package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pushbot",
		Short: "Pushbot turns topic-tagged commits on a private branch into reviewable upstream branches",
		Long: `Pushbot scans the commits on your working branch that the upstream mainline
does not have yet, groups them by their topic#<tag> annotation, and rebuilds
one clean branch per topic on top of the upstream head. The annotations never
leave your machine; pushed commits carry cleaned messages.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	}

	// Add subcommands
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDoctorCmd())

	return rootCmd
}
