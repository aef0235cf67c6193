package doctor

import (
	"fmt"

	"pushbot.dev/pushbot/internal/config"
	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/internal/runtime"
)

// checkConfiguration performs configuration and run bookkeeping checks
func checkConfiguration(ctx *runtime.Context, warnings []string, errors []string) ([]string, []string) {
	splog := ctx.Splog

	if ctx.Repo == nil || ctx.RepoRoot == "" {
		splog.Info("  (skipped; not in a git repository)")
		return warnings, errors
	}

	// Config presence; pushbot works unconfigured but resolves more per run
	if config.IsInitialized(ctx.RepoRoot) {
		splog.Info("  ✅ pushbot is initialized")
	} else {
		warnings = append(warnings, "pushbot is not initialized (run 'pushbot init'); defaults apply")
		splog.Warn("  pushbot is not initialized; defaults apply")
	}

	// Count the local branches owned by the configured prefix
	prefix := ctx.Settings.BranchPrefix
	allBranches, err := git.GetAllBranchNames()
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to get branch names: %v", err))
		splog.Error("  failed to get branch names: %v", err)
		return warnings, errors
	}
	owned := 0
	for _, branch := range allBranches {
		if prefix.Owns(branch) {
			owned++
		}
	}
	splog.Info("  ✅ %d local topic branch(es) under %s/", owned, prefix)

	// Last run record
	record, err := config.GetRunRecord(ctx.RepoRoot)
	if err != nil {
		splog.Info("  No previous run recorded")
		return warnings, errors
	}
	if record.FailedTopic != "" {
		warnings = append(warnings, fmt.Sprintf("last run failed in topic '%s'; its branch may be half built", record.FailedTopic))
		splog.Warn("  last run failed in topic '%s'", record.FailedTopic)
	} else {
		splog.Info("  ✅ Last run at %s pushed %d branch(es)", record.StartedAt, len(record.PushedBranches))
	}

	return warnings, errors
}
