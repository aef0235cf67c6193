package doctor

import (
	"os/exec"
	"strings"

	"pushbot.dev/pushbot/internal/runtime"
)

// checkEnvironment performs environment-related checks
func checkEnvironment(ctx *runtime.Context, warnings []string, errors []string) ([]string, []string) {
	splog := ctx.Splog

	// Check git version
	gitVersion, err := exec.Command("git", "version").Output()
	if err != nil {
		errors = append(errors, "git is not installed or not in PATH")
		splog.Error("  git is not installed or not in PATH")
	} else {
		version := strings.TrimSpace(string(gitVersion))
		splog.Info("  ✅ %s", version)
	}

	// Check gh CLI
	ghVersion, err := exec.Command("gh", "version").Output()
	if err != nil {
		warnings = append(warnings, "GitHub CLI (gh) is not installed or not in PATH")
		splog.Warn("  GitHub CLI (gh) is not installed or not in PATH")
	} else {
		version := strings.TrimSpace(string(ghVersion))
		// First line reads "gh version X.Y.Z (date)"
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			splog.Info("  ✅ gh %s", parts[2])
		} else {
			splog.Info("  ✅ %s", version)
		}
	}

	// Check GitHub authentication
	warnings, errors = checkGitHubAuth(ctx, warnings, errors)

	return warnings, errors
}
