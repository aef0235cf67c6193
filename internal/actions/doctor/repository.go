package doctor

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/internal/runtime"
	"pushbot.dev/pushbot/internal/utils"
)

// checkRepository performs repository-related checks
func checkRepository(ctx *runtime.Context, warnings []string, errors []string) ([]string, []string) {
	splog := ctx.Splog

	// Check if we're in a git repository
	if ctx.Repo == nil || ctx.RepoRoot == "" {
		errors = append(errors, "not in a git repository")
		splog.Error("  not in a git repository")
		return warnings, errors
	}
	splog.Info("  ✅ Current directory is a git repository")

	// Check committer identity; cherry-picks need it to create commits
	name, nameErr := git.GetUserName(ctx.Context)
	email, emailErr := git.GetUserEmail(ctx.Context)
	if nameErr != nil || name == "" || emailErr != nil || email == "" {
		errors = append(errors, "committer identity not configured (git config user.name / user.email)")
		splog.Error("  committer identity not configured")
	} else {
		splog.Info("  ✅ Committing as %s <%s>", name, email)
	}

	// Check working tree state
	if utils.HasUncommittedChanges(ctx.Context) {
		warnings = append(warnings, "working tree has uncommitted changes; branch surgery may fail midway")
		splog.Warn("  working tree has uncommitted changes")
	} else {
		splog.Info("  ✅ Working tree is clean")
	}

	// Check for an interrupted cherry-pick
	if git.IsCherryPickInProgress(ctx.Context) {
		errors = append(errors, "a cherry-pick is in progress; resolve or abort it")
		splog.Error("  a cherry-pick is in progress")
	} else {
		splog.Info("  ✅ No cherry-pick in progress")
	}

	// Check upstream remote and boundary ref
	remote := ctx.Settings.UpstreamRemote
	if remote == "" {
		resolved, err := git.ResolveUpstreamRemote(ctx.Repo, ctx.Settings.UpstreamURLs)
		if err != nil {
			errors = append(errors, "no upstream remote recognized (run 'pushbot init')")
			splog.Error("  no upstream remote recognized")
			return warnings, errors
		}
		remote = resolved
	}
	splog.Info("  ✅ Upstream remote is %s", remote)

	boundary := fmt.Sprintf("%s/%s", remote, ctx.Settings.UpstreamBranch)
	if _, err := ctx.Repo.CommitAt(plumbing.NewRemoteReferenceName(remote, ctx.Settings.UpstreamBranch)); err != nil {
		errors = append(errors, fmt.Sprintf("boundary ref %s not found (fetch %s first)", boundary, remote))
		splog.Error("  boundary ref %s not found", boundary)
	} else {
		splog.Info("  ✅ Boundary ref %s is present", boundary)
	}

	return warnings, errors
}
