package doctor

import (
	"fmt"

	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/internal/github"
	"pushbot.dev/pushbot/internal/runtime"
)

// checkGitHubAuth verifies a usable GitHub token and reports who it
// authenticates as.
func checkGitHubAuth(ctx *runtime.Context, warnings []string, errors []string) ([]string, []string) {
	splog := ctx.Splog

	if _, err := github.Token(); err != nil {
		warnings = append(warnings, "GitHub authentication not configured (GITHUB_TOKEN env var or gh auth token)")
		splog.Warn("  GitHub authentication not configured")
		return warnings, errors
	}

	remoteURL := authProbeURL(ctx)
	if remoteURL == "" {
		warnings = append(warnings, "no remote URL available to verify GitHub authentication against")
		splog.Warn("  no remote URL available to verify GitHub authentication against")
		return warnings, errors
	}

	client, err := github.NewClient(ctx.Context, remoteURL)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("GitHub client setup failed: %v", err))
		splog.Warn("  GitHub client setup failed: %v", err)
		return warnings, errors
	}

	status, err := client.CheckAuth(ctx.Context)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("GitHub authentication failed: %v", err))
		splog.Warn("  GitHub authentication failed: %v", err)
		return warnings, errors
	}

	splog.Info("  ✅ Authenticated as %s (%d/%d API requests remaining)", status.Login, status.Remaining, status.Limit)
	return warnings, errors
}

// authProbeURL picks the remote URL the auth check talks to: the upstream
// remote when resolvable, any remote otherwise.
func authProbeURL(ctx *runtime.Context) string {
	if ctx.Repo == nil {
		return ""
	}

	remote := ctx.Settings.UpstreamRemote
	if remote == "" {
		if resolved, err := git.ResolveUpstreamRemote(ctx.Repo, ctx.Settings.UpstreamURLs); err == nil {
			remote = resolved
		}
	}
	if remote != "" {
		if url, err := git.RemoteURL(ctx.Repo, remote); err == nil {
			return url
		}
	}

	remotes, err := ctx.Repo.ListRemotes()
	if err == nil && len(remotes) > 0 && len(remotes[0].URLs) > 0 {
		return remotes[0].URLs[0]
	}
	return ""
}
