package runtime

import (
	"context"
	"fmt"
	"path/filepath"

	"pushbot.dev/pushbot/internal/config"
	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/internal/output"
	"pushbot.dev/pushbot/internal/utils"
)

// Settings is the merged view of repo-level and user-level configuration.
// Repo config wins over user config, which wins over built-in defaults.
type Settings struct {
	UpstreamRemote string // empty = resolve from the URL allowlist
	UpstreamBranch string
	PushRemote     string // empty = resolve from tracking info or interactively
	BranchPrefix   config.BranchPrefix
	UpstreamURLs   []string
}

// Context provides access to the repository, settings and output for commands
type Context struct {
	Context  context.Context
	Repo     *git.Repository
	Splog    *output.Splog
	RepoRoot string
	Settings Settings
}

// LoadSettings merges repo-level configuration over user-level defaults
func LoadSettings(repoRoot string) (Settings, error) {
	userCfg, err := config.LoadUserConfig()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load user config: %w", err)
	}

	repoCfg, err := config.GetRepoConfig(repoRoot)
	if err != nil {
		return Settings{}, err
	}

	settings := Settings{
		UpstreamBranch: userCfg.Upstream.Branch,
		BranchPrefix:   config.DefaultBranchPrefix,
	}
	if prefix, err := config.NewBranchPrefix(userCfg.Branches.Prefix); err == nil {
		settings.BranchPrefix = prefix
	}

	if repoCfg.UpstreamBranch != nil && *repoCfg.UpstreamBranch != "" {
		settings.UpstreamBranch = *repoCfg.UpstreamBranch
	}
	if settings.UpstreamBranch == "" {
		settings.UpstreamBranch = "main"
	}
	if repoCfg.UpstreamRemote != nil {
		settings.UpstreamRemote = *repoCfg.UpstreamRemote
	}
	if repoCfg.PushRemote != nil {
		settings.PushRemote = *repoCfg.PushRemote
	}
	if repoCfg.BranchPrefix != nil {
		if prefix, err := config.NewBranchPrefix(*repoCfg.BranchPrefix); err == nil {
			settings.BranchPrefix = prefix
		}
	}

	// Repo-level allowlist entries first, then user-level additions
	settings.UpstreamURLs = append(settings.UpstreamURLs, repoCfg.UpstreamURLs...)
	settings.UpstreamURLs = utils.AppendUnique(settings.UpstreamURLs, userCfg.Upstream.URLs...)

	return settings, nil
}

// GetContext opens the enclosing repository and assembles the merged settings
func GetContext(ctx context.Context) (*Context, error) {
	if err := git.InitDefaultRepo(); err != nil {
		return nil, err
	}

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get repo root: %w", err)
	}

	repo, err := git.GetDefaultRepo()
	if err != nil {
		return nil, err
	}

	settings, err := LoadSettings(repoRoot)
	if err != nil {
		return nil, err
	}

	splog, err := output.NewSplogWithConfig(filepath.Join(repoRoot, ".git", "pushbot.log"))
	if err != nil {
		splog = output.NewSplog()
	}

	return &Context{
		Context:  ctx,
		Repo:     repo,
		Splog:    splog,
		RepoRoot: repoRoot,
		Settings: settings,
	}, nil
}
