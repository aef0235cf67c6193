package actions

import (
	"fmt"

	"pushbot.dev/pushbot/internal/config"
	pushboterrors "pushbot.dev/pushbot/internal/errors"
	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/internal/output"
	"pushbot.dev/pushbot/internal/runtime"
	"pushbot.dev/pushbot/internal/utils"
)

// InitOptions contains options for the init command
type InitOptions struct {
	UpstreamRemote string
	UpstreamBranch string
	PushRemote     string
	Prefix         string
	NoInteractive  bool
}

// InitAction records the upstream boundary and push destination for the
// enclosing repository.
func InitAction(ctx *runtime.Context, opts InitOptions) error {
	splog := ctx.Splog
	repoRoot := ctx.RepoRoot

	remotes, err := ctx.Repo.ListRemotes()
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		return fmt.Errorf("no remotes configured; add one with 'git remote add' first")
	}

	interactive := !opts.NoInteractive && utils.IsInteractive()
	wasInitialized := config.IsInitialized(repoRoot)

	upstreamRemote, err := pickUpstreamRemote(ctx, opts, remotes, interactive)
	if err != nil {
		return err
	}

	upstreamBranch := opts.UpstreamBranch
	if upstreamBranch == "" {
		upstreamBranch = ctx.Settings.UpstreamBranch
		if interactive {
			answer, err := promptTextInput(splog, "Which branch marks the upstream boundary?", upstreamBranch)
			if err != nil {
				return pushboterrors.ErrAborted
			}
			if answer != "" {
				upstreamBranch = answer
			}
		}
	}

	prefix := ctx.Settings.BranchPrefix
	if opts.Prefix != "" {
		prefix, err = config.NewBranchPrefix(opts.Prefix)
		if err != nil {
			return err
		}
	} else if interactive {
		answer, err := promptTextInput(splog, "Branch prefix for pushed topics?", prefix.String())
		if err != nil {
			return pushboterrors.ErrAborted
		}
		prefix, err = config.NewBranchPrefix(answer)
		if err != nil {
			return err
		}
	}

	pushRemote, err := pickPushRemote(ctx, opts, remotes, upstreamRemote)
	if err != nil {
		return err
	}

	if err := config.SetUpstreamRemote(repoRoot, upstreamRemote); err != nil {
		return err
	}
	if err := config.SetUpstreamBranch(repoRoot, upstreamBranch); err != nil {
		return err
	}
	if err := config.SetBranchPrefix(repoRoot, prefix.String()); err != nil {
		return err
	}
	if pushRemote != "" {
		if err := config.SetPushRemote(repoRoot, pushRemote); err != nil {
			return err
		}
	}

	// Remember the upstream URL so later runs recognize the remote even
	// after a rename.
	if url, err := git.RemoteURL(ctx.Repo, upstreamRemote); err == nil {
		known, _ := config.GetUpstreamURLs(repoRoot)
		if !utils.ContainsString(known, url) {
			if err := config.AddUpstreamURL(repoRoot, url); err != nil {
				splog.Debug("Failed to record upstream URL: %v", err)
			}
		}
	}

	if wasInitialized {
		splog.Info("Reinitializing pushbot...")
	} else {
		splog.Info("Welcome to pushbot!")
	}
	splog.Newline()

	splog.Info("Upstream boundary set to %s", output.ColorBranchName(fmt.Sprintf("%s/%s", upstreamRemote, upstreamBranch)))
	splog.Info("Topic branches will be named %s", output.ColorBranchName(prefix.BranchFor("<tag>")))
	if pushRemote != "" {
		splog.Info("Pushes go to %s", output.ColorBranchName(pushRemote))
	} else {
		splog.Tip("No push remote recorded; each run resolves one from tracking info or asks.")
	}

	return nil
}

// pickUpstreamRemote selects which remote provides the upstream boundary ref.
func pickUpstreamRemote(ctx *runtime.Context, opts InitOptions, remotes []git.Remote, interactive bool) (string, error) {
	if opts.UpstreamRemote != "" {
		if !remoteExists(remotes, opts.UpstreamRemote) {
			return "", fmt.Errorf("remote '%s' not found", opts.UpstreamRemote)
		}
		return opts.UpstreamRemote, nil
	}

	if len(remotes) == 1 {
		return remotes[0].Name, nil
	}

	if interactive {
		return promptSelectRemote(ctx.Splog, "Which remote is the upstream repository?", remotes)
	}

	return git.ResolveUpstreamRemote(ctx.Repo, ctx.Settings.UpstreamURLs)
}

// pickPushRemote decides whether init records a fixed push destination. It
// stays unset unless the choice is unambiguous or given explicitly; the push
// command resolves the destination per run otherwise.
func pickPushRemote(ctx *runtime.Context, opts InitOptions, remotes []git.Remote, upstreamRemote string) (string, error) {
	if opts.PushRemote != "" {
		if !remoteExists(remotes, opts.PushRemote) {
			return "", fmt.Errorf("remote '%s' not found", opts.PushRemote)
		}
		return opts.PushRemote, nil
	}

	var candidates []git.Remote
	for _, remote := range remotes {
		if remote.Name != upstreamRemote {
			candidates = append(candidates, remote)
		}
	}
	if len(candidates) == 1 {
		ctx.Splog.Info("Using %s as the push remote.", candidates[0].Name)
		return candidates[0].Name, nil
	}
	return "", nil
}

func remoteExists(remotes []git.Remote, name string) bool {
	for _, remote := range remotes {
		if remote.Name == name {
			return true
		}
	}
	return false
}
