package actions

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"pushbot.dev/pushbot/internal/config"
	pushboterrors "pushbot.dev/pushbot/internal/errors"
	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/internal/github"
	"pushbot.dev/pushbot/internal/output"
	"pushbot.dev/pushbot/internal/runtime"
	"pushbot.dev/pushbot/internal/topic"
	"pushbot.dev/pushbot/internal/utils"
)

// PushOptions contains options for the push command
type PushOptions struct {
	DryRun bool   // preview the plan without building or pushing anything
	Yes    bool   // skip the confirmation prompt
	Remote string // push destination, overriding config and tracking info
	Prefix string // topic branch prefix, overriding config
	Open   bool   // open a compare page for each pushed branch
}

// topicScan is the classified view of the commits above the upstream
// boundary. Empty Groups means there is nothing to do; the notice has
// already been printed.
type topicScan struct {
	UpstreamRemote string
	UpstreamBranch string
	UpstreamRev    string // "<remote>/<branch>"
	Groups         []*topic.TopicGroup
}

// scanTopics resolves the upstream boundary and classifies every commit
// above it into topic groups, in discovery order (newest first).
func scanTopics(ctx *runtime.Context) (*topicScan, error) {
	splog := ctx.Splog

	upstreamRemote := ctx.Settings.UpstreamRemote
	if upstreamRemote == "" {
		var err error
		upstreamRemote, err = git.ResolveUpstreamRemote(ctx.Repo, ctx.Settings.UpstreamURLs)
		if err != nil {
			return nil, err
		}
	}
	upstreamBranch := ctx.Settings.UpstreamBranch
	scan := &topicScan{
		UpstreamRemote: upstreamRemote,
		UpstreamBranch: upstreamBranch,
		UpstreamRev:    fmt.Sprintf("%s/%s", upstreamRemote, upstreamBranch),
	}

	upstreamCommit, err := ctx.Repo.CommitAt(plumbing.NewRemoteReferenceName(upstreamRemote, upstreamBranch))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s (fetch %s first?): %w", scan.UpstreamRev, upstreamRemote, err)
	}
	headCommit, err := ctx.Repo.CommitAt(plumbing.HEAD)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commits, err := git.ScanUnmergedCommits(ctx.Repo, headCommit.Hash, upstreamCommit.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to scan commits above %s: %w", scan.UpstreamRev, err)
	}
	if len(commits) == 0 {
		splog.Info("No commits above %s. Nothing to do.", scan.UpstreamRev)
		return scan, nil
	}

	records := make([]*topic.CommitRecord, 0, len(commits))
	for _, commit := range commits {
		record, err := topic.NewCommitRecord(commit)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	scan.Groups = topic.GroupByTopic(records)
	if len(scan.Groups) == 0 {
		splog.Info("No topic-tagged commits above %s. Nothing to do.", scan.UpstreamRev)
	}
	return scan, nil
}

// PushAction scans the commits above the upstream boundary, groups them by
// topic and rebuilds every topic branch whose content changed.
func PushAction(ctx *runtime.Context, opts PushOptions) error {
	splog := ctx.Splog
	context := ctx.Context
	startedAt := time.Now().UTC().Format(time.RFC3339)

	if git.IsCherryPickInProgress(context) {
		return fmt.Errorf("a cherry-pick is in progress; resolve or abort it before pushing")
	}

	worktree, err := git.AcquireWorkingTree()
	if err != nil {
		return err
	}

	prefix := ctx.Settings.BranchPrefix
	if opts.Prefix != "" {
		prefix, err = config.NewBranchPrefix(opts.Prefix)
		if err != nil {
			return err
		}
	}

	scan, err := scanTopics(ctx)
	if err != nil {
		return err
	}
	if len(scan.Groups) == 0 {
		return nil
	}
	upstreamBranch := scan.UpstreamBranch
	upstreamRev := scan.UpstreamRev

	independent, dependent := topic.FilterIndependent(scan.Groups)
	for _, group := range dependent {
		splog.Warn("Skipping %s: depends on %s", group.Tag, joinTags(group.AggregateDependencies()))
	}
	if len(independent) == 0 {
		splog.Info("Every topic is deferred by dependencies. Nothing to push.")
		return nil
	}

	pushRemote, err := resolvePushRemote(ctx, opts, worktree.OriginalBranch(), scan.UpstreamRemote)
	if err != nil {
		return err
	}

	view := git.NewBranchView(ctx.Repo, pushRemote)

	var blocks []output.PlanBlock
	var toBuild []*topic.TopicGroup
	var upToDate []string
	var planFailures []string
	branches := make(map[string]string, len(independent))
	for _, group := range independent {
		branch := prefix.BranchFor(group.Tag.Key())
		branches[group.Tag.Key()] = branch

		decision, err := topic.PlanBranchSync(view, group, branch)
		if err != nil {
			splog.Error("%v", err)
			planFailures = append(planFailures, group.Tag.String())
			continue
		}

		block := output.PlanBlock{
			Branch:   branch,
			Decision: decision.String(),
			UpToDate: decision == topic.UpToDate,
		}
		for _, record := range group.Commits() {
			block.Commits = append(block.Commits, output.PlanCommit{
				ShortHash: record.ShortHash(),
				Summary:   record.Summary(),
			})
		}
		blocks = append(blocks, block)

		if decision == topic.NeedsPush {
			toBuild = append(toBuild, group)
		} else {
			upToDate = append(upToDate, branch)
		}
	}

	if len(blocks) > 0 {
		splog.Page(output.RenderPlan(blocks))
	}

	if opts.DryRun {
		if len(planFailures) > 0 {
			return fmt.Errorf("planning failed for %s", strings.Join(planFailures, ", "))
		}
		return nil
	}

	if len(toBuild) == 0 {
		splog.Info("All topic branches are up to date.")
		if len(planFailures) > 0 {
			return fmt.Errorf("planning failed for %s", strings.Join(planFailures, ", "))
		}
		return nil
	}

	if !opts.Yes {
		if !utils.IsInteractive() {
			return fmt.Errorf("refusing to push without confirmation; re-run with --yes")
		}
		ok, err := promptConfirm(splog, fmt.Sprintf("Push %d branch%s to %s?", len(toBuild), PluralSuffix(len(toBuild) != 1), pushRemote), false)
		if err != nil || !ok {
			splog.Info("Aborted.")
			return pushboterrors.ErrAborted
		}
	}

	var pushed []string
	var failedTopic string
	var buildErr error
	for _, group := range toBuild {
		branch := branches[group.Tag.Key()]
		splog.Newline()
		splog.Info("Building %s...", output.ColorBranchName(branch))

		if err := buildTopicBranch(ctx, group, branch, upstreamRev, pushRemote); err != nil {
			splog.Error("%v", err)
			splog.Info("Stopping after failure in %s.", group.Tag)
			failedTopic = group.Tag.String()
			buildErr = err
			break
		}
		pushed = append(pushed, branch)
		splog.Info("Pushed %s to %s.", output.ColorBranchName(branch), pushRemote)
	}

	if err := worktree.Restore(context); err != nil {
		splog.Warn("%v", err)
	}

	record := &config.RunRecord{
		StartedAt:      startedAt,
		PushedBranches: pushed,
		UpToDate:       upToDate,
		FailedTopic:    failedTopic,
	}
	if err := config.PersistRunRecord(ctx.RepoRoot, record); err != nil {
		splog.Debug("Failed to record run: %v", err)
	}

	if buildErr != nil {
		return buildErr
	}

	if opts.Open {
		openComparePages(ctx, pushRemote, upstreamBranch, pushed)
	}

	splog.Newline()
	splog.Info("Pushed %d branch%s to %s.", len(pushed), PluralSuffix(len(pushed) != 1), pushRemote)
	if len(planFailures) > 0 {
		return fmt.Errorf("planning failed for %s", strings.Join(planFailures, ", "))
	}
	return nil
}

// buildTopicBranch rebuilds one topic branch from scratch on top of the
// upstream boundary and force-pushes it. The branch is recreated rather than
// updated so the replayed history always matches the topic exactly.
func buildTopicBranch(ctx *runtime.Context, group *topic.TopicGroup, branch, upstreamRev, pushRemote string) error {
	context := ctx.Context
	tag := group.Tag.String()

	if err := git.CheckoutDetached(context, upstreamRev); err != nil {
		return pushboterrors.NewMutationError(tag, "checkout boundary", err)
	}

	exists, err := git.LocalBranchExists(branch)
	if err != nil {
		return pushboterrors.NewMutationError(tag, "check stale branch", err)
	}
	if exists {
		if err := git.DeleteBranch(context, branch); err != nil {
			return pushboterrors.NewMutationError(tag, "delete stale branch", err)
		}
	}

	if err := git.CreateAndCheckoutBranch(context, branch); err != nil {
		return pushboterrors.NewMutationError(tag, "create branch", err)
	}

	for _, record := range group.Replay() {
		if err := git.CherryPick(context, record.Hash().String()); err != nil {
			return pushboterrors.NewMutationError(tag, fmt.Sprintf("cherry-pick %s", record.ShortHash()), err)
		}
		if err := git.AmendMessage(context, record.CleanedMessage()); err != nil {
			return pushboterrors.NewMutationError(tag, fmt.Sprintf("amend %s", record.ShortHash()), err)
		}
	}

	if err := git.PushBranch(context, branch, pushRemote, true, false); err != nil {
		return pushboterrors.NewMutationError(tag, "push", err)
	}

	return nil
}

// resolvePushRemote picks the remote the topic branches are pushed to. The
// explicit flag wins, then repo config, then the original branch's tracking
// remote, then a selection among the configured remotes.
func resolvePushRemote(ctx *runtime.Context, opts PushOptions, originalBranch, upstreamRemote string) (string, error) {
	splog := ctx.Splog

	if opts.Remote != "" {
		if _, err := git.RemoteURL(ctx.Repo, opts.Remote); err != nil {
			return "", err
		}
		return opts.Remote, nil
	}
	if ctx.Settings.PushRemote != "" {
		return ctx.Settings.PushRemote, nil
	}

	tracked, err := git.TrackedRemote(originalBranch)
	if err != nil {
		return "", err
	}
	if tracked != "" {
		if !utils.IsInteractive() {
			return tracked, nil
		}
		ok, err := promptConfirm(splog, fmt.Sprintf("Push to %s, the tracking remote of %s?", tracked, originalBranch), true)
		if err != nil {
			return "", pushboterrors.ErrAborted
		}
		if ok {
			return tracked, nil
		}
	}

	remotes, err := ctx.Repo.ListRemotes()
	if err != nil {
		return "", err
	}
	if len(remotes) == 0 {
		return "", fmt.Errorf("no remotes configured")
	}
	if len(remotes) == 1 {
		splog.Info("Using remote %s.", remotes[0].Name)
		return remotes[0].Name, nil
	}

	// Forks before the upstream; pushing to the upstream is rarely intended.
	var candidates []git.Remote
	var upstream []git.Remote
	for _, remote := range remotes {
		if remote.Name == upstreamRemote {
			upstream = append(upstream, remote)
		} else {
			candidates = append(candidates, remote)
		}
	}
	if len(candidates) == 1 {
		splog.Info("Using remote %s.", candidates[0].Name)
		return candidates[0].Name, nil
	}
	candidates = append(candidates, upstream...)

	if !utils.IsInteractive() {
		return "", fmt.Errorf("multiple remotes configured; pass --remote or set a push remote with 'pushbot init'")
	}
	return promptSelectRemote(splog, "Push to which remote?", candidates)
}

// openComparePages opens a compare page against the upstream branch for each
// pushed branch.
func openComparePages(ctx *runtime.Context, pushRemote, upstreamBranch string, pushed []string) {
	splog := ctx.Splog

	remoteURL, err := git.RemoteURL(ctx.Repo, pushRemote)
	if err != nil {
		splog.Warn("Cannot open compare pages: %v", err)
		return
	}
	info, err := github.ParseRemoteURL(remoteURL)
	if err != nil {
		splog.Warn("Cannot open compare pages: %v", err)
		return
	}

	for _, branch := range pushed {
		url := info.CompareURL(upstreamBranch, branch)
		if err := utils.OpenBrowser(url); err != nil {
			splog.Warn("Failed to open %s: %v", url, err)
		}
	}
}

func joinTags(tags []topic.Tag) string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.String()
	}
	return strings.Join(names, ", ")
}
