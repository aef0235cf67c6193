package actions

import (
	"fmt"
	"strings"

	"pushbot.dev/pushbot/internal/config"
	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/internal/output"
	"pushbot.dev/pushbot/internal/runtime"
	"pushbot.dev/pushbot/internal/topic"
)

// PlanOptions contains options for the plan command
type PlanOptions struct {
	Remote string // remote whose tracking refs inform the comparison
	Prefix string // topic branch prefix, overriding config
}

// PlanAction shows what a push would do without prompting or touching the
// repository. Topics deferred by dependencies are listed alongside the
// actionable ones.
func PlanAction(ctx *runtime.Context, opts PlanOptions) error {
	splog := ctx.Splog

	prefix := ctx.Settings.BranchPrefix
	if opts.Prefix != "" {
		var err error
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

	view := git.NewBranchView(ctx.Repo, planViewRemote(ctx, opts.Remote, scan.UpstreamRemote))

	var blocks []output.PlanBlock
	var planFailures []string
	for _, group := range scan.Groups {
		branch := prefix.BranchFor(group.Tag.Key())
		block := output.PlanBlock{Branch: branch}

		if group.HasDependencies() {
			for _, dep := range group.AggregateDependencies() {
				block.DependsOn = append(block.DependsOn, dep.String())
			}
		} else {
			decision, err := topic.PlanBranchSync(view, group, branch)
			if err != nil {
				splog.Error("%v", err)
				planFailures = append(planFailures, group.Tag.String())
				continue
			}
			block.Decision = decision.String()
			block.UpToDate = decision == topic.UpToDate
		}

		for _, record := range group.Commits() {
			block.Commits = append(block.Commits, output.PlanCommit{
				ShortHash: record.ShortHash(),
				Summary:   record.Summary(),
			})
		}
		blocks = append(blocks, block)
	}

	if len(blocks) > 0 {
		splog.Page(output.RenderPlan(blocks))
	}

	if len(planFailures) > 0 {
		return fmt.Errorf("planning failed for %s", strings.Join(planFailures, ", "))
	}
	return nil
}

// planViewRemote picks the remote whose tracking refs the comparison reads.
// Nothing is pushed during planning, so any resolvable remote will do; the
// upstream remote is the fallback of last resort.
func planViewRemote(ctx *runtime.Context, optRemote, upstreamRemote string) string {
	if optRemote != "" {
		return optRemote
	}
	if ctx.Settings.PushRemote != "" {
		return ctx.Settings.PushRemote
	}
	if branch, err := git.GetCurrentBranch(); err == nil {
		if tracked, err := git.TrackedRemote(branch); err == nil && tracked != "" {
			return tracked
		}
	}
	return upstreamRemote
}
