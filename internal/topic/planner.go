package topic

import (
	"errors"

	"github.com/go-git/go-git/v5/plumbing/object"

	pushboterrors "pushbot.dev/pushbot/internal/errors"
)

// Decision is the outcome of planning one topic branch.
type Decision int

const (
	// NeedsPush means the branch is missing or its content no longer matches
	// the topic and must be rebuilt.
	NeedsPush Decision = iota

	// UpToDate means every member commit is already represented on the
	// branch; no rebuild happens.
	UpToDate
)

func (d Decision) String() string {
	switch d {
	case NeedsPush:
		return "needs push"
	case UpToDate:
		return "up to date"
	default:
		return "unknown"
	}
}

// BranchHistory is the read-only branch state the planner consults.
type BranchHistory interface {
	// BranchTip resolves the commit at the tip of the named branch, checking
	// local heads first and remote-tracking refs second. It returns an error
	// matching errors.ErrBranchNotFound when neither exists.
	BranchTip(branch string) (*object.Commit, error)
}

// PlanBranchSync decides whether the named branch must be rebuilt from the
// group's commits. A missing branch always needs a push. An existing branch
// is walked from its tip alongside the group's members from newest to
// oldest; the first non-equivalent pair, or the branch running out of
// history early, settles the decision. Read failures during the walk are
// planning errors scoped to this topic; other topics proceed.
func PlanBranchSync(history BranchHistory, group *TopicGroup, branch string) (Decision, error) {
	tip, err := history.BranchTip(branch)
	if errors.Is(err, pushboterrors.ErrBranchNotFound) {
		return NeedsPush, nil
	}
	if err != nil {
		return NeedsPush, pushboterrors.NewPlanningError(group.Tag.String(), err)
	}

	branchCommit := tip
	for _, pending := range group.Commits() {
		if branchCommit == nil {
			// Branch history is shorter than the topic.
			return NeedsPush, nil
		}

		record, err := NewCommitRecord(branchCommit)
		if err != nil {
			return NeedsPush, pushboterrors.NewPlanningError(group.Tag.String(), err)
		}
		equal, err := Equivalent(pending, record)
		if err != nil {
			return NeedsPush, pushboterrors.NewPlanningError(group.Tag.String(), err)
		}
		if !equal {
			return NeedsPush, nil
		}

		if branchCommit.NumParents() == 0 {
			branchCommit = nil
			continue
		}
		branchCommit, err = branchCommit.Parent(0)
		if err != nil {
			return NeedsPush, pushboterrors.NewPlanningError(group.Tag.String(), err)
		}
	}
	return UpToDate, nil
}
