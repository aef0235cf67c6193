package topic

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	pushboterrors "pushbot.dev/pushbot/internal/errors"
)

// CommitRecord is an immutable view of one commit together with its parsed
// annotation and cleaned message. Records are built once when the history is
// scanned and never mutated afterwards.
type CommitRecord struct {
	commit     *object.Commit
	annotation Annotation
	cleaned    string
}

// NewCommitRecord wraps a commit, parsing its message. Classification errors
// are reported with the commit hash attached.
func NewCommitRecord(commit *object.Commit) (*CommitRecord, error) {
	annotation, err := ParseAnnotation(commit.Message)
	if err != nil {
		var classification *pushboterrors.ClassificationError
		if errors.As(err, &classification) {
			classification.CommitHash = commit.Hash.String()
		}
		return nil, err
	}

	return &CommitRecord{
		commit:     commit,
		annotation: annotation,
		cleaned:    CleanMessage(commit.Message),
	}, nil
}

// Hash returns the commit identity.
func (r *CommitRecord) Hash() plumbing.Hash {
	return r.commit.Hash
}

// ShortHash returns an abbreviated commit identity for display.
func (r *CommitRecord) ShortHash() string {
	return r.commit.Hash.String()[:8]
}

// Message returns the author-supplied message, annotations included.
func (r *CommitRecord) Message() string {
	return r.commit.Message
}

// CleanedMessage returns the message with annotations stripped, the form
// that gets pushed upstream.
func (r *CommitRecord) CleanedMessage() string {
	return r.cleaned
}

// Summary returns the first line of the cleaned message.
func (r *CommitRecord) Summary() string {
	summary, _, _ := strings.Cut(r.cleaned, "\n")
	return summary
}

// Tag returns the commit's topic tag; empty when the commit is unclassified.
func (r *CommitRecord) Tag() Tag {
	return r.annotation.Tag
}

// HasTag reports whether the commit carries a topic annotation.
func (r *CommitRecord) HasTag() bool {
	return r.annotation.Tag != ""
}

// Dependencies returns the dependency tags declared on this commit.
func (r *CommitRecord) Dependencies() []Tag {
	return r.annotation.Dependencies
}

// The blob identities in an "index" header shift whenever unrelated history
// touches a file, even when the change itself is untouched, so they are
// excluded from content comparison.
var volatileIndexLine = regexp.MustCompile(`(?m)^index [0-9a-fA-F]+\.\.[0-9a-fA-F]+( \d{6})?\n`)

// Equivalent reports whether two commits carry the same change: cleaned
// messages byte-identical and identical content changes relative to their
// respective parents. Editing only annotation lines never breaks
// equivalence. A commit without a parent compares as not equivalent, since
// there is no parent diff to inspect.
//
// The comparison must not report false differences (they trigger needless
// force-push rebuilds) nor false matches (they leave stale branch content).
func Equivalent(a, b *CommitRecord) (bool, error) {
	if a.cleaned != b.cleaned {
		return false, nil
	}
	if a.commit.NumParents() == 0 || b.commit.NumParents() == 0 {
		return false, nil
	}

	aChanges, err := parentChanges(a.commit)
	if err != nil {
		return false, err
	}
	bChanges, err := parentChanges(b.commit)
	if err != nil {
		return false, err
	}

	if len(aChanges) != len(bChanges) {
		return false, nil
	}
	for i := range aChanges {
		equal, err := changesEqual(aChanges[i], bChanges[i])
		if err != nil {
			return false, err
		}
		if !equal {
			return false, nil
		}
	}
	return true, nil
}

// parentChanges computes the structured diff of a commit against its first
// parent.
func parentChanges(commit *object.Commit) (object.Changes, error) {
	parent, err := commit.Parent(0)
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}
	return object.DiffTree(parentTree, tree)
}

// changesEqual compares one diff entry from each commit: same paths, same
// modes, same change content. Identical blob pairs are equal without
// rendering a patch; otherwise the patch text is compared with the volatile
// index headers stripped. Binary entries are only ever equal on the blob
// fast path.
func changesEqual(a, b *object.Change) (bool, error) {
	if a.From.Name != b.From.Name || a.To.Name != b.To.Name {
		return false, nil
	}
	if a.From.TreeEntry.Mode != b.From.TreeEntry.Mode || a.To.TreeEntry.Mode != b.To.TreeEntry.Mode {
		return false, nil
	}
	if a.From.TreeEntry.Hash == b.From.TreeEntry.Hash && a.To.TreeEntry.Hash == b.To.TreeEntry.Hash {
		return true, nil
	}

	aPatch, err := a.Patch()
	if err != nil {
		return false, err
	}
	bPatch, err := b.Patch()
	if err != nil {
		return false, err
	}
	if patchHasBinary(aPatch) || patchHasBinary(bPatch) {
		return false, nil
	}

	aText := volatileIndexLine.ReplaceAllString(aPatch.String(), "")
	bText := volatileIndexLine.ReplaceAllString(bPatch.String(), "")
	return aText == bText, nil
}

func patchHasBinary(patch *object.Patch) bool {
	for _, filePatch := range patch.FilePatches() {
		if filePatch.IsBinary() {
			return true
		}
	}
	return false
}
