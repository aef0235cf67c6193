package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	pushboterrors "pushbot.dev/pushbot/internal/errors"
)

// goGitMu synchronizes go-git operations to prevent concurrent packfile access
var goGitMu sync.Mutex

// Repository wraps a go-git repository
type Repository struct {
	*git.Repository
	path string
}

// OpenRepository opens a git repository at the given path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Repository{
		Repository: repo,
		path:       absPath,
	}, nil
}

// GetRepoRoot returns the root directory of the repository
func (r *Repository) GetRepoRoot() string {
	return r.path
}

// GetBranchNames returns all branch names
func (r *Repository) GetBranchNames() ([]string, error) {
	goGitMu.Lock()
	defer goGitMu.Unlock()

	branches, err := r.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var names []string
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	return names, nil
}

// GetCurrentBranch returns the current branch name
func (r *Repository) GetCurrentBranch() (string, error) {
	goGitMu.Lock()
	defer goGitMu.Unlock()

	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", pushboterrors.ErrNotOnBranch
	}

	return head.Name().Short(), nil
}

// BranchExists reports whether a local branch with the given name exists.
func (r *Repository) BranchExists(name string) bool {
	goGitMu.Lock()
	defer goGitMu.Unlock()

	_, err := r.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

// CommitAt returns the commit object a reference name points at.
func (r *Repository) CommitAt(refName plumbing.ReferenceName) (*object.Commit, error) {
	goGitMu.Lock()
	defer goGitMu.Unlock()

	ref, err := r.Reference(refName, true)
	if err != nil {
		return nil, err
	}
	return r.CommitObject(ref.Hash())
}

// BranchView adapts a repository to branch tip lookups for one remote. Local
// heads are consulted before the remote-tracking refs, since the local branch
// left behind by the last push is the freshest record of what went out.
type BranchView struct {
	repo   *Repository
	remote string
}

// NewBranchView creates a BranchView reading from repo and the named remote.
func NewBranchView(repo *Repository, remote string) *BranchView {
	return &BranchView{repo: repo, remote: remote}
}

// BranchTip resolves the commit at the tip of the named branch, checking
// local heads first and remote-tracking refs second. A missing ref is not a
// read failure; anything else is.
func (v *BranchView) BranchTip(branch string) (*object.Commit, error) {
	candidates := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(branch),
		plumbing.NewRemoteReferenceName(v.remote, branch),
	}
	for _, name := range candidates {
		commit, err := v.repo.CommitAt(name)
		if err == nil {
			return commit, nil
		}
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
	return nil, pushboterrors.NewBranchNotFoundError(branch)
}
