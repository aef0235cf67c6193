package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GetRevision returns the SHA of a branch or other ref
func GetRevision(ref string) (string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return "", err
	}

	hash, err := resolveRefHash(repo, ref)
	if err != nil {
		return "", fmt.Errorf("failed to resolve reference: %w", err)
	}

	return hash.String(), nil
}

// resolveRefHash resolves a ref (branch name, SHA, or ref path) to a hash
func resolveRefHash(repo *Repository, ref string) (plumbing.Hash, error) {
	// Synchronize go-git operations to prevent concurrent packfile access
	goGitMu.Lock()
	defer goGitMu.Unlock()

	// 1. Try as a full reference name
	if r, err := repo.Reference(plumbing.ReferenceName(ref), true); err == nil {
		return r.Hash(), nil
	}

	// 2. Try as a local branch
	if r, err := repo.Reference(plumbing.ReferenceName("refs/heads/"+ref), true); err == nil {
		return r.Hash(), nil
	}

	// 3. Try as a remote branch
	if r, err := repo.Reference(plumbing.ReferenceName("refs/remotes/"+ref), true); err == nil {
		return r.Hash(), nil
	}

	// 4. Try as a tag
	if r, err := repo.Reference(plumbing.ReferenceName("refs/tags/"+ref), true); err == nil {
		return r.Hash(), nil
	}

	// 5. Try ResolveRevision (handles SHAs, short SHAs, and complex expressions like HEAD~1)
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return *hash, nil
	}

	return plumbing.ZeroHash, fmt.Errorf("failed to resolve ref %s: reference not found", ref)
}

// isInUpstream reports whether commit is already part of the upstream
// history. The tip itself counts.
func isInUpstream(commit, upstreamTip *object.Commit) (bool, error) {
	if commit.Hash == upstreamTip.Hash {
		return true, nil
	}
	return commit.IsAncestor(upstreamTip)
}

// ScanUnmergedCommits walks the first-parent history from head and collects
// every commit until one is already reachable from the upstream tip; that
// boundary commit and everything past it stay out of the result. Commits come
// back newest first. A history with no upstream overlap is returned whole.
func ScanUnmergedCommits(repo *Repository, head, upstream plumbing.Hash) ([]*object.Commit, error) {
	// Synchronize go-git operations to prevent concurrent packfile access
	goGitMu.Lock()
	defer goGitMu.Unlock()

	upstreamTip, err := repo.CommitObject(upstream)
	if err != nil {
		return nil, fmt.Errorf("failed to get upstream commit: %w", err)
	}

	current, err := repo.CommitObject(head)
	if err != nil {
		return nil, fmt.Errorf("failed to get head commit: %w", err)
	}

	var commits []*object.Commit
	for {
		merged, err := isInUpstream(current, upstreamTip)
		if err != nil {
			return nil, fmt.Errorf("failed to check upstream reachability of %s: %w", current.Hash, err)
		}
		if merged {
			break
		}

		commits = append(commits, current)

		if current.NumParents() == 0 {
			break
		}
		current, err = current.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent of %s: %w", current.Hash, err)
		}
	}

	return commits, nil
}
