package git

import (
	"fmt"
	"strings"

	pushboterrors "pushbot.dev/pushbot/internal/errors"
)

// Remote describes one configured remote.
type Remote struct {
	Name string
	URLs []string
}

// ListRemotes returns the repository's configured remotes.
func (r *Repository) ListRemotes() ([]Remote, error) {
	goGitMu.Lock()
	defer goGitMu.Unlock()

	remotes, err := r.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}

	result := make([]Remote, 0, len(remotes))
	for _, remote := range remotes {
		cfg := remote.Config()
		result = append(result, Remote{Name: cfg.Name, URLs: cfg.URLs})
	}
	return result, nil
}

// normalizeRemoteURL strips the cosmetic differences between ways of writing
// the same remote URL.
func normalizeRemoteURL(url string) string {
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, ".git")
	return url
}

// MatchesURL reports whether the remote has a URL in the given list.
func (r Remote) MatchesURL(urls []string) bool {
	for _, candidate := range urls {
		for _, url := range r.URLs {
			if normalizeRemoteURL(url) == normalizeRemoteURL(candidate) {
				return true
			}
		}
	}
	return false
}

// ResolveUpstreamRemote picks the remote recognized as upstream: the first
// one whose URL appears in the allowlist, then the conventional names
// "upstream" and "origin" as fallbacks when the allowlist matches nothing.
func ResolveUpstreamRemote(repo *Repository, allowlist []string) (string, error) {
	remotes, err := repo.ListRemotes()
	if err != nil {
		return "", err
	}

	for _, remote := range remotes {
		if remote.MatchesURL(allowlist) {
			return remote.Name, nil
		}
	}

	for _, fallback := range []string{"upstream", "origin"} {
		for _, remote := range remotes {
			if remote.Name == fallback {
				return remote.Name, nil
			}
		}
	}

	return "", pushboterrors.ErrNoUpstreamRemote
}

// RemoteURL returns the first URL configured for the named remote.
func RemoteURL(repo *Repository, name string) (string, error) {
	remotes, err := repo.ListRemotes()
	if err != nil {
		return "", err
	}
	for _, remote := range remotes {
		if remote.Name == name {
			if len(remote.URLs) == 0 {
				return "", fmt.Errorf("remote %s has no URLs", name)
			}
			return remote.URLs[0], nil
		}
	}
	return "", fmt.Errorf("remote %s not found", name)
}

// TrackedRemote returns the remote the given local branch tracks, or empty
// when the branch has no upstream configured.
func TrackedRemote(branchName string) (string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return "", err
	}

	goGitMu.Lock()
	defer goGitMu.Unlock()

	branch, err := repo.Branch(branchName)
	if err != nil {
		return "", nil // not tracking anything
	}
	return branch.Remote, nil
}
