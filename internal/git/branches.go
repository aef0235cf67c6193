package git

import (
	"fmt"
	"os"

	gogit "github.com/go-git/go-git/v5"

	pushboterrors "pushbot.dev/pushbot/internal/errors"
)

// GetRepoRoot returns the root directory of the Git repository enclosing the
// current working directory.
func GetRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(wd, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", pushboterrors.ErrNotARepository, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

var defaultRepo *Repository

// InitDefaultRepo initializes the default repository from the current directory
func InitDefaultRepo() error {
	if defaultRepo != nil {
		return nil // Already initialized
	}

	repoRoot, err := GetRepoRoot()
	if err != nil {
		return err
	}

	repo, err := OpenRepository(repoRoot)
	if err != nil {
		return err
	}

	defaultRepo = repo
	return nil
}

// InitDefaultRepoInDir initializes the default repository from the given
// directory, replacing any previously opened one, and points the default
// command runner at the same directory so command and object reads agree.
func InitDefaultRepoInDir(dir string) error {
	repo, err := OpenRepository(dir)
	if err != nil {
		return err
	}
	defaultRepo = repo
	SetWorkingDir(repo.GetRepoRoot())
	return nil
}

// GetDefaultRepo returns the default repository (must call InitDefaultRepo first)
func GetDefaultRepo() (*Repository, error) {
	if defaultRepo == nil {
		return nil, fmt.Errorf("repository not initialized, call InitDefaultRepo first")
	}
	return defaultRepo, nil
}

// GetAllBranchNames returns all branch names in the repository
func GetAllBranchNames() ([]string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return nil, err
	}
	return repo.GetBranchNames()
}

// GetCurrentBranch returns the current branch name
func GetCurrentBranch() (string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return "", err
	}
	return repo.GetCurrentBranch()
}

// LocalBranchExists reports whether a local branch exists in the default
// repository.
func LocalBranchExists(name string) (bool, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return false, err
	}
	return repo.BranchExists(name), nil
}
