package git

import (
	"context"
	"fmt"
)

// WorkingTree records which branch the operator had checked out so the
// checkout can be put back after branch surgery.
type WorkingTree struct {
	originalBranch string
}

// AcquireWorkingTree captures the currently checked out branch. It fails
// when HEAD is detached, since there is no branch to come back to.
func AcquireWorkingTree() (*WorkingTree, error) {
	branch, err := GetCurrentBranch()
	if err != nil {
		return nil, err
	}
	return &WorkingTree{originalBranch: branch}, nil
}

// OriginalBranch returns the branch that was checked out when the working
// tree was acquired.
func (w *WorkingTree) OriginalBranch() string {
	return w.originalBranch
}

// Restore checks the original branch out again.
func (w *WorkingTree) Restore(ctx context.Context) error {
	if err := CheckoutBranch(ctx, w.originalBranch); err != nil {
		return fmt.Errorf("failed to restore branch %s: %w", w.originalBranch, err)
	}
	return nil
}
