package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// CherryPick applies a commit onto the current checkout. On failure the
// in-progress cherry-pick is aborted first, so the caller never sees a
// half-applied working tree.
func CherryPick(ctx context.Context, commitSHA string) error {
	_, err := RunGitCommandWithContext(ctx, "cherry-pick", commitSHA)
	if err != nil {
		_, _ = RunGitCommandWithContext(ctx, "cherry-pick", "--abort")
		return fmt.Errorf("failed to cherry-pick commit %s: %w", commitSHA[:8], err)
	}
	return nil
}

// AmendMessage rewrites the message of the commit at HEAD without touching
// its content. The message is passed on stdin so arbitrary bodies survive
// intact.
func AmendMessage(ctx context.Context, message string) error {
	_, err := RunGitCommandWithInputAndContext(ctx, message, "commit", "--amend", "-F", "-")
	if err != nil {
		return fmt.Errorf("failed to amend commit message: %w", err)
	}
	return nil
}

// IsCherryPickInProgress checks if a cherry-pick is currently in progress
func IsCherryPickInProgress(ctx context.Context) bool {
	output, err := RunGitCommandWithContext(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return false
	}

	_, err = os.Stat(filepath.Join(output, "CHERRY_PICK_HEAD"))
	return err == nil
}
