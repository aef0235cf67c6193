package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pushboterrors "pushbot.dev/pushbot/internal/errors"
)

// PushBranch pushes a branch to the remote under the same name.
// If forceWithLease is true, uses --force-with-lease (safer)
// If force is true, uses --force (overwrites remote)
// If both are false, does a normal push
func PushBranch(ctx context.Context, branchName string, remote string, force bool, forceWithLease bool) error {
	args := []string{"push", remote}

	if force {
		args = append(args, "--force")
	} else if forceWithLease {
		args = append(args, "--force-with-lease")
	}

	args = append(args, fmt.Sprintf("%s:%s", branchName, branchName))

	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		var cmdErr *pushboterrors.GitCommandError
		if errors.As(err, &cmdErr) {
			combined := cmdErr.Stdout + cmdErr.Stderr
			if strings.Contains(combined, "stale info") || strings.Contains(combined, "forced update") {
				return fmt.Errorf("force-with-lease push of %s was rejected because the remote branch moved. Fetch to refresh the remote tracking ref, or pass --force to overwrite: %w", branchName, err)
			}
		}
		return fmt.Errorf("failed to push branch %s: %w", branchName, err)
	}

	return nil
}
