package utils

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	"pushbot.dev/pushbot/internal/git"
)

// IsInteractive checks if we're in an interactive terminal
func IsInteractive() bool {
	// Allow forcing non-interactive mode via environment variable
	if os.Getenv("PUSHBOT_NON_INTERACTIVE") != "" || os.Getenv("PUSHBOT_TEST_NO_INTERACTIVE") != "" {
		return false
	}

	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// HasUncommittedChanges checks if there are uncommitted changes in the repository
func HasUncommittedChanges(ctx context.Context) bool {
	output, err := git.RunGitCommandWithContext(ctx, "status", "--porcelain")
	if err != nil {
		return false
	}
	return output != ""
}
