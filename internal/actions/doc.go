// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a pushbot command (push, plan, init, etc.)
// and orchestrates operations across the topic, git, and github packages.
//
// Key patterns:
//   - Actions accept runtime.Context which provides the repository, settings and Splog
//   - Actions are stateless - a run reads everything it needs from the repository
//   - Actions handle user interaction through the prompt helpers in this package
//
// Dependencies:
//   - topic: Commit classification and branch planning
//   - git: Low-level git operations
//   - output: Console and file logging
package actions
