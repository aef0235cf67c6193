// Package git provides low-level Git operations.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Branch management (create, delete, checkout)
//   - Commit operations (cherry-pick, amend, history walks)
//   - Repo state queries (refs, branches, remotes)
//   - Remote operations (push)
//
// This package should be the only place where direct git commands are executed.
package git
