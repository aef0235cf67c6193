// Package testhelpers provides testing utilities for the pushbot CLI,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"os/exec"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected local
// branches, order ignored.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir,
		"for-each-ref", "refs/heads/", "--format=%(refname:short)")
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list branches")

	branches := strings.Split(strings.TrimSpace(string(output)), "\n")

	filtered := []string{}
	for _, b := range branches {
		b = strings.TrimSpace(b)
		if b != "" {
			filtered = append(filtered, b)
		}
	}

	// Sort both slices for comparison
	sort.Strings(filtered)
	expected = append([]string(nil), expected...)
	sort.Strings(expected)

	require.Equal(t, expected, filtered, "Branches do not match")
}

// ExpectCommits asserts that the newest commits reachable from branch carry
// the expected subject lines, newest first.
func ExpectCommits(t *testing.T, repo *GitRepo, branch string, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir,
		"log", "--oneline", "--format=%s", branch)
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list commits")

	commits := strings.Split(strings.TrimSpace(string(output)), "\n")

	filtered := []string{}
	for _, c := range commits {
		c = strings.TrimSpace(c)
		if c != "" {
			filtered = append(filtered, c)
		}
	}

	// Compare only the first N commits where N is the length of expected
	if len(filtered) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits, got %d", len(expected), len(filtered))
		return
	}

	actual := filtered[:len(expected)]
	require.Equal(t, expected, actual, "Commits do not match")
}
