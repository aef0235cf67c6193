package config

import (
	"fmt"
	"regexp"
	"strings"
)

// BranchPrefix represents the namespace under which generated branches live
type BranchPrefix string

// DefaultBranchPrefix is the prefix used when none is configured
const DefaultBranchPrefix BranchPrefix = "push-bot"

var validPrefixRegex = regexp.MustCompile(`^[-_/a-zA-Z0-9]+$`)

// NewBranchPrefix creates a new BranchPrefix from a string
// Returns an error if the prefix would produce invalid ref names
func NewBranchPrefix(prefix string) (BranchPrefix, error) {
	if prefix == "" {
		return DefaultBranchPrefix, nil
	}

	trimmed := strings.Trim(prefix, "/")
	if trimmed == "" || !validPrefixRegex.MatchString(trimmed) {
		return "", fmt.Errorf("branch prefix must contain only letters, digits, '-', '_' and '/'")
	}

	return BranchPrefix(trimmed), nil
}

// String returns the string representation of the prefix
func (p BranchPrefix) String() string {
	if p == "" {
		return string(DefaultBranchPrefix)
	}
	return string(p)
}

// IsValid checks if the prefix would produce valid ref names
func (p BranchPrefix) IsValid() bool {
	return p == "" || validPrefixRegex.MatchString(string(p))
}

// WithDefault returns the prefix, or the default if empty
func (p BranchPrefix) WithDefault() BranchPrefix {
	if p == "" {
		return DefaultBranchPrefix
	}
	return p
}

// BranchFor returns the branch name generated for a topic tag
func (p BranchPrefix) BranchFor(tag string) string {
	return fmt.Sprintf("%s/%s", p.WithDefault(), tag)
}

// Owns reports whether a branch name lives under this prefix
func (p BranchPrefix) Owns(branchName string) bool {
	return strings.HasPrefix(branchName, p.WithDefault().String()+"/")
}
