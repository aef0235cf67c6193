// Package errors provides sentinel errors and custom error types for the pushbot application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that no enclosing git repository was found
	ErrNotARepository = errors.New("not a git repository")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNoUpstreamRemote indicates that no configured remote matches the upstream allowlist
	ErrNoUpstreamRemote = errors.New("no upstream remote")

	// ErrAborted indicates that the operator declined a confirmation prompt
	ErrAborted = errors.New("aborted by user")

	// ErrClassification indicates that a commit message could not be classified
	ErrClassification = errors.New("classification error")

	// ErrPlanning indicates that a topic could not be planned against its branch
	ErrPlanning = errors.New("planning error")

	// ErrMutation indicates that building or pushing a topic branch failed
	ErrMutation = errors.New("mutation error")
)

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// ClassificationError represents a commit message that cannot be classified,
// such as one carrying more than one topic tag line. Classification errors
// stop the whole run: a misread tag could rebuild the wrong branch.
type ClassificationError struct {
	CommitHash string
	Reason     string
}

func (e *ClassificationError) Error() string {
	if e.CommitHash != "" {
		return fmt.Sprintf("cannot classify commit %s: %s", e.CommitHash, e.Reason)
	}
	return fmt.Sprintf("cannot classify commit: %s", e.Reason)
}

// Is returns true if the target error is ErrClassification
func (e *ClassificationError) Is(target error) bool {
	return target == ErrClassification
}

// NewClassificationError creates a new ClassificationError
func NewClassificationError(commitHash string, reason string) *ClassificationError {
	return &ClassificationError{CommitHash: commitHash, Reason: reason}
}

// PlanningError represents a failure reading branch or commit data while
// deciding whether a topic branch needs a push. It is fatal for that topic
// only; other topics keep going.
type PlanningError struct {
	Tag string
	Err error
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("planning topic %s: %v", e.Tag, e.Err)
}

// Is returns true if the target error is ErrPlanning
func (e *PlanningError) Is(target error) bool {
	return target == ErrPlanning
}

func (e *PlanningError) Unwrap() error {
	return e.Err
}

// NewPlanningError creates a new PlanningError
func NewPlanningError(tag string, err error) *PlanningError {
	return &PlanningError{Tag: tag, Err: err}
}

// MutationError represents a failure while rebuilding or pushing a topic
// branch (cherry-pick conflict, push rejection). The branch is never pushed
// in a partially built state.
type MutationError struct {
	Tag  string
	Step string
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("topic %s failed during %s: %v", e.Tag, e.Step, e.Err)
}

// Is returns true if the target error is ErrMutation
func (e *MutationError) Is(target error) bool {
	return target == ErrMutation
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError creates a new MutationError
func NewMutationError(tag string, step string, err error) *MutationError {
	return &MutationError{Tag: tag, Step: step, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
