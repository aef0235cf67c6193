package topic

import (
	"regexp"
	"strings"

	"pushbot.dev/pushbot/internal/errors"
)

// Tag identifies a topic. Comparison is case-insensitive; the display form
// keeps the spelling of the tag's first appearance.
type Tag string

// Key returns the canonical (lower-cased) form used for grouping and
// comparison.
func (t Tag) Key() string {
	return strings.ToLower(string(t))
}

// Equal reports whether two tags name the same topic.
func (t Tag) Equal(other Tag) bool {
	return t.Key() == other.Key()
}

func (t Tag) String() string {
	return string(t)
}

// Annotation is the topic metadata parsed out of a commit message.
type Annotation struct {
	// Tag is the topic this commit belongs to. Empty means the commit is
	// unclassified and ignored by grouping.
	Tag Tag

	// Dependencies lists tags this commit's topic depends on, in the order
	// they were written. Referenced tags need not exist in the scanned
	// history; unresolved references are kept, not dropped.
	Dependencies []Tag
}

var (
	tagLinePattern    = regexp.MustCompile(`(?im)^topic#(\w+)$`)
	depsLinePattern   = regexp.MustCompile(`(?im)^topic-deps:((?:\s*topic#\w+[,\s]*)+)$`)
	depsPrefixPattern = regexp.MustCompile(`(?im)^topic-deps:`)
	depRefPattern     = regexp.MustCompile(`(?i)topic#(\w+)`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
)

// ParseAnnotation extracts the topic tag and dependency references from a raw
// commit message. A message with more than one tag line is ambiguous, and a
// "topic-deps:" line that cannot be parsed in full is malformed; both are
// classification errors because a misread annotation could rebuild the wrong
// branch.
func ParseAnnotation(message string) (Annotation, error) {
	var annotation Annotation

	tagMatches := tagLinePattern.FindAllStringSubmatch(message, -1)
	if len(tagMatches) > 1 {
		return annotation, errors.NewClassificationError("", "multiple topic tag lines")
	}
	if len(tagMatches) == 1 {
		annotation.Tag = Tag(tagMatches[0][1])
	}

	depsMatches := depsLinePattern.FindAllStringSubmatch(message, -1)
	if len(depsPrefixPattern.FindAllString(message, -1)) > len(depsMatches) {
		return annotation, errors.NewClassificationError("", "malformed topic-deps line")
	}
	for _, match := range depsMatches {
		for _, ref := range depRefPattern.FindAllStringSubmatch(match[1], -1) {
			annotation.Dependencies = append(annotation.Dependencies, Tag(ref[1]))
		}
	}

	return annotation, nil
}

// CleanMessage strips annotation lines from a commit message and normalizes
// the whitespace they leave behind: runs of three or more newlines collapse
// to a single blank line, and the result is trimmed. The cleaned form is what
// gets pushed upstream and what equivalence comparison works on.
func CleanMessage(message string) string {
	cleaned := tagLinePattern.ReplaceAllString(message, "")
	cleaned = depsLinePattern.ReplaceAllString(cleaned, "")
	cleaned = blankRunPattern.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
