package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBranchPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected BranchPrefix
		wantErr  bool
	}{
		{
			name:     "empty input falls back to the default",
			input:    "",
			expected: DefaultBranchPrefix,
		},
		{
			name:     "simple prefix passes through",
			input:    "robot",
			expected: "robot",
		},
		{
			name:     "nested prefix is allowed",
			input:    "robot/topics",
			expected: "robot/topics",
		},
		{
			name:     "surrounding slashes are trimmed",
			input:    "/robot/",
			expected: "robot",
		},
		{
			name:     "hyphens underscores and digits are allowed",
			input:    "push-bot_2",
			expected: "push-bot_2",
		},
		{
			name:    "spaces are rejected",
			input:   "push bot",
			wantErr: true,
		},
		{
			name:    "ref-hostile characters are rejected",
			input:   "robot~1",
			wantErr: true,
		},
		{
			name:    "only slashes is rejected",
			input:   "///",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prefix, err := NewBranchPrefix(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, prefix)
		})
	}
}

func TestBranchFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, "push-bot/flux", DefaultBranchPrefix.BranchFor("flux"))
	require.Equal(t, "robot/flux", BranchPrefix("robot").BranchFor("flux"))

	// The zero value behaves like the default.
	var zero BranchPrefix
	require.Equal(t, "push-bot/flux", zero.BranchFor("flux"))
	require.Equal(t, "push-bot", zero.String())
}

func TestOwns(t *testing.T) {
	t.Parallel()

	prefix := BranchPrefix("push-bot")
	require.True(t, prefix.Owns("push-bot/flux"))
	require.True(t, prefix.Owns("push-bot/nested/name"))
	require.False(t, prefix.Owns("push-bot"))
	require.False(t, prefix.Owns("push-botish/flux"))
	require.False(t, prefix.Owns("main"))
}
