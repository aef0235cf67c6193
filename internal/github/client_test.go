package github

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRemoteURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		hostname string
		owner    string
		repo     string
		wantErr  bool
	}{
		{
			name:     "https with .git suffix",
			url:      "https://github.com/owner/repo.git",
			hostname: "github.com",
			owner:    "owner",
			repo:     "repo",
		},
		{
			name:     "https without suffix",
			url:      "https://github.com/owner/repo",
			hostname: "github.com",
			owner:    "owner",
			repo:     "repo",
		},
		{
			name:     "ssh with colon",
			url:      "git@github.com:owner/repo.git",
			hostname: "github.com",
			owner:    "owner",
			repo:     "repo",
		},
		{
			name:     "enterprise https",
			url:      "https://github.company.com/owner/repo.git",
			hostname: "github.company.com",
			owner:    "owner",
			repo:     "repo",
		},
		{
			name:     "enterprise ssh",
			url:      "git@github.company.com:owner/repo.git",
			hostname: "github.company.com",
			owner:    "owner",
			repo:     "repo",
		},
		{
			name:    "empty string",
			url:     "",
			wantErr: true,
		},
		{
			name:    "missing path",
			url:     "https://github.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info, err := ParseRemoteURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.hostname, info.Hostname)
			require.Equal(t, tt.owner, info.Owner)
			require.Equal(t, tt.repo, info.Repo)
		})
	}
}

func TestCompareURL(t *testing.T) {
	t.Parallel()

	info := RepoInfo{Hostname: "github.com", Owner: "project", Repo: "project"}
	require.Equal(t,
		"https://github.com/project/project/compare/main...push-bot/flux",
		info.CompareURL("main", "push-bot/flux"))
}
