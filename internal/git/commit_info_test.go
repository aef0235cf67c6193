package git_test

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/testhelpers"
)

func TestScanUnmergedCommits(t *testing.T) {
	t.Parallel()

	hashOf := func(t *testing.T, scene *testhelpers.Scene, rev string) plumbing.Hash {
		t.Helper()
		sha, err := scene.Repo.GetRevision(rev)
		require.NoError(t, err)
		return plumbing.NewHash(sha)
	}

	t.Run("collects commits above the boundary newest first", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		err := scene.Repo.CreateAndCheckoutBranch("work")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("a.txt", "a", "First")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("b.txt", "b", "Second")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("c.txt", "c", "Third")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		commits, err := git.ScanUnmergedCommits(repo, hashOf(t, scene, "work"), hashOf(t, scene, "main"))
		require.NoError(t, err)
		require.Len(t, commits, 3)
		require.Equal(t, "Third\n", commits[0].Message)
		require.Equal(t, "Second\n", commits[1].Message)
		require.Equal(t, "First\n", commits[2].Message)
	})

	t.Run("empty when head is at the boundary", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		commits, err := git.ScanUnmergedCommits(repo, hashOf(t, scene, "main"), hashOf(t, scene, "main"))
		require.NoError(t, err)
		require.Empty(t, commits)
	})

	t.Run("empty when head is behind the boundary", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		behind, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		err = scene.Repo.CommitFile("a.txt", "a", "Ahead")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		commits, err := git.ScanUnmergedCommits(repo, plumbing.NewHash(behind), hashOf(t, scene, "main"))
		require.NoError(t, err)
		require.Empty(t, commits)
	})

	t.Run("stops at the remote tracking boundary", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.UpstreamSceneSetup)

		err := scene.Repo.CommitFile("a.txt", "a", "Local only")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		boundary := hashOf(t, scene, "refs/remotes/upstream/main")
		commits, err := git.ScanUnmergedCommits(repo, hashOf(t, scene, "main"), boundary)
		require.NoError(t, err)
		require.Len(t, commits, 1)
		require.Equal(t, "Local only\n", commits[0].Message)
	})

	t.Run("follows the first parent across a merge", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		err := scene.Repo.CreateAndCheckoutBranch("work")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("a.txt", "a", "Work change")
		require.NoError(t, err)

		err = scene.Repo.CreateAndCheckoutBranch("side")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("b.txt", "b", "Side change")
		require.NoError(t, err)

		err = scene.Repo.CheckoutBranch("work")
		require.NoError(t, err)
		err = scene.Repo.RunGitCommand("merge", "--no-ff", "-m", "Merge side", "side")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		commits, err := git.ScanUnmergedCommits(repo, hashOf(t, scene, "work"), hashOf(t, scene, "main"))
		require.NoError(t, err)

		var subjects []string
		for _, commit := range commits {
			subjects = append(subjects, commit.Message)
		}
		require.Equal(t, []string{"Merge side\n", "Work change\n"}, subjects)
	})
}

func TestGetRevision(t *testing.T) {
	t.Run("resolves branches refs and expressions", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.InitDefaultRepoInDir(scene.Dir)
		require.NoError(t, err)

		want, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		for _, ref := range []string{"main", "refs/heads/main", "HEAD", want} {
			got, err := git.GetRevision(ref)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("fails for an unknown ref", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.InitDefaultRepoInDir(scene.Dir)
		require.NoError(t, err)

		_, err = git.GetRevision("no-such-branch")
		require.Error(t, err)
	})
}
