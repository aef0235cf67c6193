package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/testhelpers"
)

func TestCherryPick(t *testing.T) {
	t.Run("applies a commit onto a detached checkout", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.InitDefaultRepoInDir(scene.Dir)
		require.NoError(t, err)

		err = scene.Repo.CreateAndCheckoutBranch("work")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("feature.txt", "content", "Add feature")
		require.NoError(t, err)
		workSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		ctx := context.Background()
		err = git.CheckoutDetached(ctx, "main")
		require.NoError(t, err)
		err = git.CherryPick(ctx, workSHA)
		require.NoError(t, err)

		message, err := scene.Repo.GetCommitMessage("HEAD")
		require.NoError(t, err)
		require.Equal(t, "Add feature", message)

		picked, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.NotEqual(t, workSHA, picked, "cherry-pick creates a new commit")
	})

	t.Run("aborts a conflicting cherry-pick", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.InitDefaultRepoInDir(scene.Dir)
		require.NoError(t, err)

		err = scene.Repo.CreateAndCheckoutBranch("work")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("feature.txt", "work version", "Work change")
		require.NoError(t, err)
		workSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		err = scene.Repo.CheckoutBranch("main")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("feature.txt", "conflicting version", "Main change")
		require.NoError(t, err)

		ctx := context.Background()
		err = git.CherryPick(ctx, workSHA)
		require.Error(t, err)

		// The failed pick was aborted; nothing half-applied remains.
		require.False(t, git.IsCherryPickInProgress(ctx))
		message, err := scene.Repo.GetCommitMessage("HEAD")
		require.NoError(t, err)
		require.Equal(t, "Main change", message)
	})
}

func TestAmendMessage(t *testing.T) {
	t.Run("rewrites the message without touching content", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.InitDefaultRepoInDir(scene.Dir)
		require.NoError(t, err)

		err = scene.Repo.CommitFile("feature.txt", "content", "Old subject\n\ntopic#flux")
		require.NoError(t, err)
		treeBefore, err := scene.Repo.GetRevision("HEAD^{tree}")
		require.NoError(t, err)

		err = git.AmendMessage(context.Background(), "New subject\n\nMulti-line body\nwith two lines.")
		require.NoError(t, err)

		message, err := scene.Repo.GetCommitMessage("HEAD")
		require.NoError(t, err)
		require.Equal(t, "New subject\n\nMulti-line body\nwith two lines.", message)

		treeAfter, err := scene.Repo.GetRevision("HEAD^{tree}")
		require.NoError(t, err)
		require.Equal(t, treeBefore, treeAfter)
	})
}
