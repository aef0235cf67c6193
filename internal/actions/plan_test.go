package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pushbot.dev/pushbot/internal/actions"
	"pushbot.dev/pushbot/internal/config"
	"pushbot.dev/pushbot/testhelpers"
)

func TestPlanAction(t *testing.T) {
	t.Run("previews without mutating the repository", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.UpstreamSceneSetup)
		_, err := scene.Repo.CreateBareRemote("fork")
		require.NoError(t, err)

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("work"))
		require.NoError(t, scene.Repo.CommitFile("flux.txt", "one\n", "Add flux capacitor\n\ntopic#flux"))
		require.NoError(t, scene.Repo.CommitFile("io.txt", "io\n", "Teach io layer\n\ntopic#io\ntopic-deps: topic#flux"))

		ctx := newActionContext(t, scene, upstreamSettings())

		require.NoError(t, actions.PlanAction(ctx, actions.PlanOptions{Remote: "fork"}))

		// Planning never builds branches, moves the checkout or records a run
		branches := testhelpers.Must(scene.Repo.GetLocalBranches())
		require.NotContains(t, branches, "push-bot/flux")
		require.NotContains(t, branches, "push-bot/io")
		require.Equal(t, "work", testhelpers.Must(scene.Repo.CurrentBranchName()))
		_, err = config.GetRunRecord(ctx.RepoRoot)
		require.Error(t, err)
	})

	t.Run("reads built branches without rebuilding them", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.UpstreamSceneSetup)
		_, err := scene.Repo.CreateBareRemote("fork")
		require.NoError(t, err)

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("work"))
		require.NoError(t, scene.Repo.CommitFile("flux.txt", "one\n", "Add flux capacitor\n\ntopic#flux"))

		settings := upstreamSettings()
		settings.PushRemote = "fork"
		ctx := newActionContext(t, scene, settings)

		require.NoError(t, actions.PushAction(ctx, actions.PushOptions{Yes: true}))
		built := testhelpers.Must(scene.Repo.GetRevision("push-bot/flux"))

		require.NoError(t, actions.PlanAction(ctx, actions.PlanOptions{}))
		require.Equal(t, built, testhelpers.Must(scene.Repo.GetRevision("push-bot/flux")))
	})

	t.Run("fails when the boundary cannot be resolved", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		ctx := newActionContext(t, scene, upstreamSettings())

		err := actions.PlanAction(ctx, actions.PlanOptions{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "upstream/main")
	})

	t.Run("rejects an invalid prefix flag", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		ctx := newActionContext(t, scene, upstreamSettings())

		err := actions.PlanAction(ctx, actions.PlanOptions{Prefix: "bad prefix"})
		require.Error(t, err)
	})
}
