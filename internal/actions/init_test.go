package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pushbot.dev/pushbot/internal/actions"
	"pushbot.dev/pushbot/internal/config"
	"pushbot.dev/pushbot/internal/runtime"
	"pushbot.dev/pushbot/testhelpers"
)

func TestInitAction(t *testing.T) {
	t.Run("records the only remote as upstream", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.AddRemote("origin", "https://github.com/acme/widget.git"))
		ctx := newActionContext(t, scene, runtime.Settings{UpstreamBranch: "main"})

		require.NoError(t, actions.InitAction(ctx, actions.InitOptions{NoInteractive: true}))

		require.True(t, config.IsInitialized(ctx.RepoRoot))
		require.Equal(t, "origin", testhelpers.Must(config.GetUpstreamRemote(ctx.RepoRoot)))
		require.Equal(t, "main", testhelpers.Must(config.GetUpstreamBranch(ctx.RepoRoot)))
		require.Equal(t, "push-bot", testhelpers.Must(config.GetBranchPrefix(ctx.RepoRoot)).String())

		// No second remote, so no push remote is recorded
		require.Empty(t, testhelpers.Must(config.GetPushRemote(ctx.RepoRoot)))

		// The upstream URL lands on the allowlist for later rename detection
		require.Equal(t, []string{"https://github.com/acme/widget.git"}, testhelpers.Must(config.GetUpstreamURLs(ctx.RepoRoot)))
	})

	t.Run("resolves the upstream by name and records the lone fork", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.AddRemote("upstream", "https://github.com/acme/widget.git"))
		require.NoError(t, scene.Repo.AddRemote("fork", "https://github.com/dev/widget.git"))
		ctx := newActionContext(t, scene, runtime.Settings{UpstreamBranch: "main"})

		require.NoError(t, actions.InitAction(ctx, actions.InitOptions{}))

		require.Equal(t, "upstream", testhelpers.Must(config.GetUpstreamRemote(ctx.RepoRoot)))
		require.Equal(t, "fork", testhelpers.Must(config.GetPushRemote(ctx.RepoRoot)))
	})

	t.Run("applies explicit flags over resolution", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.AddRemote("origin", "https://github.com/acme/widget.git"))
		require.NoError(t, scene.Repo.AddRemote("fork", "https://github.com/dev/widget.git"))
		ctx := newActionContext(t, scene, runtime.Settings{UpstreamBranch: "main"})

		opts := actions.InitOptions{
			UpstreamRemote: "origin",
			UpstreamBranch: "develop",
			PushRemote:     "fork",
			Prefix:         "team/topics",
			NoInteractive:  true,
		}
		require.NoError(t, actions.InitAction(ctx, opts))

		require.Equal(t, "origin", testhelpers.Must(config.GetUpstreamRemote(ctx.RepoRoot)))
		require.Equal(t, "develop", testhelpers.Must(config.GetUpstreamBranch(ctx.RepoRoot)))
		require.Equal(t, "fork", testhelpers.Must(config.GetPushRemote(ctx.RepoRoot)))
		require.Equal(t, "team/topics", testhelpers.Must(config.GetBranchPrefix(ctx.RepoRoot)).String())
	})

	t.Run("rejects an unknown upstream remote flag", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.AddRemote("origin", "https://github.com/acme/widget.git"))
		ctx := newActionContext(t, scene, runtime.Settings{UpstreamBranch: "main"})

		err := actions.InitAction(ctx, actions.InitOptions{UpstreamRemote: "nope", NoInteractive: true})
		require.Error(t, err)
		require.Contains(t, err.Error(), "remote 'nope' not found")
	})

	t.Run("rejects an invalid prefix flag", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.AddRemote("origin", "https://github.com/acme/widget.git"))
		ctx := newActionContext(t, scene, runtime.Settings{UpstreamBranch: "main"})

		err := actions.InitAction(ctx, actions.InitOptions{Prefix: "bad prefix", NoInteractive: true})
		require.Error(t, err)
	})

	t.Run("fails without any remotes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		ctx := newActionContext(t, scene, runtime.Settings{UpstreamBranch: "main"})

		err := actions.InitAction(ctx, actions.InitOptions{NoInteractive: true})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no remotes configured")
	})

	t.Run("reinitializing does not duplicate the upstream URL", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.AddRemote("origin", "https://github.com/acme/widget.git"))
		ctx := newActionContext(t, scene, runtime.Settings{UpstreamBranch: "main"})

		require.NoError(t, actions.InitAction(ctx, actions.InitOptions{NoInteractive: true}))
		require.NoError(t, actions.InitAction(ctx, actions.InitOptions{NoInteractive: true}))

		urls := testhelpers.Must(config.GetUpstreamURLs(ctx.RepoRoot))
		require.Len(t, urls, 1)
	})
}
