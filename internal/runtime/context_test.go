package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pushbot.dev/pushbot/internal/config"
	"pushbot.dev/pushbot/testhelpers"
)

// isolateUserConfig points the user config directory at a temp location so
// the test never reads or writes the operator's real configuration.
func isolateUserConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeUserConfig(t *testing.T, configHome, contents string) {
	t.Helper()
	dir := filepath.Join(configHome, "pushbot")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0644))
}

func TestLoadSettings(t *testing.T) {
	t.Run("defaults apply without any config", func(t *testing.T) {
		isolateUserConfig(t)
		scene := testhelpers.NewSceneParallel(t, nil)

		settings, err := LoadSettings(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "main", settings.UpstreamBranch)
		require.Equal(t, config.DefaultBranchPrefix, settings.BranchPrefix)
		require.Empty(t, settings.UpstreamRemote)
		require.Empty(t, settings.PushRemote)
		require.Empty(t, settings.UpstreamURLs)
	})

	t.Run("user config fills in unset repo values", func(t *testing.T) {
		configHome := isolateUserConfig(t)
		writeUserConfig(t, configHome, `
[upstream]
branch = "develop"
urls = ["https://github.com/project/project"]

[branches]
prefix = "robot"
`)
		scene := testhelpers.NewSceneParallel(t, nil)

		settings, err := LoadSettings(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "develop", settings.UpstreamBranch)
		require.Equal(t, config.BranchPrefix("robot"), settings.BranchPrefix)
		require.Equal(t, []string{"https://github.com/project/project"}, settings.UpstreamURLs)
	})

	t.Run("repo config wins over user config", func(t *testing.T) {
		configHome := isolateUserConfig(t)
		writeUserConfig(t, configHome, `
[upstream]
branch = "develop"

[branches]
prefix = "robot"
`)
		scene := testhelpers.NewSceneParallel(t, nil)

		require.NoError(t, config.SetUpstreamBranch(scene.Dir, "release"))
		require.NoError(t, config.SetBranchPrefix(scene.Dir, "team/topics"))
		require.NoError(t, config.SetUpstreamRemote(scene.Dir, "company"))
		require.NoError(t, config.SetPushRemote(scene.Dir, "fork"))

		settings, err := LoadSettings(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "release", settings.UpstreamBranch)
		require.Equal(t, config.BranchPrefix("team/topics"), settings.BranchPrefix)
		require.Equal(t, "company", settings.UpstreamRemote)
		require.Equal(t, "fork", settings.PushRemote)
	})

	t.Run("allowlists merge without duplicates", func(t *testing.T) {
		configHome := isolateUserConfig(t)
		writeUserConfig(t, configHome, `
[upstream]
urls = ["https://github.com/project/project", "https://github.com/project/mirror"]
`)
		scene := testhelpers.NewSceneParallel(t, nil)

		require.NoError(t, config.AddUpstreamURL(scene.Dir, "https://github.com/project/project"))

		settings, err := LoadSettings(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, []string{
			"https://github.com/project/project",
			"https://github.com/project/mirror",
		}, settings.UpstreamURLs)
	})
}
