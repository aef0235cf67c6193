package topic_test

import (
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"pushbot.dev/pushbot/internal/git"
	"pushbot.dev/pushbot/internal/topic"
	"pushbot.dev/pushbot/testhelpers"
)

func TestCommitRecordAccessors(t *testing.T) {
	t.Parallel()

	hash := plumbing.NewHash("57b1871c6221b097967ba2d3d1e14f3c05b982a0")
	message := "Fix the flux capacitor\n\nLonger explanation.\n\ntopic#flux\ntopic-deps: topic#base\n"

	record, err := topic.NewCommitRecord(&object.Commit{Hash: hash, Message: message})
	require.NoError(t, err)

	require.Equal(t, hash, record.Hash())
	require.Equal(t, "57b1871c", record.ShortHash())
	require.Equal(t, message, record.Message())
	require.Equal(t, "Fix the flux capacitor\n\nLonger explanation.", record.CleanedMessage())
	require.Equal(t, "Fix the flux capacitor", record.Summary())
	require.True(t, record.HasTag())
	require.Equal(t, topic.Tag("flux"), record.Tag())
	require.Equal(t, []topic.Tag{"base"}, record.Dependencies())
}

func TestCommitRecordClassificationError(t *testing.T) {
	t.Parallel()

	hash := plumbing.NewHash("57b1871c6221b097967ba2d3d1e14f3c05b982a0")
	_, err := topic.NewCommitRecord(&object.Commit{Hash: hash, Message: "X\n\ntopic#a\ntopic#b\n"})
	require.Error(t, err)
	require.Contains(t, err.Error(), hash.String(), "error names the offending commit")
}

// recordAt loads the commit at rev and wraps it in a CommitRecord.
func recordAt(t *testing.T, repo *git.Repository, scene *testhelpers.Scene, rev string) *topic.CommitRecord {
	t.Helper()
	sha, err := scene.Repo.GetRevision(rev)
	require.NoError(t, err)
	commit, err := repo.CommitObject(plumbing.NewHash(sha))
	require.NoError(t, err)
	record, err := topic.NewCommitRecord(commit)
	require.NoError(t, err)
	return record
}

func TestEquivalent(t *testing.T) {
	t.Parallel()

	t.Run("a commit is equivalent to itself", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		err := scene.Repo.CommitFile("feature.txt", "content", "Add feature\n\ntopic#flux")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		a := recordAt(t, repo, scene, "HEAD")
		equal, err := topic.Equivalent(a, a)
		require.NoError(t, err)
		require.True(t, equal)
	})

	t.Run("rewording only annotation lines preserves equivalence", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		err := scene.Repo.CommitFile("feature.txt", "content", "Add feature\n\ntopic#flux")
		require.NoError(t, err)
		before, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		err = scene.Repo.AmendMessage("Add feature")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		a := recordAt(t, repo, scene, before)
		b := recordAt(t, repo, scene, "HEAD")
		equal, err := topic.Equivalent(a, b)
		require.NoError(t, err)
		require.True(t, equal)
	})

	t.Run("cherry-picked copy with cleaned message is equivalent", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		err := scene.Repo.CreateAndCheckoutBranch("work")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("feature.txt", "content", "Add feature\n\nDetails.\n\ntopic#flux")
		require.NoError(t, err)
		workSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		// Rebuild the commit on another base the way a push does.
		err = scene.Repo.CheckoutBranch("main")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("unrelated.txt", "drift", "Unrelated upstream change")
		require.NoError(t, err)
		err = scene.Repo.CreateAndCheckoutBranch("built")
		require.NoError(t, err)
		err = scene.Repo.RunGitCommand("cherry-pick", workSHA)
		require.NoError(t, err)
		err = scene.Repo.AmendMessage("Add feature\n\nDetails.")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		a := recordAt(t, repo, scene, workSHA)
		b := recordAt(t, repo, scene, "HEAD")
		equal, err := topic.Equivalent(a, b)
		require.NoError(t, err)
		require.True(t, equal)
	})

	t.Run("same patch on a drifted file stays equivalent", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, nil)

		lines := make([]string, 12)
		for i := range lines {
			lines[i] = "line"
		}
		original := strings.Join(lines, "\n") + "\n"

		err := scene.Repo.CommitFile("big.txt", original, "Base")
		require.NoError(t, err)

		// Private commit edits the first line.
		err = scene.Repo.CreateAndCheckoutBranch("work")
		require.NoError(t, err)
		edited := "changed\n" + strings.Join(lines[1:], "\n") + "\n"
		err = scene.Repo.CommitFile("big.txt", edited, "Edit first line\n\ntopic#flux")
		require.NoError(t, err)
		workSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		// Upstream drifts the tail of the same file, far from the edit.
		err = scene.Repo.CheckoutBranch("main")
		require.NoError(t, err)
		drifted := strings.Join(lines[:11], "\n") + "\ndrifted\n"
		err = scene.Repo.CommitFile("big.txt", drifted, "Drift last line")
		require.NoError(t, err)

		err = scene.Repo.CreateAndCheckoutBranch("built")
		require.NoError(t, err)
		rebuilt := "changed\n" + strings.Join(lines[1:11], "\n") + "\ndrifted\n"
		err = scene.Repo.CommitFile("big.txt", rebuilt, "Edit first line")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		a := recordAt(t, repo, scene, workSHA)
		b := recordAt(t, repo, scene, "HEAD")
		equal, err := topic.Equivalent(a, b)
		require.NoError(t, err)
		require.True(t, equal)
	})

	t.Run("different content is not equivalent", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		err := scene.Repo.CreateAndCheckoutBranch("one")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("feature.txt", "content A", "Add feature")
		require.NoError(t, err)
		oneSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		err = scene.Repo.CheckoutBranch("main")
		require.NoError(t, err)
		err = scene.Repo.CreateAndCheckoutBranch("two")
		require.NoError(t, err)
		err = scene.Repo.CommitFile("feature.txt", "content B", "Add feature")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		a := recordAt(t, repo, scene, oneSHA)
		b := recordAt(t, repo, scene, "HEAD")
		equal, err := topic.Equivalent(a, b)
		require.NoError(t, err)
		require.False(t, equal)
	})

	t.Run("different cleaned message is not equivalent", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		err := scene.Repo.CommitFile("feature.txt", "content", "Add feature")
		require.NoError(t, err)
		before, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		err = scene.Repo.AmendMessage("Add feature, reworded")
		require.NoError(t, err)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		a := recordAt(t, repo, scene, before)
		b := recordAt(t, repo, scene, "HEAD")
		equal, err := topic.Equivalent(a, b)
		require.NoError(t, err)
		require.False(t, equal)
	})

	t.Run("root commits never compare equivalent", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		a := recordAt(t, repo, scene, "HEAD")
		equal, err := topic.Equivalent(a, a)
		require.NoError(t, err)
		require.False(t, equal)
	})
}
