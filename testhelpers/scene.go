package testhelpers

import (
	"os"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	oldDir string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git
// repository, and changes the working directory into it. Because it changes
// the process working directory, tests using it must not run in parallel.
// Cleanup is registered with t.Cleanup().
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	// Save current directory
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	scene := newSceneInDir(t, setup)
	scene.oldDir = oldDir

	// Change to temp directory
	if err := os.Chdir(scene.Dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
	})

	return scene
}

// NewSceneParallel creates a test scene without touching the process working
// directory or any other global state, so it is safe under t.Parallel().
// Callers address the repository through scene.Dir.
func NewSceneParallel(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()
	return newSceneInDir(t, setup)
}

func newSceneInDir(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	// Create temporary directory
	tmpDir, err := os.MkdirTemp("", "pushbot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	// Initialize Git repository
	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	// Run custom setup if provided
	if setup != nil {
		if err := setup(scene); err != nil {
			os.RemoveAll(tmpDir)
			t.Fatalf("Setup failed: %v", err)
		}
	}

	// Register cleanup
	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
		}
	})

	return scene
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// UpstreamSceneSetup creates a scene with one commit on main pushed to a bare
// "upstream" remote, so the remote-tracking ref remotes/upstream/main exists.
func UpstreamSceneSetup(scene *Scene) error {
	if err := scene.Repo.CreateChangeAndCommit("base", "base"); err != nil {
		return err
	}
	if _, err := scene.Repo.CreateBareRemote("upstream"); err != nil {
		return err
	}
	return scene.Repo.PushBranch("upstream", "main")
}
