//go:build integration

package git_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/semantic/internal/domain/entities"
	"github.com/rios0rios0/semantic/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/semantic/internal/infrastructure/repositories/git"
)

var testSignature = &object.Signature{
	Name:  "Test Author",
	Email: "author@example.com",
	When:  time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC),
}

// fakeEnv builds a lookup function backed by a map.
func fakeEnv(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		value, ok := vars[name]
		return value, ok
	}
}

// initRepository creates a repository in a temporary directory.
func initRepository(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

// commitFile writes content to name and commits it with message.
func commitFile(t *testing.T, dir string, repo *git.Repository, name, content, message string) plumbing.Hash {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add(name)
	require.NoError(t, err)
	hash, err := worktree.Commit(message, &git.CommitOptions{Author: testSignature, Committer: testSignature})
	require.NoError(t, err)
	return hash
}

func openRepository(t *testing.T, dir string, env map[string]string) repositories.GitRepository {
	t.Helper()
	opened, err := gitRepo.NewOpenerWithEnv(fakeEnv(env)).Open(dir)
	require.NoError(t, err)
	return opened
}

func TestOpener(t *testing.T) {
	t.Parallel()

	t.Run("should open a repository from a subdirectory", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		commitFile(t, dir, repo, "README.md", "hello\n", "chore: init")
		subDir := filepath.Join(dir, "src")
		require.NoError(t, os.MkdirAll(subDir, 0o755))

		// when
		_, err := gitRepo.NewOpener().Open(subDir)

		// then
		require.NoError(t, err)
	})

	t.Run("should fail outside a repository", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()

		// when
		_, err := gitRepo.NewOpener().Open(dir)

		// then
		require.Error(t, err)
	})
}

func TestRepositorySignature(t *testing.T) {
	t.Parallel()

	t.Run("should prefer the committer environment variables", func(t *testing.T) {
		t.Parallel()

		// given
		dir, _ := initRepository(t)
		repository := openRepository(t, dir, map[string]string{
			"GIT_COMMITTER_NAME":  "Env Name",
			"GIT_COMMITTER_EMAIL": "env@example.com",
		})

		// when
		signature, err := repository.Signature()

		// then
		require.NoError(t, err)
		assert.Equal(t, "Env Name", signature.Name)
		assert.Equal(t, "env@example.com", signature.Email)
		assert.False(t, signature.When.IsZero())
	})

	t.Run("should fall back to the repository config", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		cfg, err := repo.Config()
		require.NoError(t, err)
		cfg.User.Name = "Local Name"
		cfg.User.Email = "local@example.com"
		require.NoError(t, repo.SetConfig(cfg))
		repository := openRepository(t, dir, nil)

		// when
		signature, err := repository.Signature()

		// then
		require.NoError(t, err)
		assert.Equal(t, "Local Name", signature.Name)
		assert.Equal(t, "local@example.com", signature.Email)
	})
}

func TestRepositoryLatestReleaseTag(t *testing.T) {
	t.Parallel()

	t.Run("should return empty when there are no tags", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		commitFile(t, dir, repo, "README.md", "hello\n", "chore: init")
		repository := openRepository(t, dir, nil)

		// when
		tag, err := repository.LatestReleaseTag()

		// then
		require.NoError(t, err)
		assert.Empty(t, tag)
	})

	t.Run("should pick the highest release tag by semantic version order", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		hash := commitFile(t, dir, repo, "README.md", "hello\n", "chore: init")
		for _, name := range []string{"v0.2.0", "v0.10.0", "v0.9.1", "v1.0.0-rc.1", "v1.0", "latest"} {
			_, err := repo.CreateTag(name, hash, nil)
			require.NoError(t, err)
		}
		repository := openRepository(t, dir, nil)

		// when
		tag, err := repository.LatestReleaseTag()

		// then
		require.NoError(t, err)
		assert.Equal(t, "v0.10.0", tag)
	})
}

func TestRepositoryCommitsSince(t *testing.T) {
	t.Parallel()

	t.Run("should list the whole history without a tag", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		commitFile(t, dir, repo, "a.txt", "a", "feat: a")
		commitFile(t, dir, repo, "b.txt", "b", "fix: b")
		repository := openRepository(t, dir, nil)

		// when
		commits, err := repository.CommitsSince("")

		// then
		require.NoError(t, err)
		require.Len(t, commits, 2)
		assert.Equal(t, "fix: b", commits[0].Subject())
		assert.Equal(t, "feat: a", commits[1].Subject())
	})

	t.Run("should leave out commits reachable from a lightweight tag", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		released := commitFile(t, dir, repo, "a.txt", "a", "feat: a")
		_, err := repo.CreateTag("v0.1.0", released, nil)
		require.NoError(t, err)
		commitFile(t, dir, repo, "b.txt", "b", "fix: b")
		commitFile(t, dir, repo, "c.txt", "c", "chore: c")
		repository := openRepository(t, dir, nil)

		// when
		commits, err := repository.CommitsSince("v0.1.0")

		// then
		require.NoError(t, err)
		require.Len(t, commits, 2)
		assert.Equal(t, "chore: c", commits[0].Subject())
		assert.Equal(t, "fix: b", commits[1].Subject())
	})

	t.Run("should resolve annotated tags to their commit", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		released := commitFile(t, dir, repo, "a.txt", "a", "feat: a")
		_, err := repo.CreateTag("v0.1.0", released, &git.CreateTagOptions{Tagger: testSignature, Message: "v0.1.0"})
		require.NoError(t, err)
		commitFile(t, dir, repo, "b.txt", "b", "fix: b")
		repository := openRepository(t, dir, nil)

		// when
		commits, err := repository.CommitsSince("v0.1.0")

		// then
		require.NoError(t, err)
		require.Len(t, commits, 1)
		assert.Equal(t, "fix: b", commits[0].Subject())
	})

	t.Run("should return nothing when HEAD is the tagged commit", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		released := commitFile(t, dir, repo, "a.txt", "a", "feat: a")
		_, err := repo.CreateTag("v0.1.0", released, nil)
		require.NoError(t, err)
		repository := openRepository(t, dir, nil)

		// when
		commits, err := repository.CommitsSince("v0.1.0")

		// then
		require.NoError(t, err)
		assert.Empty(t, commits)
	})

	t.Run("should fail for an unknown tag", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		commitFile(t, dir, repo, "a.txt", "a", "feat: a")
		repository := openRepository(t, dir, nil)

		// when
		_, err := repository.CommitsSince("v9.9.9")

		// then
		require.Error(t, err)
	})
}

func TestRepositoryCommitFilesAndCreateTag(t *testing.T) {
	t.Parallel()

	committer := entities.Signature{
		Name:  "Release Bot",
		Email: "bot@example.com",
		When:  time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC),
	}

	t.Run("should commit the changed files and skip the unchanged ones", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		commitFile(t, dir, repo, "Cargo.toml", "version = \"0.1.0\"\n", "feat: a")
		commitFile(t, dir, repo, "Cargo.lock", "# lock\n", "chore: lock")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("version = \"0.2.0\"\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte("# Changelog\n"), 0o644))
		repository := openRepository(t, dir, nil)

		// when
		err := repository.CommitFiles(
			[]string{"Cargo.toml", "CHANGELOG.md", "Cargo.lock"},
			"chore(release): bump version to 0.2.0",
			committer,
		)

		// then
		require.NoError(t, err)
		head, err := repo.Head()
		require.NoError(t, err)
		commit, err := repo.CommitObject(head.Hash())
		require.NoError(t, err)
		assert.Equal(t, "chore(release): bump version to 0.2.0", commit.Message)
		assert.Equal(t, "Release Bot", commit.Committer.Name)
		stats, err := commit.Stats()
		require.NoError(t, err)
		changed := make([]string, 0, len(stats))
		for _, stat := range stats {
			changed = append(changed, stat.Name)
		}
		assert.ElementsMatch(t, []string{"Cargo.toml", "CHANGELOG.md"}, changed)
	})

	t.Run("should commit files relative to a subdirectory the repository was opened from", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		crateDir := filepath.Join(dir, "crate")
		require.NoError(t, os.MkdirAll(crateDir, 0o755))
		commitFile(t, dir, repo, "crate/Cargo.toml", "version = \"0.1.0\"\n", "feat: a")
		require.NoError(t, os.WriteFile(filepath.Join(crateDir, "Cargo.toml"), []byte("version = \"0.2.0\"\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(crateDir, "CHANGELOG.md"), []byte("# Changelog\n"), 0o644))
		repository := openRepository(t, crateDir, nil)

		// when
		err := repository.CommitFiles(
			[]string{"Cargo.toml", "CHANGELOG.md", "Cargo.lock"},
			"chore(release): bump version to 0.2.0",
			committer,
		)

		// then
		require.NoError(t, err)
		head, err := repo.Head()
		require.NoError(t, err)
		commit, err := repo.CommitObject(head.Hash())
		require.NoError(t, err)
		stats, err := commit.Stats()
		require.NoError(t, err)
		changed := make([]string, 0, len(stats))
		for _, stat := range stats {
			changed = append(changed, stat.Name)
		}
		assert.ElementsMatch(t, []string{"crate/Cargo.toml", "crate/CHANGELOG.md"}, changed)
	})

	t.Run("should reject paths outside of the worktree", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		commitFile(t, dir, repo, "Cargo.toml", "version = \"0.1.0\"\n", "feat: a")
		repository := openRepository(t, dir, nil)

		// when
		err := repository.CommitFiles([]string{"../elsewhere/Cargo.toml"}, "chore(release): bump version to 0.2.0", committer)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside of the worktree")
	})

	t.Run("should fail when none of the files changed", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		commitFile(t, dir, repo, "Cargo.toml", "version = \"0.1.0\"\n", "feat: a")
		repository := openRepository(t, dir, nil)

		// when
		err := repository.CommitFiles([]string{"Cargo.toml"}, "chore(release): bump version to 0.1.0", committer)

		// then
		require.Error(t, err)
	})

	t.Run("should create an annotated tag on HEAD", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		hash := commitFile(t, dir, repo, "Cargo.toml", "version = \"0.1.0\"\n", "feat: a")
		repository := openRepository(t, dir, nil)

		// when
		err := repository.CreateTag("v0.1.0", "## [0.1.0] - 2026-03-14\n", committer)

		// then
		require.NoError(t, err)
		ref, err := repo.Tag("v0.1.0")
		require.NoError(t, err)
		tagObject, err := repo.TagObject(ref.Hash())
		require.NoError(t, err)
		assert.Equal(t, hash, tagObject.Target)
		assert.Equal(t, "Release Bot", tagObject.Tagger.Name)
		assert.Contains(t, tagObject.Message, "## [0.1.0]")
	})

	t.Run("should fail when the tag already exists", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepository(t)
		hash := commitFile(t, dir, repo, "Cargo.toml", "version = \"0.1.0\"\n", "feat: a")
		_, err := repo.CreateTag("v0.1.0", hash, nil)
		require.NoError(t, err)
		repository := openRepository(t, dir, nil)

		// when
		err = repository.CreateTag("v0.1.0", "again", committer)

		// then
		require.Error(t, err)
	})
}
