//go:build unit

package changelog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/semantic/internal/infrastructure/repositories/changelog"
)

func TestFileChangelogRepository(t *testing.T) {
	t.Parallel()

	t.Run("should read a missing changelog as empty", func(t *testing.T) {
		t.Parallel()

		// given
		repository := changelog.NewFileChangelogRepository()

		// when
		content, err := repository.Read(t.TempDir(), "CHANGELOG.md")

		// then
		require.NoError(t, err)
		assert.Empty(t, content)
	})

	t.Run("should write and read back a nested changelog", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repository := changelog.NewFileChangelogRepository()

		// when
		writeErr := repository.Write(dir, "docs/CHANGELOG.md", "# Changelog\n")
		content, readErr := repository.Read(dir, "docs/CHANGELOG.md")

		// then
		require.NoError(t, writeErr)
		require.NoError(t, readErr)
		assert.Equal(t, "# Changelog\n", content)
		_, statErr := os.Stat(filepath.Join(dir, "docs", "CHANGELOG.md"))
		assert.NoError(t, statErr)
	})
}
