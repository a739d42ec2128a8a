//go:build unit

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraRepos "github.com/rios0rios0/semantic/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/semantic/test/infrastructure/repositorydoubles"
)

func newRegistry(cargoPresent, npmPresent bool) *infraRepos.ProjectRegistry {
	registry := infraRepos.NewProjectRegistry()
	registry.Register(&doubles.SpyProjectRepository{
		ProjectName: "cargo", Manifest: "Cargo.toml", DetectResult: cargoPresent,
	})
	registry.Register(&doubles.SpyProjectRepository{
		ProjectName: "npm", Manifest: "package.json", DetectResult: npmPresent,
	})
	return registry
}

func TestProjectRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register and retrieve a project by name", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(false, false)

		// when
		project := registry.Get("npm")

		// then
		require.NotNil(t, project)
		assert.Equal(t, "npm", project.Name())
		assert.Nil(t, registry.Get("maven"))
	})

	t.Run("should list names in registration order", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(false, false)

		// when
		names := registry.Names()

		// then
		assert.Equal(t, []string{"cargo", "npm"}, names)
	})

	t.Run("should detect the first matching project", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(true, true)

		// when
		project, err := registry.Detect("/repo", "")

		// then
		require.NoError(t, err)
		assert.Equal(t, "cargo", project.Name())
	})

	t.Run("should honour a forced ecosystem", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(true, true)

		// when
		project, err := registry.Detect("/repo", "npm")

		// then
		require.NoError(t, err)
		assert.Equal(t, "npm", project.Name())
	})

	t.Run("should fail for an unknown forced ecosystem", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(true, true)

		// when
		_, err := registry.Detect("/repo", "maven")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown ecosystem \"maven\"")
	})

	t.Run("should fail when the forced manifest is missing", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(true, false)

		// when
		_, err := registry.Detect("/repo", "npm")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no package.json found")
	})

	t.Run("should list the expected manifests when nothing matches", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(false, false)

		// when
		_, err := registry.Detect("/repo", "")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cargo.toml, package.json")
	})

	t.Run("should replace a project registered twice", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(false, false)

		// when
		registry.Register(&doubles.SpyProjectRepository{ProjectName: "cargo", Manifest: "Cargo.toml", DetectResult: true})
		project, err := registry.Detect("/repo", "")

		// then
		require.NoError(t, err)
		assert.Equal(t, "cargo", project.Name())
		assert.Equal(t, []string{"cargo", "npm"}, registry.Names())
	})
}
