//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/semantic/internal/domain/repositories"
)

// FakeChangelogRepository implements repositories.ChangelogRepository in memory.
type FakeChangelogRepository struct {
	Files    map[string]string // file -> content
	ReadErr  error
	WriteErr error
	Writes   int
}

var _ repositories.ChangelogRepository = (*FakeChangelogRepository)(nil)

func (c *FakeChangelogRepository) Read(_, file string) (string, error) {
	if c.ReadErr != nil {
		return "", c.ReadErr
	}
	return c.Files[file], nil
}

func (c *FakeChangelogRepository) Write(_, file, content string) error {
	if c.WriteErr != nil {
		return c.WriteErr
	}
	if c.Files == nil {
		c.Files = make(map[string]string)
	}
	c.Files[file] = content
	c.Writes++
	return nil
}
