package changelog

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/rios0rios0/semantic/internal/domain/repositories"
)

const changelogFileMode = 0o644

// FileChangelogRepository keeps the changelog as a file in the working tree.
type FileChangelogRepository struct{}

var _ repositories.ChangelogRepository = (*FileChangelogRepository)(nil)

// NewFileChangelogRepository creates a new FileChangelogRepository.
func NewFileChangelogRepository() *FileChangelogRepository {
	return &FileChangelogRepository{}
}

func (it *FileChangelogRepository) Read(repoDir, file string) (string, error) {
	content, err := os.ReadFile(filepath.Join(repoDir, file))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", file)
	}
	return string(content), nil
}

func (it *FileChangelogRepository) Write(repoDir, file, content string) error {
	path := filepath.Join(repoDir, file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", file)
	}
	if err := os.WriteFile(path, []byte(content), changelogFileMode); err != nil {
		return errors.Wrapf(err, "failed to write %s", file)
	}
	return nil
}
