package npm

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/semantic/internal/domain/entities"
	"github.com/rios0rios0/semantic/internal/domain/repositories"
	"github.com/rios0rios0/semantic/internal/infrastructure/repositories/toolchain"
)

const (
	manifestFile = "package.json"
	lockFile     = "package-lock.json"
)

// versionField matches the first `"version": "..."` pair of package.json.
var versionField = regexp.MustCompile(`("version"\s*:\s*")([^"]*)(")`)

type packageManifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ProjectRepository releases JavaScript packages with npm.
type ProjectRepository struct {
	tool toolchain.Tool
}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

// NewProjectRepository creates an npm ProjectRepository using the npm found on the system.
func NewProjectRepository() *ProjectRepository {
	return NewProjectRepositoryWithBinary("")
}

// NewProjectRepositoryWithBinary creates an npm ProjectRepository running binary.
func NewProjectRepositoryWithBinary(binary string) *ProjectRepository {
	return &ProjectRepository{
		tool: toolchain.Tool{
			Name:     "npm",
			Binary:   binary,
			Homes:    []string{filepath.Join(".volta", "bin"), filepath.Join(".local", "bin")},
			Prefix:   "[npm]",
			ExtraEnv: []string{
				"npm_config_update_notifier=false",
				"npm_config_fund=false",
				"npm_config_color=false",
			},
		},
	}
}

func (it *ProjectRepository) Name() string { return "npm" }

func (it *ProjectRepository) ManifestFile() string { return manifestFile }

func (it *ProjectRepository) LockFile() string { return lockFile }

func (it *ProjectRepository) Detect(repoDir string) bool {
	_, err := os.Stat(filepath.Join(repoDir, manifestFile))
	return err == nil
}

func (it *ProjectRepository) ReadVersion(repoDir string) (string, error) {
	manifest, err := readManifest(repoDir)
	if err != nil {
		return "", err
	}
	if manifest.Version == "" {
		return "", errors.Newf("%s has no version field", manifestFile)
	}
	logger.Debugf("[npm] Package %s declares version %s", manifest.Name, manifest.Version)
	return manifest.Version, nil
}

// WriteVersion substitutes the version value in place and checks that the
// result still decodes to the expected version.
func (it *ProjectRepository) WriteVersion(repoDir string, version entities.SemanticVersion) error {
	path := filepath.Join(repoDir, manifestFile)
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", manifestFile)
	}

	loc := versionField.FindSubmatchIndex(content)
	if loc == nil {
		return errors.Newf("no version field found in %s", manifestFile)
	}
	updated := make([]byte, 0, len(content)+len(version.String()))
	updated = append(updated, content[:loc[4]]...)
	updated = append(updated, version.String()...)
	updated = append(updated, content[loc[5]:]...)

	var manifest packageManifest
	if decodeErr := json.Unmarshal(updated, &manifest); decodeErr != nil {
		return errors.Wrapf(decodeErr, "rewritten %s is not valid JSON", manifestFile)
	}
	if manifest.Version != version.String() {
		return errors.Newf("the first version field of %s is not the package version", manifestFile)
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", manifestFile)
	}
	if writeErr := os.WriteFile(path, updated, info.Mode().Perm()); writeErr != nil {
		return errors.Wrapf(writeErr, "failed to write %s", manifestFile)
	}
	return nil
}

// UpdateLockfile regenerates package-lock.json without installing node_modules.
func (it *ProjectRepository) UpdateLockfile(ctx context.Context, repoDir string) error {
	_, err := it.tool.Run(ctx, repoDir, "install", "--package-lock-only", "--ignore-scripts")
	return err
}

// Package builds the tarball with `npm pack`.
func (it *ProjectRepository) Package(ctx context.Context, repoDir string) error {
	_, err := it.tool.Run(ctx, repoDir, "pack")
	return err
}

func readManifest(repoDir string) (*packageManifest, error) {
	content, err := os.ReadFile(filepath.Join(repoDir, manifestFile))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", manifestFile)
	}
	var manifest packageManifest
	if decodeErr := json.Unmarshal(content, &manifest); decodeErr != nil {
		return nil, errors.Wrapf(decodeErr, "failed to parse %s", manifestFile)
	}
	return &manifest, nil
}
