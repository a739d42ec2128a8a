package cargo

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/semantic/internal/domain/entities"
	"github.com/rios0rios0/semantic/internal/domain/repositories"
	"github.com/rios0rios0/semantic/internal/infrastructure/repositories/toolchain"
)

const (
	manifestFile = "Cargo.toml"
	lockFile     = "Cargo.lock"
	packageTable = "[package]"
)

// versionLine matches `version = "x.y.z"` keeping everything around the value.
var versionLine = regexp.MustCompile(`^(\s*version\s*=\s*")([^"]*)(".*)$`)

// cargoManifest is the minimal part of Cargo.toml the release needs.
// Version is untyped so that `version.workspace = true` decodes and can be
// reported instead of failing the whole decode.
type cargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"`
	} `toml:"package"`
}

// ProjectRepository releases Rust crates with cargo.
type ProjectRepository struct {
	tool toolchain.Tool
}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

// NewProjectRepository creates a cargo ProjectRepository using the cargo found on the system.
func NewProjectRepository() *ProjectRepository {
	return NewProjectRepositoryWithBinary("")
}

// NewProjectRepositoryWithBinary creates a cargo ProjectRepository running binary.
func NewProjectRepositoryWithBinary(binary string) *ProjectRepository {
	return &ProjectRepository{
		tool: toolchain.Tool{
			Name:     "cargo",
			Binary:   binary,
			Homes:    []string{filepath.Join(".cargo", "bin")},
			Prefix:   "[cargo]",
			ExtraEnv: []string{"CARGO_TERM_COLOR=never"},
		},
	}
}

func (it *ProjectRepository) Name() string { return "cargo" }

func (it *ProjectRepository) ManifestFile() string { return manifestFile }

func (it *ProjectRepository) LockFile() string { return lockFile }

func (it *ProjectRepository) Detect(repoDir string) bool {
	_, err := os.Stat(filepath.Join(repoDir, manifestFile))
	return err == nil
}

// ReadVersion returns the version of the [package] table.
func (it *ProjectRepository) ReadVersion(repoDir string) (string, error) {
	var manifest cargoManifest
	if _, err := toml.DecodeFile(filepath.Join(repoDir, manifestFile), &manifest); err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", manifestFile)
	}

	switch version := manifest.Package.Version.(type) {
	case string:
		if version == "" {
			return "", errors.Newf("%s has an empty package version", manifestFile)
		}
		logger.Debugf("[cargo] Package %s declares version %s", manifest.Package.Name, version)
		return version, nil
	case nil:
		return "", errors.Newf("%s has no [package] version", manifestFile)
	default:
		return "", errors.Newf("%s package version is not a plain string (workspace inheritance is not supported)", manifestFile)
	}
}

// WriteVersion substitutes the version line of the [package] table, leaving
// the rest of the file (comments, ordering, formatting) untouched.
func (it *ProjectRepository) WriteVersion(repoDir string, version entities.SemanticVersion) error {
	path := filepath.Join(repoDir, manifestFile)
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", manifestFile)
	}

	updated, replaced := replacePackageVersion(string(content), version.String())
	if !replaced {
		return errors.Newf("no version line found in the [package] table of %s", manifestFile)
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", manifestFile)
	}
	if writeErr := os.WriteFile(path, []byte(updated), info.Mode().Perm()); writeErr != nil {
		return errors.Wrapf(writeErr, "failed to write %s", manifestFile)
	}
	return nil
}

// UpdateLockfile runs `cargo fetch`, which records the new crate version in Cargo.lock.
func (it *ProjectRepository) UpdateLockfile(ctx context.Context, repoDir string) error {
	_, err := it.tool.Run(ctx, repoDir, "fetch")
	return err
}

// Package runs `cargo package`. The manifest and changelog are not committed
// yet, hence --allow-dirty.
func (it *ProjectRepository) Package(ctx context.Context, repoDir string) error {
	_, err := it.tool.Run(ctx, repoDir, "package", "--allow-dirty")
	return err
}

func replacePackageVersion(content, version string) (string, bool) {
	lines := strings.Split(content, "\n")
	inPackage := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			inPackage = trimmed == packageTable
			continue
		}
		if !inPackage {
			continue
		}
		if match := versionLine.FindStringSubmatch(strings.TrimRight(line, "\r")); match != nil {
			lines[i] = match[1] + version + match[3]
			if strings.HasSuffix(line, "\r") {
				lines[i] += "\r"
			}
			return strings.Join(lines, "\n"), true
		}
	}
	return content, false
}
