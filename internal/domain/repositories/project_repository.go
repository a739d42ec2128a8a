package repositories

import (
	"context"

	"github.com/rios0rios0/semantic/internal/domain/entities"
)

// ProjectRepository abstracts a package ecosystem (Cargo crates, npm packages, etc.).
// It owns the manifest version field and drives the ecosystem's build tool
// for the lockfile and the distributable artifact.
type ProjectRepository interface {
	// Name returns the ecosystem identifier (e.g. "cargo", "npm").
	Name() string

	// Detect returns true if the directory holds a project of this ecosystem.
	Detect(repoDir string) bool

	// ManifestFile and LockFile return the paths, relative to the repository
	// root, that a release commit touches.
	ManifestFile() string
	LockFile() string

	// ReadVersion returns the raw version string declared by the manifest.
	ReadVersion(repoDir string) (string, error)

	// WriteVersion replaces the manifest version with version.
	WriteVersion(repoDir string, version entities.SemanticVersion) error

	// UpdateLockfile regenerates the lockfile through the ecosystem's build tool.
	UpdateLockfile(ctx context.Context, repoDir string) error

	// Package produces the distributable artifact through the ecosystem's build tool.
	Package(ctx context.Context, repoDir string) error
}

// ProjectDetector resolves the ecosystem of a repository.
type ProjectDetector interface {
	Detect(repoDir, forced string) (ProjectRepository, error)
}
