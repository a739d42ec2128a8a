//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/semantic/internal/domain/entities"
	"github.com/rios0rios0/semantic/internal/domain/repositories"
)

// SpyProjectRepository implements repositories.ProjectRepository as a configurable spy.
type SpyProjectRepository struct {
	// --- identity ---
	ProjectName string
	Manifest    string
	Lock        string

	// --- Detect ---
	DetectResult bool

	// --- ReadVersion ---
	Version        string
	ReadVersionErr error

	// --- WriteVersion ---
	WriteVersionErr error
	WrittenVersions []entities.SemanticVersion

	// --- UpdateLockfile ---
	LockfileErr   error
	LockfileCalls int

	// --- Package ---
	PackageErr   error
	PackageCalls int
}

var _ repositories.ProjectRepository = (*SpyProjectRepository)(nil)

func (p *SpyProjectRepository) Name() string { return p.ProjectName }

func (p *SpyProjectRepository) Detect(_ string) bool { return p.DetectResult }

func (p *SpyProjectRepository) ManifestFile() string { return p.Manifest }

func (p *SpyProjectRepository) LockFile() string { return p.Lock }

func (p *SpyProjectRepository) ReadVersion(_ string) (string, error) {
	return p.Version, p.ReadVersionErr
}

func (p *SpyProjectRepository) WriteVersion(_ string, version entities.SemanticVersion) error {
	p.WrittenVersions = append(p.WrittenVersions, version)
	return p.WriteVersionErr
}

func (p *SpyProjectRepository) UpdateLockfile(_ context.Context, _ string) error {
	p.LockfileCalls++
	return p.LockfileErr
}

func (p *SpyProjectRepository) Package(_ context.Context, _ string) error {
	p.PackageCalls++
	return p.PackageErr
}

// StubProjectDetector implements repositories.ProjectDetector returning a fixed project.
type StubProjectDetector struct {
	Project   repositories.ProjectRepository
	DetectErr error
	Forced    []string
}

var _ repositories.ProjectDetector = (*StubProjectDetector)(nil)

func (d *StubProjectDetector) Detect(_, forced string) (repositories.ProjectRepository, error) {
	d.Forced = append(d.Forced, forced)
	if d.DetectErr != nil {
		return nil, d.DetectErr
	}
	return d.Project, nil
}
