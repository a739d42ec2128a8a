package repositories

import (
	"strings"

	"github.com/cockroachdb/errors"

	domainRepos "github.com/rios0rios0/semantic/internal/domain/repositories"
)

// ProjectRegistry manages all registered ecosystem implementations.
// Detection follows registration order.
type ProjectRegistry struct {
	projects map[string]domainRepos.ProjectRepository
	order    []string
}

var _ domainRepos.ProjectDetector = (*ProjectRegistry)(nil)

// NewProjectRegistry creates an empty project registry.
func NewProjectRegistry() *ProjectRegistry {
	return &ProjectRegistry{
		projects: make(map[string]domainRepos.ProjectRepository),
	}
}

// Register adds an ecosystem under its name.
func (r *ProjectRegistry) Register(p domainRepos.ProjectRepository) {
	if _, ok := r.projects[p.Name()]; !ok {
		r.order = append(r.order, p.Name())
	}
	r.projects[p.Name()] = p
}

// Get returns the ecosystem with the given name, or nil if not registered.
func (r *ProjectRegistry) Get(name string) domainRepos.ProjectRepository {
	return r.projects[name]
}

// Names returns the registered ecosystem names in detection order.
func (r *ProjectRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Detect returns the forced ecosystem when one is named, otherwise the first
// registered ecosystem whose manifest exists in repoDir.
func (r *ProjectRegistry) Detect(repoDir, forced string) (domainRepos.ProjectRepository, error) {
	if forced != "" {
		project := r.Get(forced)
		if project == nil {
			return nil, errors.Newf("unknown ecosystem %q (supported: %s)", forced, strings.Join(r.order, ", "))
		}
		if !project.Detect(repoDir) {
			return nil, errors.Newf("no %s found in %s", project.ManifestFile(), repoDir)
		}
		return project, nil
	}

	manifests := make([]string, 0, len(r.order))
	for _, name := range r.order {
		project := r.projects[name]
		if project.Detect(repoDir) {
			return project, nil
		}
		manifests = append(manifests, project.ManifestFile())
	}
	return nil, errors.Newf(
		"no supported project found in %s, expected one of: %s",
		repoDir, strings.Join(manifests, ", "),
	)
}
