package repositories

import (
	domainRepos "github.com/rios0rios0/semantic/internal/domain/repositories"
	cargoRepo "github.com/rios0rios0/semantic/internal/infrastructure/repositories/cargo"
	changelogRepo "github.com/rios0rios0/semantic/internal/infrastructure/repositories/changelog"
	gitRepo "github.com/rios0rios0/semantic/internal/infrastructure/repositories/git"
	npmRepo "github.com/rios0rios0/semantic/internal/infrastructure/repositories/npm"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register project registry with all ecosystem implementations
	if err := container.Provide(func() *ProjectRegistry {
		reg := NewProjectRegistry()
		reg.Register(cargoRepo.NewProjectRepository())
		reg.Register(npmRepo.NewProjectRepository())
		return reg
	}); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *ProjectRegistry) domainRepos.ProjectDetector {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.GitOpener {
		return gitRepo.NewOpener()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.ChangelogRepository {
		return changelogRepo.NewFileChangelogRepository()
	}); err != nil {
		return err
	}

	return nil
}
