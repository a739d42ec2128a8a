package controllers

import (
	"github.com/rios0rios0/semantic/internal/domain/entities"
	"go.uber.org/dig"
)

var _ entities.Controller = (*ReleaseController)(nil)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewReleaseController); err != nil {
		return err
	}

	return nil
}
