package internal

import (
	"github.com/rios0rios0/semantic/internal/infrastructure/controllers"
)

// AppInternal holds the wired application.
type AppInternal struct {
	releaseController *controllers.ReleaseController
}

// NewAppInternal creates the AppInternal from the injected controllers.
func NewAppInternal(releaseController *controllers.ReleaseController) *AppInternal {
	return &AppInternal{releaseController: releaseController}
}

// GetReleaseController returns the controller bound to the root command.
func (it *AppInternal) GetReleaseController() *controllers.ReleaseController {
	return it.releaseController
}
