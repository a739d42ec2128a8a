//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/semantic/internal/domain/commands"
	"github.com/rios0rios0/semantic/internal/domain/entities"
)

// StubReleaseCommand is a stub implementation of commands.Release.
type StubReleaseCommand struct {
	ExecuteCallCount int
	ExecuteResult    *entities.ReleaseResult
	ExecuteErr       error
	LastOpts         commands.ReleaseOptions
}

var _ commands.Release = (*StubReleaseCommand)(nil)

func (s *StubReleaseCommand) Execute(
	_ context.Context,
	opts commands.ReleaseOptions,
) (*entities.ReleaseResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteResult == nil {
		s.ExecuteResult = &entities.ReleaseResult{State: entities.ReleaseStateDone}
	}
	return s.ExecuteResult, s.ExecuteErr
}
