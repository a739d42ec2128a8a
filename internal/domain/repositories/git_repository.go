package repositories

import (
	"github.com/rios0rios0/semantic/internal/domain/entities"
)

// GitOpener opens the version-control repository of a working directory.
type GitOpener interface {
	Open(path string) (GitRepository, error)
}

// GitRepository abstracts the version-control operations a release needs.
type GitRepository interface {
	// Signature resolves the committer identity used for the release commit and tag.
	Signature() (entities.Signature, error)

	// LatestReleaseTag returns the name of the highest release tag, or "" when
	// the repository has never been released.
	LatestReleaseTag() (string, error)

	// CommitsSince lists the commits reachable from HEAD that are not reachable
	// from tag. An empty tag lists the whole history.
	CommitsSince(tag string) ([]entities.CommitRecord, error)

	// CommitFiles stages the given paths (relative to the repository root) and
	// commits them on HEAD.
	CommitFiles(paths []string, message string, committer entities.Signature) error

	// CreateTag creates an annotated tag on HEAD.
	CreateTag(name, message string, tagger entities.Signature) error
}
