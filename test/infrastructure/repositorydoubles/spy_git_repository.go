//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/semantic/internal/domain/entities"
	"github.com/rios0rios0/semantic/internal/domain/repositories"
)

// StubGitOpener implements repositories.GitOpener returning a fixed repository.
type StubGitOpener struct {
	Repository  repositories.GitRepository
	OpenErr     error
	OpenedPaths []string
}

var _ repositories.GitOpener = (*StubGitOpener)(nil)

func (o *StubGitOpener) Open(path string) (repositories.GitRepository, error) {
	o.OpenedPaths = append(o.OpenedPaths, path)
	if o.OpenErr != nil {
		return nil, o.OpenErr
	}
	return o.Repository, nil
}

// SpyGitRepository implements repositories.GitRepository as a configurable spy.
type SpyGitRepository struct {
	// --- Signature ---
	Committer    entities.Signature
	SignatureErr error

	// --- LatestReleaseTag ---
	LatestTag    string
	LatestTagErr error

	// --- CommitsSince ---
	Commits       []entities.CommitRecord
	CommitsErr    error
	CommitsSinces []string

	// --- CommitFiles ---
	CommitErr   error
	CommitCalls []CommitFilesCall

	// --- CreateTag ---
	TagErr   error
	TagCalls []CreateTagCall
}

// CommitFilesCall records a single invocation of CommitFiles.
type CommitFilesCall struct {
	Paths     []string
	Message   string
	Committer entities.Signature
}

// CreateTagCall records a single invocation of CreateTag.
type CreateTagCall struct {
	Name    string
	Message string
	Tagger  entities.Signature
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (r *SpyGitRepository) Signature() (entities.Signature, error) {
	return r.Committer, r.SignatureErr
}

func (r *SpyGitRepository) LatestReleaseTag() (string, error) {
	return r.LatestTag, r.LatestTagErr
}

func (r *SpyGitRepository) CommitsSince(tag string) ([]entities.CommitRecord, error) {
	r.CommitsSinces = append(r.CommitsSinces, tag)
	return r.Commits, r.CommitsErr
}

func (r *SpyGitRepository) CommitFiles(paths []string, message string, committer entities.Signature) error {
	r.CommitCalls = append(r.CommitCalls, CommitFilesCall{Paths: paths, Message: message, Committer: committer})
	return r.CommitErr
}

func (r *SpyGitRepository) CreateTag(name, message string, tagger entities.Signature) error {
	r.TagCalls = append(r.TagCalls, CreateTagCall{Name: name, Message: message, Tagger: tagger})
	return r.TagErr
}
