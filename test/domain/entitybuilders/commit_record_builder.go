//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/semantic/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// CommitRecordBuilder helps create test commits with a fluent interface.
type CommitRecordBuilder struct {
	*testkit.BaseBuilder
	hash    string
	message string
}

// NewCommitRecordBuilder creates a new commit builder with sensible defaults.
func NewCommitRecordBuilder() *CommitRecordBuilder {
	return &CommitRecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		hash:        "0123456789abcdef0123456789abcdef01234567",
		message:     "chore: tidy",
	}
}

// WithHash sets the commit hash.
func (b *CommitRecordBuilder) WithHash(hash string) *CommitRecordBuilder {
	b.hash = hash
	return b
}

// WithMessage sets the full commit message.
func (b *CommitRecordBuilder) WithMessage(message string) *CommitRecordBuilder {
	b.message = message
	return b
}

// Build creates the commit (satisfies testkit.Builder interface).
func (b *CommitRecordBuilder) Build() interface{} {
	return b.BuildCommitRecord()
}

// BuildCommitRecord creates the commit with a concrete return type.
func (b *CommitRecordBuilder) BuildCommitRecord() entities.CommitRecord {
	return entities.CommitRecord{
		Hash:    b.hash,
		Message: b.message,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CommitRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.hash = "0123456789abcdef0123456789abcdef01234567"
	b.message = "chore: tidy"
	return b
}

// Clone creates a deep copy of the CommitRecordBuilder.
func (b *CommitRecordBuilder) Clone() testkit.Builder {
	return &CommitRecordBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		hash:        b.hash,
		message:     b.message,
	}
}

// CommitsFromMessages builds one commit per message with distinct hashes.
func CommitsFromMessages(messages ...string) []entities.CommitRecord {
	commits := make([]entities.CommitRecord, 0, len(messages))
	for i, message := range messages {
		commits = append(commits, NewCommitRecordBuilder().
			WithHash(fmt.Sprintf("%040x", i+1)).
			WithMessage(message).
			BuildCommitRecord())
	}
	return commits
}
