package entities

import (
	"strings"
	"time"
)

const shortHashLength = 7

// CommitRecord is a commit in the range being released.
type CommitRecord struct {
	Hash    string
	Message string
}

// Subject returns the first line of the commit message.
func (c CommitRecord) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// ShortHash returns the abbreviated commit hash used in changelog entries.
func (c CommitRecord) ShortHash() string {
	if len(c.Hash) <= shortHashLength {
		return c.Hash
	}
	return c.Hash[:shortHashLength]
}

// Signature identifies the committer of the release commit and tag.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}
