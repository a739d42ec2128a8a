package repositories

// ChangelogRepository reads and writes the changelog file of a repository.
type ChangelogRepository interface {
	// Read returns the current content, or "" when the file does not exist yet.
	Read(repoDir, file string) (string, error)

	Write(repoDir, file, content string) error
}
