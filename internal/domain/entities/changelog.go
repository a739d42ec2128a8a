package entities

import (
	"fmt"
	"strings"
	"time"
)

const (
	changelogTitle       = "# Changelog"
	unreleasedHeading    = "## [Unreleased]"
	releaseHeadingPrefix = "## "
	changelogDateLayout  = "2006-01-02"
)

// changelogGroup is a subsection of a rendered release.
type changelogGroup struct {
	heading  string
	severity Severity
}

//nolint:gochecknoglobals // rendering order of the release subsections
var changelogGroups = []changelogGroup{
	{heading: "### Breaking Changes", severity: SeverityMajor},
	{heading: "### Features", severity: SeverityMinor},
	{heading: "### Bug Fixes", severity: SeverityPatch},
}

// RenderChangelog renders the changelog section of a release. Commits that
// do not trigger a bump are left out.
func RenderChangelog(version SemanticVersion, date time.Time, commits []CommitRecord) string {
	entries := make(map[Severity][]string, len(changelogGroups))
	for _, record := range commits {
		commit, ok := ParseConventionalCommit(record.Message)
		if !ok {
			continue
		}
		severity := ClassifyCommit(record.Message)
		if severity == SeverityUnknown {
			continue
		}
		entries[severity] = append(entries[severity], changelogEntry(commit, record))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## [%s] - %s\n", version, date.Format(changelogDateLayout))
	for _, group := range changelogGroups {
		if len(entries[group.severity]) == 0 {
			continue
		}
		sb.WriteString("\n" + group.heading + "\n\n")
		for _, entry := range entries[group.severity] {
			sb.WriteString(entry + "\n")
		}
	}
	return sb.String()
}

func changelogEntry(commit ConventionalCommit, record CommitRecord) string {
	entry := "- "
	if commit.Scope != "" {
		entry += fmt.Sprintf("**%s:** ", commit.Scope)
	}
	entry += commit.Description
	if hash := record.ShortHash(); hash != "" {
		entry += fmt.Sprintf(" (%s)", hash)
	}
	return entry
}

// InsertChangelogRelease inserts a rendered release section into the content
// of a changelog file.
//
// Behaviour:
//   - Empty content becomes a new changelog with a "# Changelog" title.
//   - If "## [Unreleased]" exists, the release goes right after that section.
//   - Otherwise the release goes above the first "## " heading, or at the end
//     of the file when there is none.
func InsertChangelogRelease(content, section string) string {
	block := strings.Split(strings.TrimRight(section, "\n"), "\n")
	if strings.TrimSpace(content) == "" {
		return changelogTitle + "\n\n" + strings.Join(block, "\n") + "\n"
	}

	lines := strings.Split(content, "\n")
	at := findReleaseInsertIndex(lines)

	block = append(block, "")
	if at > 0 && strings.TrimSpace(lines[at-1]) != "" {
		block = append([]string{""}, block...)
	}

	return strings.Join(insertLines(lines, at, block), "\n")
}

func findReleaseInsertIndex(lines []string) int {
	if unreleasedIdx := findUnreleasedIndex(lines); unreleasedIdx >= 0 {
		return findNextH2Index(lines, unreleasedIdx)
	}
	return findNextH2Index(lines, -1)
}

// findUnreleasedIndex returns the line index of the "## [Unreleased]"
// heading, or -1 if not found.
func findUnreleasedIndex(lines []string) int {
	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), unreleasedHeading) {
			return i
		}
	}
	return -1
}

// findNextH2Index returns the line index of the next "## " heading after
// startIdx, or len(lines) if there is none.
func findNextH2Index(lines []string, startIdx int) int {
	for i := startIdx + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), releaseHeadingPrefix) {
			return i
		}
	}
	return len(lines)
}

// insertLines inserts extra lines into slice at the given index.
func insertLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	result = append(result, lines[at:]...)
	return result
}
