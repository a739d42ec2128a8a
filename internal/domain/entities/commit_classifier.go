package entities

import "strings"

const (
	breakingChangeFooter       = "BREAKING CHANGE:"
	breakingChangeFooterHyphen = "BREAKING-CHANGE:"
)

// commitTypeSeverities maps a conventional commit type keyword to the bump it
// triggers. Types that are not listed (chore, docs, refactor, ...) do not
// trigger a release on their own.
//
//nolint:gochecknoglobals // lookup table
var commitTypeSeverities = map[string]Severity{
	"fix":  SeverityPatch,
	"feat": SeverityMinor,
}

// ConventionalCommit is the parsed form of a commit message following
// `<type>(<scope>)!: <description>`.
type ConventionalCommit struct {
	Type        string
	Scope       string
	Description string
	Breaking    bool
}

// ClassifyCommit returns the severity declared by a commit message.
// It never fails: anything that does not follow the grammar is SeverityUnknown.
func ClassifyCommit(message string) Severity {
	commit, ok := ParseConventionalCommit(message)
	if !ok {
		return SeverityUnknown
	}
	if commit.Breaking {
		return SeverityMajor
	}
	return commitTypeSeverities[commit.Type]
}

// ParseConventionalCommit parses the subject line of message and scans the
// remaining lines for a breaking change footer. The second return value is
// false when the subject does not follow the grammar.
func ParseConventionalCommit(message string) (ConventionalCommit, bool) {
	subject, body, _ := strings.Cut(message, "\n")
	subject = strings.TrimRight(subject, "\r")

	commit, ok := parseSubject(subject)
	if !ok {
		return ConventionalCommit{}, false
	}
	if !commit.Breaking {
		commit.Breaking = hasBreakingFooter(body)
	}
	return commit, true
}

func parseSubject(subject string) (ConventionalCommit, bool) {
	var commit ConventionalCommit

	pos := 0
	for pos < len(subject) && subject[pos] >= 'a' && subject[pos] <= 'z' {
		pos++
	}
	if pos == 0 {
		return commit, false
	}
	commit.Type = subject[:pos]

	if pos < len(subject) && subject[pos] == '(' {
		end := strings.IndexAny(subject[pos+1:], "()")
		if end <= 0 || subject[pos+1+end] != ')' {
			return commit, false
		}
		commit.Scope = subject[pos+1 : pos+1+end]
		pos += end + 2
	}

	if pos < len(subject) && subject[pos] == '!' {
		commit.Breaking = true
		pos++
	}

	if !strings.HasPrefix(subject[pos:], ": ") {
		return commit, false
	}
	commit.Description = strings.TrimSpace(subject[pos+2:])
	if commit.Description == "" {
		return commit, false
	}
	return commit, true
}

func hasBreakingFooter(body string) bool {
	for line := range strings.SplitSeq(body, "\n") {
		if strings.HasPrefix(line, breakingChangeFooter) || strings.HasPrefix(line, breakingChangeFooterHyphen) {
			return true
		}
	}
	return false
}
