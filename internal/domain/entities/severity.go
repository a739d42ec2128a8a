package entities

// Severity is the declared change impact of a commit.
// The zero value is SeverityUnknown and the constants are ordered so that
// a plain integer comparison matches Unknown < Patch < Minor < Major.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityPatch
	SeverityMinor
	SeverityMajor
)

// String returns the human-readable name used in progress output.
func (s Severity) String() string {
	switch s {
	case SeverityPatch:
		return "Patch"
	case SeverityMinor:
		return "Minor"
	case SeverityMajor:
		return "Major"
	default:
		return "Unknown"
	}
}
