package entities

// DecideBump reduces the severities of a commit range to a single decision:
// the highest severity wins, an empty range yields SeverityUnknown.
func DecideBump(severities []Severity) Severity {
	decision := SeverityUnknown
	for _, severity := range severities {
		decision = max(decision, severity)
	}
	return decision
}

// ApplyBump derives the next version. It returns false for SeverityUnknown,
// meaning there is nothing to release.
func ApplyBump(version SemanticVersion, bump Severity) (SemanticVersion, bool) {
	switch bump {
	case SeverityPatch:
		return SemanticVersion{Major: version.Major, Minor: version.Minor, Patch: version.Patch + 1}, true
	case SeverityMinor:
		return SemanticVersion{Major: version.Major, Minor: version.Minor + 1}, true
	case SeverityMajor:
		return SemanticVersion{Major: version.Major + 1}, true
	default:
		return SemanticVersion{}, false
	}
}
