package entities

import (
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// ErrInvalidVersion is returned when a manifest carries a version string
// that is not a usable semantic version.
var ErrInvalidVersion = errors.New("invalid semantic version")

// SemanticVersion is an immutable major.minor.patch triple.
type SemanticVersion struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// ParseSemanticVersion parses the version string of a package manifest.
// Pre-release and build metadata are accepted and dropped, the next release
// is always computed from the numeric triple.
func ParseSemanticVersion(raw string) (SemanticVersion, error) {
	parsed, err := semver.StrictNewVersion(raw)
	if err != nil {
		return SemanticVersion{}, errors.Wrapf(ErrInvalidVersion, "%q: %v", raw, err)
	}
	version := SemanticVersion{
		Major: parsed.Major(),
		Minor: parsed.Minor(),
		Patch: parsed.Patch(),
	}
	if version.Major == math.MaxUint64 || version.Minor == math.MaxUint64 || version.Patch == math.MaxUint64 {
		return SemanticVersion{}, errors.Wrapf(ErrInvalidVersion, "%q: component cannot be incremented", raw)
	}
	return version, nil
}

// String returns the canonical "major.minor.patch" form.
func (v SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the release tag name for this version.
func (v SemanticVersion) Tag() string {
	return "v" + v.String()
}
