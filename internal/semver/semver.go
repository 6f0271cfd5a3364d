// Package semver holds the MAJOR.MINOR.PATCH version type used for bump
// arithmetic. Prerelease and build suffixes are rejected.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ariel-frischer/semcommit/internal/commit"
	xsemver "golang.org/x/mod/semver"
)

// Version represents a semantic version with major, minor, patch components.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses "1.2.3" or "v1.2.3" into a Version.
func Parse(s string) (Version, error) {
	canonical := "v" + strings.TrimPrefix(strings.TrimSpace(s), "v")
	if !xsemver.IsValid(canonical) {
		return Version{}, fmt.Errorf("invalid version format: %q (expected X.Y.Z)", s)
	}
	if xsemver.Prerelease(canonical) != "" || xsemver.Build(canonical) != "" {
		return Version{}, fmt.Errorf("unsupported version %q: prerelease and build metadata are not handled", s)
	}

	parts := strings.Split(canonical[1:], ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %q (expected X.Y.Z)", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q in %q: %w", p, s, err)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is Parse for constants. It panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version without a prefix.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the version with the given prefix, e.g. "v1.2.3".
func (v Version) Tag(prefix string) string {
	return prefix + v.String()
}

// Compare returns -1, 0 or 1 as v is less than, equal to or greater than other.
func (v Version) Compare(other Version) int {
	return xsemver.Compare("v"+v.String(), "v"+other.String())
}

// Stable reports whether the version is 1.0.0 or later.
func (v Version) Stable() bool {
	return v.Major > 0
}

// Apply increments the component named by impact and zeroes the lower ones.
// ImpactNone returns v unchanged.
func (v Version) Apply(impact commit.Impact) Version {
	switch impact {
	case commit.ImpactMajor:
		return Version{Major: v.Major + 1}
	case commit.ImpactMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case commit.ImpactPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
