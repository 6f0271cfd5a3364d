package commit

import "fmt"

// Impact is the effect of a change on the next version number.
// Values are ordered: None < Patch < Minor < Major.
type Impact int

const (
	ImpactNone Impact = iota
	ImpactPatch
	ImpactMinor
	ImpactMajor
)

// String returns the lowercase name of the impact.
func (i Impact) String() string {
	switch i {
	case ImpactNone:
		return "none"
	case ImpactPatch:
		return "patch"
	case ImpactMinor:
		return "minor"
	case ImpactMajor:
		return "major"
	default:
		return fmt.Sprintf("impact(%d)", int(i))
	}
}

// Valid reports whether i is one of the four defined impacts.
func (i Impact) Valid() bool {
	return i >= ImpactNone && i <= ImpactMajor
}

// ParseImpact converts "none", "patch", "minor" or "major" to an Impact.
func ParseImpact(s string) (Impact, error) {
	switch s {
	case "none":
		return ImpactNone, nil
	case "patch":
		return ImpactPatch, nil
	case "minor":
		return ImpactMinor, nil
	case "major":
		return ImpactMajor, nil
	default:
		return ImpactNone, fmt.Errorf("invalid semver impact %q (expected: none, patch, minor, major)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (i Impact) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("invalid semver impact %d", int(i))
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Impact) UnmarshalText(text []byte) error {
	v, err := ParseImpact(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
