// Package infer reduces classified commits to a single version bump.
package infer

import (
	"github.com/ariel-frischer/semcommit/internal/commit"
	"github.com/ariel-frischer/semcommit/internal/semver"
)

// Bump is the inferred release decision.
type Bump struct {
	// Kind is the component to increment after the pre-1.0 downgrade.
	Kind commit.Impact `json:"kind" yaml:"kind"`
	// Breaking reports that a kept commit seen before the scan stopped was
	// breaking. The scan stops at the first major impact.
	Breaking bool `json:"breaking" yaml:"breaking"`
	// Override, when set, is the exact next version.
	Override *semver.Version `json:"override,omitempty" yaml:"override,omitempty"`
}

// Infer takes the highest impact among kept commits. Before 1.0.0 a major
// impact becomes minor and a minor impact becomes patch. A non-nil override
// bypasses inference.
//
// With no impactful commits the result is ImpactNone and the version does
// not change.
func Infer(commits []commit.ParsedCommit, current semver.Version, override *semver.Version) Bump {
	if override != nil {
		v := *override
		return Bump{Kind: kindBetween(current, v), Override: &v}
	}

	var b Bump
	for i := range commits {
		c := &commits[i]
		if !c.Kept {
			continue
		}
		if c.Breaking {
			b.Breaking = true
		}
		if c.Impact > b.Kind {
			b.Kind = c.Impact
		}
		if b.Kind == commit.ImpactMajor {
			break
		}
	}

	if !current.Stable() {
		switch b.Kind {
		case commit.ImpactMajor:
			b.Kind = commit.ImpactMinor
		case commit.ImpactMinor:
			b.Kind = commit.ImpactPatch
		}
	}
	return b
}

// Next applies b to current.
func Next(current semver.Version, b Bump) semver.Version {
	if b.Override != nil {
		return *b.Override
	}
	return current.Apply(b.Kind)
}

// Changed reports whether applying b to current yields a different version.
func Changed(current semver.Version, b Bump) bool {
	return Next(current, b).Compare(current) != 0
}

// kindBetween names the highest component that differs between two versions
// so an override still reports a meaningful kind.
func kindBetween(from, to semver.Version) commit.Impact {
	switch {
	case from.Major != to.Major:
		return commit.ImpactMajor
	case from.Minor != to.Minor:
		return commit.ImpactMinor
	case from.Patch != to.Patch:
		return commit.ImpactPatch
	default:
		return commit.ImpactNone
	}
}
