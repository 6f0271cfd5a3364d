package classify

import (
	"maps"

	"github.com/ariel-frischer/semcommit/internal/commit"
)

// CommitType describes how commits of one conventional type are treated.
type CommitType struct {
	Title   string        `json:"title" yaml:"title"`
	Emoji   string        `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Impact  commit.Impact `json:"semver" yaml:"semver"`
	Enabled bool          `json:"enabled" yaml:"enabled"`
}

// TypeTable maps lowercase commit types to their treatment.
type TypeTable map[string]CommitType

// ScopeMap rewrites scopes by exact match. An empty target removes the scope.
type ScopeMap map[string]string

// UnknownTypePolicy controls commits whose type is missing or not in the table.
type UnknownTypePolicy string

const (
	// UnknownInclude keeps unknown-type commits with no version impact.
	UnknownInclude UnknownTypePolicy = "include"
	// UnknownExclude drops unknown-type commits.
	UnknownExclude UnknownTypePolicy = "exclude"
)

// dependencyScope is the scope that marks routine dependency updates.
const dependencyScope = "deps"

// Rules is the complete classification configuration.
type Rules struct {
	Types  TypeTable
	Scopes ScopeMap
	// UnknownTypes defaults to UnknownInclude when empty.
	UnknownTypes UnknownTypePolicy
}

// DefaultTypes returns a fresh copy of the built-in type table.
func DefaultTypes() TypeTable {
	return TypeTable{
		"feat":     {Title: "Features", Emoji: "✨", Impact: commit.ImpactMinor, Enabled: true},
		"fix":      {Title: "Bug Fixes", Emoji: "🐞", Impact: commit.ImpactPatch, Enabled: true},
		"perf":     {Title: "Performance", Emoji: "⚡️", Impact: commit.ImpactPatch, Enabled: true},
		"docs":     {Title: "Documentation", Emoji: "📚", Impact: commit.ImpactNone, Enabled: true},
		"refactor": {Title: "Refactors", Emoji: "🛠", Impact: commit.ImpactPatch, Enabled: true},
		"style":    {Title: "Styles", Emoji: "🎨", Impact: commit.ImpactNone, Enabled: true},
		"test":     {Title: "Tests", Emoji: "🧪", Impact: commit.ImpactNone, Enabled: true},
		"build":    {Title: "Build System", Emoji: "📦", Impact: commit.ImpactNone, Enabled: true},
		"ci":       {Title: "Continuous Integration", Emoji: "👷", Impact: commit.ImpactNone, Enabled: true},
		"chore":    {Title: "Chores", Emoji: "🧹", Impact: commit.ImpactNone, Enabled: true},
		"revert":   {Title: "Reverts", Emoji: "⏪", Impact: commit.ImpactPatch, Enabled: true},
	}
}

// DefaultRules returns the built-in rules: the default type table, no scope
// rewrites and unknown types included.
func DefaultRules() Rules {
	return Rules{
		Types:        DefaultTypes(),
		Scopes:       ScopeMap{},
		UnknownTypes: UnknownInclude,
	}
}

// Clone returns a deep copy of r.
func (r Rules) Clone() Rules {
	return Rules{
		Types:        maps.Clone(r.Types),
		Scopes:       maps.Clone(r.Scopes),
		UnknownTypes: r.UnknownTypes,
	}
}
