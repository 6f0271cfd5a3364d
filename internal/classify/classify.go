// Package classify applies a type table and scope map to parsed commits,
// deciding which commits are kept and what version impact each carries.
package classify

import (
	"maps"
	"slices"

	"github.com/ariel-frischer/semcommit/internal/commit"
)

// DropReason says why a commit was not kept.
type DropReason string

const (
	DropNone            DropReason = ""
	DropDisabledType    DropReason = "disabled_type"
	DropUnknownType     DropReason = "unknown_type"
	DropDependencyChore DropReason = "dependency_chore"
)

// Classification is the outcome for one commit.
type Classification struct {
	Impact      commit.Impact
	Kept        bool
	Scope       string
	UnknownType bool
	// Type is nil for unknown types. It points into the classifier's
	// table and must not be modified.
	Type    *CommitType
	Dropped DropReason
}

// Classifier is immutable after New and safe for concurrent use.
type Classifier struct {
	types   map[string]*CommitType
	scopes  ScopeMap
	exclude bool
}

// New validates rules and returns a Classifier. Invalid rules yield a
// *ConfigError wrapping ErrConfigInvalid.
func New(rules Rules) (*Classifier, error) {
	if err := Validate(rules); err != nil {
		return nil, err
	}

	c := &Classifier{
		types:   make(map[string]*CommitType, len(rules.Types)),
		scopes:  maps.Clone(rules.Scopes),
		exclude: rules.UnknownTypes == UnknownExclude,
	}
	for key, t := range rules.Types {
		c.types[key] = &t
	}
	return c, nil
}

// Validate checks rules without building a classifier. Problems are
// reported in sorted key order so the first error is stable.
func Validate(rules Rules) error {
	for _, key := range slices.Sorted(maps.Keys(rules.Types)) {
		if key == "" {
			return &ConfigError{Field: "types", Message: "type key must not be empty"}
		}
		if !isLowerAlpha(key) {
			return &ConfigError{Field: "types." + key, Message: "type key must be lowercase letters only"}
		}
		if impact := rules.Types[key].Impact; !impact.Valid() {
			return &ConfigError{Field: "types." + key + ".semver", Message: "impact must be one of none, patch, minor, major"}
		}
	}

	if _, ok := rules.Scopes[""]; ok {
		return &ConfigError{Field: "scope_map", Message: "scope key must not be empty"}
	}

	switch rules.UnknownTypes {
	case "", UnknownInclude, UnknownExclude:
	default:
		return &ConfigError{Field: "unknown_types", Message: "must be include or exclude, got " + string(rules.UnknownTypes)}
	}

	return nil
}

// Classify decides keep/drop and impact for one commit.
func (c *Classifier) Classify(f commit.ParsedFields) Classification {
	scope := c.mapScope(f.Scope)

	t, ok := c.types[f.Type]
	if !ok {
		cl := Classification{Scope: scope, UnknownType: true, Kept: !c.exclude}
		switch {
		case !cl.Kept:
			cl.Dropped = DropUnknownType
		case f.Breaking:
			cl.Impact = commit.ImpactMajor
		}
		return cl
	}

	cl := Classification{Scope: scope, Type: t}
	if !t.Enabled {
		cl.Dropped = DropDisabledType
		return cl
	}

	if f.Type == "chore" && scope == dependencyScope && !f.Breaking {
		cl.Dropped = DropDependencyChore
		return cl
	}

	cl.Kept = true
	if f.Breaking {
		cl.Impact = commit.ImpactMajor
	} else {
		cl.Impact = t.Impact
	}
	return cl
}

// Types returns the known type keys in sorted order.
func (c *Classifier) Types() []string {
	return slices.Sorted(maps.Keys(c.types))
}

func (c *Classifier) mapScope(scope string) string {
	if scope == "" {
		return ""
	}
	if target, ok := c.scopes[scope]; ok {
		return target
	}
	return scope
}

func isLowerAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
