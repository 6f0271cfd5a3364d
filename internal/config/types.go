package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/ariel-frischer/semcommit/internal/classify"
	"github.com/ariel-frischer/semcommit/internal/commit"
)

// resolveTypes overlays configured type entries on the built-in table.
//
//	feat: false                 # disable
//	wip: true                   # enable, adding it with no impact if unknown
//	perf: {semver: minor}       # partial override of a built-in entry
//	deps: {title: Dependencies} # new type, enabled unless enabled: false
func resolveTypes(raw map[string]any) (classify.TypeTable, error) {
	table := classify.DefaultTypes()

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		t, known := table[key]
		if !known {
			t = classify.CommitType{Title: key, Enabled: true}
		}

		switch v := raw[key].(type) {
		case map[string]any:
			if err := applyTypeFields(&t, key, v); err != nil {
				return nil, err
			}
		default:
			enabled, err := toBool(v)
			if err != nil {
				return nil, &classify.ConfigError{
					Field:   "types." + key,
					Message: "must be true, false or a {title, emoji, semver, enabled} map",
				}
			}
			t.Enabled = enabled
		}

		table[key] = t
	}

	return table, nil
}

func applyTypeFields(t *classify.CommitType, key string, fields map[string]any) error {
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		field := "types." + key + "." + name
		value := fields[name]

		switch name {
		case "title", "emoji":
			s, ok := value.(string)
			if !ok {
				return &classify.ConfigError{Field: field, Message: "must be a string"}
			}
			if name == "title" {
				t.Title = s
			} else {
				t.Emoji = s
			}
		case "semver":
			s, ok := value.(string)
			if !ok {
				return &classify.ConfigError{Field: field, Message: "must be one of none, patch, minor, major"}
			}
			impact, err := commit.ParseImpact(s)
			if err != nil {
				return &classify.ConfigError{Field: field, Message: err.Error()}
			}
			t.Impact = impact
		case "enabled":
			enabled, err := toBool(value)
			if err != nil {
				return &classify.ConfigError{Field: field, Message: "must be true or false"}
			}
			t.Enabled = enabled
		default:
			return &classify.ConfigError{Field: field, Message: "unknown field (expected: title, emoji, semver, enabled)"}
		}
	}
	return nil
}

// toBool accepts booleans and, for environment values, their string forms.
func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	default:
		return false, fmt.Errorf("not a boolean: %v", v)
	}
}
