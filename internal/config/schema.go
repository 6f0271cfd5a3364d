package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ariel-frischer/semcommit/internal/semver"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
	TypeVersion
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeVersion:
		return "version"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "types.feat.semver")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value
}

// KnownKeys is the registry of fixed configuration keys with their schemas.
// Per-type and per-scope keys are resolved by GetKeySchema.
var KnownKeys = map[string]ConfigKeySchema{
	"tag_prefix": {
		Path:        "tag_prefix",
		Type:        TypeString,
		Description: "Prefix of release tags",
		Default:     "v",
	},
	"new_version": {
		Path:        "new_version",
		Type:        TypeVersion,
		Description: "Force the next version, bypassing inference",
		Default:     "",
	},
	"unknown_types": {
		Path:          "unknown_types",
		Type:          TypeEnum,
		AllowedValues: []string{"include", "exclude"},
		Description:   "Keep or drop commits whose type is not in the table",
		Default:       "include",
	},
	"parallel_threshold": {
		Path:        "parallel_threshold",
		Type:        TypeInt,
		Description: "Batch size at which parsing goes parallel",
		Default:     50,
	},
	"workers": {
		Path:        "workers",
		Type:        TypeInt,
		Description: "Worker pool size (0 = number of CPUs)",
		Default:     0,
	},
}

// typeFieldKeys are the settable fields of a types.<name> entry.
var typeFieldKeys = map[string]ConfigKeySchema{
	"title":   {Type: TypeString, Description: "Section title"},
	"emoji":   {Type: TypeString, Description: "Section emoji"},
	"semver":  {Type: TypeEnum, AllowedValues: []string{"none", "patch", "minor", "major"}, Description: "Version impact"},
	"enabled": {Type: TypeBool, Description: "Keep commits of this type"},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a configuration key. Besides the
// fixed keys it accepts types.<name>, types.<name>.<field> and
// scope_map.<scope>.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	if schema, ok := KnownKeys[path]; ok {
		return schema, nil
	}

	parts := strings.Split(path, ".")
	switch {
	case len(parts) == 2 && parts[0] == "types" && parts[1] != "":
		return ConfigKeySchema{Path: path, Type: TypeBool, Description: "Enable or disable a commit type"}, nil
	case len(parts) == 3 && parts[0] == "types" && parts[1] != "":
		if field, ok := typeFieldKeys[parts[2]]; ok {
			field.Path = path
			return field, nil
		}
	case len(parts) == 2 && parts[0] == "scope_map" && parts[1] != "":
		return ConfigKeySchema{Path: path, Type: TypeString, Description: "Scope rewrite target"}, nil
	}

	return ConfigKeySchema{}, ErrUnknownKey{Key: path}
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

// ParseAssignments turns key=value pairs into validated overrides.
func ParseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", pair)
		}
		parsed, err := ValidateValue(key, value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = parsed.Parsed
	}
	return out, nil
}

// validateAgainstSchema validates a value against a specific schema.
func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeInt:
		return parseIntValue(value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeVersion:
		return parseVersionValue(value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

// parseBoolValue parses and validates a boolean value.
func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

// parseIntValue parses and validates an integer value.
func parseIntValue(value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

// parseVersionValue checks that value is a MAJOR.MINOR.PATCH version.
func parseVersionValue(value string) (ParsedValue, error) {
	if _, err := semver.Parse(value); err != nil {
		return ParsedValue{}, err
	}
	return ParsedValue{Raw: value, Parsed: value, Type: TypeVersion}, nil
}

// parseEnumValue validates a value against allowed enum options.
func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}
