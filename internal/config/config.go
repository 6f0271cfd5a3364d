// semcommit - Conventional Commit Versioning
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/semcommit

// Package config provides layered configuration for semcommit using koanf.
// Values are merged with priority: CLI overrides > environment variables
// (SEMCOMMIT_*) > project config (.semcommit.yml or .semcommit.json) > user
// config (~/.config/semcommit/config.yml) > defaults. Every value is
// validated before any commit is processed.
package config

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/ariel-frischer/semcommit/internal/classify"
	"github.com/ariel-frischer/semcommit/internal/semver"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix marks environment variables read as configuration.
const envPrefix = "SEMCOMMIT_"

// Configuration represents the semcommit configuration
type Configuration struct {
	// Types overrides the built-in type table. Each value is false, true,
	// or a partial {title, emoji, semver, enabled} entry.
	Types map[string]any `koanf:"types" yaml:"types,omitempty"`

	// ScopeMap rewrites scopes by exact match. An empty target removes the scope.
	ScopeMap map[string]string `koanf:"scope_map" yaml:"scope_map,omitempty"`

	ParallelThreshold int    `koanf:"parallel_threshold" yaml:"parallel_threshold" validate:"min=1"`
	Workers           int    `koanf:"workers" yaml:"workers" validate:"min=0"`
	UnknownTypes      string `koanf:"unknown_types" yaml:"unknown_types" validate:"oneof=include exclude"`

	// NewVersion forces the next version, bypassing inference.
	// Can be set via SEMCOMMIT_NEW_VERSION or --new-version.
	NewVersion string `koanf:"new_version" yaml:"new_version,omitempty"`

	TagPrefix string `koanf:"tag_prefix" yaml:"tag_prefix"`

	rules    classify.Rules
	override *semver.Version
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides project config discovery when set.
	ProjectConfigPath string
	// Dir is the directory searched for a project config (default: current directory).
	Dir string
	// Overrides are applied last, e.g. from CLI flags. Keys are config paths.
	Overrides map[string]any
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, opts.Dir, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	if err := applyOverrides(k, opts.Overrides); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/semcommit/config.yml when present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. YAML is preferred; a JSON
// config is read only when no YAML config exists, with a warning if both do.
func loadProjectConfig(k *koanf.Koanf, customPath, dir string, warningWriter io.Writer, skipWarnings bool) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return &ValidationError{FilePath: customPath, Message: "config file not found"}
		}
		if strings.HasSuffix(customPath, ".json") {
			return loadJSONConfig(k, customPath, "project")
		}
		return loadYAMLConfig(k, customPath, "project")
	}

	yamlPath := ProjectConfigPath(dir)
	jsonPath := ProjectJSONConfigPath(dir)
	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, yamlPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if jsonExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: %s ignored, using %s\n", jsonPath, yamlPath)
		}
	case jsonExists:
		if err := loadJSONConfig(k, jsonPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return &ValidationError{FilePath: path, Message: fmt.Sprintf("failed to load %s config: %v", configType, err)}
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// applyOverrides sets explicit values on top of every other source.
func applyOverrides(k *koanf.Koanf, overrides map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		if err := k.Set(key, overrides[key]); err != nil {
			return fmt.Errorf("applying override %s: %w", key, err)
		}
	}
	return nil
}

// finalizeConfig unmarshals, validates, and resolves derived values
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &ValidationError{FilePath: "config", Message: fmt.Sprintf("failed to unmarshal config: %v", err)}
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	rules, err := cfg.buildRules()
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	cfg.rules = rules

	if cfg.NewVersion != "" {
		v, err := semver.Parse(cfg.NewVersion)
		if err != nil {
			return nil, fmt.Errorf("config validation failed: %w", &ValidationError{
				FilePath: "config",
				Field:    "new_version",
				Message:  err.Error(),
			})
		}
		cfg.override = &v
	}

	return &cfg, nil
}

// Rules returns the validated classification rules.
func (c *Configuration) Rules() classify.Rules {
	return c.rules.Clone()
}

// Override returns the forced next version, or nil.
func (c *Configuration) Override() *semver.Version {
	if c.override == nil {
		return nil
	}
	v := *c.override
	return &v
}

// buildRules resolves the type table and checks it with the classifier's
// own validation.
func (c *Configuration) buildRules() (classify.Rules, error) {
	types, err := resolveTypes(c.Types)
	if err != nil {
		return classify.Rules{}, err
	}

	rules := classify.Rules{
		Types:        types,
		Scopes:       maps.Clone(c.ScopeMap),
		UnknownTypes: classify.UnknownTypePolicy(c.UnknownTypes),
	}
	if rules.Scopes == nil {
		rules.Scopes = classify.ScopeMap{}
	}

	if err := classify.Validate(rules); err != nil {
		return classify.Rules{}, err
	}
	return rules, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: SEMCOMMIT_PARALLEL_THRESHOLD -> parallel_threshold
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}
