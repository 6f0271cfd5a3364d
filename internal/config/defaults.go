package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/semcommit/internal/coordinator"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# semcommit configuration
# See 'semcommit config show' for the resolved values

# Release settings
tag_prefix: v                         # Tags are <prefix>X.Y.Z
# new_version: 2.0.0                  # Force the next version (bypasses inference)

# Commit types
# Each entry is false (drop), true (keep) or a partial override.
# semver is one of: none | patch | minor | major
types:
  # feat: { title: Features, emoji: "✨", semver: minor }
  # fix: { title: Bug Fixes, emoji: "🐞", semver: patch }
  # perf: { semver: minor }
  # docs: false
  # deps: { title: Dependencies, semver: patch }

unknown_types: include                # include | exclude commits with unknown types

# Scope rewrites (exact match; empty target removes the scope)
scope_map:
  # ui: frontend
  # internal: ""

# Processing
parallel_threshold: 50                # Batch size at which parsing goes parallel
workers: 0                            # Worker pool size (0 = number of CPUs)
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"tag_prefix":         "v",
		"unknown_types":      "include",
		"parallel_threshold": coordinator.DefaultThreshold,
		// workers: 0 defers to runtime.GOMAXPROCS(0).
		"workers":     0,
		"new_version": "",
	}
}

// WriteDefaultConfig writes the commented template to path. An existing
// file is kept unless force is set.
func WriteDefaultConfig(path string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
