package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/semcommit/internal/classify"
	"github.com/ariel-frischer/semcommit/internal/commit"
	"github.com/ariel-frischer/semcommit/internal/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config at an empty directory and returns a
// fresh project directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	return t.TempDir()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "include", cfg.UnknownTypes)
	assert.Equal(t, 50, cfg.ParallelThreshold)
	assert.Equal(t, 0, cfg.Workers)
	assert.Nil(t, cfg.Override())

	rules := cfg.Rules()
	assert.Equal(t, classify.DefaultTypes(), rules.Types)
	assert.Empty(t, rules.Scopes)
	assert.Equal(t, classify.UnknownInclude, rules.UnknownTypes)
}

func TestLoad_ProjectYAML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, ProjectConfigPath(dir), `
tag_prefix: release-
unknown_types: exclude
types:
  docs: false
  perf:
    semver: minor
  deps:
    title: Dependencies
    semver: patch
scope_map:
  ui: frontend
  internal: ""
parallel_threshold: 10
workers: 3
`)

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "release-", cfg.TagPrefix)
	assert.Equal(t, 10, cfg.ParallelThreshold)
	assert.Equal(t, 3, cfg.Workers)

	rules := cfg.Rules()
	assert.Equal(t, classify.UnknownExclude, rules.UnknownTypes)
	assert.False(t, rules.Types["docs"].Enabled)
	assert.Equal(t, commit.ImpactMinor, rules.Types["perf"].Impact)
	assert.Equal(t, "Performance", rules.Types["perf"].Title)
	assert.Equal(t, classify.CommitType{Title: "Dependencies", Impact: commit.ImpactPatch, Enabled: true}, rules.Types["deps"])
	assert.Equal(t, classify.ScopeMap{"ui": "frontend", "internal": ""}, rules.Scopes)
}

func TestLoad_ProjectJSON(t *testing.T) {
	dir := isolate(t)
	writeFile(t, ProjectJSONConfigPath(dir), `{"tag_prefix": "", "types": {"chore": {"semver": "patch"}}}`)

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.TagPrefix)
	assert.Equal(t, commit.ImpactPatch, cfg.Rules().Types["chore"].Impact)
}

func TestLoad_YAMLPreferredOverJSON(t *testing.T) {
	dir := isolate(t)
	writeFile(t, ProjectConfigPath(dir), "tag_prefix: yaml-\n")
	writeFile(t, ProjectJSONConfigPath(dir), `{"tag_prefix": "json-"}`)

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{Dir: dir, WarningWriter: &warnings})
	require.NoError(t, err)

	assert.Equal(t, "yaml-", cfg.TagPrefix)
	assert.Contains(t, warnings.String(), ".semcommit.json ignored")

	warnings.Reset()
	_, err = LoadWithOptions(LoadOptions{Dir: dir, WarningWriter: &warnings, SkipWarnings: true})
	require.NoError(t, err)
	assert.Empty(t, warnings.String())
}

func TestLoad_CustomPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "conf", "release.yml")
	writeFile(t, path, "workers: 2\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "semcommit", "config.yml"), "tag_prefix: user-\nworkers: 4\n")

	dir := t.TempDir()
	writeFile(t, ProjectConfigPath(dir), "workers: 6\n")

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "user-", cfg.TagPrefix)
	assert.Equal(t, 6, cfg.Workers, "project config wins over user config")
}

func TestLoad_EnvironmentAndOverrides(t *testing.T) {
	dir := isolate(t)
	writeFile(t, ProjectConfigPath(dir), "parallel_threshold: 10\nnew_version: 1.0.0\n")
	t.Setenv("SEMCOMMIT_PARALLEL_THRESHOLD", "20")
	t.Setenv("SEMCOMMIT_NEW_VERSION", "2.0.0")

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.ParallelThreshold)
	require.NotNil(t, cfg.Override())
	assert.Equal(t, semver.MustParse("2.0.0"), *cfg.Override())

	cfg, err = LoadWithOptions(LoadOptions{
		Dir: dir,
		Overrides: map[string]any{
			"parallel_threshold": 30,
			"new_version":        "v3.1.0",
			"types.docs":         false,
			"scope_map.api":      "server",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.ParallelThreshold)
	assert.Equal(t, semver.MustParse("3.1.0"), *cfg.Override())
	assert.False(t, cfg.Rules().Types["docs"].Enabled)
	assert.Equal(t, "server", cfg.Rules().Scopes["api"])
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		content   string
		wantField string
		wantMsg   string
	}{
		"unknown_types not an enum value": {
			content:   "unknown_types: sometimes\n",
			wantField: "unknown_types",
			wantMsg:   "must be one of: include, exclude",
		},
		"parallel threshold zero": {
			content:   "parallel_threshold: 0\n",
			wantField: "parallel_threshold",
			wantMsg:   "must be at least 1",
		},
		"negative workers": {
			content:   "workers: -1\n",
			wantField: "workers",
			wantMsg:   "must be at least 0",
		},
		"bad semver impact": {
			content:   "types:\n  feat:\n    semver: huge\n",
			wantField: "types.feat.semver",
		},
		"unknown type field": {
			content:   "types:\n  feat:\n    colour: red\n",
			wantField: "types.feat.colour",
			wantMsg:   "unknown field",
		},
		"type entry not bool or map": {
			content:   "types:\n  feat: 3\n",
			wantField: "types.feat",
		},
		"uppercase type key": {
			content:   "types:\n  Feat: true\n",
			wantField: "types.Feat",
		},
		"override with prerelease": {
			content:   "new_version: 1.0.0-rc.1\n",
			wantField: "new_version",
		},
		"override not a version": {
			content:   "new_version: latest\n",
			wantField: "new_version",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, ProjectConfigPath(dir), tt.content)

			_, err := LoadWithOptions(LoadOptions{Dir: dir})
			require.Error(t, err)
			assert.True(t, errors.Is(err, classify.ErrConfigInvalid), "error %v should match ErrConfigInvalid", err)
			assert.Contains(t, err.Error(), tt.wantField)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad_YAMLSyntaxError(t *testing.T) {
	dir := isolate(t)
	writeFile(t, ProjectConfigPath(dir), "tag_prefix: v\nworkers: 1: 2\n")

	_, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Positive(t, vErr.Line)
	assert.True(t, errors.Is(err, classify.ErrConfigInvalid))
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := isolate(t)
	path := ProjectConfigPath(dir)

	require.NoError(t, WriteDefaultConfig(path, false))

	err := WriteDefaultConfig(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, WriteDefaultConfig(path, true))

	// The template must load to the same values as the defaults.
	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, 50, cfg.ParallelThreshold)
	assert.Equal(t, classify.DefaultTypes(), cfg.Rules().Types)
}

func TestConfiguration_AccessorsReturnCopies(t *testing.T) {
	dir := isolate(t)
	writeFile(t, ProjectConfigPath(dir), "new_version: 1.2.3\nscope_map:\n  ui: web\n")

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)

	rules := cfg.Rules()
	rules.Scopes["ui"] = "mutated"
	rules.Types["feat"] = classify.CommitType{}
	assert.Equal(t, "web", cfg.Rules().Scopes["ui"])
	assert.Equal(t, "Features", cfg.Rules().Types["feat"].Title)

	v := cfg.Override()
	v.Major = 99
	assert.Equal(t, 1, cfg.Override().Major)
}
