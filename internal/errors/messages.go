package errors

import "fmt"

// Common error messages for the semcommit CLI.

// InvalidConfig wraps a configuration load or validation failure.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Run 'semcommit config show' to see the resolved values",
		"Regenerate a commented template with: semcommit config init --force",
	)
}

// ConfigFileNotFound creates an error for a --config path that does not exist.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Create one with: semcommit config init",
		"Or drop --config to use .semcommit.yml discovery",
	)
}

// InvalidAssignment creates an error for a malformed --set value.
func InvalidAssignment(err error) *CLIError {
	e := WrapWithMessage(err, Argument,
		"invalid --set value",
		"Use key=value, e.g. --set types.docs=false",
		"Known keys: tag_prefix, new_version, unknown_types, parallel_threshold, workers, types.<type>[.field], scope_map.<scope>",
	)
	e.Usage = "semcommit --set <key>=<value> <command>"
	return e
}

// InvalidVersionOverride creates an error for a --new-version that is not X.Y.Z.
func InvalidVersionOverride(value string, err error) *CLIError {
	e := WrapWithMessage(err, Argument,
		fmt.Sprintf("invalid version override %q", value),
		"Versions must be MAJOR.MINOR.PATCH, optionally prefixed with v",
		"Prerelease and build suffixes are not supported",
	)
	e.Usage = "semcommit bump --new-version 2.0.0"
	return e
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'semcommit <command> --help' to see valid options",
	)
}

// NotARepository creates an error when path is not inside a git repository.
func NotARepository(path string, err error) *CLIError {
	return WrapWithMessage(err, Repository,
		fmt.Sprintf("cannot open git repository at %s", path),
		"Run semcommit inside a git working tree",
		"Or point at one with: semcommit --repo <path>",
	)
}

// NoCommits creates an error for a repository without any commits.
func NoCommits(err error) *CLIError {
	e := NewRepositoryError("repository has no commits",
		"Create an initial commit before inferring a version",
	)
	e.Err = err
	return e
}

// TagNotFound creates an error for a --from tag that does not exist.
func TagNotFound(name string, err error) *CLIError {
	return WrapWithMessage(err, Repository,
		fmt.Sprintf("tag %s", name),
		"List tags with: git tag --list",
		"Drop --from to start at the latest version tag",
	)
}

// HistoryUnreadable wraps a failure while walking commit history.
func HistoryUnreadable(err error) *CLIError {
	return WrapWithMessage(err, Repository,
		"reading commit history",
		"Check that the repository is not shallow or corrupted: git fsck",
	)
}

// InputUnreadable creates an error when a commit message file cannot be read.
func InputUnreadable(path string, err error) *CLIError {
	return WrapWithMessage(err, Argument,
		fmt.Sprintf("cannot read %s", path),
		"Pass a readable file, or - to read from stdin",
	)
}

// OutputFailed creates an error when results cannot be written to stdout.
func OutputFailed(err error) *CLIError {
	e := NewRuntimeError(fmt.Sprintf("writing output: %v", err),
		"Check that stdout is not a closed pipe",
	)
	e.Err = err
	return e
}
