package cli

import (
	"errors"

	"github.com/ariel-frischer/semcommit/internal/classify"
	errs "github.com/ariel-frischer/semcommit/internal/errors"
	"github.com/ariel-frischer/semcommit/internal/git"
)

// Exit codes for the semcommit CLI
// These codes support scripting in release pipelines and commit-msg hooks
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure or a failed lint
	ExitFailure = 1

	// ExitConfigInvalid indicates the configuration could not be loaded or validated
	ExitConfigInvalid = 2

	// ExitNoChange indicates bump found nothing that changes the version
	ExitNoChange = 3

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitRepository indicates the git repository could not be read
	ExitRepository = 4
)

var (
	// ErrNoChange is returned by bump when the version would not change.
	ErrNoChange = errors.New("version unchanged")
	// ErrLintFailed is returned by lint --strict after problems were reported.
	ErrLintFailed = errors.New("commit message failed lint")
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrNoChange):
		return ExitNoChange
	case errors.Is(err, ErrLintFailed):
		return ExitFailure
	}

	if cliErr := errs.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errs.Argument:
			return ExitInvalidArguments
		case errs.Configuration:
			return ExitConfigInvalid
		case errs.Repository:
			return ExitRepository
		}
	}

	switch {
	case errors.Is(err, classify.ErrConfigInvalid):
		return ExitConfigInvalid
	case errors.Is(err, git.ErrNotRepository), errors.Is(err, git.ErrNoCommits), errors.Is(err, git.ErrTagNotFound):
		return ExitRepository
	}
	return ExitFailure
}

// isSilent reports whether err has already been reported to the user.
func isSilent(err error) bool {
	return errors.Is(err, ErrNoChange) || errors.Is(err, ErrLintFailed)
}
