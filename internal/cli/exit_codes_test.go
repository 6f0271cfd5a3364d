package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ariel-frischer/semcommit/internal/classify"
	errs "github.com/ariel-frischer/semcommit/internal/errors"
	"github.com/ariel-frischer/semcommit/internal/git"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":                 {err: nil, want: ExitSuccess},
		"no change":           {err: ErrNoChange, want: ExitNoChange},
		"lint failed":         {err: fmt.Errorf("lint: %w", ErrLintFailed), want: ExitFailure},
		"argument error":      {err: errs.NewArgumentError("bad"), want: ExitInvalidArguments},
		"configuration error": {err: errs.NewConfigError("bad"), want: ExitConfigInvalid},
		"repository error":    {err: errs.NewRepositoryError("bad"), want: ExitRepository},
		"runtime error":       {err: errs.NewRuntimeError("bad"), want: ExitFailure},
		"bare config error":   {err: &classify.ConfigError{Field: "types", Message: "bad"}, want: ExitConfigInvalid},
		"bare git error":      {err: fmt.Errorf("open: %w", git.ErrNotRepository), want: ExitRepository},
		"unknown error":       {err: errors.New("boom"), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestIsSilent(t *testing.T) {
	assert.True(t, isSilent(ErrNoChange))
	assert.True(t, isSilent(ErrLintFailed))
	assert.False(t, isSilent(errs.NewRuntimeError("x")))
}
