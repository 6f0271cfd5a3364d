package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"repository":    {category: Repository, want: "Repository Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"out of range":  {category: ErrorCategory(42), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	sentinel := stderrors.New("boom")

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "ctx"))

	wrapped := Wrap(sentinel, Repository, "try again")
	assert.Equal(t, "boom", wrapped.Error())
	assert.Equal(t, Repository, wrapped.Category)
	assert.ErrorIs(t, wrapped, sentinel)

	withMsg := WrapWithMessage(sentinel, Configuration, "loading")
	assert.Equal(t, "loading: boom", withMsg.Error())
	assert.ErrorIs(t, withMsg, sentinel)
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := NewArgumentError("bad flag")

	assert.Same(t, cliErr, AsCLIError(cliErr))
	assert.Same(t, cliErr, AsCLIError(fmt.Errorf("running: %w", cliErr)))
	assert.True(t, IsCLIError(fmt.Errorf("running: %w", cliErr)))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.False(t, IsCLIError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *CLIError
		want []string
		not  []string
	}{
		"message only": {
			err:  NewRuntimeError("it broke"),
			want: []string{"Error [Runtime Error]: it broke\n"},
			not:  []string{"Usage:", "To fix this:"},
		},
		"with usage and remediation": {
			err: InvalidVersionOverride("1.0", stderrors.New("expected X.Y.Z")),
			want: []string{
				"Error [Argument Error]: invalid version override \"1.0\": expected X.Y.Z\n",
				"\nUsage: semcommit bump --new-version 2.0.0\n",
				"\nTo fix this:\n",
				"  • Versions must be MAJOR.MINOR.PATCH, optionally prefixed with v\n",
			},
		},
		"repository error": {
			err:  NotARepository("/tmp/x", stderrors.New("repository does not exist")),
			want: []string{"[Repository Error]", "--repo <path>"},
			not:  []string{"Usage:"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := FormatErrorPlain(tt.err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, n := range tt.not {
				assert.NotContains(t, got, n)
			}
		})
	}

	assert.Empty(t, FormatErrorPlain(nil))
	assert.Empty(t, FormatError(nil))
}

func TestFprintError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, nil)
	assert.Empty(t, buf.String())

	FprintError(&buf, stderrors.New("unexpected"))
	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "unexpected")
	assert.Contains(t, out, "Runtime Error")

	buf.Reset()
	FprintError(&buf, fmt.Errorf("cmd: %w", NewConfigError("bad value")))
	assert.True(t, strings.Contains(buf.String(), "Configuration Error"))
}

func TestMessages_Categories(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("cause")
	tests := map[string]struct {
		err  *CLIError
		want ErrorCategory
	}{
		"invalid config":     {err: InvalidConfig(cause), want: Configuration},
		"config not found":   {err: ConfigFileNotFound("x.yml"), want: Configuration},
		"invalid assignment": {err: InvalidAssignment(cause), want: Argument},
		"version override":   {err: InvalidVersionOverride("x", cause), want: Argument},
		"flag combination":   {err: InvalidFlagCombination("--a, --b", "pick one"), want: Argument},
		"not a repository":   {err: NotARepository(".", cause), want: Repository},
		"no commits":         {err: NoCommits(cause), want: Repository},
		"tag not found":      {err: TagNotFound("v9", cause), want: Repository},
		"history unreadable": {err: HistoryUnreadable(cause), want: Repository},
		"input unreadable":   {err: InputUnreadable("msg.txt", cause), want: Argument},
		"output failed":      {err: OutputFailed(cause), want: Runtime},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Category)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}
