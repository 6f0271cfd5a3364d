package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette holds the styling used for one rendering. The plain palette
// leaves every string untouched.
type palette struct {
	label, message, fix, usage, bullet, category func(a ...interface{}) string
}

var (
	colored = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
	}
	plain = palette{
		label:    fmt.Sprint,
		message:  fmt.Sprint,
		fix:      fmt.Sprint,
		usage:    fmt.Sprint,
		bullet:   fmt.Sprint,
		category: fmt.Sprint,
	}
)

// FormatError formats a CLIError for display in the terminal. Colors are
// dropped automatically when color.NoColor is set (non-TTY or NO_COLOR).
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, colored)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, plain)
}

func formatError(err *CLIError, p palette) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.fix("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints err to w. Errors that are not CLIErrors are shown
// as runtime errors.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if !IsCLIError(err) {
		err = Wrap(err, Runtime)
	}
	fmt.Fprint(w, FormatError(AsCLIError(err)))
}
