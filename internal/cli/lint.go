package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/semcommit/internal/classify"
	"github.com/ariel-frischer/semcommit/internal/commit"
	errs "github.com/ariel-frischer/semcommit/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [file|-]",
		Short: "Check a single commit message",
		Long: `Parse one commit message and report how it would be classified.

The message is read from the given file, or from stdin when the argument is
"-" or omitted. Lines starting with # are ignored, as git does for
COMMIT_EDITMSG.

Problems are reported as warnings. With --strict a header that does not
follow type(scope)!: description, or a type that is not configured, makes the
command exit with code 1, which aborts the commit when run as a commit-msg
hook.`,
		Example: `  # commit-msg hook
  semcommit lint --strict "$1"

  # Check a message from stdin
  echo "feat(api)!: drop v1 endpoints" | semcommit lint`,
		GroupID: GroupRelease,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runLint,
	}

	cmd.Flags().Bool("strict", false, "Fail on a non-conventional header or unknown type")
	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}
	msg, err := readMessage(cmd.InOrStdin(), source)
	if err != nil {
		return errs.InputUnreadable(source, err)
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	classifier, err := classify.New(cfg.Rules())
	if err != nil {
		return errs.InvalidConfig(err)
	}

	result := lintMessage(classifier, msg)
	printLint(cmd.OutOrStdout(), result, strict)

	if result.empty || (strict && len(result.problems) > 0) {
		return ErrLintFailed
	}
	return nil
}

// lintResult is the outcome of checking one message.
type lintResult struct {
	fields   commit.ParsedFields
	cl       classify.Classification
	problems []string
	notes    []string
	empty    bool
}

func lintMessage(classifier *classify.Classifier, msg string) lintResult {
	if strings.TrimSpace(msg) == "" {
		return lintResult{empty: true, problems: []string{"commit message is empty"}}
	}

	r := lintResult{fields: commit.ParseMessage(msg)}
	r.cl = classifier.Classify(r.fields)

	switch {
	case r.fields.Degraded:
		r.problems = append(r.problems, "header does not follow type(scope)!: description")
	case r.cl.UnknownType:
		r.problems = append(r.problems, fmt.Sprintf("unknown type %q (known: %s)",
			r.fields.Type, strings.Join(classifier.Types(), ", ")))
	}

	switch r.cl.Dropped {
	case classify.DropDisabledType:
		r.notes = append(r.notes, fmt.Sprintf("type %q is disabled and will be left out of the release", r.fields.Type))
	case classify.DropDependencyChore:
		r.notes = append(r.notes, "dependency chores are left out of the release")
	case classify.DropUnknownType:
		r.notes = append(r.notes, "unknown types are excluded by configuration")
	}
	return r
}

func printLint(w io.Writer, r lintResult, strict bool) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, p := range r.problems {
		if strict || r.empty {
			fmt.Fprintf(w, "%s %s\n", red("✗"), p)
		} else {
			fmt.Fprintf(w, "%s %s\n", yellow("!"), p)
		}
	}
	if r.empty {
		return
	}
	for _, n := range r.notes {
		fmt.Fprintf(w, "%s %s\n", dim("-"), n)
	}

	if len(r.problems) == 0 || !strict {
		fmt.Fprintf(w, "%s %s %s\n", green("✓"), describeHeader(r.fields, r.cl), dim("impact: "+r.cl.Impact.String()))
	}
}

// describeHeader renders the classified header, e.g. "feat(ui)!".
func describeHeader(f commit.ParsedFields, cl classify.Classification) string {
	if f.Degraded {
		return "(no type)"
	}
	var sb strings.Builder
	sb.WriteString(f.Type)
	if cl.Scope != "" {
		sb.WriteString("(" + cl.Scope + ")")
	}
	if f.Breaking {
		sb.WriteString("!")
	}
	return sb.String()
}

// readMessage reads the message from path, or from stdin for "-", dropping
// git comment lines.
func readMessage(stdin io.Reader, path string) (string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	var sb strings.Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
