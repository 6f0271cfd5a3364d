package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ariel-frischer/semcommit/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/semcommit"

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for semcommit",
		Example: `  # Show version info
  semcommit version

  # Plain output (for scripts)
  semcommit version --plain`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			plain, _ := cmd.Flags().GetBool("plain")
			if plain {
				printPlainVersion(cmd.OutOrStdout())
				return
			}
			printPrettyVersion(cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("plain", false, "Plain output without formatting")
	return cmd
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "semcommit %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s\n", build.Platform())
}

// printPrettyVersion prints labelled, colored version info
func printPrettyVersion(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "%s %s", cyan("semcommit"), yellow(build.Version))
	if build.IsDevBuild() {
		fmt.Fprintf(w, " %s", dim("(development build)"))
	}
	fmt.Fprint(w, "\n\n")

	info := []struct {
		label string
		value string
	}{
		{"Commit", build.ShortCommit()},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", build.Platform()},
	}
	for _, row := range info {
		fmt.Fprintf(w, "  %s %s\n", dim(fmt.Sprintf("%-9s", row.label)), row.value)
	}
	fmt.Fprintf(w, "\n  %s\n", dim(SourceURL))
}
