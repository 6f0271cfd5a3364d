package cli

import (
	"fmt"
	"io"

	errs "github.com/ariel-frischer/semcommit/internal/errors"
	"github.com/ariel-frischer/semcommit/internal/infer"
	"github.com/ariel-frischer/semcommit/internal/semver"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Infer the next version from commits since the last tag",
		Long: `Infer the next semantic version from the commits made since the latest
version tag reachable from HEAD.

The highest impact among kept commits wins. Before 1.0.0 a breaking change
bumps the minor version and a feature bumps the patch version.

Exits with code 3 when no commit changes the version.`,
		Example: `  # Show previous and next version
  semcommit bump

  # Print only the next version
  semcommit bump --plain

  # Force a version
  semcommit bump --new-version 2.0.0

  # Start from a specific tag
  semcommit bump --from v1.4.0`,
		GroupID: GroupRelease,
		Args:    cobra.NoArgs,
		RunE:    runBump,
	}

	cmd.Flags().Bool("plain", false, "Print only the next version")
	cmd.Flags().String("new-version", "", "Force the next version (X.Y.Z), bypassing inference")
	cmd.Flags().String("from", "", "Tag to start from instead of the latest version tag")
	return cmd
}

func runBump(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	newVersion, _ := cmd.Flags().GetString("new-version")
	from, _ := cmd.Flags().GetString("from")

	extra := map[string]any{}
	if newVersion != "" {
		if _, err := semver.Parse(newVersion); err != nil {
			return errs.InvalidVersionOverride(newVersion, err)
		}
		extra["new_version"] = newVersion
	}

	cfg, err := loadConfig(cmd, extra)
	if err != nil {
		return err
	}

	rel, err := collectRelease(cmd, cfg, from)
	if err != nil {
		return err
	}

	changed := infer.Changed(rel.Current, rel.Bump)
	out := cmd.OutOrStdout()
	switch {
	case plain && changed:
		fmt.Fprintln(out, rel.Next.String())
	case !plain:
		printBump(out, rel, cfg.TagPrefix, changed)
	}

	if !changed {
		return ErrNoChange
	}
	return nil
}

// printBump writes "previous -> next (kind)", or the unchanged version.
func printBump(w io.Writer, rel *release, prefix string, changed bool) {
	dim := color.New(color.Faint).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	previous := rel.Current.Tag(prefix)
	if rel.Previous != nil {
		previous = rel.Previous.Name
	}

	if !changed {
		fmt.Fprintf(w, "%s %s\n", previous, dim(fmt.Sprintf("(no release: %d commits, none with version impact)", len(rel.Commits))))
		return
	}

	kind := rel.Bump.Kind.String()
	switch {
	case rel.Bump.Override != nil:
		kind = "override"
	case rel.Bump.Breaking:
		kind += ", breaking"
	}
	fmt.Fprintf(w, "%s -> %s %s\n", previous, green(rel.Next.Tag(prefix)), yellow("("+kind+")"))
}
