package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/semcommit/internal/commit"
	errs "github.com/ariel-frischer/semcommit/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Print the kept commits since the last tag",
		Long: `Print every commit since the latest version tag that survives classification,
with its parsed fields, impact and breaking-change signals. Output is ordered
newest first.`,
		Example: `  # YAML output
  semcommit parse

  # JSON output for jq
  semcommit parse --format json | jq '.[] | select(.breaking)'`,
		GroupID: GroupRelease,
		Args:    cobra.NoArgs,
		RunE:    runParse,
	}

	cmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().String("from", "", "Tag to start from instead of the latest version tag")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	from, _ := cmd.Flags().GetString("from")

	if format != "yaml" && format != "json" {
		return errs.NewArgumentErrorWithUsage(
			fmt.Sprintf("unsupported format %q", format),
			"semcommit parse --format yaml|json",
		)
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	rel, err := collectRelease(cmd, cfg, from)
	if err != nil {
		return err
	}

	if err := writeCommits(cmd.OutOrStdout(), rel.Commits, format); err != nil {
		return errs.OutputFailed(err)
	}
	return nil
}

// writeCommits encodes commits as a YAML or JSON list. An empty list is
// written as [] in both formats.
func writeCommits(w io.Writer, commits []commit.ParsedCommit, format string) error {
	if commits == nil {
		commits = []commit.ParsedCommit{}
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(commits)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(commits); err != nil {
		return fmt.Errorf("encoding commits: %w", err)
	}
	return enc.Close()
}
