// Package cli implements the semcommit command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ariel-frischer/semcommit/internal/build"
	"github.com/ariel-frischer/semcommit/internal/config"
	errs "github.com/ariel-frischer/semcommit/internal/errors"
	"github.com/ariel-frischer/semcommit/internal/git"
	"github.com/spf13/cobra"
)

// Command groups for help output
const (
	GroupRelease       = "release"
	GroupConfiguration = "configuration"
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "semcommit",
		Short: "Infer the next semantic version from conventional commits",
		Long: `semcommit reads the commits made since the latest version tag, parses them as
conventional commits and infers the next semantic version.

Commit types, their version impact, scope rewrites and unknown-type handling
are configured in .semcommit.yml (see 'semcommit config init').`,
		Example: `  # Show the next version
  semcommit bump

  # Print only the next version, for scripts
  semcommit bump --plain

  # Inspect how each commit was classified
  semcommit parse --format json

  # Check a commit message from a commit-msg hook
  semcommit lint --strict .git/COMMIT_EDITMSG`,
		Version:       build.Summary(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			git.SetLogger(newLogger(cmd))
		},
	}

	root.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	root.PersistentFlags().StringP("config", "c", "", "Config file (default: .semcommit.yml in the repository)")
	root.PersistentFlags().StringP("repo", "C", "", "Path inside the git repository (default: current directory)")
	root.PersistentFlags().Bool("debug", false, "Log debug events to stderr")
	root.PersistentFlags().StringArray("set", nil, "Override a config value (key=value, repeatable)")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errs.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})

	root.AddCommand(
		newBumpCmd(),
		newParseCmd(),
		newLintCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and reports any error to stderr. The returned
// error maps to an exit code via ExitCode.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && !isSilent(err) {
		errs.FprintError(root.ErrOrStderr(), err)
	}
	return err
}

// newLogger returns a text logger on stderr, at debug level with --debug
// and warnings only otherwise.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves configuration for cmd from --config, --repo, --set
// and any command-specific overrides.
func loadConfig(cmd *cobra.Command, extra map[string]any) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	repoDir, _ := cmd.Flags().GetString("repo")
	assignments, _ := cmd.Flags().GetStringArray("set")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errs.ConfigFileNotFound(path)
		}
	}

	overrides, err := config.ParseAssignments(assignments)
	if err != nil {
		return nil, errs.InvalidAssignment(err)
	}
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: path,
		Dir:               projectDir(repoDir),
		Overrides:         overrides,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, errs.InvalidConfig(err)
	}
	return cfg, nil
}

// projectDir returns the directory searched for .semcommit.yml: the root of
// the repository containing repoDir, or repoDir itself outside a repository.
func projectDir(repoDir string) string {
	root, err := git.Root(repoDir)
	if err != nil {
		return repoDir
	}
	return root
}
