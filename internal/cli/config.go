package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/semcommit/internal/classify"
	"github.com/ariel-frischer/semcommit/internal/config"
	errs "github.com/ariel-frischer/semcommit/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage semcommit configuration",
		Long: `Manage semcommit configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. --set key=value flags
  2. Environment variables (SEMCOMMIT_*)
  3. Project config (.semcommit.yml, or .semcommit.json)
  4. User config (~/.config/semcommit/config.yml)
  5. Built-in defaults`,
		Example: `  # Show the resolved configuration
  semcommit config show

  # Create a commented .semcommit.yml
  semcommit config init`,
		GroupID: GroupConfiguration,
	}

	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config template",
		Long: `Write a commented configuration template to .semcommit.yml at the repository
root, to the --config path, or with --user to the user config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			user, _ := cmd.Flags().GetBool("user")

			path, err := initPath(cmd, user)
			if err != nil {
				return err
			}
			if err := config.WriteDefaultConfig(path, force); err != nil {
				return errs.Wrap(err, errs.Configuration,
					"Pass --force to overwrite the existing file")
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", green("✓"), path)
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	cmd.Flags().Bool("user", false, "Write the user config instead of the project config")
	return cmd
}

func initPath(cmd *cobra.Command, user bool) (string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	repoDir, _ := cmd.Flags().GetString("repo")

	switch {
	case user && configPath != "":
		return "", errs.InvalidFlagCombination("--user, --config", "Use --user or --config, not both")
	case user:
		path, err := config.UserConfigPath()
		if err != nil {
			return "", errs.WrapWithMessage(err, errs.Runtime, "locating user config directory")
		}
		return path, nil
	case configPath != "":
		return configPath, nil
	default:
		return config.ProjectConfigPath(projectDir(repoDir)), nil
	}
}

// resolvedConfig is the view printed by config show: the full type table
// after overlays rather than the raw overrides.
type resolvedConfig struct {
	TagPrefix         string             `json:"tag_prefix" yaml:"tag_prefix"`
	NewVersion        string             `json:"new_version,omitempty" yaml:"new_version,omitempty"`
	UnknownTypes      string             `json:"unknown_types" yaml:"unknown_types"`
	ParallelThreshold int                `json:"parallel_threshold" yaml:"parallel_threshold"`
	Workers           int                `json:"workers" yaml:"workers"`
	Types             classify.TypeTable `json:"types" yaml:"types"`
	ScopeMap          classify.ScopeMap  `json:"scope_map,omitempty" yaml:"scope_map,omitempty"`
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "yaml" && format != "json" {
				return errs.NewArgumentErrorWithUsage(
					fmt.Sprintf("unsupported format %q", format),
					"semcommit config show --format yaml|json",
				)
			}

			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			if err := writeResolved(cmd.OutOrStdout(), cfg, format); err != nil {
				return errs.OutputFailed(err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
	return cmd
}

func writeResolved(w io.Writer, cfg *config.Configuration, format string) error {
	rules := cfg.Rules()
	view := resolvedConfig{
		TagPrefix:         cfg.TagPrefix,
		UnknownTypes:      string(rules.UnknownTypes),
		ParallelThreshold: cfg.ParallelThreshold,
		Workers:           cfg.Workers,
		Types:             rules.Types,
		ScopeMap:          rules.Scopes,
	}
	if v := cfg.Override(); v != nil {
		view.NewVersion = v.String()
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
