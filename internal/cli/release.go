package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ariel-frischer/semcommit/internal/classify"
	"github.com/ariel-frischer/semcommit/internal/commit"
	"github.com/ariel-frischer/semcommit/internal/config"
	"github.com/ariel-frischer/semcommit/internal/coordinator"
	errs "github.com/ariel-frischer/semcommit/internal/errors"
	"github.com/ariel-frischer/semcommit/internal/git"
	"github.com/ariel-frischer/semcommit/internal/infer"
	"github.com/ariel-frischer/semcommit/internal/progress"
	"github.com/ariel-frischer/semcommit/internal/semver"
	"github.com/spf13/cobra"
)

// release is everything bump and parse report about one repository.
type release struct {
	Previous *git.Tag
	Current  semver.Version
	Raws     []commit.RawCommit
	Commits  []commit.ParsedCommit
	Bump     infer.Bump
	Next     semver.Version
}

// collectRelease reads history since the last version tag (or from), then
// parses, classifies and infers the bump.
func collectRelease(cmd *cobra.Command, cfg *config.Configuration, from string) (*release, error) {
	logger := newLogger(cmd)
	repoDir, _ := cmd.Flags().GetString("repo")

	classifier, err := classify.New(cfg.Rules())
	if err != nil {
		return nil, errs.InvalidConfig(err)
	}

	spin := progress.NewSpinner(cmd.ErrOrStderr(), terminalCaps(cmd))
	spin.Start("Reading history")

	rel, err := readHistory(repoDir, cfg.TagPrefix, from)
	if err != nil {
		spin.Fail("Reading history failed")
		return nil, err
	}

	spin.Update(fmt.Sprintf("Classifying %d commits", len(rel.Raws)))
	coord := coordinator.New(classifier,
		coordinator.WithThreshold(cfg.ParallelThreshold),
		coordinator.WithWorkers(cfg.Workers),
		coordinator.WithLogger(logger),
	)
	rel.Commits = coord.Process(rel.Raws)
	rel.Bump = infer.Infer(rel.Commits, rel.Current, cfg.Override())
	rel.Next = infer.Next(rel.Current, rel.Bump)
	spin.Succeed(fmt.Sprintf("%d of %d commits kept", len(rel.Commits), len(rel.Raws)))

	logger.Debug("version inferred",
		"current", rel.Current.String(),
		"next", rel.Next.String(),
		"kind", rel.Bump.Kind.String(),
		"breaking", rel.Bump.Breaking,
		"override", rel.Bump.Override != nil,
		"commits", len(rel.Commits),
	)
	return rel, nil
}

// readHistory finds the starting tag and the raw commits made after it.
func readHistory(repoDir, prefix, from string) (*release, error) {
	repo, err := git.Open(repoDir)
	if err != nil {
		return nil, errs.NotARepository(displayDir(repoDir), err)
	}

	var tag *git.Tag
	if from != "" {
		tag, err = repo.FindTag(from, prefix)
		if err != nil {
			return nil, errs.TagNotFound(from, err)
		}
	} else {
		tag, err = repo.LastTag(prefix)
		if err != nil {
			return nil, historyError(err)
		}
	}

	raws, err := repo.CommitsSince(tag, "")
	if err != nil {
		return nil, historyError(err)
	}

	rel := &release{Previous: tag, Raws: raws}
	if tag != nil {
		rel.Current = tag.Version
	}
	return rel, nil
}

func historyError(err error) error {
	if errors.Is(err, git.ErrNoCommits) {
		return errs.NoCommits(err)
	}
	return errs.HistoryUnreadable(err)
}

func displayDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// terminalCaps enables the spinner only when cmd writes to the real stderr.
func terminalCaps(cmd *cobra.Command) progress.TerminalCapabilities {
	if cmd.ErrOrStderr() != os.Stderr {
		return progress.TerminalCapabilities{}
	}
	return progress.DetectTerminalCapabilities()
}
