// Package testutil provides commit fixtures and in-memory git repositories
// for semcommit tests.
package testutil

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/ariel-frischer/semcommit/internal/commit"
)

// fixtureEpoch is the timestamp of the first generated commit.
var fixtureEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Raw builds a RawCommit from a full message with a synthetic ID.
func Raw(index int, msg string) commit.RawCommit {
	summary, body := commit.SplitMessage(msg)
	id := fmt.Sprintf("%040x", index+1)
	return commit.RawCommit{
		ID:        id,
		ShortID:   id[:7],
		Summary:   summary,
		Body:      body,
		Author:    commit.Person{Name: "Fixture Author", Email: "author@example.com"},
		Timestamp: fixtureEpoch.Add(time.Duration(index) * time.Minute),
		Index:     index,
	}
}

// Batch builds RawCommits with Index 0..len(msgs)-1.
func Batch(msgs ...string) []commit.RawCommit {
	raws := make([]commit.RawCommit, len(msgs))
	for i, msg := range msgs {
		raws[i] = Raw(i, msg)
	}
	return raws
}

// messageTemplates covers every header and footer shape the parser handles.
// %d is replaced with the commit number.
var messageTemplates = []string{
	"feat: add option %d",
	"feat(ui): render widget %d\n\nCloses #%d",
	"fix(api): handle nil %d\n\nThe handler panicked.\n\nFixes #%d\nCo-authored-by: Jane Doe <jane@example.com>",
	"perf: faster loop %d",
	"docs: update readme %d",
	"refactor!: rename package %d\n\nBREAKING CHANGE: import path changed\nand callers must update",
	"chore(deps): bump module %d",
	"chore(deps)!: drop go %d\n\nBREAKING-CHANGE: minimum toolchain raised",
	"chore: tidy %d",
	"style: format %d",
	"test: cover case %d",
	"ci: cache modules %d",
	"build(docker): slim image %d",
	"revert: undo change %d\n\nRefs: #%d",
	"Merge branch 'feature-%d' into main",
	"wip: experiment %d",
	"feat(core)!: new engine %d\n\nLong explanation of the engine.\n\nReviewed-by: Bob\nRefs #%d",
	"fix: typo %d\n\nCo-authored-by: Bob <bob@example.com>\nCo-authored-by: bob <bob@example.com>",
}

// History returns n deterministic pseudo-random commits for the given seed.
func History(n int, seed uint64) []commit.RawCommit {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	raws := make([]commit.RawCommit, n)
	for i := range raws {
		tmpl := messageTemplates[rng.IntN(len(messageTemplates))]
		args := make([]any, strings.Count(tmpl, "%d"))
		for j := range args {
			args[j] = i + 1
		}
		raws[i] = Raw(i, fmt.Sprintf(tmpl, args...))
	}
	return raws
}

// Shuffled returns a permuted copy of raws. Index values are unchanged.
func Shuffled(raws []commit.RawCommit, seed uint64) []commit.RawCommit {
	out := make([]commit.RawCommit, len(raws))
	copy(out, raws)
	rng := rand.New(rand.NewPCG(seed, seed+1))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
