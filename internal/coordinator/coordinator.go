// Package coordinator runs the parser and classifier over a batch of raw
// commits, sequentially for small batches and across a bounded worker pool
// for large ones. Output order depends only on RawCommit.Index.
package coordinator

import (
	"cmp"
	"context"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/ariel-frischer/semcommit/internal/classify"
	"github.com/ariel-frischer/semcommit/internal/commit"
	"github.com/ariel-frischer/semcommit/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the batch size at which processing goes parallel.
const DefaultThreshold = 50

// chunksPerWorker oversubscribes the pool so uneven messages balance out.
const chunksPerWorker = 4

// Coordinator fans batches out to the parser and classifier.
type Coordinator struct {
	classifier *classify.Classifier
	threshold  int
	workers    int
	logger     *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithThreshold sets the batch size at which processing goes parallel.
func WithThreshold(n int) Option {
	return func(c *Coordinator) {
		if n >= 1 {
			c.threshold = n
		}
	}
}

// WithWorkers sets the worker pool size. Values below 1 keep the default
// of runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *Coordinator) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Coordinator sharing the given read-only classifier.
func New(classifier *classify.Classifier, opts ...Option) *Coordinator {
	c := &Coordinator{
		classifier: classifier,
		threshold:  DefaultThreshold,
		workers:    runtime.GOMAXPROCS(0),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// result pairs a processed commit with the reason it was dropped, if any.
type result struct {
	commit.ParsedCommit
	dropped classify.DropReason
}

// Process parses and classifies raws and returns the kept commits ordered
// by Index. The result is identical whichever path runs.
func (c *Coordinator) Process(raws []commit.RawCommit) []commit.ParsedCommit {
	if len(raws) == 0 {
		return nil
	}

	start := time.Now()
	results := make([]result, len(raws))

	mode := metrics.ModeSequential
	if len(raws) >= c.threshold {
		mode = metrics.ModeParallel
		c.logger.Debug("parsing commits", "count", len(raws), "mode", mode, "workers", c.workers)
		c.processParallel(raws, results)
	} else {
		c.logger.Debug("parsing commits", "count", len(raws), "mode", mode)
		c.processRange(raws, results)
	}

	slices.SortStableFunc(results, func(a, b result) int {
		return cmp.Compare(a.Index, b.Index)
	})

	out := c.collect(results)
	metrics.ObserveBatch(mode, len(raws), time.Since(start))
	return out
}

// processParallel splits raws into contiguous chunks and processes them on
// a bounded errgroup. Each chunk writes only its own slots of results.
func (c *Coordinator) processParallel(raws []commit.RawCommit, results []result) {
	var g errgroup.Group
	g.SetLimit(c.workers)

	size := chunkSize(len(raws), c.workers)
	for lo := 0; lo < len(raws); lo += size {
		hi := min(lo+size, len(raws))
		g.Go(func() error {
			c.processRange(raws[lo:hi], results[lo:hi])
			return nil
		})
	}

	_ = g.Wait() // workers never fail
}

func (c *Coordinator) processRange(raws []commit.RawCommit, results []result) {
	for i := range raws {
		results[i] = c.processOne(raws[i])
	}
}

func (c *Coordinator) processOne(raw commit.RawCommit) result {
	fields := commit.Parse(raw)
	cl := c.classifier.Classify(fields)
	fields.Scope = cl.Scope

	pc := commit.ParsedCommit{
		ParsedFields: fields,
		Raw:          raw,
		Index:        raw.Index,
		Impact:       cl.Impact,
		Kept:         cl.Kept,
		UnknownType:  cl.UnknownType,
	}
	if cl.Type != nil {
		pc.TypeTitle = cl.Type.Title
		pc.TypeEmoji = cl.Type.Emoji
	}

	return result{ParsedCommit: pc, dropped: cl.Dropped}
}

// collect filters to kept commits in order and records per-commit metrics.
func (c *Coordinator) collect(results []result) []commit.ParsedCommit {
	debug := c.logger.Enabled(context.Background(), slog.LevelDebug)
	out := make([]commit.ParsedCommit, 0, len(results))

	for i := range results {
		r := &results[i]
		if r.Degraded {
			metrics.HeadersDegraded.Inc()
		}
		if r.dropped != classify.DropNone {
			metrics.ObserveDrop(string(r.dropped))
		}
		if debug {
			c.logger.Debug("commit classified",
				"commit", r.Raw.ShortID,
				"type", r.Type,
				"scope", r.Scope,
				"breaking", r.Breaking,
				"kept", r.Kept,
			)
		}
		if r.Kept {
			out = append(out, r.ParsedCommit)
		}
	}

	return out
}

func chunkSize(n, workers int) int {
	chunks := workers * chunksPerWorker
	return max(1, (n+chunks-1)/chunks)
}
