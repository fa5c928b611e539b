// Package planbatch runs many independent memory-layout plans concurrently,
// pooling Planner instances and deduplicating requirement sets that have
// already been solved.
package planbatch

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nnarena/memplanner/internal/memplan"
	"github.com/nnarena/memplanner/internal/progress"
)

// Job describes one independent set of buffer requirements to lay out.
type Job struct {
	Name         string
	Requirements []memplan.BufferRequirements
}

// Result holds the outcome of laying out a single Job.
type Result struct {
	Name    string
	Offsets []int
	Total   int
	// Signature is the Planner's content hash, useful for callers who want
	// to notice when two jobs produced byte-identical layouts.
	Signature uint64
}

// Option configures a Run call.
type Option func(*runConfig)

type runConfig struct {
	concurrency int
	prog        progress.BarProgressTracker
	capacity    int
}

// WithConcurrency bounds how many jobs are laid out at once. The default is
// unbounded (errgroup.Group with no SetLimit call).
func WithConcurrency(n int) Option {
	return func(c *runConfig) { c.concurrency = n }
}

// WithProgress reports job completion to prog as the batch runs.
func WithProgress(prog progress.BarProgressTracker) Option {
	return func(c *runConfig) { c.prog = prog }
}

// WithPlannerCapacity sets the buffer capacity each pooled Planner is built
// with; jobs with more buffers than this fail with memplan.ErrCapacityExceeded.
func WithPlannerCapacity(capacity int) Option {
	return func(c *runConfig) { c.capacity = capacity }
}

// fingerprint hashes a requirement set so that two jobs asking for the exact
// same layout can share a cached Result instead of running layout twice.
func fingerprint(reqs []memplan.BufferRequirements) uint64 {
	h := xxhash.New()
	buf := make([]byte, 24)
	for _, r := range reqs {
		putInt := func(off int, v int) {
			u := uint64(v)
			for i := 0; i < 8; i++ {
				buf[off+i] = byte(u >> (8 * i))
			}
		}
		putInt(0, r.Size)
		putInt(8, r.First)
		putInt(16, r.Last)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// Run lays out every Job concurrently, returning one Result per Job in the
// same order as jobs, or an *ErrorMap aggregating every job's failure.
func Run(jobs []Job, opts ...Option) ([]Result, error) {
	cfg := runConfig{prog: progress.NoopBarProgressTracker{}, capacity: memplan.DefaultCapacity}
	for _, o := range opts {
		o(&cfg)
	}

	pool := newPlannerPool(cfg.capacity)

	results := make([]Result, len(jobs))
	errs := &ErrorMap{Title: "planbatch"}
	var errsMu sync.Mutex

	var cacheMu sync.Mutex
	cache := make(map[uint64]Result)

	var eg errgroup.Group
	if cfg.concurrency > 0 {
		eg.SetLimit(cfg.concurrency)
	}

	var done int
	var doneMu sync.Mutex
	cfg.prog.SetMessage("laying out plans")
	cfg.prog.SetTotal(int64(len(jobs)))
	cfg.prog.SetDone(0)

	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			defer func() {
				doneMu.Lock()
				done++
				cfg.prog.SetDone(done)
				doneMu.Unlock()
			}()

			key := fingerprint(job.Requirements)
			cacheMu.Lock()
			if cached, ok := cache[key]; ok {
				cacheMu.Unlock()
				cached.Name = job.Name
				results[i] = cached
				return nil
			}
			cacheMu.Unlock()

			p := pool.Get()
			defer pool.Put(p)

			for _, r := range job.Requirements {
				if _, err := p.AddBuffer(r.Size, r.First, r.Last); err != nil {
					errsMu.Lock()
					errs.AddError(job.Name, fmt.Errorf("add buffer: %w", err))
					errsMu.Unlock()
					cfg.prog.SetError(err)
					return nil
				}
			}

			offsets := make([]int, len(job.Requirements))
			for idx := range job.Requirements {
				offset, err := p.GetOffsetForBuffer(idx)
				if err != nil {
					errsMu.Lock()
					errs.AddError(job.Name, fmt.Errorf("get offset: %w", err))
					errsMu.Unlock()
					cfg.prog.SetError(err)
					return nil
				}
				offsets[idx] = offset
			}

			res := Result{
				Name:      job.Name,
				Offsets:   offsets,
				Total:     p.GetMaximumMemorySize(),
				Signature: p.Signature(),
			}

			cacheMu.Lock()
			cache[key] = res
			cacheMu.Unlock()

			results[i] = res
			return nil
		})
	}

	_ = eg.Wait()
	cfg.prog.MarkFinished()

	if errs.HasErrors() {
		return results, errs
	}
	return results, nil
}
