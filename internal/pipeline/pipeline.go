// Package pipeline runs independent simulation replicates across a
// worker pool and streams results to a visit callback. A single run is
// strictly sequential; only whole replicates are parallelized, each with
// its own derived random source, so results do not depend on scheduling.
package pipeline

import (
	"context"
	"sync"

	"protsim-core/phylo"
	"protsim-core/psm"
	"protsim-core/randvar"
	"protsim/internal/runutil"
)

// Config controls the replicate runner.
type Config struct {
	Threads    int   // number of worker goroutines (>=1)
	Replicates int   // number of samples to draw (>=1)
	Seed       int64 // base seed; each replicate derives its own
}

// Result is one completed replicate.
type Result struct {
	Replicate  int
	Seed       int64
	Protracted *phylo.Tree
	Pruned     *phylo.Tree
}

// ForEachSample draws cfg.Replicates samples of the model and calls
// visit for each from a single collector goroutine. It returns the first
// error encountered (including context cancellation).
func ForEachSample(
	ctx context.Context,
	cfg Config,
	mcfg psm.Config,
	opts psm.SampleOptions,
	visit func(Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Replicates < 1 {
		cfg.Replicates = 1
	}

	jobs := make(chan int, cfg.Threads*2)
	results := make(chan Result, cfg.Threads*2)
	errs := make(chan error, cfg.Threads)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case rep, ok := <-jobs:
					if !ok {
						return
					}
					seed := runutil.DeriveSeed(cfg.Seed, rep)
					rcfg := mcfg
					rcfg.Rand = randvar.New(seed)
					model, err := psm.New(rcfg)
					if err != nil {
						errs <- err
						return
					}
					protracted, pruned, err := model.GenerateSample(opts)
					if err != nil {
						errs <- err
						return
					}
					select {
					case results <- Result{Replicate: rep, Seed: seed, Protracted: protracted, Pruned: pruned}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector. verr is owned by the collector goroutine and read only
	// after cwg.Wait establishes the ordering.
	var (
		verr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			if verr != nil {
				continue
			}
			if err := visit(r); err != nil {
				verr = err
			}
		}
	}()

	var ferr error
feed:
	for rep := 1; rep <= cfg.Replicates; rep++ {
		select {
		case <-ctx.Done():
			break feed
		case err := <-errs:
			ferr = err
			break feed
		case jobs <- rep:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	// A worker may have failed after the last job was fed.
	if ferr == nil {
		select {
		case err := <-errs:
			ferr = err
		default:
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if ferr != nil {
		return ferr
	}
	return verr
}
