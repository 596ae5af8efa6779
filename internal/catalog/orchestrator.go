package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/smercier/catwalk/internal/source"
	"github.com/smercier/catwalk/pkg/types"
)

type ExploreOptions struct {
	WalkOptions
	// Concurrency bounds how many sources are walked in parallel.
	// Defaults to 1 (strictly sequential).
	Concurrency int
	// FailFast aborts remaining sources after the first total failure.
	FailFast bool
}

// Explore walks every source and aggregates the outcomes in input order,
// regardless of completion order. A failure in one source never aborts the
// others unless FailFast is set. On cancellation no new source is started
// and the partial report comes back marked incomplete.
func Explore(ctx context.Context, sources []source.Source, opts ExploreOptions) *CatalogReport {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]SourceOutcome, len(sources))
	done := make([]bool, len(sources))
	aborted := false

	sem := semaphore.NewWeighted(int64(opts.Concurrency))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, src := range sources {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, src source.Source) {
			defer sem.Release(1)
			defer wg.Done()

			out := Walk(ctx, src, opts.WalkOptions)

			mu.Lock()
			outcomes[i] = out
			done[i] = true
			if opts.FailFast && out.Status == types.StatusTotalFailure {
				aborted = true
			}
			mu.Unlock()

			if opts.FailFast && out.Status == types.StatusTotalFailure {
				cancel()
			}
		}(i, src)
	}
	wg.Wait()

	report := &CatalogReport{Aborted: aborted}
	for i := range sources {
		if !done[i] {
			report.Incomplete = true
			continue
		}
		report.Sources = append(report.Sources, outcomes[i])
	}
	if ctx.Err() != nil {
		report.Incomplete = true
	}
	report.Summary = summarize(report.Sources)
	return report
}
