package runner

import (
	"runtime"
	"sync"
	"time"

	"github.com/selmatch/selmatch/corpus"
	"github.com/selmatch/selmatch/match"
)

// Result is the outcome of evaluating one strategy over one website.
type Result struct {
	Site         string
	Strategy     match.Strategy
	NumSelectors int
	Matches      *match.DocumentMatches
	Canonical    *match.CanonicalMatches
	Stats        match.Statistics
	Elapsed      time.Duration
}

// Options configures an evaluation run.
type Options struct {
	// Workers bounds the number of concurrent traversals; zero or negative
	// means one worker per CPU.
	Workers int
	// Strategies to evaluate, in result order. Empty means all of them.
	Strategies []match.Strategy
}

// Evaluate runs every requested strategy over every site. Results are ordered
// site-major, strategy-minor, matching the order of the inputs; concurrency
// never reorders them. A traversal owns all of its mutable state, so jobs
// share nothing but the read-only documents and selector sets.
func Evaluate(sites []corpus.Website, opts Options) []Result {
	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = match.AllStrategies()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(sites)*len(strategies))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, site := range sites {
		for j, strategy := range strategies {
			wg.Add(1)
			go func(slot int, site corpus.Website, strategy match.Strategy) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				results[slot] = evaluate(site, strategy)
			}(i*len(strategies)+j, site, strategy)
		}
	}
	wg.Wait()
	return results
}

func evaluate(site corpus.Website, strategy match.Strategy) Result {
	start := time.Now()
	matches, stats := match.Run(site.Doc, site.Set, strategy)
	elapsed := time.Since(start)
	tracer().Infof("site %q, strategy %s: %d elements in %v", site.Name, strategy, matches.Len(), elapsed)
	return Result{
		Site:         site.Name,
		Strategy:     strategy,
		NumSelectors: site.Set.Len(),
		Matches:      matches,
		Canonical: matches.Canonicalize(),
		Stats:     stats,
		Elapsed:   elapsed,
	}
}
