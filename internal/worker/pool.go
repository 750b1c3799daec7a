// Package worker fans batch conversions out over a bounded set of
// goroutines.
package worker

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/gyeh/ediclaims/internal/progress"
)

// Result is the outcome of converting one input file.
type Result struct {
	Input  string
	Output string
	Claims int64
	Err    error
}

// Job converts one input and reports where the output landed and how many
// claims it held.
type Job func(ctx context.Context, input string, tracker progress.Tracker) (output string, claims int64, err error)

// Pool manages concurrent conversion of claim files.
type Pool struct {
	Workers  int
	Progress progress.Manager
}

// Run processes all inputs concurrently and returns results in input order.
func (p *Pool) Run(ctx context.Context, inputs []string, job Job) []Result {
	results := make([]Result, len(inputs))

	sem := make(chan struct{}, p.Workers)
	var wg sync.WaitGroup

	for i, input := range inputs {
		wg.Add(1)
		go func(idx int, in string) {
			defer wg.Done()

			// Acquire semaphore
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[idx] = Result{Input: in, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			tracker := p.Progress.NewTracker(idx, len(inputs), filepath.Base(in))
			output, claims, err := job(ctx, in, tracker)
			results[idx] = Result{Input: in, Output: output, Claims: claims, Err: err}
			tracker.Done()
		}(i, input)
	}

	wg.Wait()
	return results
}
