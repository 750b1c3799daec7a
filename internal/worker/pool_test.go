package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gyeh/ediclaims/internal/progress"
)

func TestPool_ResultsInInputOrder(t *testing.T) {
	inputs := []string{"a.edi", "b.edi", "c.edi", "d.edi", "e.edi"}
	pool := &Pool{Workers: 3, Progress: &progress.NoopManager{}}

	job := func(ctx context.Context, input string, tracker progress.Tracker) (string, int64, error) {
		// Earlier inputs finish later, exercising out-of-order completion.
		time.Sleep(time.Duration('f'-input[0]) * time.Millisecond)
		tracker.SetStage("parsing")
		return input + ".json", 1, nil
	}

	results := pool.Run(context.Background(), inputs, job)
	if len(results) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(results), len(inputs))
	}
	for i, r := range results {
		if r.Input != inputs[i] {
			t.Errorf("result %d: got input %q, want %q", i, r.Input, inputs[i])
		}
		if r.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err)
		}
		if r.Output != inputs[i]+".json" {
			t.Errorf("result %d: got output %q", i, r.Output)
		}
	}
}

func TestPool_BoundedConcurrency(t *testing.T) {
	const workers = 2
	var active, peak int64

	pool := &Pool{Workers: workers, Progress: &progress.NoopManager{}}
	job := func(ctx context.Context, input string, tracker progress.Tracker) (string, int64, error) {
		n := atomic.AddInt64(&active, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&active, -1)
		return "", 0, nil
	}

	var inputs []string
	for i := 0; i < 8; i++ {
		inputs = append(inputs, fmt.Sprintf("f%d.edi", i))
	}
	pool.Run(context.Background(), inputs, job)

	if got := atomic.LoadInt64(&peak); got > workers {
		t.Errorf("peak concurrency %d exceeded worker limit %d", got, workers)
	}
}

func TestPool_PartialFailure(t *testing.T) {
	pool := &Pool{Workers: 2, Progress: &progress.NoopManager{}}
	bad := errors.New("malformed input")

	job := func(ctx context.Context, input string, tracker progress.Tracker) (string, int64, error) {
		if strings.HasPrefix(input, "bad") {
			return "", 0, bad
		}
		return input + ".json", 2, nil
	}

	results := pool.Run(context.Background(), []string{"ok1.edi", "bad.edi", "ok2.edi"}, job)

	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("good inputs should succeed: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, bad) {
		t.Errorf("bad input error: got %v", results[1].Err)
	}
	if results[0].Claims != 2 {
		t.Errorf("claims: got %d, want 2", results[0].Claims)
	}
}

func TestPool_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool := &Pool{Workers: 1, Progress: &progress.NoopManager{}}

	started := make(chan struct{}, 3)
	job := func(ctx context.Context, input string, tracker progress.Tracker) (string, int64, error) {
		started <- struct{}{}
		<-ctx.Done()
		return "", 0, ctx.Err()
	}

	go func() {
		<-started
		cancel()
	}()

	results := pool.Run(ctx, []string{"a.edi", "b.edi", "c.edi"}, job)
	for i, r := range results {
		if r.Err == nil {
			t.Errorf("result %d: expected error after cancel", i)
		}
	}
}
