// Package progress renders per-file progress during batch conversion.
package progress

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Tracker tracks progress for a single file. Conversion is single-shot per
// file, so stages are the unit of progress.
type Tracker interface {
	SetStage(stage string)
	Done()
}

// Manager creates trackers for individual files.
type Manager interface {
	NewTracker(index, total int, filename string) Tracker
	Wait()
}

// MPBManager implements Manager using the mpb multi-progress-bar library.
type MPBManager struct {
	container *mpb.Progress
}

// NewMPBManager creates a new mpb-based progress manager. Bars render on
// stderr; stdout is reserved for document output.
func NewMPBManager() *MPBManager {
	return &MPBManager{container: mpb.New(mpb.WithWidth(60), mpb.WithOutput(os.Stderr))}
}

// NewTracker creates a new progress tracker for a file.
func (m *MPBManager) NewTracker(index, total int, filename string) Tracker {
	stageVal := &atomic.Value{}
	stageVal.Store("")
	bar := m.container.AddBar(100,
		mpb.PrependDecorators(
			decor.Name(fmt.Sprintf("[%d/%d] %s ", index+1, total, filename), decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.Any(func(s decor.Statistics) string {
				return stageVal.Load().(string)
			}),
		),
	)

	return &mpbTracker{bar: bar, stagePtr: stageVal}
}

// Wait waits for all progress bars to finish.
func (m *MPBManager) Wait() {
	m.container.Wait()
}

type mpbTracker struct {
	bar      *mpb.Bar
	stagePtr *atomic.Value
}

func (t *mpbTracker) SetStage(stage string) {
	t.stagePtr.Store(stage)
	t.bar.SetCurrent(50)
}

func (t *mpbTracker) Done() {
	t.bar.SetTotal(100, false)
	t.bar.SetCurrent(100)
	t.bar.Abort(false) // complete without removing
}

// NoopManager is a no-op progress manager for non-interactive use.
type NoopManager struct{}

func (m *NoopManager) NewTracker(index, total int, filename string) Tracker {
	return &noopTracker{}
}

func (m *NoopManager) Wait() {}

type noopTracker struct{}

func (t *noopTracker) SetStage(stage string) {}
func (t *noopTracker) Done()                 {}
