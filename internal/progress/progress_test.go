package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/vbauerster/mpb/v8"
)

// mpb only auto-renders to terminals; WithAutoRefresh forces frames out to
// a plain writer.
func captureManager(buf *bytes.Buffer) *MPBManager {
	return &MPBManager{container: mpb.New(
		mpb.WithWidth(60),
		mpb.WithOutput(buf),
		mpb.WithAutoRefresh(),
		mpb.WithRefreshRate(10*time.Millisecond),
	)}
}

func TestMPBManager_RendersToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	m := captureManager(&buf)

	tr := m.NewTracker(0, 2, "claims-a.edi")
	tr.SetStage("parse")
	time.Sleep(150 * time.Millisecond)
	tr.Done()
	m.Wait()

	out := buf.String()
	if out == "" {
		t.Fatal("no frames rendered to the configured writer")
	}
	if !strings.Contains(out, "[1/2] claims-a.edi") {
		t.Errorf("bar frames missing file label:\n%s", out)
	}
	if !strings.Contains(out, "parse") {
		t.Errorf("bar frames missing stage decorator:\n%s", out)
	}
}

func TestNoopManager_Silent(t *testing.T) {
	m := &NoopManager{}
	tr := m.NewTracker(0, 1, "claims.edi")
	if tr == nil {
		t.Fatal("NewTracker returned nil")
	}
	tr.SetStage("parse")
	tr.Done()
	m.Wait()
}
