package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/southmarket/storefront/internal/domain"
)

// fakeBackend records issued queries and can hold individual
// completions open until the test releases them.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	gates map[string]chan struct{}
	err   error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{gates: make(map[string]chan struct{})}
}

func (f *fakeBackend) gate(query string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[query] = ch
	return ch
}

func (f *fakeBackend) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	gate := f.gates[query]
	err := f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return []domain.SearchResult{{Title: "result for " + query, URL: "https://example.com/" + query, Content: query}}, nil
}

func (f *fakeBackend) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestOnInput_DebounceCollapsesKeystrokes(t *testing.T) {
	backend := newFakeBackend()
	c := New(backend, testLogger(), WithDebounce(20*time.Millisecond))
	defer c.Close()

	c.OnInput("g")
	c.OnInput("ga")
	c.OnInput("galaxy")

	waitFor(t, func() bool { return len(backend.queries()) > 0 })
	// Allow any (wrongly) scheduled extra dispatches to fire.
	time.Sleep(50 * time.Millisecond)

	got := backend.queries()
	if len(got) != 1 {
		t.Fatalf("requests issued = %d, want 1", len(got))
	}
	if got[0] != "galaxy" {
		t.Errorf("request text = %q, want last keystroke %q", got[0], "galaxy")
	}

	waitFor(t, func() bool { return !c.Snapshot().Searching })
	snap := c.Snapshot()
	if !snap.PanelOpen {
		t.Error("PanelOpen = false, want true after results arrive")
	}
	if len(snap.Results) != 1 {
		t.Errorf("results = %d, want 1", len(snap.Results))
	}
}

func TestStaleResponseNeverOverwritesFresherState(t *testing.T) {
	backend := newFakeBackend()
	gate1 := backend.gate("q1")
	gate2 := backend.gate("q2")

	c := New(backend, testLogger())
	defer c.Close()

	c.SubmitNow("q1")
	waitFor(t, func() bool { return len(backend.queries()) == 1 })
	c.SubmitNow("q2")
	waitFor(t, func() bool { return len(backend.queries()) == 2 })

	// q2 returns first and is applied.
	close(gate2)
	waitFor(t, func() bool { return !c.Snapshot().Searching })

	// q1 returns late; it must be discarded with no state change.
	close(gate1)
	time.Sleep(20 * time.Millisecond)

	snap := c.Snapshot()
	if len(snap.Results) != 1 || snap.Results[0].Content != "q2" {
		t.Fatalf("final results = %+v, want q2's results, never q1's", snap.Results)
	}
}

func TestOnInput_EmptyQueryShortCircuits(t *testing.T) {
	backend := newFakeBackend()
	c := New(backend, testLogger(), WithDebounce(10*time.Millisecond))
	defer c.Close()

	c.SubmitNow("galaxy")
	waitFor(t, func() bool { return c.Snapshot().PanelOpen })

	c.OnInput("   ")
	time.Sleep(30 * time.Millisecond)

	snap := c.Snapshot()
	if len(snap.Results) != 0 {
		t.Errorf("results = %d, want 0 after whitespace input", len(snap.Results))
	}
	if snap.PanelOpen {
		t.Error("PanelOpen = true, want false after whitespace input")
	}
	if got := backend.queries(); len(got) != 1 {
		t.Errorf("requests issued = %d, want 1 (no request for whitespace)", len(got))
	}
}

func TestClearInvalidatesInFlightSearch(t *testing.T) {
	backend := newFakeBackend()
	gate := backend.gate("pending")

	c := New(backend, testLogger())
	defer c.Close()

	c.SubmitNow("pending")
	waitFor(t, func() bool { return len(backend.queries()) == 1 })

	c.OnInput("")
	close(gate)
	time.Sleep(20 * time.Millisecond)

	snap := c.Snapshot()
	if len(snap.Results) != 0 || snap.PanelOpen {
		t.Errorf("cleared state resurrected by late response: %+v", snap)
	}
}

func TestSearchFailureShowsEmptyPanel(t *testing.T) {
	backend := newFakeBackend()
	backend.err = errors.New("connection refused")

	c := New(backend, testLogger())
	defer c.Close()

	c.SubmitNow("galaxy")
	waitFor(t, func() bool { return !c.Snapshot().Searching && c.Snapshot().PanelOpen })

	snap := c.Snapshot()
	if len(snap.Results) != 0 {
		t.Errorf("results = %d, want 0 on transport failure", len(snap.Results))
	}
	if !snap.PanelOpen {
		t.Error("PanelOpen = false, want true (empty state stays visible)")
	}
}

func TestSelectResultResetsController(t *testing.T) {
	backend := newFakeBackend()
	c := New(backend, testLogger())
	defer c.Close()

	c.SubmitNow("galaxy")
	waitFor(t, func() bool { return len(c.Snapshot().Results) == 1 })

	target, ok := c.SelectResult(0)
	if !ok {
		t.Fatal("SelectResult(0) ok = false, want true")
	}
	if target != "https://example.com/galaxy" {
		t.Errorf("navigation target = %q, want result URL", target)
	}

	snap := c.Snapshot()
	if snap.Query != "" || len(snap.Results) != 0 || snap.PanelOpen {
		t.Errorf("controller not reset after selection: %+v", snap)
	}

	if _, ok := c.SelectResult(0); ok {
		t.Error("SelectResult on empty results ok = true, want false")
	}
}

func TestBlurClosesPanelAfterGracePeriod(t *testing.T) {
	backend := newFakeBackend()
	c := New(backend, testLogger(), WithBlurGrace(15*time.Millisecond))
	defer c.Close()

	c.SubmitNow("galaxy")
	waitFor(t, func() bool { return c.Snapshot().PanelOpen })

	c.Blur()
	if !c.Snapshot().PanelOpen {
		t.Error("panel closed immediately, want it open during the grace period")
	}
	waitFor(t, func() bool { return !c.Snapshot().PanelOpen })

	// Focus with results present reopens the panel.
	c.Focus()
	if !c.Snapshot().PanelOpen {
		t.Error("PanelOpen = false after Focus with results, want true")
	}
}
