// Package search owns the debounced, race-safe product search state.
//
// Responses are applied in request-issue order, never response-arrival
// order: every issued query is stamped with a monotonic sequence id and
// a completion is discarded unless its id is still the highest issued.
// Correctness never depends on canceling the underlying transport.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/southmarket/storefront/internal/domain"
)

const (
	defaultDebounce  = 500 * time.Millisecond
	defaultBlurGrace = 200 * time.Millisecond
)

// Backend issues the actual search call.
type Backend interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// Snapshot is a read-only view of the controller state. The renderer
// consumes snapshots and never mutates controller state directly.
type Snapshot struct {
	Query     string
	Results   []domain.SearchResult
	Searching bool
	PanelOpen bool
}

// Option configures the controller.
type Option func(*Controller)

// WithDebounce overrides the input settle interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithBlurGrace overrides the panel close delay after input blur.
func WithBlurGrace(d time.Duration) Option {
	return func(c *Controller) { c.blurGrace = d }
}

// Controller owns query text, the debounce timer, in-flight staleness
// tracking, and the visible result list.
type Controller struct {
	backend   Backend
	logger    *slog.Logger
	debounce  time.Duration
	blurGrace time.Duration

	mu        sync.Mutex
	query     string
	results   []domain.SearchResult
	searching bool
	panelOpen bool
	// seq is the highest issued sequence id; the sole arbiter of
	// staleness.
	seq       uint64
	timer     *time.Timer
	blurTimer *time.Timer
}

// New creates an idle controller.
func New(backend Backend, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		backend:   backend,
		logger:    logger,
		debounce:  defaultDebounce,
		blurGrace: defaultBlurGrace,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnInput records a keystroke. The text is visible immediately via
// Snapshot; the search itself is deferred until the input settles for
// the debounce interval, and any previously scheduled dispatch is
// canceled first.
func (c *Controller) OnInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = text
	c.stopTimerLocked()

	if strings.TrimSpace(text) == "" {
		c.clearLocked()
		return
	}

	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.dispatchLocked(text)
	})
}

// SubmitNow bypasses the debounce and issues the search immediately.
func (c *Controller) SubmitNow(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = text
	c.stopTimerLocked()

	if strings.TrimSpace(text) == "" {
		c.clearLocked()
		return
	}

	c.dispatchLocked(text)
}

// Focus reopens the results panel when there is something to show.
func (c *Controller) Focus() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blurTimer != nil {
		c.blurTimer.Stop()
		c.blurTimer = nil
	}
	if len(c.results) > 0 {
		c.panelOpen = true
	}
}

// Blur schedules the results panel to close after a grace period, long
// enough for a pointer click on a result to register first.
func (c *Controller) Blur() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blurTimer != nil {
		c.blurTimer.Stop()
	}
	c.blurTimer = time.AfterFunc(c.blurGrace, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.panelOpen = false
	})
}

// SelectResult picks the result at index and resets the controller to
// idle with empty query and results. It returns the navigation target.
func (c *Controller) SelectResult(index int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.results) {
		return "", false
	}
	target := c.results[index].URL
	c.query = ""
	c.clearLocked()
	return target, true
}

// Snapshot returns a copy of the visible state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make([]domain.SearchResult, len(c.results))
	copy(results, c.results)
	return Snapshot{
		Query:     c.query,
		Results:   results,
		Searching: c.searching,
		PanelOpen: c.panelOpen,
	}
}

// Close cancels any scheduled timers. Outstanding searches are not
// interrupted; their completions are discarded by the staleness check.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	if c.blurTimer != nil {
		c.blurTimer.Stop()
		c.blurTimer = nil
	}
	c.seq++
}

// dispatchLocked stamps the next sequence id and issues exactly one
// search carrying text. Caller holds c.mu.
func (c *Controller) dispatchLocked(text string) {
	c.seq++
	id := c.seq
	c.searching = true

	go func() {
		results, err := c.backend.Search(context.Background(), text)
		c.complete(id, results, err)
	}()
}

// complete applies a finished search unless a newer query has been
// issued since; stale completions cause no state change at all.
func (c *Controller) complete(id uint64, results []domain.SearchResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id != c.seq {
		return
	}

	c.searching = false
	c.panelOpen = true
	if err != nil {
		// Show the empty state rather than a stale list.
		c.logger.Warn("search failed", slog.String("error", err.Error()))
		c.results = nil
		return
	}
	c.results = results
}

// clearLocked wipes results, closes the panel, and invalidates any
// in-flight search. Caller holds c.mu.
func (c *Controller) clearLocked() {
	c.results = nil
	c.searching = false
	c.panelOpen = false
	c.seq++
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
