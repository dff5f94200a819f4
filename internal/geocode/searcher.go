package geocode

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

const (
	defaultDebounce = 500 * time.Millisecond
	minQueryLength  = 3
)

// SearchClient is the lookup the searcher drives
type SearchClient interface {
	Search(ctx context.Context, query string) ([]Suggestion, error)
}

// Result is what a query cycle delivers: a fresh suggestion list, or an
// unavailability notice, never both. An empty result clears prior state.
type Result struct {
	Query       string
	Suggestions []Suggestion
	Err         error
}

// Searcher owns the in-flight lookup of one address input field. Each
// keystroke restarts the debounce timer; only the most recent timer
// fires a lookup, and starting a new cycle cancels any pending timer
// and in-flight request first, so a stale response can never be
// delivered. Close tears everything down.
type Searcher struct {
	client   SearchClient
	deliver  func(Result)
	debounce time.Duration

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	cancel     context.CancelFunc
	closed     bool
}

// NewSearcher creates a searcher delivering results via the callback.
// The callback is only ever invoked for the most recent query.
func NewSearcher(client SearchClient, deliver func(Result)) *Searcher {
	return &Searcher{
		client:   client,
		deliver:  deliver,
		debounce: defaultDebounce,
	}
}

// SetDebounce overrides the debounce delay (used by tests)
func (s *Searcher) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = d
}

// Update feeds the current text of the input field. Queries shorter
// than the minimum length short-circuit: prior suggestions and errors
// are cleared and no request is made.
func (s *Searcher) Update(query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.supersedeLocked()

	if len(query) < minQueryLength {
		s.mu.Unlock()
		s.deliver(Result{Query: query})
		return
	}

	generation := s.generation
	s.timer = time.AfterFunc(s.debounce, func() {
		s.fire(generation, query)
	})
	s.mu.Unlock()
}

// Close cancels any pending timer and in-flight request. No result is
// delivered after Close returns from the caller's point of view.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.supersedeLocked()
}

// supersedeLocked invalidates the previous cycle: the timer is stopped,
// the in-flight request is cancelled, and the generation counter makes
// any late delivery from it a no-op.
func (s *Searcher) supersedeLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher) fire(generation uint64, query string) {
	s.mu.Lock()
	if s.closed || generation != s.generation {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	suggestions, err := s.client.Search(ctx, query)

	s.mu.Lock()
	if s.closed || generation != s.generation {
		s.mu.Unlock()
		return
	}
	s.cancel = nil
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// the user kept typing; not an error
			return
		}
		s.deliver(Result{Query: query, Err: err})
		return
	}
	s.deliver(Result{Query: query, Suggestions: suggestions})
}
