package scrollsync

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// ─────────────────────────────────────────────────────────────
// Scroll Synchronizer — raw editor ↔ rendered preview
// ─────────────────────────────────────────────────────────────
//
// Two independently scrollable surfaces track each other by scroll ratio.
// Applying the computed offset to the target surface provokes a scroll event
// of its own; a direction-locked guard keeps that echo from re-triggering a
// sync back toward the source:
//
//   - while a sync is in flight, only events from the surface that started
//     it are honored; the other surface's events are treated as echoes
//   - the in-flight flag clears after a settle window with no syncs
//   - the whole handler is throttled to roughly one event per frame
//
// The synchronizer is pure bookkeeping: the frontend reports viewport
// geometry and applies the returned offset.

// Viewport is the scroll geometry of one surface.
type Viewport struct {
	ScrollTop    float64 `json:"scrollTop"`
	ScrollHeight float64 `json:"scrollHeight"`
	ClientHeight float64 `json:"clientHeight"`
}

// Ratio returns the viewport's scroll position as a fraction of its
// scrollable range, clamped to [0,1]. A surface with no overflow is at 0.
func (v Viewport) Ratio() float64 {
	span := v.ScrollHeight - v.ClientHeight
	if span <= 0 {
		return 0
	}
	r := v.ScrollTop / span
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

const (
	defaultSettleWindow = 150 * time.Millisecond
	defaultThrottle     = 16 * time.Millisecond // ~60fps ceiling
)

// Synchronizer keeps two surfaces in lock-step.
type Synchronizer struct {
	throttle time.Duration
	settle   func(func())
	now      func() time.Time

	mu         sync.Mutex
	syncing    bool
	lastSource string
	lastAccept time.Time
}

// New creates a Synchronizer with production timings.
func New() *Synchronizer {
	return NewWithTimings(defaultSettleWindow, defaultThrottle)
}

// NewWithTimings is New with explicit settle window and throttle interval,
// used by tests.
func NewWithTimings(settleWindow, throttle time.Duration) *Synchronizer {
	return &Synchronizer{
		throttle: throttle,
		settle:   debounce.New(settleWindow),
		now:      time.Now,
	}
}

// Sync handles a scroll event from source and returns the scroll offset to
// apply to the opposite surface. ok is false when the event must be ignored:
// a suppressed echo, a mid-settle event from the other surface, or a
// throttled duplicate.
func (s *Synchronizer) Sync(source string, from, to Viewport) (target float64, ok bool) {
	s.mu.Lock()
	now := s.now()

	// Direction lock: during the settle window only the surface that started
	// the sync may continue driving it.
	if s.syncing && source != s.lastSource {
		s.mu.Unlock()
		return 0, false
	}
	if s.syncing && now.Sub(s.lastAccept) < s.throttle {
		s.mu.Unlock()
		return 0, false
	}

	s.syncing = true
	s.lastSource = source
	s.lastAccept = now
	s.mu.Unlock()

	// Restarted on every accepted sync; fires only once scrolling pauses.
	s.settle(func() {
		s.mu.Lock()
		s.syncing = false
		s.lastSource = ""
		s.mu.Unlock()
	})

	return from.Ratio() * maxScroll(to), true
}

// Syncing reports whether a sync is within its settle window.
func (s *Synchronizer) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

func maxScroll(v Viewport) float64 {
	if span := v.ScrollHeight - v.ClientHeight; span > 0 {
		return span
	}
	return 0
}
