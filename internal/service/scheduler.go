package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"

	"jot/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// SaveScheduler — decides when the document is written
// ─────────────────────────────────────────────────────────────
//
// Two trigger classes feed one encode/write path:
//
//   ScheduleDebounced — every block mutation restarts a single-slot timer;
//   only the state current at expiry is written, so the latest edit wins and
//   no write is ever issued for a stale intermediate state.
//
//   SaveNow — blur and media insertion save immediately, bypassing the timer.
//
// A dirty flag shared by both paths makes a debounce firing after an
// immediate save a no-op. Empty or whitespace-only encoded documents are
// never written: a transient blank state must not clobber a prior save.
//
// Save failures are logged and otherwise ignored; the in-memory state stays
// on screen and the next trigger retries with the then-current state.

// SchedulerTimings configures the scheduler's delays. Zero values fall back
// to the defaults.
type SchedulerTimings struct {
	Debounce     time.Duration // autosave quiet period
	SavingWindow time.Duration // how long the advisory saving signal stays up
}

const (
	defaultDebounce     = 1000 * time.Millisecond
	defaultSavingWindow = 3000 * time.Millisecond
)

// SaveScheduler serializes and persists one mode's document.
type SaveScheduler struct {
	mode     domain.Mode
	store    domain.DocumentStore
	snapshot func() (string, bool)
	emitter  EventEmitter
	timings  SchedulerTimings

	debounced func(func())

	mu            sync.Mutex
	dirty         bool
	savingBlockID string
	savingTimer   *time.Timer
}

// NewSaveScheduler creates a scheduler for one mode. snapshot must return
// the serialized form of the current block list plus whether the document
// holds no meaningful content.
func NewSaveScheduler(mode domain.Mode, store domain.DocumentStore, snapshot func() (string, bool), emitter EventEmitter) *SaveScheduler {
	return NewSaveSchedulerWithTimings(mode, store, snapshot, emitter, SchedulerTimings{})
}

// NewSaveSchedulerWithTimings is NewSaveScheduler with explicit delays,
// used by tests to shrink the debounce window.
func NewSaveSchedulerWithTimings(mode domain.Mode, store domain.DocumentStore, snapshot func() (string, bool), emitter EventEmitter, t SchedulerTimings) *SaveScheduler {
	if t.Debounce <= 0 {
		t.Debounce = defaultDebounce
	}
	if t.SavingWindow <= 0 {
		t.SavingWindow = defaultSavingWindow
	}
	return &SaveScheduler{
		mode:      mode,
		store:     store,
		snapshot:  snapshot,
		emitter:   emitter,
		timings:   t,
		debounced: debounce.New(t.Debounce),
	}
}

// ScheduleDebounced marks the document dirty and (re)starts the autosave
// timer. At most one autosave is pending at any time.
func (s *SaveScheduler) ScheduleDebounced() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
	s.debounced(s.flush)
}

// SaveNow writes immediately, bypassing the debounce timer. blockID, when
// non-empty, raises the advisory saving signal for that block; it is cleared
// after the saving window elapses or right away on failure.
func (s *SaveScheduler) SaveNow(blockID string) {
	s.mu.Lock()
	s.dirty = true
	if blockID != "" {
		s.savingBlockID = blockID
		if s.savingTimer != nil {
			s.savingTimer.Stop()
		}
		s.savingTimer = time.AfterFunc(s.timings.SavingWindow, s.clearSaving)
	}
	s.mu.Unlock()

	if blockID != "" {
		s.emitter.Emit(context.Background(), "document:saving", map[string]string{
			"mode":    string(s.mode),
			"blockId": blockID,
		})
	}
	s.flush()
}

// SavingBlockID returns the block currently showing the advisory saving
// signal, or "".
func (s *SaveScheduler) SavingBlockID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savingBlockID
}

func (s *SaveScheduler) flush() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	s.mu.Unlock()

	text, blank := s.snapshot()
	if blank || strings.TrimSpace(text) == "" {
		return
	}
	if err := s.store.Save(s.mode, text); err != nil {
		log.Printf("[save] %s: save failed: %v", s.mode, err)
		s.clearSaving()
		return
	}
	s.emitter.Emit(context.Background(), "document:saved", map[string]string{
		"mode": string(s.mode),
	})
}

func (s *SaveScheduler) clearSaving() {
	s.mu.Lock()
	if s.savingTimer != nil {
		s.savingTimer.Stop()
		s.savingTimer = nil
	}
	cleared := s.savingBlockID != ""
	s.savingBlockID = ""
	s.mu.Unlock()

	if cleared {
		s.emitter.Emit(context.Background(), "document:saving", map[string]string{
			"mode":    string(s.mode),
			"blockId": "",
		})
	}
}
