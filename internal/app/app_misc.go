package app

import (
	"jot/internal/domain"
	"jot/internal/scrollsync"
	"jot/internal/service"
	"jot/internal/storage"
)

// ── Scroll synchronization ─────────────────────────────────

// ScrollTarget is the outcome of a scroll event: the offset to apply to the
// opposite surface, or Apply=false when the event was an echo or throttled.
type ScrollTarget struct {
	Target float64 `json:"target"`
	Apply  bool    `json:"apply"`
}

// SyncScroll maps a scroll event on one surface onto the other.
// source is "editor" or "preview".
func (a *App) SyncScroll(source string, from, to scrollsync.Viewport) ScrollTarget {
	target, ok := a.scroll.Sync(source, from, to)
	return ScrollTarget{Target: target, Apply: ok}
}

// ── Settings ───────────────────────────────────────────────

// GetWindowSize returns the persisted window dimensions.
func (a *App) GetWindowSize() service.WindowSize {
	return a.settings.LoadWindowSize()
}

// SaveWindowSize persists the current window dimensions.
func (a *App) SaveWindowSize(width, height int) error {
	return a.settings.SaveWindowSize(width, height)
}

// GetActiveMode returns the mode the editor last ran in.
func (a *App) GetActiveMode() string {
	return string(a.settings.LoadActiveMode())
}

// SetActiveMode persists the active mode. Switching mode never converts
// content: each mode keeps its own document.
func (a *App) SetActiveMode(mode string) error {
	return a.settings.SaveActiveMode(domain.Mode(mode))
}

// ── Revisions & snapshots ──────────────────────────────────

// ListRevisions returns the latest save log entries for a mode.
func (a *App) ListRevisions(mode string, limit int) ([]storage.Revision, error) {
	ed, _, err := a.editorFor(mode)
	if err != nil {
		return nil, err
	}
	return a.revisions.Recent(ed.Mode(), limit)
}

// SnapshotNow copies the document files into the snapshots directory.
func (a *App) SnapshotNow() error {
	return a.snapshots.SnapshotOnce()
}
