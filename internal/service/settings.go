package service

import (
	"database/sql"
	"fmt"

	"jot/internal/domain"
	"jot/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// App settings persistence
// ─────────────────────────────────────────────────────────────
//
// Window size and the last active mode survive between sessions, stored as
// key-value rows in app_settings (created by the storage layer migration).

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SettingsService persists small app settings between sessions.
type SettingsService struct {
	db *storage.DB
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(db *storage.DB) *SettingsService {
	return &SettingsService{db: db}
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	settingActiveMode   = "active_mode"
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800
)

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *SettingsService) LoadWindowSize() WindowSize {
	if s.db == nil {
		return WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
	}
	conn := s.db.Conn()

	w := defaultWindowWidth
	h := defaultWindowHeight
	row := conn.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, settingWindowWidth)
	row.Scan(&w)
	row = conn.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, settingWindowHeight)
	row.Scan(&h)

	if w < 800 {
		w = defaultWindowWidth
	}
	if h < 600 {
		h = defaultWindowHeight
	}
	return WindowSize{Width: w, Height: h}
}

// SaveWindowSize persists the current window dimensions.
func (s *SettingsService) SaveWindowSize(width, height int) error {
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	conn := s.db.Conn()
	if err := upsertSetting(conn, settingWindowWidth, width); err != nil {
		return err
	}
	return upsertSetting(conn, settingWindowHeight, height)
}

// LoadActiveMode returns the mode the editor last ran in, defaulting to
// normal mode.
func (s *SettingsService) LoadActiveMode() domain.Mode {
	if s.db == nil {
		return domain.ModeNormal
	}
	var v string
	s.db.Conn().QueryRow(`SELECT value FROM app_settings WHERE key = ?`, settingActiveMode).Scan(&v)
	if mode := domain.Mode(v); mode.Valid() {
		return mode
	}
	return domain.ModeNormal
}

// SaveActiveMode persists the active mode.
func (s *SettingsService) SaveActiveMode(mode domain.Mode) error {
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	if !mode.Valid() {
		return fmt.Errorf("settings: unknown mode %q", mode)
	}
	return upsertSetting(s.db.Conn(), settingActiveMode, string(mode))
}

func upsertSetting(conn *sql.DB, key string, value any) error {
	_, err := conn.Exec(
		`INSERT INTO app_settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}
