package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"jot/internal/domain"
	"jot/internal/editor"
	"jot/internal/scrollsync"
	"jot/internal/service"
	"jot/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	db        *storage.DB
	store     domain.DocumentStore
	revisions *storage.RevisionStore
	watcher   *storage.DocumentWatcher
	settings  *service.SettingsService
	snapshots *service.SnapshotService
	scroll    *scrollsync.Synchronizer

	editors    map[domain.Mode]*editor.Editor
	schedulers map[domain.Mode]*service.SaveScheduler
}

// New creates a new App. The per-mode editors exist from construction so the
// document watcher callback never observes a partially wired App.
func New() *App {
	editors := make(map[domain.Mode]*editor.Editor)
	for _, mode := range []domain.Mode{domain.ModeNormal, domain.ModeMarkdown} {
		editors[mode] = editor.New(mode)
	}
	return &App{editors: editors}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "jot")
	dbPath := filepath.Join(dataDir, "jot.db")
	docDir := filepath.Join(dataDir, "documents")

	db, err := storage.New(dbPath, dataDir)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db
	a.revisions = storage.NewRevisionStore(db)
	a.settings = service.NewSettingsService(db)

	files, err := storage.NewFileDocumentStore(docDir)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open document store: %v", err)
		return
	}

	// External modification of a document file (sync client, standalone MCP
	// server) reloads the in-memory blocks and refreshes the frontend.
	watcher, err := storage.NewDocumentWatcher(files, func(mode domain.Mode, content string) {
		if ed, ok := a.editors[mode]; ok {
			ed.Load(content)
		}
		wailsRuntime.EventsEmit(a.ctx, "document:external-change", map[string]string{
			"mode": string(mode),
		})
	})
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to create document watcher: %v", err)
	}
	a.watcher = watcher

	// Save path: mute our own write on the watcher, write atomically, record
	// a revision row.
	a.store = &mutingStore{
		inner:   storage.NewRecordingDocumentStore(files, a.revisions),
		watcher: watcher,
	}

	a.schedulers = make(map[domain.Mode]*service.SaveScheduler)
	for mode, ed := range a.editors {
		ed := ed
		sched := service.NewSaveScheduler(mode, a.store, func() (string, bool) {
			return ed.Text(), ed.IsBlank()
		}, a)
		ed.SetOnChange(sched.ScheduleDebounced)
		a.schedulers[mode] = sched
	}

	a.snapshots = service.NewSnapshotService(docDir, filepath.Join(dataDir, "snapshots"))
	if err := a.snapshots.Start(""); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to start snapshot schedule: %v", err)
	}

	a.scroll = scrollsync.New()

	size := a.settings.LoadWindowSize()
	wailsRuntime.WindowSetSize(ctx, size.Width, size.Height)
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	for _, sched := range a.schedulers {
		sched.SaveNow("")
	}
	if a.snapshots != nil {
		a.snapshots.Stop()
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Emit implements service.EventEmitter by delegating to the Wails runtime.
func (a *App) Emit(_ context.Context, event string, data any) {
	if a.ctx != nil {
		wailsRuntime.EventsEmit(a.ctx, event, data)
	}
}

// ── helpers ────────────────────────────────────────────────

func (a *App) editorFor(mode string) (*editor.Editor, *service.SaveScheduler, error) {
	m := domain.Mode(mode)
	if !m.Valid() {
		return nil, nil, fmt.Errorf("unknown mode %q", mode)
	}
	return a.editors[m], a.schedulers[m], nil
}

// mutingStore suppresses the watcher echo of the app's own saves.
type mutingStore struct {
	inner   domain.DocumentStore
	watcher *storage.DocumentWatcher
}

func (s *mutingStore) Load(mode domain.Mode) (string, error) {
	return s.inner.Load(mode)
}

func (s *mutingStore) Save(mode domain.Mode, text string) error {
	if s.watcher != nil {
		s.watcher.MuteNext(mode)
	}
	return s.inner.Save(mode, text)
}
