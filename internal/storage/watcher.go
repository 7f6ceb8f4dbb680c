package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"jot/internal/domain"
)

// ExternalChangeHandler is called when a document file changes on disk.
type ExternalChangeHandler func(mode domain.Mode, content string)

// DocumentWatcher detects external modifications of the document files
// (another process, a sync client, the standalone MCP server) and reports the
// fresh content so the frontend can reload.
type DocumentWatcher struct {
	watcher  *fsnotify.Watcher
	store    *FileDocumentStore
	onChange ExternalChangeHandler

	mu       sync.Mutex
	watching map[string]domain.Mode // abs file path -> mode
	muted    map[string]bool        // paths whose next write is our own save
	seen     map[string]string      // last content observed per path
}

// NewDocumentWatcher starts watching the store's directory.
func NewDocumentWatcher(store *FileDocumentStore, onChange ExternalChangeHandler) (*DocumentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &DocumentWatcher{
		watcher:  watcher,
		store:    store,
		onChange: onChange,
		watching: make(map[string]domain.Mode),
		muted:    make(map[string]bool),
		seen:     make(map[string]string),
	}
	for _, mode := range []domain.Mode{domain.ModeNormal, domain.ModeMarkdown} {
		absPath, err := filepath.Abs(store.Path(mode))
		if err != nil {
			watcher.Close()
			return nil, err
		}
		w.watching[absPath] = mode
		// Baseline so a later event carrying identical content is not
		// reported as a change.
		if data, err := os.ReadFile(absPath); err == nil {
			w.seen[absPath] = string(data)
		}
	}

	// Watch the directory: fsnotify tracks dirs, and the files may not exist yet.
	if err := watcher.Add(store.Dir()); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", store.Dir(), err)
	}

	go w.watchLoop()
	return w, nil
}

// MuteNext suppresses the next write event for a mode's file. The save
// pipeline calls this before writing so its own save is not reported back as
// an external change.
func (w *DocumentWatcher) MuteNext(mode domain.Mode) {
	absPath, err := filepath.Abs(w.store.Path(mode))
	if err != nil {
		return
	}
	w.mu.Lock()
	w.muted[absPath] = true
	w.mu.Unlock()
}

// Close stops the watcher.
func (w *DocumentWatcher) Close() error {
	return w.watcher.Close()
}

func (w *DocumentWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			absPath, _ := filepath.Abs(event.Name)

			w.mu.Lock()
			mode, watched := w.watching[absPath]
			w.mu.Unlock()
			if !watched {
				continue
			}

			data, err := os.ReadFile(absPath)
			if err != nil {
				log.Printf("document watcher: read %s: %v", absPath, err)
				continue
			}
			content := string(data)

			// An atomic save lands as a rename plus a write on the same
			// path: the mute consumes the first event and the content
			// comparison absorbs the rest.
			w.mu.Lock()
			wasMuted := w.muted[absPath]
			delete(w.muted, absPath)
			unchanged := w.seen[absPath] == content
			w.seen[absPath] = content
			w.mu.Unlock()

			if wasMuted || unchanged {
				continue
			}
			if w.onChange != nil {
				w.onChange(mode, content)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("document watcher: %v", err)
		}
	}
}
