package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"jot/internal/domain"
)

// FileDocumentStore persists one plain-text document per mode under the data
// directory. Saves replace the whole file atomically so a crash mid-write
// never leaves a half-written document behind.
type FileDocumentStore struct {
	dir string
}

// NewFileDocumentStore creates a store rooted at dir, creating it if needed.
func NewFileDocumentStore(dir string) (*FileDocumentStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	return &FileDocumentStore{dir: dir}, nil
}

// Dir returns the directory holding the document files.
func (s *FileDocumentStore) Dir() string { return s.dir }

// Path returns the document file path for a mode.
func (s *FileDocumentStore) Path(mode domain.Mode) string {
	if mode == domain.ModeMarkdown {
		return filepath.Join(s.dir, "note.md")
	}
	return filepath.Join(s.dir, "note.txt")
}

// Load returns the persisted document for the mode, or an empty string when
// none exists yet.
func (s *FileDocumentStore) Load(mode domain.Mode) (string, error) {
	data, err := os.ReadFile(s.Path(mode))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s document: %w", mode, err)
	}
	return string(data), nil
}

// Save replaces the persisted document for the mode.
func (s *FileDocumentStore) Save(mode domain.Mode, text string) error {
	if err := atomic.WriteFile(s.Path(mode), strings.NewReader(text)); err != nil {
		return fmt.Errorf("save %s document: %w", mode, err)
	}
	return nil
}
