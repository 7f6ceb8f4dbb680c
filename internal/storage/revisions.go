package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"jot/internal/domain"
)

// Revision is one successful save recorded in the log.
type Revision struct {
	ID       string      `json:"id"`
	Mode     domain.Mode `json:"mode"`
	ByteSize int64       `json:"byteSize"`
	SavedAt  time.Time   `json:"savedAt"`
}

// RevisionStore keeps the append-only log of successful saves.
type RevisionStore struct {
	db *DB
}

func NewRevisionStore(db *DB) *RevisionStore {
	return &RevisionStore{db: db}
}

func (s *RevisionStore) Append(mode domain.Mode, byteSize int64) error {
	_, err := s.db.Conn().Exec(
		`INSERT INTO revisions (id, mode, byte_size, saved_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), mode, byteSize, time.Now(),
	)
	return err
}

// Recent returns the latest revisions for a mode, newest first.
func (s *RevisionStore) Recent(mode domain.Mode, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Conn().Query(
		`SELECT id, mode, byte_size, saved_at FROM revisions WHERE mode = ? ORDER BY saved_at DESC LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.Mode, &r.ByteSize, &r.SavedAt); err != nil {
			return nil, err
		}
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// RecordingDocumentStore wraps a DocumentStore and appends a revision row
// after every successful save. Log failures never fail the save itself.
type RecordingDocumentStore struct {
	inner     domain.DocumentStore
	revisions *RevisionStore
}

func NewRecordingDocumentStore(inner domain.DocumentStore, revisions *RevisionStore) *RecordingDocumentStore {
	return &RecordingDocumentStore{inner: inner, revisions: revisions}
}

func (s *RecordingDocumentStore) Load(mode domain.Mode) (string, error) {
	return s.inner.Load(mode)
}

func (s *RecordingDocumentStore) Save(mode domain.Mode, text string) error {
	if err := s.inner.Save(mode, text); err != nil {
		return err
	}
	_ = s.revisions.Append(mode, int64(len(text)))
	return nil
}
