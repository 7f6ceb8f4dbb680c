package service

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/robfig/cron/v3"
)

// ─────────────────────────────────────────────────────────────
// SnapshotService — scheduled copies of the document files
// ─────────────────────────────────────────────────────────────

// DefaultSnapshotSpec runs the snapshot job daily at 03:00.
const DefaultSnapshotSpec = "0 3 * * *"

// SnapshotService periodically copies the persisted document files into a
// snapshots directory, so a corrupted or accidentally cleared note can be
// recovered by hand.
type SnapshotService struct {
	docDir  string
	snapDir string
	sched   *cron.Cron
}

// NewSnapshotService creates a SnapshotService reading documents from docDir
// and writing snapshots under snapDir.
func NewSnapshotService(docDir, snapDir string) *SnapshotService {
	return &SnapshotService{docDir: docDir, snapDir: snapDir}
}

// Start schedules the snapshot job. spec is a cron expression; empty means
// DefaultSnapshotSpec.
func (s *SnapshotService) Start(spec string) error {
	if spec == "" {
		spec = DefaultSnapshotSpec
	}
	s.sched = cron.New()
	if _, err := s.sched.AddFunc(spec, func() {
		if err := s.SnapshotOnce(); err != nil {
			log.Printf("[snapshot] %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule snapshot: %w", err)
	}
	s.sched.Start()
	return nil
}

// Stop halts the scheduler. Safe to call when Start was never called.
func (s *SnapshotService) Stop() {
	if s.sched != nil {
		s.sched.Stop()
	}
}

// SnapshotOnce copies every document file into the snapshots directory with
// a timestamped name. Missing documents are skipped, not errors.
func (s *SnapshotService) SnapshotOnce() error {
	if err := os.MkdirAll(s.snapDir, 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")

	entries, err := os.ReadDir(s.docDir)
	if err != nil {
		return fmt.Errorf("read doc dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.docDir, entry.Name()))
		if err != nil {
			continue
		}
		dst := filepath.Join(s.snapDir, stamp+"-"+entry.Name())
		if err := atomic.WriteFile(dst, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("write snapshot %s: %w", dst, err)
		}
	}
	return nil
}
