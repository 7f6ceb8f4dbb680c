package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jot/internal/service"
)

// ─────────────────────────────────────────────────────────────
// SnapshotService tests
// ─────────────────────────────────────────────────────────────

func TestSnapshotOnce_CopiesDocuments(t *testing.T) {
	docDir := t.TempDir()
	snapDir := filepath.Join(t.TempDir(), "snapshots")

	if err := os.WriteFile(filepath.Join(docDir, "note.txt"), []byte("structured"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(docDir, "note.md"), []byte("# markdown"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	svc := service.NewSnapshotService(docDir, snapDir)
	if err := svc.SnapshotOnce(); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	entries, err := os.ReadDir(snapDir)
	if err != nil {
		t.Fatalf("read snapshot dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 snapshot files, got %d", len(entries))
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), "note.txt") && !strings.HasSuffix(entry.Name(), "note.md") {
			t.Errorf("unexpected snapshot file %q", entry.Name())
		}
	}
}

func TestSnapshotOnce_EmptyDocDir(t *testing.T) {
	svc := service.NewSnapshotService(t.TempDir(), filepath.Join(t.TempDir(), "snapshots"))
	if err := svc.SnapshotOnce(); err != nil {
		t.Fatalf("snapshot of empty dir must succeed: %v", err)
	}
}

func TestSnapshotStart_RejectsBadSpec(t *testing.T) {
	svc := service.NewSnapshotService(t.TempDir(), t.TempDir())
	defer svc.Stop()

	if err := svc.Start("not a cron spec"); err == nil {
		t.Error("expected invalid cron spec to be rejected")
	}
	if err := svc.Start(""); err != nil {
		t.Errorf("default spec must be accepted: %v", err)
	}
}
