package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMatchSnapshotDir(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"backup_20240615_120000", true},
		{"backup_20231231_235959", true},
		{"backup_20240615_12000", false},   // too short
		{"backup_20240615_1200000", false}, // too long
		{"backup_20240615-120000", false},
		{"snapshot_20240615_120000", false},
		{"backup_2024x615_120000", false},
		{"backup_history.txt", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := matchSnapshotDir(tt.name); got != tt.want {
			t.Errorf("matchSnapshotDir(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFormatSnapshotDir(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	got := formatSnapshotDir(now)
	if got != "backup_20240615_120000" {
		t.Errorf("formatSnapshotDir = %s", got)
	}
	if !matchSnapshotDir(got) {
		t.Error("formatted name does not match its own pattern")
	}
}

func TestSnapshotID(t *testing.T) {
	if got := snapshotID("backup_20240615_120000"); got != "20240615_120000" {
		t.Errorf("snapshotID = %s", got)
	}
	if got := snapshotID("not-a-snapshot"); got != "" {
		t.Errorf("snapshotID for invalid name = %q, want empty", got)
	}
}

func TestFindLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	for _, name := range []string{
		"backup_20240101_000000",
		"backup_20240615_120000",
		"backup_20231231_235959",
	} {
		if err := os.Mkdir(filepath.Join(root, name), 0o750); err != nil {
			t.Fatal(err)
		}
	}
	// Distractors: a non-snapshot dir and a matching-named plain file.
	if err := os.Mkdir(filepath.Join(root, "notes"), 0o750); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, root, "backup_20990101_000000", "not a dir")

	got, ok, err := findLatestSnapshot(ctx, testDeps(), root)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a snapshot to be found")
	}
	want := filepath.Join(root, "backup_20240615_120000")
	if got != want {
		t.Errorf("latest = %s, want %s", got, want)
	}
}

func TestFindLatestSnapshot_NoSnapshots(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "unrelated"), 0o750); err != nil {
		t.Fatal(err)
	}

	_, ok, err := findLatestSnapshot(ctx, testDeps(), root)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected no snapshot")
	}
}

func TestFindLatestSnapshot_MissingRoot(t *testing.T) {
	ctx := context.Background()
	_, ok, err := findLatestSnapshot(ctx, testDeps(), filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing backup root should not be an error: %v", err)
	}
	if ok {
		t.Error("expected no snapshot")
	}
}
