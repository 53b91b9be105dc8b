package usecase

import (
	"path/filepath"
	"testing"
)

func catalogOf(root string, files ...FileRecord) Catalog {
	return Catalog{Root: root, Files: files}
}

func TestClassify(t *testing.T) {
	fs := newTestFileSystem()
	base := catalogOf("/snapshots/backup_20240101_000000",
		FileRecord{RelPath: "same.txt", Digest: "aaa"},
		FileRecord{RelPath: "edited.txt", Digest: "bbb"},
		FileRecord{RelPath: "deleted.txt", Digest: "ccc"},
	)
	source := catalogOf("/src",
		FileRecord{RelPath: "same.txt", Digest: "aaa"},
		FileRecord{RelPath: "edited.txt", Digest: "bbb2"},
		FileRecord{RelPath: "fresh.txt", Digest: "ddd"},
	)

	changes := classify(fs, source, base)
	if len(changes) != len(source.Files) {
		t.Fatalf("expected one change per source file, got %d", len(changes))
	}

	byPath := make(map[string]Change, len(changes))
	for _, c := range changes {
		byPath[c.RelPath] = c
	}

	if got := byPath["same.txt"].Status; got != StatusUnchanged {
		t.Errorf("same.txt = %s, want %s", got, StatusUnchanged)
	}
	wantBase := filepath.Join(base.Root, "same.txt")
	if got := byPath["same.txt"].BasePath; got != wantBase {
		t.Errorf("same.txt base path = %s, want %s", got, wantBase)
	}
	if got := byPath["edited.txt"].Status; got != StatusChanged {
		t.Errorf("edited.txt = %s, want %s", got, StatusChanged)
	}
	if got := byPath["fresh.txt"].Status; got != StatusNew {
		t.Errorf("fresh.txt = %s, want %s", got, StatusNew)
	}

	// Files deleted from the source never show up in the change set.
	if _, ok := byPath["deleted.txt"]; ok {
		t.Error("deleted.txt should not be classified")
	}
}

func TestClassify_DigestIsTheOnlyCriterion(t *testing.T) {
	fs := newTestFileSystem()
	base := catalogOf("/old",
		FileRecord{RelPath: "a.txt", Digest: "same", Size: 10},
	)
	source := catalogOf("/src",
		FileRecord{RelPath: "a.txt", Digest: "same", Size: 999},
	)

	changes := classify(fs, source, base)
	if len(changes) != 1 || changes[0].Status != StatusUnchanged {
		t.Fatalf("size mismatch alone must not force a copy, got %v", changes)
	}
}

func TestClassify_EmptyBase(t *testing.T) {
	fs := newTestFileSystem()
	source := catalogOf("/src",
		FileRecord{RelPath: "a.txt", Digest: "x"},
		FileRecord{RelPath: "b.txt", Digest: "y"},
	)

	changes := classify(fs, source, Catalog{Root: "/old"})
	if len(changes) != 2 {
		t.Fatalf("got %d changes", len(changes))
	}
	for _, c := range changes {
		if c.Status != StatusNew {
			t.Errorf("%s = %s, want %s", c.RelPath, c.Status, StatusNew)
		}
	}
}

func TestCountPending(t *testing.T) {
	changes := []Change{
		{RelPath: "a", Status: StatusNew},
		{RelPath: "b", Status: StatusUnchanged},
		{RelPath: "c", Status: StatusChanged},
		{RelPath: "d", Status: StatusUnchanged},
	}
	if got := countPending(changes); got != 2 {
		t.Errorf("countPending = %d, want 2", got)
	}
	if got := countPending(nil); got != 0 {
		t.Errorf("countPending(nil) = %d, want 0", got)
	}
}

func TestChangeStatusString(t *testing.T) {
	tests := []struct {
		status ChangeStatus
		want   string
	}{
		{StatusNew, "new"},
		{StatusChanged, "changed"},
		{StatusUnchanged, "unchanged"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("%d.String() = %s, want %s", tt.status, got, tt.want)
		}
	}
}
