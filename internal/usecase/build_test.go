package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestBuildSnapshot_CopiesNewAndChanged(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	snap := t.TempDir()
	writeTestFile(t, src, "a.txt", "alpha")
	writeTestFile(t, src, "sub/b.txt", "beta")

	changes := []Change{
		{RelPath: "a.txt", Status: StatusNew},
		{RelPath: filepath.Join("sub", "b.txt"), Status: StatusChanged},
	}
	result := &BackupResult{TotalFiles: len(changes)}
	err := buildSnapshot(ctx, testDeps(), changes, src, snap, result, newTestBackupContext(false))
	if err != nil {
		t.Fatal(err)
	}

	if result.CopiedFiles != 2 || result.LinkedFiles != 0 || result.SkippedFiles != 0 {
		t.Fatalf("copied=%d linked=%d skipped=%d", result.CopiedFiles, result.LinkedFiles, result.SkippedFiles)
	}
	if got := readTestFile(t, filepath.Join(snap, "a.txt")); got != "alpha" {
		t.Errorf("a.txt = %q", got)
	}
	if got := readTestFile(t, filepath.Join(snap, "sub", "b.txt")); got != "beta" {
		t.Errorf("sub/b.txt = %q", got)
	}
}

func TestBuildSnapshot_HardLinksUnchanged(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	snap := t.TempDir()
	basePath := writeTestFile(t, base, "keep.txt", "stable")

	changes := []Change{{RelPath: "keep.txt", Status: StatusUnchanged, BasePath: basePath}}
	result := &BackupResult{TotalFiles: 1}
	err := buildSnapshot(ctx, testDeps(), changes, t.TempDir(), snap, result, newTestBackupContext(false))
	if err != nil {
		t.Fatal(err)
	}

	if result.LinkedFiles != 1 || result.CopiedFiles != 0 {
		t.Fatalf("linked=%d copied=%d", result.LinkedFiles, result.CopiedFiles)
	}
	dst := filepath.Join(snap, "keep.txt")
	baseInfo, err := os.Stat(basePath)
	if err != nil {
		t.Fatal(err)
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !os.SameFile(baseInfo, dstInfo) {
		t.Error("expected snapshot file to be a hard link of the base file")
	}
}

// noLinkFS simulates a filesystem without hard-link support.
type noLinkFS struct {
	*testFileSystem
}

func (f noLinkFS) Link(ctx context.Context, oldPath, newPath string) error {
	return fmt.Errorf("links not supported")
}

func TestBuildSnapshot_LinkFailureFallsBackToCopy(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	snap := t.TempDir()
	basePath := writeTestFile(t, base, "keep.txt", "stable")

	deps := &Dependencies{FileSystem: noLinkFS{newTestFileSystem()}}
	changes := []Change{{RelPath: "keep.txt", Status: StatusUnchanged, BasePath: basePath}}
	result := &BackupResult{TotalFiles: 1}
	err := buildSnapshot(ctx, deps, changes, t.TempDir(), snap, result, newTestBackupContext(false))
	if err != nil {
		t.Fatal(err)
	}

	// The fallback copy still counts as a carried-over file, not a skip.
	if result.LinkedFiles != 1 || result.SkippedFiles != 0 {
		t.Fatalf("linked=%d skipped=%d", result.LinkedFiles, result.SkippedFiles)
	}
	if got := readTestFile(t, filepath.Join(snap, "keep.txt")); got != "stable" {
		t.Errorf("keep.txt = %q", got)
	}
}

// failingCopyFS fails copies whose destination name contains "bad".
type failingCopyFS struct {
	*testFileSystem
}

func (f failingCopyFS) Copy(ctx context.Context, src, dst string) error {
	if strings.Contains(filepath.Base(dst), "bad") {
		return fmt.Errorf("copy refused")
	}
	return f.testFileSystem.Copy(ctx, src, dst)
}

func TestBuildSnapshot_CopyFailureIsWarnedNotFatal(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	snap := t.TempDir()
	writeTestFile(t, src, "good.txt", "g")
	writeTestFile(t, src, "bad.txt", "b")

	deps := &Dependencies{FileSystem: failingCopyFS{newTestFileSystem()}}
	changes := []Change{
		{RelPath: "good.txt", Status: StatusNew},
		{RelPath: "bad.txt", Status: StatusNew},
	}
	result := &BackupResult{TotalFiles: len(changes)}
	err := buildSnapshot(ctx, deps, changes, src, snap, result, newTestBackupContext(false))
	if err != nil {
		t.Fatal(err)
	}

	if result.CopiedFiles != 1 || result.SkippedFiles != 1 {
		t.Fatalf("copied=%d skipped=%d", result.CopiedFiles, result.SkippedFiles)
	}
	if !result.PartialSuccess {
		t.Error("expected partial success flag")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "bad.txt") {
		t.Errorf("warnings = %v", result.Warnings)
	}
	if _, err := os.Stat(filepath.Join(snap, "good.txt")); err != nil {
		t.Errorf("good.txt should still be written: %v", err)
	}
}

func TestBuildSnapshot_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := t.TempDir()
	writeTestFile(t, src, "a.txt", "x")

	changes := []Change{{RelPath: "a.txt", Status: StatusNew}}
	result := &BackupResult{TotalFiles: 1}
	err := buildSnapshot(ctx, testDeps(), changes, src, t.TempDir(), result, newTestBackupContext(false))
	if err != ErrInterrupted {
		t.Fatalf("err = %v, want ErrInterrupted", err)
	}
}
