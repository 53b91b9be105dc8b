package usecase

import "time"

// Config contains all application configuration
type Config struct {
	BackupDir       string
	SourceDir       string
	Hash            string
	DebounceSeconds int
	Verbose         bool
}

// FileInfo represents file information.
type FileInfo interface {
	Name() string
	Size() int64
	Mode() int
	ModTime() time.Time
	IsDir() bool
	IsSymlink() bool
	IsRegular() bool
	Sys() interface{}
}

// WalkFunc is called for each file/directory during Walk.
type WalkFunc func(path string, info FileInfo, err error) error

// DirEntry represents a directory entry.
type DirEntry interface {
	Name() string
	IsDir() bool
}

// FileRecord describes one regular file observed during a tree scan.
// Records are immutable once created and owned by their Catalog.
type FileRecord struct {
	RelPath string
	Digest  string
	Size    int64
	ModTime time.Time
}

// Catalog is the set of file records produced by scanning one tree.
// Root is carried explicitly so relative paths are always root-relative,
// for source and base-snapshot catalogs alike.
type Catalog struct {
	Root  string
	Files []FileRecord
}

// Index returns the catalog's records keyed by relative path.
func (c Catalog) Index() map[string]FileRecord {
	idx := make(map[string]FileRecord, len(c.Files))
	for _, f := range c.Files {
		idx[f.RelPath] = f
	}
	return idx
}

// ChangeStatus classifies a source file relative to the base snapshot.
type ChangeStatus int

const (
	// StatusNew means the file has no counterpart in the base snapshot.
	StatusNew ChangeStatus = iota
	// StatusChanged means the counterpart exists but content digests differ.
	StatusChanged
	// StatusUnchanged means the counterpart exists with an equal digest.
	StatusUnchanged
)

// String returns the status name for logs.
func (s ChangeStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusChanged:
		return "changed"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Change is one per-file decision driving copy-vs-link behavior.
// BasePath is set only for unchanged files and points at the base
// snapshot's copy to hard-link from.
type Change struct {
	RelPath  string
	Status   ChangeStatus
	BasePath string
}

// SnapshotRecord is the metadata for one completed snapshot. Appended to
// the history ledger exactly once and never mutated afterward.
type SnapshotRecord struct {
	TimestampID      string
	SnapshotPath     string
	SourcePath       string
	TotalSourceFiles int
	ChangedFiles     int
	CopiedFiles      int
	FilesWritten     int
	Incremental      bool
	BaseSnapshotID   string
}

// BackupResult contains backup execution statistics
type BackupResult struct {
	Record         SnapshotRecord
	TotalFiles     int
	CopiedFiles    int
	LinkedFiles    int
	SkippedFiles   int
	Warnings       []string
	NoChanges      bool
	PartialSuccess bool
}

// FilesWritten is the number of files successfully materialized in the
// snapshot, by copy or by hard link.
func (r *BackupResult) FilesWritten() int {
	return r.CopiedFiles + r.LinkedFiles
}
