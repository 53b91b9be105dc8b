package usecase

import (
	"context"
	"fmt"
)

// HistoryFileName is the append-only ledger at the backup root. The file
// is a human-readable audit trail and is never parsed back; the latest
// snapshot is always re-derived from directory names.
const HistoryFileName = "backup_history.txt"

// Ledger holds the snapshot records of the running process, in insertion
// (chronological) order, and mirrors each one as a line in the on-disk
// history file.
type Ledger struct {
	records []SnapshotRecord
}

// NewLedger returns an empty in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends rec in memory and writes one ledger line under
// backupRoot. The in-memory append happens even when the file write
// fails; the write error is returned so the caller can warn.
func (l *Ledger) Record(ctx context.Context, fs FileSystemPort, backupRoot string, rec SnapshotRecord) error {
	l.records = append(l.records, rec)

	path := fs.Join(backupRoot, HistoryFileName)
	return fs.AppendFile(ctx, path, []byte(ledgerLine(rec)), 0o644)
}

// List returns the records held in memory, oldest first.
func (l *Ledger) List() []SnapshotRecord {
	out := make([]SnapshotRecord, len(l.records))
	copy(out, l.records)
	return out
}

// HistoryLines renders the in-memory records as human-readable blocks
// for the show-history operation.
func HistoryLines(records []SnapshotRecord) []string {
	if len(records) == 0 {
		return []string{"no backups recorded in this session"}
	}

	var lines []string
	for _, rec := range records {
		kind := "full"
		if rec.Incremental {
			kind = "incremental"
		}
		lines = append(lines,
			fmt.Sprintf("time: %s", rec.TimestampID),
			fmt.Sprintf("type: %s", kind),
		)
		if rec.Incremental {
			lines = append(lines, fmt.Sprintf("based on: %s", rec.BaseSnapshotID))
		}
		lines = append(lines,
			fmt.Sprintf("source: %s", rec.SourcePath),
			fmt.Sprintf("snapshot: %s", rec.SnapshotPath),
			fmt.Sprintf("files: %d/%d", rec.FilesWritten, rec.TotalSourceFiles),
			"------------------------",
		)
	}
	return lines
}

// ledgerLine renders the historical single-line format. The wording is
// kept byte-compatible with ledgers written by earlier releases.
func ledgerLine(rec SnapshotRecord) string {
	if rec.Incremental {
		return fmt.Sprintf("%s: 增量备份自 %s (共 %d/%d 变更文件)\n",
			rec.TimestampID, rec.SourcePath, rec.CopiedFiles, rec.ChangedFiles)
	}
	return fmt.Sprintf("%s: 备份自 %s (共 %d/%d 文件)\n",
		rec.TimestampID, rec.SourcePath, rec.CopiedFiles, rec.TotalSourceFiles)
}
