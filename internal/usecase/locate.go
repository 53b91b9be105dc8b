package usecase

import (
	"context"
	"time"
)

const snapshotPrefix = "backup_"

// Snapshot directory names are backup_YYYYMMDD_HHMMSS. The timestamp is
// fixed-width and zero-padded, so lexical order equals chronological
// order.
const snapshotTimeLayout = "20060102_150405"

func formatSnapshotDir(now time.Time) string {
	return snapshotPrefix + now.Format(snapshotTimeLayout)
}

func snapshotID(dirName string) string {
	if !matchSnapshotDir(dirName) {
		return ""
	}
	return dirName[len(snapshotPrefix):]
}

func matchSnapshotDir(name string) bool {
	const want = len(snapshotPrefix) + len("20060102_150405")
	if len(name) != want {
		return false
	}
	if name[:len(snapshotPrefix)] != snapshotPrefix {
		return false
	}
	ts := name[len(snapshotPrefix):]
	if ts[8] != '_' {
		return false
	}
	for i, c := range []byte(ts) {
		if i == 8 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// findLatestSnapshot returns the path of the newest snapshot directory
// under backupRoot, or ok=false when none exists. A missing backup root
// counts as "no snapshots", not an error.
func findLatestSnapshot(ctx context.Context, deps *Dependencies, backupRoot string) (string, bool, error) {
	entries, err := deps.FileSystem.ReadDir(ctx, backupRoot)
	if err != nil {
		if deps.FileSystem.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	latest := ""
	for _, e := range entries {
		if !e.IsDir() || !matchSnapshotDir(e.Name()) {
			continue
		}
		if e.Name() > latest {
			latest = e.Name()
		}
	}
	if latest == "" {
		return "", false, nil
	}
	return deps.FileSystem.Join(backupRoot, latest), true, nil
}
