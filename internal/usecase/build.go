package usecase

import (
	"context"
	"fmt"
)

func recordFileError(rel string, err error, result *BackupResult) {
	if err == nil || result == nil {
		return
	}
	result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", rel, err))
	result.SkippedFiles++
	result.PartialSuccess = true
}

// buildSnapshot materializes the classified changes under snapshotRoot,
// mirroring the source tree's relative layout. New and changed files are
// copied from the source; unchanged files are hard-linked from the base
// snapshot, degrading to a byte copy when the link attempt fails for any
// reason. Per-file failures are warned and counted, never fatal; there
// is no cross-file atomicity.
func buildSnapshot(
	ctx context.Context,
	deps *Dependencies,
	changes []Change,
	sourceRoot,
	snapshotRoot string,
	result *BackupResult,
	bc *backupContext,
) error {
	for _, c := range changes {
		if ctx.Err() != nil {
			return ErrInterrupted
		}

		dst := deps.FileSystem.Join(snapshotRoot, c.RelPath)
		if err := deps.FileSystem.CreateDir(ctx, deps.FileSystem.Dir(dst), 0o755); err != nil {
			bc.warnf("mkdir for '%s': %v", c.RelPath, err)
			recordFileError(c.RelPath, err, result)
			continue
		}

		if c.Status == StatusUnchanged {
			buildUnchanged(ctx, deps, c, dst, result, bc)
			continue
		}

		src := deps.FileSystem.Join(sourceRoot, c.RelPath)
		if err := deps.FileSystem.Copy(ctx, src, dst); err != nil {
			bc.warnf("copy '%s': %v", c.RelPath, err)
			recordFileError(c.RelPath, err, result)
			continue
		}
		result.CopiedFiles++
		bc.vlogf("   %s: %s", c.Status, c.RelPath)
	}
	return nil
}

// buildUnchanged links dst to the base snapshot's file, falling back to a
// byte copy when linking is not possible (cross-device, no filesystem
// support). Link failure is an expected branch, not an error.
func buildUnchanged(
	ctx context.Context,
	deps *Dependencies,
	c Change,
	dst string,
	result *BackupResult,
	bc *backupContext,
) {
	linkErr := deps.FileSystem.Link(ctx, c.BasePath, dst)
	if linkErr == nil {
		result.LinkedFiles++
		bc.vlogf("   linked: %s", c.RelPath)
		return
	}
	bc.vlogf("   link failed for '%s', copying instead: %v", c.RelPath, linkErr)

	if err := deps.FileSystem.Copy(ctx, c.BasePath, dst); err != nil {
		bc.warnf("copy unchanged '%s': %v", c.RelPath, err)
		recordFileError(c.RelPath, err, result)
		return
	}
	result.LinkedFiles++
	bc.vlogf("   copied (link fallback): %s", c.RelPath)
}
