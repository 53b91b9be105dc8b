package usecase

import (
	"context"
	"errors"
	"fmt"
)

// scanTree recursively enumerates root and returns a catalog with one
// record per regular file. Directories, symlinks and special files are
// skipped. A file that cannot be read is a skip event: it is reported in
// the returned warnings and excluded from the catalog, and the scan
// continues.
func scanTree(
	ctx context.Context,
	deps *Dependencies,
	root,
	algo string,
	bc *backupContext,
) (Catalog, []string, error) {
	catalog := Catalog{Root: root}
	var warnings []string

	walkErr := deps.FileSystem.Walk(ctx, root, func(path string, info FileInfo, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", path, err))
			bc.warnf("scan '%s': %v", path, err)
			return nil
		}
		if info == nil || !info.IsRegular() {
			return nil
		}

		rel, err := deps.FileSystem.Rel(root, path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", path, err))
			bc.warnf("scan '%s': %v", path, err)
			return nil
		}

		digest, err := fingerprintFile(ctx, deps.FileSystem, path, algo)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", rel, err))
			bc.warnf("skip unreadable '%s': %v", rel, err)
			return nil
		}

		catalog.Files = append(catalog.Files, FileRecord{
			RelPath: rel,
			Digest:  digest,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			return Catalog{}, warnings, ErrInterrupted
		}
		return Catalog{}, warnings, fmt.Errorf("walk '%s': %w", root, walkErr)
	}

	return catalog, warnings, nil
}
