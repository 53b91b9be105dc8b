package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type backupContext struct {
	logger  *slog.Logger
	verbose bool
}

func newBackupContext(logger *slog.Logger, verbose bool) *backupContext {
	if logger == nil {
		panic("logger is required")
	}
	return &backupContext{logger: logger, verbose: verbose}
}

func (bc *backupContext) logf(format string, a ...any) {
	bc.logger.Info(fmt.Sprintf(format, a...))
}

func (bc *backupContext) vlogf(format string, a ...any) {
	if !bc.verbose {
		return
	}
	bc.logf(format, a...)
}

func (bc *backupContext) warnf(format string, a ...any) {
	bc.logger.Warn(fmt.Sprintf(format, a...))
}

func checkBackupDeps(cfg *Config, deps *Dependencies) error {
	if deps == nil || deps.FileSystem == nil {
		return fmt.Errorf("filesystem adapter not available: %w", ErrCritical)
	}
	if cfg.SourceDir == "" || cfg.BackupDir == "" {
		return fmt.Errorf("source and backup directories are required: %w", ErrUsage)
	}
	return nil
}

func ensureSourceDir(ctx context.Context, deps *Dependencies, source string) error {
	info, err := deps.FileSystem.Stat(ctx, source)
	if err != nil {
		if deps.FileSystem.IsNotExist(err) {
			return fmt.Errorf("source directory '%s' does not exist: %w", source, ErrSourceMissing)
		}
		return fmt.Errorf("stat source '%s': %v: %w", source, err, ErrCritical)
	}
	if info != nil && !info.IsDir() {
		return fmt.Errorf("source '%s' is not a directory: %w", source, ErrUsage)
	}
	return nil
}

// FullBackup scans cfg.SourceDir and mirrors every regular file into a
// fresh timestamped snapshot directory under cfg.BackupDir. Per-file
// failures degrade the copied/total ratio but never abort the run.
func FullBackup(
	ctx context.Context,
	cfg *Config,
	deps *Dependencies,
	ledger *Ledger,
	logger *slog.Logger,
) (*BackupResult, error) {
	bc := newBackupContext(logger, cfg.Verbose)
	if err := checkBackupDeps(cfg, deps); err != nil {
		return nil, err
	}
	if err := ensureSourceDir(ctx, deps, cfg.SourceDir); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrInterrupted
	}

	bc.logf("Scanning source directory: %s", cfg.SourceDir)
	catalog, scanWarnings, err := scanTree(ctx, deps, cfg.SourceDir, cfg.Hash, bc)
	if err != nil {
		if errors.Is(err, ErrInterrupted) {
			return nil, ErrInterrupted
		}
		return nil, fmt.Errorf("scan source: %v: %w", err, ErrCritical)
	}

	now := time.Now()
	snapshotDir := deps.FileSystem.Join(cfg.BackupDir, formatSnapshotDir(now))
	if err := deps.FileSystem.CreateDir(ctx, snapshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %v: %w", err, ErrCritical)
	}

	changes := make([]Change, 0, len(catalog.Files))
	for _, f := range catalog.Files {
		changes = append(changes, Change{RelPath: f.RelPath, Status: StatusNew})
	}

	result := &BackupResult{TotalFiles: len(catalog.Files)}
	result.Warnings = append(result.Warnings, scanWarnings...)

	bc.logf("Copying %d file(s)...", len(changes))
	if err := buildSnapshot(ctx, deps, changes, cfg.SourceDir, snapshotDir, result, bc); err != nil {
		return nil, err
	}

	result.Record = SnapshotRecord{
		TimestampID:      now.Format(snapshotTimeLayout),
		SnapshotPath:     snapshotDir,
		SourcePath:       cfg.SourceDir,
		TotalSourceFiles: len(catalog.Files),
		ChangedFiles:     len(changes),
		CopiedFiles:      result.CopiedFiles,
		FilesWritten:     result.FilesWritten(),
		Incremental:      false,
	}
	if err := ledger.Record(ctx, deps.FileSystem, cfg.BackupDir, result.Record); err != nil {
		bc.warnf("history ledger write failed: %v", err)
	}

	bc.logf("Backup complete: %s (%d/%d files)", snapshotDir, result.CopiedFiles, result.TotalFiles)
	printBackupSummary(result, bc)
	return result, nil
}

// IncrementalBackup diffs cfg.SourceDir against the most recent snapshot
// under cfg.BackupDir. New and changed files are copied from the source;
// unchanged files are hard-linked from the base snapshot. Without a prior
// snapshot the run degrades to a full backup. When nothing changed, no
// snapshot directory is created at all.
func IncrementalBackup(
	ctx context.Context,
	cfg *Config,
	deps *Dependencies,
	ledger *Ledger,
	logger *slog.Logger,
) (*BackupResult, error) {
	bc := newBackupContext(logger, cfg.Verbose)
	if err := checkBackupDeps(cfg, deps); err != nil {
		return nil, err
	}
	if err := ensureSourceDir(ctx, deps, cfg.SourceDir); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrInterrupted
	}

	baseDir, ok, err := findLatestSnapshot(ctx, deps, cfg.BackupDir)
	if err != nil {
		return nil, fmt.Errorf("locate latest snapshot: %v: %w", err, ErrCritical)
	}
	if !ok {
		bc.logf("No prior snapshot found, running a full backup instead")
		return FullBackup(ctx, cfg, deps, ledger, logger)
	}
	bc.logf("Latest snapshot: %s", baseDir)

	bc.logf("Scanning for changes...")
	source, scanWarnings, err := scanTree(ctx, deps, cfg.SourceDir, cfg.Hash, bc)
	if err != nil {
		if errors.Is(err, ErrInterrupted) {
			return nil, ErrInterrupted
		}
		return nil, fmt.Errorf("scan source: %v: %w", err, ErrCritical)
	}
	base, _, err := scanTree(ctx, deps, baseDir, cfg.Hash, bc)
	if err != nil {
		if errors.Is(err, ErrInterrupted) {
			return nil, ErrInterrupted
		}
		return nil, fmt.Errorf("scan base snapshot: %v: %w", err, ErrCritical)
	}

	changes := classify(deps.FileSystem, source, base)
	pending := countPending(changes)

	result := &BackupResult{TotalFiles: len(changes)}
	result.Warnings = append(result.Warnings, scanWarnings...)

	if pending == 0 {
		result.NoChanges = true
		bc.logf("No changed files, nothing to back up")
		return result, nil
	}

	now := time.Now()
	snapshotDir := deps.FileSystem.Join(cfg.BackupDir, formatSnapshotDir(now))
	if err := deps.FileSystem.CreateDir(ctx, snapshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %v: %w", err, ErrCritical)
	}

	bc.logf("Backing up %d changed file(s)...", pending)
	if err := buildSnapshot(ctx, deps, changes, cfg.SourceDir, snapshotDir, result, bc); err != nil {
		return nil, err
	}

	result.Record = SnapshotRecord{
		TimestampID:      now.Format(snapshotTimeLayout),
		SnapshotPath:     snapshotDir,
		SourcePath:       cfg.SourceDir,
		TotalSourceFiles: len(source.Files),
		ChangedFiles:     pending,
		CopiedFiles:      result.CopiedFiles,
		FilesWritten:     result.FilesWritten(),
		Incremental:      true,
		BaseSnapshotID:   snapshotID(deps.FileSystem.Base(baseDir)),
	}
	if err := ledger.Record(ctx, deps.FileSystem, cfg.BackupDir, result.Record); err != nil {
		bc.warnf("history ledger write failed: %v", err)
	}

	bc.logf("Incremental backup complete: %s (%d/%d changed files, %d linked)",
		snapshotDir, result.CopiedFiles, pending, result.LinkedFiles)
	printBackupSummary(result, bc)
	return result, nil
}

func printBackupSummary(result *BackupResult, bc *backupContext) {
	if result.SkippedFiles == 0 && len(result.Warnings) == 0 {
		return
	}

	if result.SkippedFiles > 0 {
		bc.warnf("WARNING: %d file(s) were not written due to errors", result.SkippedFiles)
	}

	const maxShown = 5
	if len(result.Warnings) > maxShown {
		bc.warnf("First %d issues:", maxShown)
		for _, w := range result.Warnings[:maxShown] {
			bc.warnf("  - %s", w)
		}
		bc.warnf("  ... and %d more", len(result.Warnings)-maxShown)
	} else {
		for _, w := range result.Warnings {
			bc.warnf("  - %s", w)
		}
	}

	if result.PartialSuccess {
		bc.warnf("Backup completed with warnings; some files were not backed up")
	}
}
