// Package filesystem implements the usecase filesystem port on top of
// the standard os and filepath packages.
package filesystem

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arumata/snapdir/internal/usecase"
)

// Adapter implements usecase.FileSystemPort.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new filesystem adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("filesystem adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// OpenFile opens a file for streaming reads.
func (a *Adapter) OpenFile(ctx context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path) // #nosec G304 - paths are controlled by usecase
}

// ReadFile reads file content
func (a *Adapter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(path) // #nosec G304 - paths are controlled by usecase
}

// WriteFile writes content to file
func (a *Adapter) WriteFile(ctx context.Context, path string, data []byte, perm int) error {
	return os.WriteFile(path, data, safeFileMode(perm, 0o644))
}

// AppendFile appends data to path, creating the file when missing.
func (a *Adapter) AppendFile(ctx context.Context, path string, data []byte, perm int) error {
	// #nosec G304 - paths are controlled by usecase
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, safeFileMode(perm, 0o644))
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// CreateDir creates directory with permissions
func (a *Adapter) CreateDir(ctx context.Context, path string, perm int) error {
	return os.MkdirAll(path, safeFileMode(perm, 0o755))
}

// RemoveAll removes directory and all contents
func (a *Adapter) RemoveAll(ctx context.Context, path string) error {
	return os.RemoveAll(path)
}

// Stat returns file info
func (a *Adapter) Stat(ctx context.Context, path string) (usecase.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &fileInfoWrapper{info}, nil
}

// Walk traverses directory tree. Symlinks are reported, not followed.
func (a *Adapter) Walk(ctx context.Context, root string, walkFn usecase.WalkFunc) error {
	return filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		var fileInfo usecase.FileInfo
		if info != nil {
			fileInfo = &fileInfoWrapper{info}
		}
		return walkFn(path, fileInfo, err)
	})
}

// ReadDir lists directory entries
func (a *Adapter) ReadDir(ctx context.Context, path string) ([]usecase.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	result := make([]usecase.DirEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, &dirEntryWrapper{entry})
	}
	return result, nil
}

// Copy copies the byte content of src to dst, overwriting dst and
// preserving the source's permission bits.
func (a *Adapter) Copy(ctx context.Context, src, dst string) error {
	srcFile, err := os.Open(src) // #nosec G304 - paths are controlled by usecase
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.Create(dst) // #nosec G304 - paths are controlled by usecase
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}

	return os.Chmod(dst, srcInfo.Mode())
}

// Link creates a hard link at newPath referring to oldPath. A
// pre-existing newPath is replaced so rebuild-over-partial behaves like
// copy-with-overwrite.
func (a *Adapter) Link(ctx context.Context, oldPath, newPath string) error {
	err := os.Link(oldPath, newPath)
	if err != nil && os.IsExist(err) {
		if rmErr := os.Remove(newPath); rmErr == nil {
			err = os.Link(oldPath, newPath)
		}
	}
	return err
}

// Join joins path elements
func (a *Adapter) Join(elements ...string) string {
	return filepath.Join(elements...)
}

// Base returns last element of path
func (a *Adapter) Base(path string) string {
	return filepath.Base(path)
}

// Dir returns directory of path
func (a *Adapter) Dir(path string) string {
	return filepath.Dir(path)
}

// Rel returns a relative path.
func (a *Adapter) Rel(basepath, targpath string) (string, error) {
	return filepath.Rel(basepath, targpath)
}

// Clean returns the cleaned path.
func (a *Adapter) Clean(path string) string {
	return filepath.Clean(path)
}

// IsAbs reports whether the path is absolute.
func (a *Adapter) IsAbs(path string) bool {
	return filepath.IsAbs(path)
}

// IsNotExist reports whether err indicates that a path does not exist.
// Also covers syscall.ENOTDIR (path component is not a directory).
func (a *Adapter) IsNotExist(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR)
}

// IsExist reports whether err indicates that a path already exists.
func (a *Adapter) IsExist(err error) bool {
	return os.IsExist(err)
}

// IsPermission reports whether err indicates a permission error.
func (a *Adapter) IsPermission(err error) bool {
	return os.IsPermission(err) || errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM)
}

func safeFileMode(perm int, fallback fs.FileMode) fs.FileMode {
	if perm < 0 || perm > 0o777 {
		return fallback
	}
	// #nosec G115 -- perm validated to be within safe range.
	return fs.FileMode(perm)
}

// fileInfoWrapper wraps os.FileInfo to implement usecase.FileInfo
type fileInfoWrapper struct {
	fs.FileInfo
}

func (w *fileInfoWrapper) Name() string { return w.FileInfo.Name() }

func (w *fileInfoWrapper) Size() int64 { return w.FileInfo.Size() }

func (w *fileInfoWrapper) Mode() int { return int(w.FileInfo.Mode()) }

func (w *fileInfoWrapper) ModTime() time.Time { return w.FileInfo.ModTime() }

func (w *fileInfoWrapper) IsDir() bool { return w.FileInfo.IsDir() }

func (w *fileInfoWrapper) IsSymlink() bool {
	return w.FileInfo.Mode()&os.ModeSymlink != 0
}

func (w *fileInfoWrapper) IsRegular() bool {
	return w.FileInfo.Mode().IsRegular()
}

func (w *fileInfoWrapper) Sys() interface{} { return w.FileInfo.Sys() }

type dirEntryWrapper struct {
	fs.DirEntry
}

func (w *dirEntryWrapper) Name() string { return w.DirEntry.Name() }

func (w *dirEntryWrapper) IsDir() bool { return w.DirEntry.IsDir() }
