package usecase

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

type testFileSystem struct{}

func newTestFileSystem() *testFileSystem {
	return &testFileSystem{}
}

func safeFileMode(perm int, fallback fs.FileMode) fs.FileMode {
	if perm < 0 || perm > 0o777 {
		return fallback
	}
	// #nosec G115 -- perm validated to be within safe range.
	return fs.FileMode(perm)
}

func (a *testFileSystem) OpenFile(ctx context.Context, path string) (io.ReadCloser, error) {
	_ = ctx
	// #nosec G304 -- test paths are controlled by the test harness.
	return os.Open(path)
}

func (a *testFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	_ = ctx
	// #nosec G304 -- test paths are controlled by the test harness.
	return os.ReadFile(path)
}

func (a *testFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm int) error {
	_ = ctx
	return os.WriteFile(path, data, safeFileMode(perm, 0o644))
}

func (a *testFileSystem) AppendFile(ctx context.Context, path string, data []byte, perm int) error {
	_ = ctx
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

func (a *testFileSystem) CreateDir(ctx context.Context, path string, perm int) error {
	_ = ctx
	return os.MkdirAll(path, safeFileMode(perm, 0o755))
}

func (a *testFileSystem) RemoveAll(ctx context.Context, path string) error {
	_ = ctx
	return os.RemoveAll(path)
}

func (a *testFileSystem) Stat(ctx context.Context, path string) (FileInfo, error) {
	_ = ctx
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &fileInfoWrapperTest{info}, nil
}

func (a *testFileSystem) Walk(ctx context.Context, root string, walkFn WalkFunc) error {
	_ = ctx
	return filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		var fileInfo FileInfo
		if info != nil {
			fileInfo = &fileInfoWrapperTest{info}
		}
		return walkFn(path, fileInfo, err)
	})
}

func (a *testFileSystem) ReadDir(ctx context.Context, path string) ([]DirEntry, error) {
	_ = ctx
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	result := make([]DirEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, &dirEntryWrapperTest{entry})
	}
	return result, nil
}

func (a *testFileSystem) Copy(ctx context.Context, src, dst string) error {
	_ = ctx
	// #nosec G304 -- test paths are controlled by the test harness.
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	// #nosec G304 -- test paths are controlled by the test harness.
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (a *testFileSystem) Link(ctx context.Context, oldPath, newPath string) error {
	_ = ctx
	return os.Link(oldPath, newPath)
}

func (a *testFileSystem) Join(elements ...string) string {
	return filepath.Join(elements...)
}

func (a *testFileSystem) Base(path string) string {
	return filepath.Base(path)
}

func (a *testFileSystem) Dir(path string) string {
	return filepath.Dir(path)
}

func (a *testFileSystem) Rel(basepath, targpath string) (string, error) {
	return filepath.Rel(basepath, targpath)
}

func (a *testFileSystem) Clean(path string) string {
	return filepath.Clean(path)
}

func (a *testFileSystem) IsAbs(path string) bool {
	return filepath.IsAbs(path)
}

func (a *testFileSystem) IsNotExist(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR)
}

func (a *testFileSystem) IsExist(err error) bool {
	return os.IsExist(err)
}

func (a *testFileSystem) IsPermission(err error) bool {
	return os.IsPermission(err)
}

type fileInfoWrapperTest struct {
	fs.FileInfo
}

func (w *fileInfoWrapperTest) Name() string       { return w.FileInfo.Name() }
func (w *fileInfoWrapperTest) Size() int64        { return w.FileInfo.Size() }
func (w *fileInfoWrapperTest) Mode() int          { return int(w.FileInfo.Mode()) }
func (w *fileInfoWrapperTest) ModTime() time.Time { return w.FileInfo.ModTime() }
func (w *fileInfoWrapperTest) IsDir() bool        { return w.FileInfo.IsDir() }

func (w *fileInfoWrapperTest) IsSymlink() bool {
	return w.FileInfo.Mode()&os.ModeSymlink != 0
}

func (w *fileInfoWrapperTest) IsRegular() bool {
	return w.FileInfo.Mode().IsRegular()
}

func (w *fileInfoWrapperTest) Sys() interface{} { return w.FileInfo.Sys() }

type dirEntryWrapperTest struct {
	fs.DirEntry
}

func (w *dirEntryWrapperTest) Name() string { return w.DirEntry.Name() }
func (w *dirEntryWrapperTest) IsDir() bool  { return w.DirEntry.IsDir() }
