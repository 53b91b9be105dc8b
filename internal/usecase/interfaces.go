package usecase

import (
	"context"
	"io"
)

// Dependencies represents all external dependencies needed by use cases
type Dependencies struct {
	FileSystem FileSystemPort
	Config     ConfigPort
}

// Ports define the interfaces that use cases need (hexagonal architecture)

// FileSystemPort defines filesystem operations needed by use cases
type FileSystemPort interface {
	// Core file operations
	OpenFile(ctx context.Context, path string) (io.ReadCloser, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm int) error
	AppendFile(ctx context.Context, path string, data []byte, perm int) error
	CreateDir(ctx context.Context, path string, perm int) error
	RemoveAll(ctx context.Context, path string) error
	Stat(ctx context.Context, path string) (FileInfo, error)

	// Directory operations
	Walk(ctx context.Context, root string, walkFn WalkFunc) error
	ReadDir(ctx context.Context, path string) ([]DirEntry, error)

	// File operations
	Copy(ctx context.Context, src, dst string) error
	Link(ctx context.Context, oldPath, newPath string) error

	// Path operations
	Join(elements ...string) string
	Base(path string) string
	Dir(path string) string
	Rel(basepath, targpath string) (string, error)
	Clean(path string) string
	IsAbs(path string) bool

	// Error classification
	IsNotExist(err error) bool
	IsExist(err error) bool
	IsPermission(err error) bool
}

// ConfigPort defines configuration operations needed by use cases
type ConfigPort interface {
	Load(ctx context.Context, path string) (ConfigFile, error)
	Save(ctx context.Context, path string, cfg ConfigFile) error
}
