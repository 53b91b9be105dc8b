package app

import (
	"log/slog"

	"github.com/arumata/snapdir/internal/adapters/config"
	"github.com/arumata/snapdir/internal/adapters/filesystem"
	"github.com/arumata/snapdir/internal/usecase"
)

// NewDefaultDependencies creates dependencies with real adapters.
func NewDefaultDependencies(logger *slog.Logger) *usecase.Dependencies {
	if logger == nil {
		panic("default dependencies require logger")
	}
	return &usecase.Dependencies{
		FileSystem: filesystem.New(logger),
		Config:     config.New(logger),
	}
}
