package loghandler

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler mirrors every record to a set of wrapped handlers. Used
// to keep the console handler and the log-file handler in sync while
// each applies its own level filter.
type MultiHandler struct {
	targets []slog.Handler
}

// NewMultiHandler wraps the given handlers. The slice is taken as-is.
func NewMultiHandler(targets ...slog.Handler) *MultiHandler {
	return &MultiHandler{targets: targets}
}

// Enabled is true when at least one target accepts the level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range m.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every target that accepts its level.
// All targets are attempted even when one fails; their errors are
// joined.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, t := range m.targets {
		if !t.Enabled(ctx, r.Level) {
			continue
		}
		if err := t.Handle(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs rewraps every target with the attributes applied.
func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.rewrap(func(t slog.Handler) slog.Handler { return t.WithAttrs(attrs) })
}

// WithGroup rewraps every target with the group applied.
func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return m.rewrap(func(t slog.Handler) slog.Handler { return t.WithGroup(name) })
}

func (m *MultiHandler) rewrap(f func(slog.Handler) slog.Handler) *MultiHandler {
	targets := make([]slog.Handler, len(m.targets))
	for i, t := range m.targets {
		targets[i] = f(t)
	}
	return &MultiHandler{targets: targets}
}

var _ slog.Handler = (*MultiHandler)(nil)
