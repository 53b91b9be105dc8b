// Package watch triggers a callback after filesystem activity under a
// directory tree has settled for a debounce interval.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a source tree and invokes OnSettle once per burst of
// changes, after the debounce quiet period.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
	onSettle func()
}

// New creates a watcher for root. onSettle runs on the watcher's
// goroutine; it must return before the next trigger can fire.
func New(root string, debounce time.Duration, logger *slog.Logger, onSettle func()) *Watcher {
	if logger == nil {
		panic("watcher requires logger")
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{root: root, debounce: debounce, logger: logger, onSettle: onSettle}
}

// Run watches the tree until ctx is cancelled. Directories created while
// watching are added to the watch list.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = fw.Close()
	}()

	if err := addDirsRecursive(fw, w.root); err != nil {
		return err
	}
	w.logger.Info("watcher started", slog.String("root", w.root))

	var settleTimer *time.Timer
	var settleCh <-chan time.Time

	scheduleSettle := func() {
		if settleTimer == nil {
			settleTimer = time.NewTimer(w.debounce)
			settleCh = settleTimer.C
			return
		}
		settleTimer.Reset(w.debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if settleTimer != nil {
				settleTimer.Stop()
			}
			w.logger.Info("watcher stopped")
			return nil

		case <-settleCh:
			w.onSettle()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.logger.Debug("event", slog.String("name", ev.Name), slog.String("op", ev.Op.String()))

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(fw, ev.Name); addErr != nil {
						w.logger.Warn("watch new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
				}
			}
			scheduleSettle()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", slog.String("error", err.Error()))
		}
	}
}

func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(path)
	})
}
