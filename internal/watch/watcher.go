// Package watch triggers full rebuilds when release inputs change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches rapid editor save bursts into one rebuild.
const DefaultDebounce = 2 * time.Second

// Watcher debounces filesystem events over the release inputs and runs one
// rebuild per quiet period. Rebuild failures are logged, not fatal; watching
// continues until the context is canceled.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
}

// New creates a watcher with the given debounce window (DefaultDebounce when zero).
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{fsw: fsw, debounce: debounce}, nil
}

// Add registers a path to watch. Directories are watched recursively;
// paths that do not exist yet are skipped with a warning.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		slog.Warn("Watch path does not exist, skipping", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat watch path %s: %w", path, err)
	}
	if !info.IsDir() {
		// Watch the containing directory; editors often replace files on save.
		return w.fsw.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fsw.Add(p); err != nil {
				return fmt.Errorf("watch %s: %w", p, err)
			}
		}
		return nil
	})
}

// Run blocks until ctx is canceled, invoking rebuild once per debounced burst
// of changes.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context) error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Change detected", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", "error", err)
		case <-timer.C:
			slog.Info("Inputs changed, rebuilding")
			if err := rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", "error", err)
			}
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
