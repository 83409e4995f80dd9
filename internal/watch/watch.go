// Package watch keeps the organized tree in sync with the input directory by
// reacting to filesystem events.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"cellsort/internal/config"
	"cellsort/internal/logging"
	"cellsort/internal/manifest"
	"cellsort/internal/organizer"
)

const (
	minDebounce  = 10 * time.Millisecond
	maxTickEvery = 250 * time.Millisecond
)

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Batches       int
	Processed     int
	Failed        int
	Errors        int
	LastBatchRun  string
	LastEventPath string
}

// Watcher batches settled file events under the input directory into
// organizer runs. A file is processed once no event has touched it for the
// debounce window, so partially copied instrument exports are not read.
type Watcher struct {
	cfg      *config.Config
	org      *organizer.Organizer
	logger   *slog.Logger
	debounce time.Duration

	ready     chan struct{}
	readyOnce sync.Once

	mu      sync.Mutex
	pending map[string]time.Time
	stats   Stats
}

// New builds a watcher for cfg.Paths.InputDir.
func New(cfg *config.Config, org *organizer.Organizer, logger *slog.Logger) *Watcher {
	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	if debounce < minDebounce {
		debounce = minDebounce
	}
	return &Watcher{
		cfg:      cfg,
		org:      org,
		logger:   logging.NewComponentLogger(logger, "watch"),
		debounce: debounce,
		pending:  make(map[string]time.Time),
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the input tree is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Stats returns a snapshot of watcher counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run holds the organizer lock and processes events until ctx is cancelled.
// Cancellation is a clean shutdown and returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	release, err := w.org.Acquire()
	if err != nil {
		return err
	}
	defer release()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	root := w.cfg.Paths.InputDir
	if err := w.addTree(fsw, root, false); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	w.logger.Info("watching input directory",
		logging.String("input_dir", root),
		logging.Int("directories", len(fsw.WatchList())),
		logging.Duration("debounce", w.debounce),
	)
	w.readyOnce.Do(func() { close(w.ready) })

	tick := w.debounce / 4
	if tick > maxTickEvery {
		tick = maxTickEvery
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("fsnotify event channel closed")
			}
			w.handleEvent(fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("fsnotify error channel closed")
			}
			w.logger.Warn("watch error", logging.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// addTree watches dir and every directory below it. When enqueue is set,
// files already present are queued too; a directory moved into the tree
// carries its contents with it and produces no per-file events.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string, enqueue bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			w.logger.Warn("skipping unreadable path", logging.String("path", path), logging.Error(walkErr))
			return nil
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				return fmt.Errorf("add %s: %w", path, err)
			}
			return nil
		}
		if enqueue && d.Type().IsRegular() {
			w.touch(path)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventPath = event.Name
	w.mu.Unlock()

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.mu.Lock()
		delete(w.pending, event.Name)
		w.mu.Unlock()
		return
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
	default:
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.addTree(fsw, event.Name, true); err != nil {
				w.logger.Warn("failed to watch new directory", logging.String("path", event.Name), logging.Error(err))
			}
		}
		return
	}
	w.touch(event.Name)
}

func (w *Watcher) touch(path string) {
	if w.org.Skips(path) {
		return
	}
	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

// settled removes and returns the pending paths that have been quiet for
// the debounce window.
func (w *Watcher) settled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

func (w *Watcher) flush(ctx context.Context) {
	ready := w.settled(time.Now())
	var paths []string
	for _, path := range ready {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return
	}

	summary, err := w.org.RunBatch(ctx, manifest.TriggerWatch, paths)
	if err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Warn("watch batch failed", logging.Error(err))
	}

	w.mu.Lock()
	w.stats.Batches++
	w.stats.Processed += len(summary.Results)
	w.stats.Failed += summary.Counts.Failed
	w.stats.LastBatchRun = summary.RunID
	w.mu.Unlock()
}
