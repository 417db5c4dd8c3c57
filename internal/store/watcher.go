package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is called when a store file changes on disk.
// name is one of "schedule", "candidates", "expenses".
type ChangeCallback func(name string)

const watchDebounce = 200 * time.Millisecond

// Watch runs an fsnotify watcher on the data directory until ctx is
// cancelled and reports changes to the primary store files, so external
// edits (or a second session's saves) can trigger a client refresh.
// Events are debounced per file; backup and temp files are ignored.
func Watch(ctx context.Context, dataDir string, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dataDir); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("dir", dataDir))

	watched := map[string]string{
		scheduleFile:   "schedule",
		candidatesFile: "candidates",
		expensesFile:   "expenses",
	}

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	fire := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := timers[name]; ok {
			t.Reset(watchDebounce)
			return
		}
		timers[name] = time.AfterFunc(watchDebounce, func() {
			mu.Lock()
			delete(timers, name)
			mu.Unlock()
			cb(name)
		})
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			name, ok := watched[filepath.Base(ev.Name)]
			if !ok {
				continue
			}
			logger.Debug("watcher: file changed", slog.String("file", ev.Name))
			fire(name)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
