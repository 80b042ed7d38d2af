// Package reload watches the config file and re-applies reloadable
// settings (currently the log level) without a restart.
package reload

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// OnChange is called after the debounce window with the config file path.
type OnChange func(path string)

// Watch starts an fsnotify watcher on the config file's directory and
// processes change events until ctx is cancelled. Editors rewrite config
// files in different ways (write in place, truncate, tmp+rename), so the
// watch is on the parent directory and events are filtered by file name,
// then debounced before cb fires.
func Watch(ctx context.Context, configPath string, logger *slog.Logger, cb OnChange) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("reload: watching config", slog.String("path", abs))

	// debounceTimer coalesces bursts of events from a single save.
	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	schedule := func() {
		if debounceTimer == nil {
			debounceTimer = time.NewTimer(200 * time.Millisecond)
			debounceCh = debounceTimer.C
		} else {
			debounceTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			logger.Info("reload: stopped")
			return nil

		case <-debounceCh:
			if cb != nil {
				cb(abs)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				logger.Debug("reload: config changed", slog.String("op", ev.Op.String()))
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("reload: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}
