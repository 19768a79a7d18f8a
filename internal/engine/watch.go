package engine

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces editor write bursts into one reload.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the grammar whenever the grammar file or a script changes,
// until ctx is cancelled. onReload, if set, receives each reload's result.
func (e *Engine) Watch(ctx context.Context, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch directories, not files: editors often replace files on save.
	grammarFile, _ := filepath.Abs(e.cfg.GrammarPath)
	if err := watcher.Add(filepath.Dir(grammarFile)); err != nil {
		return err
	}
	scriptsDir := ""
	if e.cfg.ScriptsDir != "" {
		if info, err := os.Stat(e.cfg.ScriptsDir); err == nil && info.IsDir() {
			scriptsDir, _ = filepath.Abs(e.cfg.ScriptsDir)
			if err := watcher.Add(scriptsDir); err != nil {
				e.logger.Error("failed to watch scripts directory", slog.Any("error", err))
			}
		}
	}

	relevant := func(name string) bool {
		abs, _ := filepath.Abs(name)
		if abs == grammarFile {
			return true
		}
		return scriptsDir != "" && filepath.Dir(abs) == scriptsDir && filepath.Ext(abs) == ".star"
	}

	// pending counts scheduled or running reloads; Watch waits for them so
	// no reload outlives it.
	var (
		debounceTimer *time.Timer
		pending       sync.WaitGroup
	)
	cancelTimer := func() {
		if debounceTimer != nil && debounceTimer.Stop() {
			pending.Done()
		}
	}
	defer func() {
		cancelTimer()
		pending.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !relevant(event.Name) {
				continue
			}

			cancelTimer()
			name := event.Name
			pending.Add(1)
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				defer pending.Done()
				e.logger.Debug("file changed, reloading grammar", slog.String("file", name))
				err := e.Reload()
				if err != nil {
					e.logger.Error("reload failed", slog.Any("error", err))
				}
				if onReload != nil {
					onReload(err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Error("watcher error", slog.Any("error", err))
		}
	}
}
