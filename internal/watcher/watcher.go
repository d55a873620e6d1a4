// Package watcher reports changes to a single file.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// FileWatcher calls OnChange after its file is written or replaced.
type FileWatcher struct {
	path     string
	debounce time.Duration
	onChange func()
	log      *zap.Logger
	watcher  *fsnotify.Watcher
}

// New creates a watcher for path. The containing directory is watched so
// that atomic replace-by-rename saves are seen.
func New(path string, debounce time.Duration, onChange func(), log *zap.Logger) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return &FileWatcher{
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
		log:      log.Named("watcher"),
		watcher:  w,
	}, nil
}

// Path returns the absolute path being watched.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Run delivers change notifications until ctx is cancelled.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer fw.watcher.Close()

	timer := time.NewTimer(fw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(fw.debounce)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.log.Warn("watcher error", zap.String("path", fw.path), zap.Error(err))
		case <-timer.C:
			fw.log.Info("file changed", zap.String("path", fw.path))
			fw.onChange()
		}
	}
}
