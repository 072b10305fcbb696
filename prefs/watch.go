package prefs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with freshly loaded preferences each time the file at path
// is written, created or renamed into place, until ctx is done. The
// directory is watched rather than the file so that editors which replace
// the file are followed. Load errors are passed to fn; Watch itself only
// fails when the watcher cannot be set up.
func Watch(ctx context.Context, path string, fn func(Preferences, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("prefs: watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("prefs: watch %s: %w", path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("prefs: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger().Debug("prefs: reloading", "path", abs, "op", ev.Op.String())
			fn(Load(abs))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger().Error("prefs: watcher", "path", abs, "err", err)
		}
	}
}
