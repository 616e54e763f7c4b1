package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchSettings calls reload whenever path is written or replaced, until ctx
// is done. Reload errors are logged and watching continues.
func watchSettings(ctx context.Context, path string, logger *slog.Logger, reload func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("dofrender: create watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so watch its directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("dofrender: watch %s: %w", path, err)
	}
	logger.Info("watching settings", "path", abs)

	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != abs || e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info("settings changed", "op", e.Op.String())
			if err := reload(); err != nil {
				logger.Error("reload failed", "err", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)

		case <-ctx.Done():
			return nil
		}
	}
}
