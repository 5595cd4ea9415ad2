package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchConfig reloads the config file at path whenever it is written and
// applies its log level to level, until ctx is done. The directory is
// watched so editors that replace the file are noticed too.
func watchConfig(ctx context.Context, path string, level *slog.LevelVar, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				reloadLevel(path, level, logger)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher", "err", err)
			}
		}
	}()
	return nil
}

func reloadLevel(path string, level *slog.LevelVar, logger *slog.Logger) {
	cfg, err := LoadConfig(path)
	if err != nil {
		// a half written file, the next event brings the rest
		logger.Debug("reload config", "err", err)
		return
	}
	lvl, err := cfg.Level()
	if err != nil {
		return
	}
	if lvl != level.Level() {
		level.Set(lvl)
		logger.Info("log level changed", "level", lvl)
	}
}
