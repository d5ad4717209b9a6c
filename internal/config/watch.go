package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	path    string
	logger  *slog.Logger
	fsw     *fsnotify.Watcher
	updates chan *Config

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// Watch starts watching path (the default config path if empty). The parent
// directory is watched so editors that replace the file are picked up.
// Each successful reload is sent on Updates; reloads that fail to parse or
// validate are logged and dropped. The watcher stops when ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger) (*Watcher, error) {
	path = resolvePath(path)
	if path == "" {
		return nil, fmt.Errorf("watch config: no config path")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}

	w := &Watcher{
		path:    path,
		logger:  logger,
		fsw:     fsw,
		updates: make(chan *Config, 1),
	}
	go w.run(ctx)
	return w, nil
}

// Updates delivers reloaded configurations. It is closed when the watcher stops.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.updates)
	defer w.Close()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ctx)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// schedule debounces bursts of events into one reload.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, func() { w.reload(ctx) })
}

func (w *Watcher) reload(ctx context.Context) {
	cfg, err := LoadFrom(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || ctx.Err() != nil {
		return
	}
	// Keep only the newest config if the consumer is behind.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Debug("config reloaded", "path", w.path)
}
