package plants

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a rule table whenever its file changes. Updates are
// delivered on a buffered channel that the frame loop drains without
// blocking, so the simulation stays on one goroutine.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Config
	log     *zap.Logger
}

// Watch starts watching path. The directory is watched rather than the
// file so that editors that replace the file on save are still seen.
func Watch(ctx context.Context, path string, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create plant watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		watcher: fw,
		updates: make(chan *Config, 1),
		log:     log,
	}
	go w.run(ctx)
	return w, nil
}

// Updates returns the channel of successfully reloaded tables.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.updates)
	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.log.Warn("plant rules reload failed", zap.Error(err))
				continue
			}
			w.publish(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("plant watcher error", zap.Error(err))
		}
	}
}

// publish keeps only the newest table if the consumer has fallen behind.
func (w *Watcher) publish(cfg *Config) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
