package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/faces/internal/engine"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a theme file and applies it to an engine whenever the
// file changes.
type Watcher struct {
	path     string
	engine   *engine.Engine
	opts     ApplyOptions
	debounce time.Duration
	onReload func(*Theme, error)
	watcher  *fsnotify.Watcher
}

// NewWatcher watches the directory holding path, so that editors which
// replace the file by renaming are noticed too.
func NewWatcher(path string, e *engine.Engine, opts ApplyOptions) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		path:     abs,
		engine:   e,
		opts:     opts,
		debounce: DefaultDebounce,
		watcher:  fw,
	}, nil
}

// SetDebounce changes the settle delay. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// OnReload registers a callback run after every reload attempt. Call
// before Run.
func (w *Watcher) OnReload(fn func(*Theme, error)) { w.onReload = fn }

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.opts.Logger.WithFields(map[string]any{"path": w.path})

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "theme watch error")

		case <-fire:
			fire = nil
			theme, err := w.reload(ctx)
			if err != nil {
				log.Error(err, "theme reload failed")
			} else {
				log.Info("theme reloaded")
			}
			if w.onReload != nil {
				w.onReload(theme, err)
			}
		}
	}
}

func (w *Watcher) reload(ctx context.Context) (*Theme, error) {
	theme, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	if _, err := Apply(ctx, w.engine, theme, w.opts); err != nil {
		return theme, err
	}
	return theme, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
