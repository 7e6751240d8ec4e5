// Package watcher reloads a file into a rope.Text whenever it changes on disk.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/textrope/internal/engine/rope"
	"github.com/dshills/textrope/internal/logging"
)

// Errors returned by the watcher.
var (
	ErrPathNotExist = errors.New("path does not exist")
	ErrIsDirectory  = errors.New("path is a directory")
)

// DefaultDebounce is the delay used when no debounce is configured.
const DefaultDebounce = 100 * time.Millisecond

// LoadFunc builds a text from file content.
type LoadFunc func(io.Reader) (rope.Text, error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long events are coalesced before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLoader replaces rope.FromReader as the function that builds the text.
func WithLoader(fn LoadFunc) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.load = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		w.log = l.WithComponent("watcher")
	}
}

// Watcher watches a single file.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a new file and renaming it over the old
// one are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	load     LoadFunc
	log      *logging.Logger

	reloads atomic.Int64
}

// New creates a watcher for the regular file at path.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotExist, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	w := &Watcher{
		path:     absPath,
		debounce: DefaultDebounce,
		load:     rope.FromReader,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads returns the number of successful reloads after the initial load.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Run loads the file, passes the text to onChange, and then calls onChange
// again with a fresh text after each burst of writes. Reload failures are
// logged and skipped; the previous text stays current. Run blocks until ctx
// is done and then returns nil. Only a failure to start watching or to make
// the initial load is returned as an error.
func (w *Watcher) Run(ctx context.Context, onChange func(rope.Text)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	text, err := w.reload()
	if err != nil {
		return err
	}
	onChange(text)
	w.log.Info("watching %s", w.path)

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
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("event %s", ev)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error: %v", err)

		case <-fire:
			fire = nil
			text, err := w.reload()
			if err != nil {
				w.log.Warn("reload failed: %v", err)
				continue
			}
			w.reloads.Add(1)
			w.log.WithFields(map[string]any{
				"chars": text.Len(),
				"lines": text.Lines(),
			}).Debug("reloaded %s", w.path)
			onChange(text)
		}
	}
}

// relevant reports whether ev may have changed the watched file's content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != filepath.Base(w.path) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) reload() (rope.Text, error) {
	f, err := os.Open(w.path)
	if err != nil {
		return rope.Text{}, err
	}
	defer f.Close()

	text, err := w.load(f)
	if err != nil {
		return rope.Text{}, fmt.Errorf("loading %s: %w", w.path, err)
	}
	return text, nil
}
