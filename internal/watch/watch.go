// Package watch reloads an input file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/mcncl/jsonbeautifier/internal/logging"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 100 * time.Millisecond

// Update carries the contents of the watched file after a change settled.
type Update struct {
	Path    string
	Content string
	Err     error
}

// Watcher follows a single file. The parent directory is watched rather
// than the file itself so editors that save by rename are still seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger
	updates  chan Update
}

// New starts watching path. Call Run to deliver updates.
func New(path string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: debounce,
		logger:   logger,
		updates:  make(chan Update, 1),
	}, nil
}

// Updates returns the channel updates are delivered on. It is closed when
// Run returns.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Run delivers an Update once a burst of changes to the file has been quiet
// for the debounce interval. It blocks until ctx is cancelled or the
// watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.updates)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("input changed", logging.FieldPath, w.path, "op", event.Op.String())
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			update := w.read()
			select {
			case w.updates <- update:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", logging.FieldError, err)

		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

func (w *Watcher) read() Update {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return Update{Path: w.path, Err: fmt.Errorf("reload %s: %w", w.path, err)}
	}
	return Update{Path: w.path, Content: string(data)}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
