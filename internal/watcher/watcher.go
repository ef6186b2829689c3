// Package watcher observes the snapshot file for changes and emits
// debounced events. Editors and exporters often replace the file with a
// rename rather than writing in place, so the watcher subscribes to the
// parent directory and filters events down to the one path it cares about.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventOp represents the type of file system operation.
type EventOp int

const (
	Create EventOp = iota
	Write
	Remove
	Rename
)

// String returns the string representation of EventOp.
func (op EventOp) String() string {
	switch op {
	case Create:
		return "Create"
	case Write:
		return "Write"
	case Remove:
		return "Remove"
	case Rename:
		return "Rename"
	default:
		return "Unknown"
	}
}

// Event represents a change to the watched snapshot file.
type Event struct {
	Path string
	Op   EventOp
	Time time.Time
}

const defaultDebounce = 300 * time.Millisecond

// Watcher watches a single snapshot file and emits debounced events.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	mu       sync.Mutex
	closed   bool
}

// New creates a watcher for the given snapshot path. debounceMS controls
// how long rapid successive changes are collapsed into a single event;
// values <= 0 fall back to the default window.
func New(path string, debounceMS int) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watcher: empty snapshot path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watcher: resolve %s: %w", path, err)
	}

	debounce := defaultDebounce
	if debounceMS > 0 {
		debounce = time.Duration(debounceMS) * time.Millisecond
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching and returns a channel of debounced events.
// The channel is closed when the context is cancelled or the watcher
// is closed.
func (w *Watcher) Start(ctx context.Context) (<-chan Event, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.fsw = fsw
	w.mu.Unlock()

	// Watch the containing directory so replace-by-rename is still seen.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return nil, err
	}

	out := make(chan Event, 16)
	go w.eventLoop(ctx, fsw, out)
	return out, nil
}

// Close shuts down the watcher and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) eventLoop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- Event) {
	defer close(out)

	// Only one file is watched, so a single pending slot suffices.
	var (
		mu      sync.Mutex
		pending *Event
		timer   *time.Timer
	)

	emit := func(evt Event) {
		select {
		case out <- evt:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			return

		case fsEvent, ok := <-fsw.Events:
			if !ok {
				return
			}

			if filepath.Clean(fsEvent.Name) != w.path {
				continue
			}

			op, valid := convertOp(fsEvent.Op)
			if !valid {
				continue
			}

			evt := Event{
				Path: w.path,
				Op:   op,
				Time: time.Now(),
			}

			mu.Lock()
			pending = &evt
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				mu.Lock()
				e := pending
				pending = nil
				mu.Unlock()
				if e != nil {
					emit(*e)
				}
			})
			mu.Unlock()

		case _, ok := <-fsw.Errors:
			if !ok {
				return
			}
			// Errors are transient; keep watching.
		}
	}
}

func convertOp(op fsnotify.Op) (EventOp, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return Create, true
	case op.Has(fsnotify.Write):
		return Write, true
	case op.Has(fsnotify.Remove):
		return Remove, true
	case op.Has(fsnotify.Rename):
		return Rename, true
	default:
		return 0, false
	}
}
