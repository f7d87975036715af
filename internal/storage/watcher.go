package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reloads a Storage when its file is written by another process.
type Watcher struct {
	storage  *Storage
	watcher  *fsnotify.Watcher
	onChange func()
	done     chan struct{}
}

// NewWatcher creates a watcher for s. onChange runs after every successful reload.
func NewWatcher(s *Storage, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		storage:  s,
		watcher:  fw,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start watches until ctx is done. The parent directory is watched because
// editors and atomic writers replace the file rather than writing in place.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.storage.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		_ = w.watcher.Close()
		close(w.done)
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		_ = w.watcher.Close()
		close(w.done)
		return err
	}
	go w.loop(ctx)
	return nil
}

// Done is closed once the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} { return w.done }

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer func() { _ = w.watcher.Close() }()

	filename := filepath.Base(w.storage.Path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.storage.Load(); err != nil {
				logrus.Debugf("storage reload after %s failed: %v", event.Op, err)
				continue
			}
			if w.onChange != nil {
				w.onChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logrus.Warnf("storage watcher error: %v", err)
		}
	}
}
