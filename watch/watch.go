// Package watch notifies callers when source files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Observer follows a set of files.  Their parent directories are watched so
// that files replaced by editors continue to be followed.
type Observer struct {
	w     *fsnotify.Watcher
	files map[string]bool
	log   logrus.FieldLogger
}

// New creates an Observer following files.
func New(log logrus.FieldLogger, files ...string) (o *Observer, err error) {
	var w *fsnotify.Watcher
	if w, err = fsnotify.NewWatcher(); err != nil {
		return nil, err
	}

	o = &Observer{
		w:     w,
		files: make(map[string]bool),
		log:   log,
	}
	dirs := make(map[string]bool)
	for _, name := range files {
		name = filepath.Clean(name)
		o.files[name] = true
		dir := filepath.Dir(name)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err = w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("failed to watch %q: %w", dir, err)
		}
	}

	return o, nil
}

// Run calls fn with the name of a followed file each time it is written or
// recreated.  Run returns when ctx is done or the Observer is closed.
func (o *Observer) Run(ctx context.Context, fn func(name string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-o.w.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(e.Name)
			if !o.files[name] {
				continue
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			o.log.WithField("file", name).Debugf("changed: %v", e.Op)
			fn(name)
		case err, ok := <-o.w.Errors:
			if !ok {
				return nil
			}
			o.log.WithError(err).Warn("watch error")
		}
	}
}

// Close stops watching.
func (o *Observer) Close() error {
	return o.w.Close()
}
