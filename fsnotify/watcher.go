// Package fsnotify watches a content directory and reports changes.
package fsnotify

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/docsearch"
)

// DefaultDebounce is the quiet period after the last event before OnChange
// is called.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a content directory recursively. Bursts of events are
// coalesced into a single OnChange call once the directory has been quiet
// for Debounce.
type Watcher struct {
	dir string

	Debounce time.Duration
	Logger   *slog.Logger

	// OnChange is called from the Watch goroutine. Calls never overlap.
	OnChange func(ctx context.Context)
}

// NewWatcher returns a Watcher for dir.
func NewWatcher(dir string, onChange func(ctx context.Context)) *Watcher {
	return &Watcher{
		dir:      dir,
		Debounce: DefaultDebounce,
		Logger:   slog.New(slog.DiscardHandler),
		OnChange: onChange,
	}
}

// Watch blocks until ctx is canceled. It returns ENOTFOUND if the directory
// does not exist.
func (w *Watcher) Watch(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return docsearch.Errorf(docsearch.ENOTFOUND, "content directory %q not found", w.dir)
	} else if err != nil {
		return err
	}
	if !info.IsDir() {
		return docsearch.Errorf(docsearch.EINVALID, "%q is not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := addRecursive(fsw, w.dir); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fsw, event) {
				continue
			}
			w.Logger.Debug("content changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watch error", "err", err)
		case <-timer.C:
			if w.OnChange != nil {
				w.OnChange(ctx)
			}
		}
	}
}

// relevant reports whether event can affect the loaded content. New
// directories are added to the watch list.
func (w *Watcher) relevant(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return false
	}
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addRecursive(fsw, event.Name); err != nil {
				w.Logger.Warn("watch directory", "path", event.Name, "err", err)
			}
		}
	}
	return true
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
