package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/logging"
)

// settleDelay groups the bursts of events editors emit for a single save.
const settleDelay = 100 * time.Millisecond

type watcher struct {
	fs *fsnotify.Watcher
}

// newWatcher watches every directory under paths. A file path has its parent
// directory watched.
func newWatcher(paths []string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs, err := watchDirs(paths)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	for _, dir := range dirs {
		logging.Get().WithField("path", dir).Debug("watching path")

		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return &watcher{fs: fsw}, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

// Run calls onChange after LISON files are created, written, removed or
// renamed. It returns nil once ctx is done.
func (w *watcher) Run(ctx context.Context, onChange func()) error {
	mask := fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if evt.Op&mask == 0 || !lison.HasFileExtension(evt.Name, lison.FileExtensions) {
				continue
			}

			logging.Get().WithField("event", evt.String()).Debug("registered file event")
			settle = time.After(settleDelay)

		case <-settle:
			settle = nil
			onChange()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			return err
		}
	}
}

func watchDirs(paths []string) ([]string, error) {
	seen := map[string]bool{}
	var dirs []string

	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(filepath.Dir(path))
			continue
		}

		err = filepath.WalkDir(path, func(p string, entry os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if entry.IsDir() {
				add(p)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return dirs, nil
}
