package gestaltwerk

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher hot-reloads a directory of style files into a Manager,
// grounded on SPEC_FULL.md §F.2's hot-reload requirement: a style
// author should see a running application pick up an edited .style file
// without restarting it. It is entirely optional infrastructure layered
// on top of Manager.LoadStyles/RemoveStyles -- nothing in the core
// engine depends on it.
type Watcher struct {
	fsw     *fsnotify.Watcher
	manager *Manager
	dir     string
	ext     string
	errs    chan error
	done    chan struct{}
}

// WatchStyles watches dir (recursively) for files with the given
// extension (e.g. ".style") and loads/reloads/removes them from manager
// as they are created, written, or deleted.
func WatchStyles(manager *Manager, dir, ext string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:     fsw,
		manager: manager,
		dir:     dir,
		ext:     ext,
		errs:    make(chan error, 8),
		done:    make(chan struct{}),
	}
	if err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	}); err != nil {
		fsw.Close()
		return nil, err
	}
	if err := w.loadAll(); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

func (w *Watcher) loadAll() error {
	return filepath.WalkDir(w.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, w.ext) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if perr := w.manager.LoadStyles(path, string(data)); perr != nil {
			return perr
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !strings.HasSuffix(ev.Name, w.ext) {
		return
	}
	switch {
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		w.manager.RemoveStyles(ev.Name)
	case ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create):
		data, err := os.ReadFile(ev.Name)
		if err != nil {
			select {
			case w.errs <- err:
			default:
			}
			return
		}
		if perr := w.manager.LoadStyles(ev.Name, string(data)); perr != nil {
			select {
			case w.errs <- perr:
			default:
			}
		}
	}
}

// Errors returns a channel of asynchronous load/watch errors.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher and releases its underlying file descriptors.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
