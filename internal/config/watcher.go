package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of fsnotify events an editor
// produces when saving a file (create, write, rename).
const reloadDebounce = 100 * time.Millisecond

// ReloadFunc receives the result of reloading the config file. Either
// cfg or err is non-nil, never both.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads the config file when it changes on disk. The parent
// directory is watched rather than the file itself, so atomic saves
// (write to temp, rename over) are still observed.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	onReload ReloadFunc

	mu      sync.Mutex
	pending *time.Timer

	closeCh chan struct{}
	done    sync.WaitGroup
}

// Watch starts watching path and invokes onReload after each change.
func Watch(path string, onReload ReloadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		onReload: onReload,
		closeCh:  make(chan struct{}),
	}
	w.done.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher. Pending reloads are discarded.
func (w *Watcher) Close() error {
	close(w.closeCh)

	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.done.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.done.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.onReload(nil, err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(reloadDebounce, func() {
		select {
		case <-w.closeCh:
			return
		default:
		}
		w.onReload(Load(w.path))
	})
}
