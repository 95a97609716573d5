// Package workspace manages the session's open buffers: their order,
// the active-buffer focus, and the working directory. It routes editor
// operations to the active buffer and owns all file traffic through the
// vfs collaborator.
//
// Buffers are kept in open order. The active index refers to exactly one
// existing buffer whenever any are open; closing the active buffer
// re-targets focus to the next buffer in order, wrapping to the first.
// A failed open or save leaves the workspace in its prior state.
package workspace

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/pikedit/pike/internal/engine/buffer"
	"github.com/pikedit/pike/internal/engine/history"
	"github.com/pikedit/pike/internal/vfs"
)

// Errors returned by workspace operations.
var (
	// ErrEmptyWorkspace indicates an operation that needs an active
	// buffer was called while no buffers are open.
	ErrEmptyWorkspace = errors.New("no active buffer")

	// ErrNoPath indicates a save was attempted on a buffer with no file
	// path. The workspace never invents a path.
	ErrNoPath = errors.New("buffer has no file path")
)

// Workspace is the collection of open buffers plus focus and cwd.
type Workspace struct {
	mu           sync.RWMutex
	fsys         vfs.FS
	cwd          string
	buffers      []*buffer.Buffer
	active       int // index into buffers, -1 when empty
	historyLimit int
}

// Option configures a workspace at creation.
type Option func(*Workspace)

// WithHistoryLimit sets the per-buffer undo capacity.
func WithHistoryLimit(n int) Option {
	return func(w *Workspace) { w.historyLimit = n }
}

// New creates an empty workspace rooted at the given directory.
func New(fsys vfs.FS, cwd string, opts ...Option) *Workspace {
	w := &Workspace{
		fsys:         fsys,
		cwd:          cwd,
		active:       -1,
		historyLimit: history.DefaultLimit,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OpenFile opens the file at path, resolving it against the working
// directory. If a buffer for the resolved path is already open it is
// focused instead of duplicated. On any read failure the workspace is
// unchanged and the vfs error is returned as-is.
func (w *Workspace) OpenFile(path string) (*buffer.Buffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	abs, err := w.resolve(path)
	if err != nil {
		return nil, err
	}

	if i := w.indexOfPath(abs); i >= 0 {
		w.active = i
		return w.buffers[i], nil
	}

	text, err := vfs.ReadText(w.fsys, abs)
	if err != nil {
		return nil, err
	}

	b := buffer.NewFromString(text,
		buffer.WithPath(abs),
		buffer.WithHistoryLimit(w.historyLimit))
	w.appendAndFocus(b)
	return b, nil
}

// NewBuffer creates an empty scratch buffer, appends it, and focuses it.
// Always succeeds.
func (w *Workspace) NewBuffer() *buffer.Buffer {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := buffer.New(buffer.WithHistoryLimit(w.historyLimit))
	w.appendAndFocus(b)
	return b
}

// NewFileBuffer creates a buffer bound to a path that need not exist
// yet; saving will create the file. If the file already exists its
// content is read, and if a buffer for the path is already open it is
// focused.
func (w *Workspace) NewFileBuffer(path string) (*buffer.Buffer, error) {
	w.mu.Lock()

	abs, err := w.resolve(path)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}

	if i := w.indexOfPath(abs); i >= 0 {
		w.active = i
		b := w.buffers[i]
		w.mu.Unlock()
		return b, nil
	}

	if w.fsys.Exists(abs) {
		w.mu.Unlock()
		return w.OpenFile(abs)
	}

	b := buffer.NewFromString("",
		buffer.WithPath(abs),
		buffer.WithHistoryLimit(w.historyLimit))
	w.appendAndFocus(b)
	w.mu.Unlock()
	return b, nil
}

// CloseActive removes the active buffer along with its history and
// search state. Focus moves to the next buffer in open order, wrapping
// to the first; closing the last buffer leaves the workspace empty.
// Guarding against discarding unsaved changes is the caller's policy.
func (w *Workspace) CloseActive() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active < 0 {
		return ErrEmptyWorkspace
	}

	w.buffers = append(w.buffers[:w.active], w.buffers[w.active+1:]...)
	if len(w.buffers) == 0 {
		w.active = -1
	} else if w.active >= len(w.buffers) {
		w.active = 0
	}
	return nil
}

// NextBuffer cycles focus to the next buffer in open order.
// A no-op with zero or one buffers.
func (w *Workspace) NextBuffer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buffers) > 1 {
		w.active = (w.active + 1) % len(w.buffers)
	}
}

// PrevBuffer cycles focus to the previous buffer in open order.
func (w *Workspace) PrevBuffer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buffers) > 1 {
		w.active = (w.active - 1 + len(w.buffers)) % len(w.buffers)
	}
}

// SaveActive writes the active buffer's content to its path and clears
// the modified flag. Fails with ErrNoPath for scratch buffers; a failed
// write leaves content and the modified flag untouched.
func (w *Workspace) SaveActive() error {
	w.mu.RLock()
	if w.active < 0 {
		w.mu.RUnlock()
		return ErrEmptyWorkspace
	}
	b := w.buffers[w.active]
	w.mu.RUnlock()

	path := b.Path()
	if path == "" {
		return ErrNoPath
	}
	if err := vfs.WriteText(w.fsys, path, b.Text()); err != nil {
		return err
	}
	b.MarkSaved()
	return nil
}

// SaveActiveAs binds the active buffer to a path and saves it.
func (w *Workspace) SaveActiveAs(path string) error {
	w.mu.RLock()
	if w.active < 0 {
		w.mu.RUnlock()
		return ErrEmptyWorkspace
	}
	b := w.buffers[w.active]
	w.mu.RUnlock()

	abs, err := w.resolve(path)
	if err != nil {
		return err
	}
	if err := vfs.WriteText(w.fsys, abs, b.Text()); err != nil {
		return err
	}
	b.SetPath(abs)
	b.MarkSaved()
	return nil
}

// ActiveBuffer returns the focused buffer, or false when none is open.
func (w *Workspace) ActiveBuffer() (*buffer.Buffer, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.active < 0 {
		return nil, false
	}
	return w.buffers[w.active], true
}

// ActiveIndex returns the index of the focused buffer, -1 when empty.
func (w *Workspace) ActiveIndex() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// Buffers returns the open buffers in open order.
func (w *Workspace) Buffers() []*buffer.Buffer {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*buffer.Buffer, len(w.buffers))
	copy(out, w.buffers)
	return out
}

// Len returns the number of open buffers.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.buffers)
}

// AnyModified returns true if any open buffer has unsaved changes.
func (w *Workspace) AnyModified() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, b := range w.buffers {
		if b.Modified() {
			return true
		}
	}
	return false
}

// Cwd returns the working directory.
func (w *Workspace) Cwd() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cwd
}

// SetCwd changes the working directory used to resolve relative paths.
func (w *Workspace) SetCwd(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cwd = dir
}

// appendAndFocus adds a buffer at the end of open order and focuses it.
// Caller holds the lock.
func (w *Workspace) appendAndFocus(b *buffer.Buffer) {
	w.buffers = append(w.buffers, b)
	w.active = len(w.buffers) - 1
}

// indexOfPath returns the index of the buffer bound to the resolved
// path, or -1. Caller holds the lock.
func (w *Workspace) indexOfPath(abs string) int {
	for i, b := range w.buffers {
		if b.Path() == abs {
			return i
		}
	}
	return -1
}

// resolve turns a possibly relative path into an absolute one against
// the working directory.
func (w *Workspace) resolve(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.cwd, path)
	}
	return w.fsys.Abs(path)
}
