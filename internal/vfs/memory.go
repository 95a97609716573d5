package vfs

import (
	"io/fs"
	"path"
	"sync"
)

// MemFS is an in-memory FS for tests. Paths are normalized with
// path.Clean and rooted at "/". Specific paths can be marked as
// permission-denied, and all writes can be forced to fail, to exercise
// the error taxonomy.
type MemFS struct {
	mu         sync.RWMutex
	files      map[string][]byte
	denied     map[string]bool
	failWrites bool
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files:  make(map[string][]byte),
		denied: make(map[string]bool),
	}
}

// Ensure MemFS implements FS.
var _ FS = (*MemFS)(nil)

// Put seeds a file without going through WriteFile.
func (m *MemFS) Put(p string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[m.normalize(p)] = append([]byte(nil), data...)
}

// Deny marks a path as permission-denied for reads and writes.
func (m *MemFS) Deny(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[m.normalize(p)] = true
}

// FailWrites forces every subsequent write to fail with ErrIO.
func (m *MemFS) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = m.normalize(p)
	if m.denied[p] {
		return nil, pathError(ErrPermission, p)
	}
	data, ok := m.files[p]
	if !ok {
		return nil, pathError(ErrNotFound, p)
	}
	return append([]byte(nil), data...), nil
}

// WriteFile writes data to a file, creating it if necessary.
func (m *MemFS) WriteFile(p string, data []byte, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = m.normalize(p)
	if m.denied[p] {
		return pathError(ErrPermission, p)
	}
	if m.failWrites {
		return pathError(ErrIO, p)
	}
	m.files[p] = append([]byte(nil), data...)
	return nil
}

// Exists returns true if the path exists.
func (m *MemFS) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[m.normalize(p)]
	return ok
}

// Abs returns the absolute form of the path, rooted at "/".
func (m *MemFS) Abs(p string) (string, error) {
	return m.normalize(p), nil
}

func (m *MemFS) normalize(p string) string {
	if !path.IsAbs(p) {
		p = "/" + p
	}
	return path.Clean(p)
}
