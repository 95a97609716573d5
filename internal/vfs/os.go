package vfs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFS implements FS using the operating system's file system.
type OSFS struct{}

// NewOSFS creates a new OS file system.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Ensure OSFS implements FS.
var _ FS = (*OSFS)(nil)

// ReadFile reads the entire file content.
func (f *OSFS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(err, path)
	}
	return data, nil
}

// WriteFile writes data to a file, creating it if necessary.
func (f *OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return classify(err, path)
	}
	return nil
}

// Exists returns true if the path exists.
func (f *OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Abs returns the absolute form of the path.
func (f *OSFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// classify maps an OS error onto the package's sentinel taxonomy.
func classify(err error, path string) error {
	switch {
	case os.IsNotExist(err):
		return pathError(ErrNotFound, path)
	case os.IsPermission(err):
		return pathError(ErrPermission, path)
	default:
		return pathError(ErrIO, path)
	}
}
