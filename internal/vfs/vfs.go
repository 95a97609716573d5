// Package vfs provides the file system collaborator used by the
// workspace. The FS interface allows swapping the backing store,
// enabling tests to run against an in-memory file system.
//
// Failures are classified into sentinel errors so callers can branch on
// the failure kind without inspecting platform error strings.
package vfs

import (
	"errors"
	"fmt"
	"io/fs"
)

// Errors returned by file operations.
var (
	// ErrNotFound indicates the path does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermission indicates the operation was denied.
	ErrPermission = errors.New("permission denied")

	// ErrDecode indicates the file content is not valid text.
	ErrDecode = errors.New("cannot decode file as text")

	// ErrIO indicates any other read or write failure.
	ErrIO = errors.New("i/o failure")
)

// DefaultFileMode is the permission used for files the editor creates.
const DefaultFileMode fs.FileMode = 0o644

// FS is the file system abstraction the editor core depends on.
// Reads and writes are synchronous: they either complete or fail, and a
// failure leaves the caller's state untouched.
type FS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Exists returns true if the path exists.
	Exists(path string) bool

	// Abs returns the absolute form of the path.
	Abs(path string) (string, error)
}

// ReadText reads a file and decodes it as UTF-8 text, stripping a
// leading byte order mark. Binary or non-UTF-8 content yields ErrDecode.
func ReadText(fsys FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return DecodeText(path, data)
}

// WriteText writes text content to a file with the default mode.
func WriteText(fsys FS, path, content string) error {
	return fsys.WriteFile(path, []byte(content), DefaultFileMode)
}

// pathError wraps a sentinel error with the path it concerns.
func pathError(sentinel error, path string) error {
	return fmt.Errorf("%w: %s", sentinel, path)
}
