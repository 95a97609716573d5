package vfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{"plain ascii", []byte("hello"), "hello", false},
		{"utf8", []byte("héllo"), "héllo", false},
		{"empty", []byte{}, "", false},
		{"utf8 bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, "hi"...), "hi", false},
		{"utf16le bom rejected", []byte{0xFF, 0xFE, 'h', 0}, "", true},
		{"utf16be bom rejected", []byte{0xFE, 0xFF, 0, 'h'}, "", true},
		{"nul byte rejected", []byte{'a', 0, 'b'}, "", true},
		{"invalid utf8 rejected", []byte{0xC3, 0x28}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText("/f", tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrDecode) {
					t.Errorf("DecodeText() error = %v, want ErrDecode", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripBOM(t *testing.T) {
	data, stripped := StripBOM(append([]byte{0xEF, 0xBB, 0xBF}, "x"...))
	if !stripped || string(data) != "x" {
		t.Errorf("StripBOM() = %q, %v, want %q, true", data, stripped, "x")
	}

	data, stripped = StripBOM([]byte("x"))
	if stripped || string(data) != "x" {
		t.Errorf("StripBOM() = %q, %v, want %q, false", data, stripped, "x")
	}
}

func TestMemFSReadWrite(t *testing.T) {
	m := NewMemFS()

	if err := WriteText(m, "/a/b.txt", "content"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !m.Exists("/a/b.txt") {
		t.Error("Exists() = false after write")
	}

	got, err := ReadText(m, "/a/b.txt")
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != "content" {
		t.Errorf("ReadText() = %q, want %q", got, "content")
	}
}

func TestMemFSNotFound(t *testing.T) {
	m := NewMemFS()
	if _, err := m.ReadFile("/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadFile() error = %v, want ErrNotFound", err)
	}
}

func TestMemFSDenied(t *testing.T) {
	m := NewMemFS()
	m.Put("/secret", []byte("x"))
	m.Deny("/secret")

	if _, err := m.ReadFile("/secret"); !errors.Is(err, ErrPermission) {
		t.Errorf("ReadFile() error = %v, want ErrPermission", err)
	}
	if err := m.WriteFile("/secret", []byte("y"), DefaultFileMode); !errors.Is(err, ErrPermission) {
		t.Errorf("WriteFile() error = %v, want ErrPermission", err)
	}
}

func TestMemFSFailWrites(t *testing.T) {
	m := NewMemFS()
	m.FailWrites(true)

	if err := m.WriteFile("/f", []byte("x"), DefaultFileMode); !errors.Is(err, ErrIO) {
		t.Errorf("WriteFile() error = %v, want ErrIO", err)
	}
	if m.Exists("/f") {
		t.Error("Exists() = true after failed write")
	}
}

func TestMemFSAbs(t *testing.T) {
	m := NewMemFS()
	got, err := m.Abs("a/../b.txt")
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}
	if got != "/b.txt" {
		t.Errorf("Abs() = %q, want %q", got, "/b.txt")
	}
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	f := NewOSFS()
	path := filepath.Join(dir, "f.txt")

	if err := WriteText(f, path, "hello"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	got, err := ReadText(f, path)
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("ReadText() = %q, want %q", got, "hello")
	}

	if _, err := f.ReadFile(filepath.Join(dir, "missing")); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want ErrNotFound", err)
	}

	if !f.Exists(path) {
		t.Error("Exists() = false for written file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != DefaultFileMode {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), DefaultFileMode)
	}
}
