package vfs

import (
	"bytes"
	"unicode/utf8"
)

// Byte order marks.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// StripBOM removes a leading UTF-8 byte order mark.
// Returns the content and whether a mark was removed.
func StripBOM(data []byte) ([]byte, bool) {
	if bytes.HasPrefix(data, bomUTF8) {
		return data[len(bomUTF8):], true
	}
	return data, false
}

// DecodeText validates data as plain UTF-8 text. UTF-16 content, NUL
// bytes, and invalid UTF-8 sequences are rejected with ErrDecode; the
// editor stores plain text only.
func DecodeText(path string, data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		return "", pathError(ErrDecode, path)
	}

	data, _ = StripBOM(data)

	if bytes.IndexByte(data, 0) >= 0 {
		return "", pathError(ErrDecode, path)
	}
	if !utf8.Valid(data) {
		return "", pathError(ErrDecode, path)
	}
	return string(data), nil
}
