package operation

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Operation
		wantErr bool
	}{
		{"open file", "open_file", OpenFile, false},
		{"save", "save", Save, false},
		{"quit", "quit", Quit, false},
		{"search", "search_in_current_buffer", SearchInCurrentBuffer, false},
		{"replace", "replace_in_current_buffer", ReplaceInCurrentBuffer, false},
		{"case insensitive", "UNDO", Undo, false},
		{"trimmed", "  redo  ", Redo, false},
		{"unknown", "explode", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknown) {
					t.Errorf("Parse(%q) error = %v, want ErrUnknown", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	for _, op := range All() {
		got, err := Parse(op.String())
		if err != nil {
			t.Errorf("Parse(%q) error = %v", op.String(), err)
			continue
		}
		if got != op {
			t.Errorf("Parse(%q) = %v, want %v", op.String(), got, op)
		}
	}
}

func TestStringUnknown(t *testing.T) {
	if got := Operation(999).String(); got != "operation(999)" {
		t.Errorf("String() = %q, want %q", got, "operation(999)")
	}
}
