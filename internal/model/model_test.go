package model

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []RawLine
	}{
		{"empty", "", []RawLine{{0, ""}}},
		{"single", "abc", []RawLine{{0, "abc"}}},
		{"keeps blanks", "a\n\nb", []RawLine{{0, "a"}, {1, ""}, {2, "b"}}},
		{"crlf left for trimming", "a\r\nb", []RawLine{{0, "a\r"}, {1, "b"}}},
		{"trailing newline", "a\n", []RawLine{{0, "a"}, {1, ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTexts(t *testing.T) {
	got := Texts([]CleanedLine{{3, "x"}, {7, "y"}})
	if !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("Texts = %v", got)
	}
	if got := Texts(nil); len(got) != 0 {
		t.Errorf("Texts(nil) = %v, want empty", got)
	}
}
