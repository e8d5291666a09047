package position_test

import (
	"testing"

	"github.com/funvibe/kclsp/internal/position"
)

func TestIndexOffsetToPosition(t *testing.T) {
	src := "let x = 1\nlet y = 2\n\nlet z = 3"
	idx := position.NewIndex(src)

	tests := []struct {
		name   string
		offset int
		want   position.Position
	}{
		{"start of file", 0, position.Position{Line: 0, Character: 0}},
		{"mid first line", 4, position.Position{Line: 0, Character: 4}},
		{"start of second line", 10, position.Position{Line: 1, Character: 0}},
		{"start of blank line", 20, position.Position{Line: 2, Character: 0}},
		{"start of fourth line", 21, position.Position{Line: 3, Character: 0}},
		{"past end clamps to last offset", len(src) + 50, idx.OffsetToPosition(len(src))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := idx.OffsetToPosition(tc.offset)
			if got != tc.want {
				t.Errorf("OffsetToPosition(%d) = %v, want %v", tc.offset, got, tc.want)
			}
		})
	}
}

func TestIndexRoundTrip(t *testing.T) {
	src := "fn f(@a) {\n  return a\n}\n"
	idx := position.NewIndex(src)
	for offset := 0; offset <= len(src); offset++ {
		pos := idx.OffsetToPosition(offset)
		back := idx.PositionToOffset(pos)
		if back != offset {
			t.Errorf("offset %d -> %v -> %d, want round-trip", offset, pos, back)
		}
	}
}

func TestIndexUTF16Columns(t *testing.T) {
	// U+1F600 (grinning face) is outside the BMP and encodes to two
	// UTF-16 code units; LSP column arithmetic must count it as 2.
	src := "x = \"\U0001F600\""
	idx := position.NewIndex(src)
	quoteOffset := len(src) - len("\"\U0001F600\"")
	pos := idx.OffsetToPosition(quoteOffset)
	if pos.Character != 4 {
		t.Fatalf("opening quote character = %d, want 4", pos.Character)
	}
	closingQuoteOffset := len(src) - 1
	closing := idx.OffsetToPosition(closingQuoteOffset)
	// opening quote (1) + emoji (2 UTF-16 units) = character 7 for the closer.
	if closing.Character != 7 {
		t.Fatalf("closing quote character = %d, want 7", closing.Character)
	}
}

func TestPositionLess(t *testing.T) {
	a := position.Position{Line: 0, Character: 5}
	b := position.Position{Line: 0, Character: 6}
	c := position.Position{Line: 1, Character: 0}

	if !a.Less(b) {
		t.Errorf("expected %v < %v", a, b)
	}
	if !b.Less(c) {
		t.Errorf("expected %v < %v", b, c)
	}
	if c.Less(a) {
		t.Errorf("expected %v not < %v", c, a)
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"", 1},
		{"single line", 1},
		{"two\nlines", 2},
		{"three\nlines\n", 3},
	}
	for _, tc := range tests {
		got := position.NewIndex(tc.src).LineCount()
		if got != tc.want {
			t.Errorf("LineCount(%q) = %d, want %d", tc.src, got, tc.want)
		}
	}
}
