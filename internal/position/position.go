// Package position maps byte offsets in a source text to editor-facing
// {line, character} coordinates and back, in UTF-16 code units to match
// LSP conventions.
package position

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Position is a 0-based line/character coordinate, character counted in
// UTF-16 code units.
type Position struct {
	Line      int
	Character int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Less reports whether p sorts before o.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Character < o.Character
}

// Range is a half-open [Start, End) span over a document.
type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Index is a line-offset index built once per source text, grounded on the
// File.AddLine/binary-search pattern: it records the byte offset at which
// each line begins and answers offset<->position queries in O(log N).
type Index struct {
	source     string
	lineStarts []int // byte offset of the start of each line; lineStarts[0] == 0
}

// NewIndex scans source once, recording the byte offset of every line
// start.
func NewIndex(source string) *Index {
	idx := &Index{
		source:     source,
		lineStarts: []int{0},
	}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			idx.lineStarts = append(idx.lineStarts, i+1)
		}
	}
	return idx
}

// LineCount returns the number of lines in the source (always >= 1).
func (idx *Index) LineCount() int {
	return len(idx.lineStarts)
}

// OffsetToPosition converts a byte offset into a {line, character}
// position, locating the line via binary search over lineStarts and then
// counting UTF-16 units from the line start to the offset.
func (idx *Index) OffsetToPosition(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(idx.source) {
		offset = len(idx.source)
	}
	line := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	lineStart := idx.lineStarts[line]
	character := utf16Len(idx.source[lineStart:offset])
	return Position{Line: line, Character: character}
}

// PositionToOffset is the inverse of OffsetToPosition: it walks the given
// line's bytes counting UTF-16 units until it reaches the requested
// character column.
func (idx *Index) PositionToOffset(pos Position) int {
	line := pos.Line
	if line < 0 {
		line = 0
	}
	if line >= len(idx.lineStarts) {
		return len(idx.source)
	}
	lineStart := idx.lineStarts[line]
	lineEnd := len(idx.source)
	if line+1 < len(idx.lineStarts) {
		lineEnd = idx.lineStarts[line+1]
	}
	remaining := pos.Character
	offset := lineStart
	for offset < lineEnd && remaining > 0 {
		r, size := utf8.DecodeRuneInString(idx.source[offset:])
		units := 1
		if r > 0xFFFF {
			units = 2
		}
		if remaining < units {
			break
		}
		remaining -= units
		offset += size
	}
	return offset
}

// utf16Len returns the number of UTF-16 code units s would encode to.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}
