// Package token provides source positions and offset-to-line mapping
// shared by the SFC parser, the splicer and error reporting.
package token

import (
	"sort"
	"unicode/utf8"
)

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in bytes
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// LineIndex maps byte offsets of a text to line/column positions.
type LineIndex struct {
	src   string
	lines []int // offsets of line starts
}

// NewLineIndex builds the line table for src.
func NewLineIndex(src string) *LineIndex {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &LineIndex{src: src, lines: lines}
}

// LineCount returns the number of lines (a trailing newline opens a new, empty line).
func (x *LineIndex) LineCount() int {
	return len(x.lines)
}

// Position converts a byte offset into a Position. Offsets past the end
// are clamped to the end of the text.
func (x *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.src) {
		offset = len(x.src)
	}
	line := sort.Search(len(x.lines), func(i int) bool { return x.lines[i] > offset }) - 1
	return Position{
		Line:   line + 1,
		Column: offset - x.lines[line] + 1,
		Offset: offset,
	}
}

// Span converts a byte range into a Span.
func (x *LineIndex) Span(start, end int) Span {
	return Span{Start: x.Position(start), End: x.Position(end)}
}

// UTF16Column returns the 0-based column of offset counted in UTF-16 code
// units, which is what source map consumers expect.
func (x *LineIndex) UTF16Column(offset int) int {
	p := x.Position(offset)
	col := 0
	for _, r := range x.src[x.lines[p.Line-1]:p.Offset] {
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return col
}

// RuneCount returns the number of runes between two offsets.
func (x *LineIndex) RuneCount(start, end int) int {
	return utf8.RuneCountInString(x.src[start:end])
}
