// Package splice applies byte-offset edits to a source text in one pass.
//
// Edits are recorded as an edit list (removals and insertions against the
// original coordinates) and applied once by Apply. Because the original text
// is never mutated, every retained byte keeps a known origin, which is what
// the position map in sourcemap.go is derived from.
package splice

import (
	"fmt"
	"sort"
	"strings"
)

// Buffer records edits against an immutable source text.
type Buffer struct {
	src     string
	removes []span
	inserts []insertion
}

type span struct {
	start, end int
}

type insertion struct {
	at   int
	text string
	seq  int
}

// Segment describes a run of bytes copied verbatim from the source.
type Segment struct {
	Generated int // offset in the output
	Original  int // offset in the source
	Len       int
}

// Output is the result of applying a Buffer.
type Output struct {
	Code     string
	Segments []Segment
}

// New creates a Buffer over src.
func New(src string) *Buffer {
	return &Buffer{src: src}
}

// Source returns the original text.
func (b *Buffer) Source() string {
	return b.src
}

// Remove drops the bytes in [start, end). Overlapping removals are merged.
func (b *Buffer) Remove(start, end int) error {
	if err := b.checkRange(start, end); err != nil {
		return err
	}
	if start == end {
		return nil
	}
	b.removes = append(b.removes, span{start: start, end: end})
	return nil
}

// Insert places text at offset at of the source. Insertions at the same
// offset are emitted in call order.
func (b *Buffer) Insert(at int, text string) error {
	if err := b.checkRange(at, at); err != nil {
		return err
	}
	b.inserts = append(b.inserts, insertion{at: at, text: text, seq: len(b.inserts)})
	return nil
}

func (b *Buffer) checkRange(start, end int) error {
	if start < 0 || end > len(b.src) || start > end {
		return fmt.Errorf("splice: range [%d, %d) out of bounds for source of length %d", start, end, len(b.src))
	}
	return nil
}

// Apply produces the edited text. The buffer is left untouched and may be
// applied again.
func (b *Buffer) Apply() *Output {
	removes := mergeSpans(b.removes)

	inserts := make([]insertion, len(b.inserts))
	copy(inserts, b.inserts)
	sort.SliceStable(inserts, func(i, j int) bool {
		if inserts[i].at != inserts[j].at {
			return inserts[i].at < inserts[j].at
		}
		return inserts[i].seq < inserts[j].seq
	})

	var sb strings.Builder
	sb.Grow(len(b.src))

	var segments []Segment
	pos, ri, ii := 0, 0, 0
	for {
		for ii < len(inserts) && inserts[ii].at <= pos {
			sb.WriteString(inserts[ii].text)
			ii++
		}
		if pos >= len(b.src) {
			break
		}
		if ri < len(removes) && removes[ri].start <= pos {
			if removes[ri].end > pos {
				pos = removes[ri].end
			}
			ri++
			continue
		}

		next := len(b.src)
		if ri < len(removes) && removes[ri].start < next {
			next = removes[ri].start
		}
		if ii < len(inserts) && inserts[ii].at < next {
			next = inserts[ii].at
		}

		segments = append(segments, Segment{Generated: sb.Len(), Original: pos, Len: next - pos})
		sb.WriteString(b.src[pos:next])
		pos = next
	}

	return &Output{Code: sb.String(), Segments: segments}
}

// String is shorthand for Apply().Code.
func (b *Buffer) String() string {
	return b.Apply().Code
}

func mergeSpans(in []span) []span {
	if len(in) == 0 {
		return nil
	}
	spans := make([]span, len(in))
	copy(spans, in)
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
