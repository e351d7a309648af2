package textview

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrOutOfRange is returned when an edit addresses positions outside the buffer.
var ErrOutOfRange = errors.New("textview: position out of range")

// Buffer is an in-memory rune buffer with cached line starts and grapheme
// boundaries. It is not safe for concurrent use.
type Buffer struct {
	text       []rune
	lineStarts []int
	boundaries []int
}

var _ View = (*Buffer)(nil)

func NewBuffer(text string) *Buffer {
	b := &Buffer{text: []rune(text)}
	b.reindex()
	return b
}

// FromLines joins lines with "\n".
func FromLines(lines ...string) *Buffer {
	return NewBuffer(strings.Join(lines, "\n"))
}

func (b *Buffer) reindex() {
	b.lineStarts = append(b.lineStarts[:0], 0)
	for i, r := range b.text {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	b.boundaries = graphemeBoundaries(b.text)
}

func (b *Buffer) String() string {
	return string(b.text)
}

func (b *Buffer) LenChars() int {
	return len(b.text)
}

func (b *Buffer) LenLines() int {
	return len(b.lineStarts)
}

func (b *Buffer) IsBlank(line int) bool {
	if line < 0 || line >= len(b.lineStarts) {
		return false
	}
	for _, r := range b.text[b.lineStarts[line]:b.lineEnd(line)] {
		if !isLineEnding(r) {
			return false
		}
	}
	return true
}

// lineEnd returns the position after the last char of line, line ending included.
func (b *Buffer) lineEnd(line int) int {
	if line+1 < len(b.lineStarts) {
		return b.lineStarts[line+1]
	}
	return len(b.text)
}

func (b *Buffer) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.text)
	}
	return b.lineStarts[line]
}

func (b *Buffer) LineOf(pos int) int {
	if pos <= 0 {
		return 0
	}
	return sort.SearchInts(b.lineStarts, pos+1) - 1
}

// Line returns the content of line without its line ending.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	end := b.lineEnd(line)
	start := b.lineStarts[line]
	for end > start && isLineEnding(b.text[end-1]) {
		end--
	}
	return string(b.text[start:end])
}

func (b *Buffer) PrevGraphemeBoundary(pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(b.text) {
		pos = len(b.text)
	}
	idx := sort.SearchInts(b.boundaries, pos)
	return b.boundaries[idx-1]
}

func (b *Buffer) NextGraphemeBoundary(pos int) int {
	if pos >= len(b.text) {
		return len(b.text)
	}
	if pos < 0 {
		pos = 0
	}
	idx := sort.SearchInts(b.boundaries, pos+1)
	return b.boundaries[idx]
}

// Slice returns the text in [from, to), clamped to the buffer.
func (b *Buffer) Slice(from, to int) string {
	from = clamp(from, 0, len(b.text))
	to = clamp(to, from, len(b.text))
	return string(b.text[from:to])
}

// Delete removes [from, to).
func (b *Buffer) Delete(from, to int) error {
	if from < 0 || to < from || to > len(b.text) {
		return fmt.Errorf("%w: delete %d..%d (len %d)", ErrOutOfRange, from, to, len(b.text))
	}
	if from == to {
		return nil
	}
	b.text = append(b.text[:from], b.text[to:]...)
	b.reindex()
	return nil
}

// Insert places text before pos.
func (b *Buffer) Insert(pos int, text string) error {
	if pos < 0 || pos > len(b.text) {
		return fmt.Errorf("%w: insert at %d (len %d)", ErrOutOfRange, pos, len(b.text))
	}
	if text == "" {
		return nil
	}
	ins := []rune(text)
	out := make([]rune, 0, len(b.text)+len(ins))
	out = append(out, b.text[:pos]...)
	out = append(out, ins...)
	out = append(out, b.text[pos:]...)
	b.text = out
	b.reindex()
	return nil
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
