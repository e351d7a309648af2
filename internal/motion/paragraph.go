// Package motion computes new selection ranges for cursor motions.
package motion

import (
	"github.com/kobzarvs/qevil/internal/selection"
	"github.com/kobzarvs/qevil/internal/textview"
)

// Direction of a paragraph motion.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Compute runs the paragraph motion in dir.
func Compute(dir Direction, v textview.View, r selection.Range, count int, m selection.Movement) selection.Range {
	if dir == Backward {
		return ParagraphBackward(v, r, count, m)
	}
	return ParagraphForward(v, r, count, m)
}

// Apply runs the paragraph motion for every range of sel.
func Apply(dir Direction, v textview.View, sel selection.Selection, count int, m selection.Movement) selection.Selection {
	return sel.Map(func(r selection.Range) selection.Range {
		return Compute(dir, v, r, count, m)
	})
}

// ParagraphForward moves to the start of the blank line that ends the
// paragraph, count times. It stops early once no further blank line exists.
//
// With Extend the block cursor, not the head, lands on that line start: a
// forward range ends one grapheme past it (Extend from 0 over "a\nb\n\nc"
// gives 0..5, not 0..4). This keeps the blank line selected and lets a
// repeated Extend move on to the next paragraph.
func ParagraphForward(v textview.View, r selection.Range, count int, m selection.Movement) selection.Range {
	if count <= 0 {
		return r
	}
	last := v.LenLines() - 1
	cursor := r.Cursor(v)
	start := v.LineOf(cursor)
	line := start

	// Cursor on the tail of a blank line right before text: that boundary
	// is already behind us.
	skipped := false
	if line < last && v.IsBlank(line) && !v.IsBlank(line+1) &&
		v.PrevGraphemeBoundary(v.LineStart(line+1)) == cursor {
		line++
		skipped = true
	}

	for i := 0; i < count; i++ {
		next := line
		for next < last && v.IsBlank(next) {
			next++
		}
		for next < last && !v.IsBlank(next) {
			next++
		}
		if next == line || !v.IsBlank(next) {
			break
		}
		line = next
	}

	if line == start && !skipped {
		return r
	}
	return place(v, r, v.LineStart(line), m, skipped)
}

// ParagraphBackward mirrors ParagraphForward toward the top of the buffer,
// landing on the blank line above each paragraph.
func ParagraphBackward(v textview.View, r selection.Range, count int, m selection.Movement) selection.Range {
	if count <= 0 {
		return r
	}
	cursor := r.Cursor(v)
	start := v.LineOf(cursor)
	line := start

	// Cursor on the first grapheme after a blank line: same as above, the
	// boundary is already crossed.
	skipped := false
	if line > 0 && !v.IsBlank(line) && v.IsBlank(line-1) && v.LineStart(line) == cursor {
		line--
		skipped = true
	}

	for i := 0; i < count; i++ {
		next := line
		for next > 0 && v.IsBlank(next) {
			next--
		}
		for next > 0 && !v.IsBlank(next) {
			next--
		}
		if next == line || !v.IsBlank(next) {
			break
		}
		line = next
	}

	if line == start && !skipped {
		return r
	}
	return place(v, r, v.LineStart(line), m, skipped)
}

// place builds the result range. Extend puts the block cursor on the target
// line start, so a forward range covers the blank line it lands on.
func place(v textview.View, r selection.Range, head int, m selection.Movement, skipped bool) selection.Range {
	switch {
	case m == selection.Extend:
		return r.PutCursor(v, head, true)
	case skipped:
		return selection.NewRange(r.Head, head)
	default:
		return selection.Point(head)
	}
}
