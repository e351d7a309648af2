// Package selection holds the cursor/selection value types and the pure
// transforms over them.
package selection

import (
	"fmt"

	"github.com/kobzarvs/qevil/internal/textview"
)

// Movement tells a motion whether to move the selection or to extend it.
type Movement uint8

const (
	// Move collapses the selection onto the motion target.
	Move Movement = iota
	// Extend keeps the anchor side and moves the head.
	Extend
)

func (m Movement) String() string {
	switch m {
	case Move:
		return "move"
	case Extend:
		return "extend"
	default:
		return "unknown"
	}
}

// Range is a selection span. Head is the active end. Range is an immutable
// value type: every transform returns a new Range.
type Range struct {
	Anchor int
	Head   int
}

func NewRange(anchor, head int) Range {
	return Range{Anchor: anchor, Head: head}
}

// Point returns an empty range at pos.
func Point(pos int) Range {
	return Range{Anchor: pos, Head: pos}
}

// From returns the lower bound.
func (r Range) From() int {
	if r.Anchor <= r.Head {
		return r.Anchor
	}
	return r.Head
}

// To returns the upper bound.
func (r Range) To() int {
	if r.Anchor >= r.Head {
		return r.Anchor
	}
	return r.Head
}

func (r Range) Len() int {
	return r.To() - r.From()
}

func (r Range) IsEmpty() bool {
	return r.Anchor == r.Head
}

// IsForward reports whether the head is at or after the anchor.
func (r Range) IsForward() bool {
	return r.Head >= r.Anchor
}

// Cursor returns the position of the block cursor. For a non-empty forward
// range that is the grapheme before Head.
func (r Range) Cursor(v textview.View) int {
	if r.Head > r.Anchor {
		return v.PrevGraphemeBoundary(r.Head)
	}
	return r.Head
}

// CursorLine returns the line holding the block cursor.
func (r Range) CursorLine(v textview.View) int {
	return v.LineOf(r.Cursor(v))
}

// PutCursor places the cursor at pos. Without extend the range collapses to
// a point. With extend the anchor is kept unless pos crosses it, in which
// case the anchor moves one grapheme so the originally covered char stays
// selected.
func (r Range) PutCursor(v textview.View, pos int, extend bool) Range {
	if !extend {
		return Point(pos)
	}
	anchor := r.Anchor
	switch {
	case r.Head >= r.Anchor && pos < r.Anchor:
		anchor = v.NextGraphemeBoundary(r.Anchor)
	case r.Head < r.Anchor && pos >= r.Anchor:
		anchor = v.PrevGraphemeBoundary(r.Anchor)
	}
	if anchor <= pos {
		return Range{Anchor: anchor, Head: v.NextGraphemeBoundary(pos)}
	}
	return Range{Anchor: anchor, Head: pos}
}

// Clamp limits both ends to [0, limit].
func (r Range) Clamp(limit int) Range {
	return Range{Anchor: clamp(r.Anchor, limit), Head: clamp(r.Head, limit)}
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Anchor, r.Head)
}

func clamp(pos, limit int) int {
	if pos < 0 {
		return 0
	}
	if limit >= 0 && pos > limit {
		return limit
	}
	return pos
}
