// Package textview exposes read-only line and grapheme queries over a text
// buffer, plus an in-memory Buffer that implements them.
//
// All positions are character (rune) offsets. Lines are 0-based and a
// buffer always has at least one line; text ending in a line break has a
// trailing empty line.
package textview

// View is the read capability motions and selection transforms work against.
type View interface {
	// LenChars returns the buffer length. Valid positions are [0, LenChars()].
	LenChars() int
	// LenLines returns the number of lines, at least 1.
	LenLines() int
	// IsBlank reports whether line has zero visible graphemes.
	IsBlank(line int) bool
	// LineStart returns the position of the first char of line.
	// LineStart(LenLines()) is LenChars().
	LineStart(line int) int
	// LineOf returns the line containing pos.
	LineOf(pos int) int
	// PrevGraphemeBoundary returns the closest grapheme boundary before pos.
	PrevGraphemeBoundary(pos int) int
	// NextGraphemeBoundary returns the closest grapheme boundary after pos.
	NextGraphemeBoundary(pos int) int
}
