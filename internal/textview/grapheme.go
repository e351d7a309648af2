package textview

import (
	"github.com/rivo/uniseg"
)

// graphemeBoundaries returns every cluster boundary of text as rune offsets,
// including 0 and len(text).
func graphemeBoundaries(text []rune) []int {
	out := make([]int, 1, len(text)+1)
	if len(text) == 0 {
		return out
	}
	g := uniseg.NewGraphemes(string(text))
	pos := 0
	for g.Next() {
		pos += len(g.Runes())
		out = append(out, pos)
	}
	return out
}

// isLineEnding reports whether r only terminates a line.
func isLineEnding(r rune) bool {
	return r == '\n' || r == '\r'
}
