package selection

import "strings"

// Selection is an ordered set of ranges. Transforms preserve order and count.
type Selection struct {
	ranges []Range
}

func New(ranges ...Range) Selection {
	return Selection{ranges: append([]Range(nil), ranges...)}
}

// Single returns a selection holding one range.
func Single(r Range) Selection {
	return Selection{ranges: []Range{r}}
}

// Ranges returns a copy of the ranges.
func (s Selection) Ranges() []Range {
	return append([]Range(nil), s.ranges...)
}

func (s Selection) Len() int {
	return len(s.ranges)
}

// Primary returns the first range, or an empty range at 0.
func (s Selection) Primary() Range {
	if len(s.ranges) == 0 {
		return Range{}
	}
	return s.ranges[0]
}

// Map applies fn to every range.
func (s Selection) Map(fn func(Range) Range) Selection {
	if len(s.ranges) == 0 {
		return s
	}
	out := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = fn(r)
	}
	return Selection{ranges: out}
}

// Clamp limits every range to [0, limit].
func (s Selection) Clamp(limit int) Selection {
	return s.Map(func(r Range) Range { return r.Clamp(limit) })
}

func (s Selection) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
