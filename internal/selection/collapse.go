package selection

// CollapseDirective picks which end of a range survives a collapse.
type CollapseDirective uint8

const (
	CollapseForward CollapseDirective = iota
	CollapseBackward
	CollapseToAnchor
	CollapseToHead
)

var collapseNames = map[CollapseDirective]string{
	CollapseForward:  "forward",
	CollapseBackward: "backward",
	CollapseToAnchor: "anchor",
	CollapseToHead:   "head",
}

func (d CollapseDirective) String() string {
	if name, ok := collapseNames[d]; ok {
		return name
	}
	return "unknown"
}

// ParseCollapseDirective maps a keymap name to a directive.
func ParseCollapseDirective(name string) (CollapseDirective, bool) {
	for d, n := range collapseNames {
		if n == name {
			return d, true
		}
	}
	return 0, false
}

// CollapseRange shrinks r to a single char. The result is one char wide
// unless it was floored at 0.
func CollapseRange(d CollapseDirective, r Range) Range {
	switch d {
	case CollapseForward:
		end := r.To()
		return Range{Anchor: floor(end - 1), Head: end}
	case CollapseBackward:
		start := r.From()
		return Range{Anchor: start, Head: start + 1}
	case CollapseToAnchor:
		if r.Head > r.Anchor {
			return Range{Anchor: r.Anchor, Head: r.Anchor + 1}
		}
		return Range{Anchor: r.Anchor, Head: floor(r.Anchor - 1)}
	case CollapseToHead:
		return Range{Anchor: r.Head + 1, Head: r.Head}
	}
	return r
}

// Collapse collapses every range of sel independently.
func Collapse(d CollapseDirective, sel Selection) Selection {
	return sel.Map(func(r Range) Range { return CollapseRange(d, r) })
}

// CollapseWithin is Collapse followed by a clamp to [0, limit]. Ranges
// touching limit may end up empty.
func CollapseWithin(d CollapseDirective, sel Selection, limit int) Selection {
	return sel.Map(func(r Range) Range { return CollapseRange(d, r).Clamp(limit) })
}

func floor(pos int) int {
	if pos < 0 {
		return 0
	}
	return pos
}
