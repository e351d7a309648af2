package evil

import (
	"strconv"
	"strings"
)

// Command is a completed operator and motion pair.
type Command struct {
	Operator  Operator
	Motion    Motion
	Count     int
	Modifiers []Modifier
	// Mode to switch to after the operator ran, zero for none.
	Mode Mode
}

func newCommand(op Operator, m Motion, count int, mods []Modifier, mode Mode) *Command {
	if count < 1 {
		count = 1
	}
	return &Command{
		Operator:  op,
		Motion:    m,
		Count:     count,
		Modifiers: append([]Modifier(nil), mods...),
		Mode:      mode,
	}
}

// Has reports whether the command carries modifier q.
func (c *Command) Has(q Modifier) bool {
	return containsModifier(c.Modifiers, q)
}

// String renders the command the way it is typed: "d3}", "ciw".
func (c *Command) String() string {
	var b strings.Builder
	b.WriteRune(c.Operator.Key())
	if c.Count > 1 {
		b.WriteString(strconv.Itoa(c.Count))
	}
	for _, q := range c.Modifiers {
		b.WriteRune(q.Key())
	}
	b.WriteRune(c.Motion.Key())
	return b.String()
}
