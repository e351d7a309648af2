package evil

import (
	"fmt"
	"strings"
)

// Event is one input symbol fed to the state machine.
type Event interface {
	fmt.Stringer
	event()
}

// SetOperator starts a command. Ignored while an operator is pending.
type SetOperator struct{ Operator Operator }

// AppendDigit extends the count. Ignored while idle.
type AppendDigit struct{ Digit int }

// SetMotion names the motion, optionally with modifiers typed alongside it.
type SetMotion struct {
	Motion    Motion
	Modifiers []Modifier
}

// AppendModifier adds a scope to the pending command.
type AppendModifier struct{ Modifier Modifier }

// SetMode records the mode to switch to once the command ran. The zero Mode
// clears a recorded switch.
type SetMode struct{ Mode Mode }

// Cancel discards the pending command.
type Cancel struct{}

func (SetOperator) event()    {}
func (AppendDigit) event()    {}
func (SetMotion) event()      {}
func (AppendModifier) event() {}
func (SetMode) event()        {}
func (Cancel) event()         {}

func (e SetOperator) String() string { return "operator " + e.Operator.String() }
func (e AppendDigit) String() string { return fmt.Sprintf("digit %d", e.Digit) }

func (e SetMotion) String() string {
	if len(e.Modifiers) == 0 {
		return "motion " + e.Motion.String()
	}
	names := make([]string, len(e.Modifiers))
	for i, q := range e.Modifiers {
		names[i] = q.String()
	}
	return fmt.Sprintf("motion %s (%s)", e.Motion, strings.Join(names, ","))
}

func (e AppendModifier) String() string { return "modifier " + e.Modifier.String() }
func (e SetMode) String() string        { return "mode " + e.Mode.String() }
func (Cancel) String() string           { return "cancel" }
