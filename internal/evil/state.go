package evil

import (
	"strconv"
	"strings"
)

// MaxCount caps the numeric prefix. Digits past it keep the count at MaxCount.
const MaxCount = 99999

// State is one step of a partially typed command. The variants are Idle,
// AwaitingMotion and AwaitingModifier; no other package can add one.
type State interface {
	// Name identifies the variant ("idle", "awaiting-motion", ...).
	Name() string
	// Pending renders the keys accumulated so far, e.g. "d3i".
	Pending() string
	// PendingMode is the mode switch recorded so far, zero if none.
	PendingMode() Mode

	feed(ev Event) (State, *Command)
}

// Idle has no operator. It may only remember a mode switch.
type Idle struct {
	mode Mode
}

func (Idle) Name() string        { return "idle" }
func (Idle) Pending() string     { return "" }
func (s Idle) PendingMode() Mode { return s.mode }

func (s Idle) feed(ev Event) (State, *Command) {
	switch e := ev.(type) {
	case SetOperator:
		if !e.Operator.valid() {
			return s, nil
		}
		return AwaitingMotion{op: e.Operator, mode: s.mode}, nil
	case SetMode:
		s.mode = e.Mode
		return s, nil
	}
	return s, nil
}

// AwaitingMotion has an operator and waits for the motion.
type AwaitingMotion struct {
	op    Operator
	count int
	mods  []Modifier
	mode  Mode
}

func (AwaitingMotion) Name() string            { return "awaiting-motion" }
func (s AwaitingMotion) Operator() Operator    { return s.op }
func (s AwaitingMotion) Count() int            { return s.count }
func (s AwaitingMotion) Modifiers() []Modifier { return append([]Modifier(nil), s.mods...) }
func (s AwaitingMotion) PendingMode() Mode     { return s.mode }

func (s AwaitingMotion) Pending() string {
	return pendingKeys(s.op, s.count, s.mods, 0)
}

func (s AwaitingMotion) feed(ev Event) (State, *Command) {
	// A zero value has no operator and behaves as Idle.
	if !s.op.valid() {
		return Idle{mode: s.mode}.feed(ev)
	}
	switch e := ev.(type) {
	case AppendDigit:
		s.count = appendDigit(s.count, e.Digit)
	case AppendModifier:
		s.mods = addModifiers(s.mods, e.Modifier)
	case SetMode:
		s.mode = e.Mode
	case SetMotion:
		if !e.Motion.valid() {
			return s, nil
		}
		mods := addModifiers(s.mods, e.Modifiers...)
		if !e.Motion.satisfiedBy(mods) {
			return AwaitingModifier{op: s.op, motion: e.Motion, count: s.count, mods: mods, mode: s.mode}, nil
		}
		return Idle{}, newCommand(s.op, e.Motion, s.count, mods, s.mode)
	}
	return s, nil
}

// AwaitingModifier has an operator and a text object motion and waits for
// the scope that makes the motion valid.
type AwaitingModifier struct {
	op     Operator
	motion Motion
	count  int
	mods   []Modifier
	mode   Mode
}

func (AwaitingModifier) Name() string            { return "awaiting-modifier" }
func (s AwaitingModifier) Operator() Operator    { return s.op }
func (s AwaitingModifier) Motion() Motion        { return s.motion }
func (s AwaitingModifier) Count() int            { return s.count }
func (s AwaitingModifier) Modifiers() []Modifier { return append([]Modifier(nil), s.mods...) }
func (s AwaitingModifier) PendingMode() Mode     { return s.mode }

func (s AwaitingModifier) Pending() string {
	return pendingKeys(s.op, s.count, s.mods, s.motion)
}

func (s AwaitingModifier) feed(ev Event) (State, *Command) {
	if !s.op.valid() || !s.motion.valid() {
		return Idle{mode: s.mode}.feed(ev)
	}
	switch e := ev.(type) {
	case AppendDigit:
		s.count = appendDigit(s.count, e.Digit)
	case SetMode:
		s.mode = e.Mode
	case AppendModifier:
		s.mods = addModifiers(s.mods, e.Modifier)
		if s.motion.satisfiedBy(s.mods) {
			return Idle{}, newCommand(s.op, s.motion, s.count, s.mods, s.mode)
		}
	}
	return s, nil
}

// Feed applies one event to state and returns the next state. When the event
// completes a command, the command is returned as well and the next state is
// Idle. Events that make no sense in state leave it unchanged.
func Feed(state State, ev Event) (State, *Command) {
	if state == nil {
		state = Idle{}
	}
	switch e := ev.(type) {
	case nil:
		return state, nil
	case Cancel:
		return Idle{}, nil
	case SetMode:
		if e.Mode != 0 && !e.Mode.valid() {
			return state, nil
		}
	}
	return state.feed(ev)
}

func appendDigit(count, d int) int {
	if d < 0 || d > 9 || (count == 0 && d == 0) {
		return count
	}
	if count > (MaxCount-d)/10 {
		return MaxCount
	}
	return count*10 + d
}

func pendingKeys(op Operator, count int, mods []Modifier, m Motion) string {
	var b strings.Builder
	b.WriteRune(op.Key())
	if count > 0 {
		b.WriteString(strconv.Itoa(count))
	}
	for _, q := range mods {
		b.WriteRune(q.Key())
	}
	if m != 0 {
		b.WriteRune(m.Key())
	}
	return b.String()
}
