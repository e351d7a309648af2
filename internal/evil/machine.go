package evil

import (
	"go.uber.org/zap"
)

// Notifier receives human readable trace lines. It has no functional effect.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

// Machine owns the pending command of one editing session.
type Machine struct {
	state  State
	notify Notifier
	log    *zap.Logger
}

// NewMachine returns an idle machine. Nil arguments are replaced by no-ops.
func NewMachine(n Notifier, log *zap.Logger) *Machine {
	if n == nil {
		n = nopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine{state: Idle{}, notify: n, log: log}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Feed applies ev and returns the command it completed, if any.
func (m *Machine) Feed(ev Event) *Command {
	if ev == nil {
		return nil
	}
	prev := m.state
	next, cmd := Feed(prev, ev)
	m.state = next

	switch {
	case cmd != nil:
		m.notify.Notify(cmd.String())
		m.log.Debug("command ready",
			zap.Stringer("command", cmd),
			zap.String("operator", cmd.Operator.String()),
			zap.String("motion", cmd.Motion.String()),
			zap.Int("count", cmd.Count),
		)
	case isCancel(ev):
		m.notify.Notify("cancel")
		m.log.Debug("command cancelled", zap.String("from", prev.Name()))
	case changed(prev, next):
		trace := next.Pending()
		if trace == "" {
			trace = ev.String()
		}
		m.notify.Notify(trace)
		m.log.Debug("transition",
			zap.Stringer("event", ev),
			zap.String("from", prev.Name()),
			zap.String("to", next.Name()),
			zap.String("pending", next.Pending()),
		)
	default:
		m.log.Debug("event ignored", zap.Stringer("event", ev), zap.String("state", prev.Name()))
	}
	return cmd
}

// Reset drops any partial command without notifying.
func (m *Machine) Reset() {
	m.state = Idle{}
}

func changed(prev, next State) bool {
	return prev.Name() != next.Name() ||
		prev.Pending() != next.Pending() ||
		prev.PendingMode() != next.PendingMode()
}

func isCancel(ev Event) bool {
	_, ok := ev.(Cancel)
	return ok
}
