package keys

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kobzarvs/qevil/internal/config"
	"github.com/kobzarvs/qevil/internal/evil"
	"github.com/kobzarvs/qevil/internal/motion"
	"github.com/kobzarvs/qevil/internal/selection"
)

// Kind tells which field of a Binding is set.
type Kind uint8

const (
	Unbound Kind = iota
	// Event feeds the pending command machine.
	Event
	// Collapse collapses the selection.
	Collapse
	// Motion moves the selection directly, outside any command.
	Motion
	// Count was absorbed into the count of the next plain motion.
	Count
	// Action is a host action such as "save" or "quit".
	Action
	// Text is typed into the buffer in insert mode.
	Text
)

func (k Kind) String() string {
	switch k {
	case Event:
		return "event"
	case Collapse:
		return "collapse"
	case Motion:
		return "motion"
	case Count:
		return "count"
	case Action:
		return "action"
	case Text:
		return "text"
	default:
		return "unbound"
	}
}

type Binding struct {
	Kind      Kind
	Event     evil.Event
	Collapse  selection.CollapseDirective
	Direction motion.Direction
	Count     int
	Action    string
	Text      string
}

func (b Binding) String() string {
	switch b.Kind {
	case Event:
		return "event " + b.Event.String()
	case Collapse:
		return "collapse " + b.Collapse.String()
	case Motion:
		return fmt.Sprintf("motion paragraph_%s x%d", b.Direction, b.Count)
	case Count:
		return fmt.Sprintf("count %d", b.Count)
	case Action:
		return "action " + b.Action
	case Text:
		return fmt.Sprintf("text %q", b.Text)
	default:
		return "unbound"
	}
}

// Mapper resolves key names against a keymap. It keeps the count typed
// before a plain motion, so it belongs to a single session.
type Mapper struct {
	keymap config.Keymap
	count  int
}

func NewMapper(km config.Keymap) *Mapper {
	return &Mapper{keymap: km}
}

// SetKeymap swaps the keymap, e.g. after the config file changed.
func (m *Mapper) SetKeymap(km config.Keymap) {
	m.keymap = km
	m.count = 0
}

// PendingCount is the plain motion count typed so far, zero if none.
func (m *Mapper) PendingCount() int {
	return m.count
}

// Resolve maps key in the given mode. state is the pending command state:
// while an operator is pending every key goes through the evil keymap.
func (m *Mapper) Resolve(key string, mode evil.Mode, state evil.State) Binding {
	if key == "" {
		return Binding{}
	}
	if mode == evil.ModeInsert {
		return m.resolveInsert(key)
	}

	_, idle := state.(evil.Idle)
	if state == nil {
		idle = true
	}
	if d, ok := digit(key); ok {
		if !idle {
			return Binding{Kind: Event, Event: evil.AppendDigit{Digit: d}}
		}
		if m.count == 0 && d == 0 {
			return Binding{}
		}
		m.count = min(m.count*10+d, evil.MaxCount)
		return Binding{Kind: Count, Count: m.count}
	}

	count := max(m.count, 1)
	m.count = 0

	if value, ok := m.keymap.Evil[key]; ok {
		b, ok := parseEvil(value)
		if ok && (idle && startsFromIdle(b) || !idle && b.Kind == Event) {
			return b
		}
	}
	if !idle {
		return Binding{}
	}
	value, ok := m.keymap.Normal[key]
	if !ok {
		return Binding{}
	}
	switch value {
	case "paragraph_forward":
		return Binding{Kind: Motion, Direction: motion.Forward, Count: count}
	case "paragraph_backward":
		return Binding{Kind: Motion, Direction: motion.Backward, Count: count}
	}
	if strings.HasPrefix(value, "collapse:") {
		if b, ok := parseEvil(value); ok {
			return b
		}
	}
	return Binding{Kind: Action, Action: value}
}

func (m *Mapper) resolveInsert(key string) Binding {
	if value, ok := m.keymap.Insert[key]; ok {
		return Binding{Kind: Action, Action: value}
	}
	if key == "space" {
		return Binding{Kind: Text, Text: " "}
	}
	if utf8.RuneCountInString(key) == 1 {
		return Binding{Kind: Text, Text: key}
	}
	return Binding{}
}

// startsFromIdle reports whether b does something when no operator is
// pending. Motions and modifiers only make sense after an operator, so those
// keys fall back to the normal keymap.
func startsFromIdle(b Binding) bool {
	switch b.Event.(type) {
	case evil.AppendModifier, evil.SetMotion:
		return false
	}
	return true
}

// parseEvil parses an evil keymap value such as "op:delete".
func parseEvil(value string) (Binding, bool) {
	if value == "cancel" {
		return Binding{Kind: Event, Event: evil.Cancel{}}, true
	}
	kind, name, ok := strings.Cut(value, ":")
	if !ok {
		return Binding{}, false
	}
	switch kind {
	case "op":
		if op, ok := evil.ParseOperator(name); ok {
			return Binding{Kind: Event, Event: evil.SetOperator{Operator: op}}, true
		}
	case "motion":
		if mo, ok := evil.ParseMotion(name); ok {
			return Binding{Kind: Event, Event: evil.SetMotion{Motion: mo}}, true
		}
	case "mod":
		if q, ok := evil.ParseModifier(name); ok {
			return Binding{Kind: Event, Event: evil.AppendModifier{Modifier: q}}, true
		}
	case "mode":
		if mode, ok := evil.ParseMode(name); ok {
			return Binding{Kind: Event, Event: evil.SetMode{Mode: mode}}, true
		}
	case "collapse":
		if d, ok := selection.ParseCollapseDirective(name); ok {
			return Binding{Kind: Collapse, Collapse: d}, true
		}
	}
	return Binding{}, false
}

func digit(key string) (int, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return int(key[0] - '0'), true
	}
	return 0, false
}

// Validate reports evil keymap values that do not parse.
func Validate(km config.Keymap) error {
	var bad []string
	for key, value := range km.Evil {
		if _, ok := parseEvil(value); !ok {
			bad = append(bad, fmt.Sprintf("%s=%q", key, value))
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return fmt.Errorf("invalid evil bindings: %s", strings.Join(bad, ", "))
}
