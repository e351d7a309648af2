package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/kobzarvs/qevil/internal/config"
	"github.com/kobzarvs/qevil/internal/evil"
	"github.com/kobzarvs/qevil/internal/motion"
	"github.com/kobzarvs/qevil/internal/selection"
)

func TestString(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), "d"},
		{tcell.NewEventKey(tcell.KeyRune, '}', tcell.ModShift), "}"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{tcell.NewEventKey(tcell.KeyRune, ';', tcell.ModAlt), "alt+;"},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "ctrl+c"},
		{tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), "ctrl+s"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "tab"},
		{tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "shift+tab"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "backspace"},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModAlt), "alt+up"},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModAlt|tcell.ModShift), "alt+shift+down"},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), "pgdn"},
	}
	for _, tt := range cases {
		require.Equal(t, tt.want, String(tt.ev))
	}
}

func resolveAll(m *Mapper, machine *evil.Machine, keys ...string) []Binding {
	var out []Binding
	for _, k := range keys {
		b := m.Resolve(k, evil.ModeNormal, machine.State())
		if b.Kind == Event {
			machine.Feed(b.Event)
		}
		out = append(out, b)
	}
	return out
}

func TestResolveOperatorSequence(t *testing.T) {
	m := NewMapper(config.Default().Keymap)
	machine := evil.NewMachine(nil, nil)

	got := resolveAll(m, machine, "d", "3", "}")
	require.Equal(t, []Binding{
		{Kind: Event, Event: evil.SetOperator{Operator: evil.Delete}},
		{Kind: Event, Event: evil.AppendDigit{Digit: 3}},
		{Kind: Event, Event: evil.SetMotion{Motion: evil.ParagraphForward}},
	}, got)
	require.Equal(t, evil.Idle{}, machine.State())
}

func TestResolveTextObject(t *testing.T) {
	m := NewMapper(config.Default().Keymap)
	machine := evil.NewMachine(nil, nil)

	got := resolveAll(m, machine, "c", "i", "W")
	require.Equal(t, evil.AppendModifier{Modifier: evil.Inner}, got[1].Event)
	require.Equal(t, evil.SetMotion{Motion: evil.Word}, got[2].Event)
}

func TestResolveIdleFallsBackToNormal(t *testing.T) {
	m := NewMapper(config.Default().Keymap)
	idle := evil.Idle{}

	require.Equal(t, Binding{Kind: Motion, Direction: motion.Forward, Count: 1}, m.Resolve("}", evil.ModeNormal, idle))
	require.Equal(t, Binding{Kind: Action, Action: "enter_insert"}, m.Resolve("i", evil.ModeNormal, idle))
	require.Equal(t, Binding{Kind: Collapse, Collapse: selection.CollapseForward}, m.Resolve(",", evil.ModeNormal, idle))
	require.Equal(t, Binding{Kind: Event, Event: evil.Cancel{}}, m.Resolve("esc", evil.ModeNormal, idle))
	require.Equal(t, Binding{}, m.Resolve("p", evil.ModeNormal, idle))
	require.Equal(t, Binding{}, m.Resolve("", evil.ModeNormal, nil))
}

func TestResolvePlainMotionCount(t *testing.T) {
	m := NewMapper(config.Default().Keymap)
	idle := evil.Idle{}

	require.Equal(t, Binding{}, m.Resolve("0", evil.ModeNormal, idle), "leading zero")
	require.Equal(t, Binding{Kind: Count, Count: 1}, m.Resolve("1", evil.ModeNormal, idle))
	require.Equal(t, Binding{Kind: Count, Count: 12}, m.Resolve("2", evil.ModeNormal, idle))
	require.Equal(t, 12, m.PendingCount())

	b := m.Resolve("{", evil.ModeNormal, idle)
	require.Equal(t, Binding{Kind: Motion, Direction: motion.Backward, Count: 12}, b)
	require.Equal(t, 0, m.PendingCount())
}

func TestResolvePendingIgnoresNonEvents(t *testing.T) {
	m := NewMapper(config.Default().Keymap)
	pending, _ := evil.Feed(evil.Idle{}, evil.SetOperator{Operator: evil.Yank})

	require.Equal(t, Binding{}, m.Resolve(",", evil.ModeNormal, pending), "collapse waits for the command")
	require.Equal(t, Binding{}, m.Resolve("ctrl+s", evil.ModeNormal, pending))
	require.Equal(t, Binding{Kind: Event, Event: evil.Cancel{}}, m.Resolve("esc", evil.ModeNormal, pending))
}

func TestResolveInsert(t *testing.T) {
	m := NewMapper(config.Default().Keymap)
	idle := evil.Idle{}

	require.Equal(t, Binding{Kind: Action, Action: "enter_normal"}, m.Resolve("esc", evil.ModeInsert, idle))
	require.Equal(t, Binding{Kind: Text, Text: "d"}, m.Resolve("d", evil.ModeInsert, idle))
	require.Equal(t, Binding{Kind: Text, Text: "\u00e9"}, m.Resolve("\u00e9", evil.ModeInsert, idle))
	require.Equal(t, Binding{Kind: Text, Text: " "}, m.Resolve("space", evil.ModeInsert, idle))
	require.Equal(t, Binding{}, m.Resolve("ctrl+x", evil.ModeInsert, idle))
}

func TestSetKeymapRebinds(t *testing.T) {
	km := config.Default().Keymap
	m := NewMapper(km)
	m.Resolve("4", evil.ModeNormal, evil.Idle{})

	km.Evil = map[string]string{"x": "op:delete"}
	m.SetKeymap(km)
	require.Equal(t, 0, m.PendingCount())
	require.Equal(t, Binding{Kind: Event, Event: evil.SetOperator{Operator: evil.Delete}}, m.Resolve("x", evil.ModeNormal, evil.Idle{}))
	require.Equal(t, Binding{}, m.Resolve("d", evil.ModeNormal, evil.Idle{}))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(config.Default().Keymap))

	km := config.Keymap{Evil: map[string]string{
		"d": "op:delete",
		"q": "op:frobnicate",
		"z": "sideways",
	}}
	require.EqualError(t, Validate(km), `invalid evil bindings: q="op:frobnicate", z="sideways"`)
}

func TestBindingString(t *testing.T) {
	require.Equal(t, "event operator delete", Binding{Kind: Event, Event: evil.SetOperator{Operator: evil.Delete}}.String())
	require.Equal(t, "motion paragraph_backward x2", Binding{Kind: Motion, Direction: motion.Backward, Count: 2}.String())
	require.Equal(t, "unbound", Binding{}.String())
}
