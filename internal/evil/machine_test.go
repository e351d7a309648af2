package evil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMachineTracesTransitions(t *testing.T) {
	var trace []string
	m := NewMachine(NotifierFunc(func(msg string) { trace = append(trace, msg) }), nil)

	require.Nil(t, m.Feed(SetOperator{Delete}))
	require.Nil(t, m.Feed(AppendDigit{3}))
	require.Nil(t, m.Feed(SetOperator{Yank}))
	cmd := m.Feed(SetMotion{Motion: ParagraphForward})

	require.Equal(t, &Command{Operator: Delete, Motion: ParagraphForward, Count: 3}, cmd)
	require.Equal(t, []string{"d", "d3", "d3}"}, trace)
	require.Equal(t, Idle{}, m.State())
}

func TestMachineCancelAndReset(t *testing.T) {
	var trace []string
	m := NewMachine(NotifierFunc(func(msg string) { trace = append(trace, msg) }), zap.NewNop())

	m.Feed(SetOperator{Change})
	m.Feed(Cancel{})
	require.Equal(t, Idle{}, m.State())
	require.Equal(t, []string{"c", "cancel"}, trace)

	m.Feed(SetOperator{Change})
	m.Reset()
	require.Equal(t, Idle{}, m.State())
	require.Len(t, trace, 3, "reset is silent")

	require.Nil(t, m.Feed(nil))
}

func TestMachineModeSwitchIsTraced(t *testing.T) {
	var trace []string
	m := NewMachine(NotifierFunc(func(msg string) { trace = append(trace, msg) }), nil)
	m.Feed(SetMode{ModeInsert})
	require.Equal(t, []string{"mode insert"}, trace)
	require.Equal(t, ModeInsert, m.State().PendingMode())
}

func TestMachineLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := NewMachine(nil, zap.New(core))

	m.Feed(AppendDigit{1})
	m.Feed(SetOperator{Delete})
	m.Feed(SetMotion{Motion: ParagraphBackward})

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, "event ignored", entries[0].Message)
	require.Equal(t, "transition", entries[1].Message)
	require.Equal(t, "command ready", entries[2].Message)
	require.Equal(t, "d{", entries[2].ContextMap()["command"])
}
