package evil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/kobzarvs/qevil/internal/selection"
	"github.com/kobzarvs/qevil/internal/textview"
)

type fakeSession struct {
	*textview.Buffer
	sel    selection.Selection
	yanked [][]string
	modes  []Mode
	notes  []string
}

func newFakeSession(sel selection.Selection, lines ...string) *fakeSession {
	return &fakeSession{Buffer: textview.FromLines(lines...), sel: sel}
}

func (f *fakeSession) View() textview.View                  { return f.Buffer }
func (f *fakeSession) Selection() selection.Selection       { return f.sel }
func (f *fakeSession) SetSelection(sel selection.Selection) { f.sel = sel }
func (f *fakeSession) Yank(texts []string)                  { f.yanked = append(f.yanked, texts) }
func (f *fakeSession) SetMode(m Mode)                       { f.modes = append(f.modes, m) }
func (f *fakeSession) Notify(msg string)                    { f.notes = append(f.notes, msg) }

func (f *fakeSession) dispatcher() *Dispatcher {
	return NewDispatcher(f, f, f, f, f, nil)
}

func cmdOf(op Operator, m Motion, count int) *Command {
	return newCommand(op, m, count, nil, 0)
}

func TestDispatchDeleteParagraph(t *testing.T) {
	f := newFakeSession(selection.Single(selection.Point(0)), "a", "b", "", "c")
	require.NoError(t, f.dispatcher().Run(cmdOf(Delete, ParagraphForward, 1)))

	require.Equal(t, "\nc", f.String())
	require.Equal(t, []selection.Range{selection.Point(0)}, f.sel.Ranges())
	require.Empty(t, f.modes)
}

func TestDispatchChangeEntersInsert(t *testing.T) {
	f := newFakeSession(selection.Single(selection.Point(0)), "a", "b", "", "c")
	require.NoError(t, f.dispatcher().Run(cmdOf(Change, ParagraphForward, 1)))

	require.Equal(t, "\nc", f.String())
	require.Equal(t, []Mode{ModeInsert}, f.modes)

	cmd := cmdOf(Change, ParagraphForward, 1)
	cmd.Mode = ModeNormal
	require.NoError(t, f.dispatcher().Run(cmd))
	require.Equal(t, []Mode{ModeInsert, ModeNormal}, f.modes, "explicit mode wins")
}

func TestDispatchYankRestoresSelection(t *testing.T) {
	sel := selection.Single(selection.NewRange(1, 0))
	f := newFakeSession(sel, "a", "b", "", "c")
	require.NoError(t, f.dispatcher().Run(cmdOf(Yank, ParagraphForward, 1)))

	require.Equal(t, "a\nb\n\nc", f.String())
	require.Equal(t, [][]string{{"a\nb\n"}}, f.yanked)
	require.Equal(t, sel.Ranges(), f.sel.Ranges())
	require.Equal(t, []string{"yanked 1 selection(s)"}, f.notes)
}

func TestDispatchMultipleRanges(t *testing.T) {
	// "a\nb\n\nc\nd\n"
	sel := selection.New(selection.Point(5), selection.Point(0))
	f := newFakeSession(sel, "a", "b", "", "c", "d", "")
	require.NoError(t, f.dispatcher().Run(cmdOf(Delete, ParagraphForward, 1)))

	require.Equal(t, "\n", f.String())
	want := []selection.Range{selection.Point(1), selection.Point(0)}
	if diff := cmp.Diff(want, f.sel.Ranges()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchMergesOverlappingSpans(t *testing.T) {
	sel := selection.New(selection.Point(0), selection.Point(1))
	f := newFakeSession(sel, "a", "b", "", "c")
	require.NoError(t, f.dispatcher().Run(cmdOf(Delete, ParagraphForward, 1)))

	require.Equal(t, "\nc", f.String())
	require.Equal(t, []selection.Range{selection.Point(0), selection.Point(0)}, f.sel.Ranges())
}

func TestDispatchBackward(t *testing.T) {
	// "a\n\nb\nc": deleting back from "c" removes up to the blank line.
	f := newFakeSession(selection.Single(selection.Point(5)), "a", "", "b", "c")
	require.NoError(t, f.dispatcher().Run(cmdOf(Delete, ParagraphBackward, 1)))

	require.Equal(t, "a\nc", f.String())
	require.Equal(t, []selection.Range{selection.Point(2)}, f.sel.Ranges())
}

func TestDispatchUnboundMotion(t *testing.T) {
	sel := selection.Single(selection.Point(0))
	f := newFakeSession(sel, "one two")
	cmd := cmdOf(Delete, NextWordStart, 1)
	cmd.Mode = ModeInsert
	require.NoError(t, f.dispatcher().Run(cmd))

	require.Equal(t, "one two", f.String())
	require.Equal(t, sel.Ranges(), f.sel.Ranges())
	require.Equal(t, []string{"motion not available: next_word_start"}, f.notes)
	require.Empty(t, f.modes)
}

func TestDispatchCustomMotion(t *testing.T) {
	f := newFakeSession(selection.Single(selection.Point(0)), "one two")
	d := f.dispatcher()
	d.Motions[NextWordStart] = func(v textview.View, r selection.Range, count int, m selection.Movement) selection.Range {
		return selection.Point(4 * count)
	}
	require.NoError(t, d.Run(cmdOf(Delete, NextWordStart, 1)))
	require.Equal(t, "two", f.String())
}

func TestDispatchNilCommand(t *testing.T) {
	f := newFakeSession(selection.New(), "a")
	require.NoError(t, f.dispatcher().Run(nil))
	require.NoError(t, f.dispatcher().Run(cmdOf(Delete, ParagraphForward, 1)), "empty selection")
	require.Equal(t, "a", f.String())
}

func TestDispatchSkipsCommandWithoutOperator(t *testing.T) {
	f := newFakeSession(selection.Single(selection.Point(0)), "a", "b", "", "c")
	require.NoError(t, f.dispatcher().Run(&Command{Motion: ParagraphForward, Count: 1}))
	require.Equal(t, "a\nb\n\nc", f.String())
}

var errReadOnly = errors.New("read only")

type readOnlyDoc struct{ *fakeSession }

func (readOnlyDoc) Delete(from, to int) error { return errReadOnly }

func TestDispatchDeleteError(t *testing.T) {
	f := newFakeSession(selection.Single(selection.Point(0)), "a", "", "b")
	d := NewDispatcher(f, readOnlyDoc{f}, f, f, f, nil)

	err := d.Run(cmdOf(Change, ParagraphForward, 1))
	require.ErrorIs(t, err, errReadOnly)
	require.EqualError(t, err, "delete 0..2: read only")
	require.Empty(t, f.modes)
}
