package evil

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kobzarvs/qevil/internal/motion"
	"github.com/kobzarvs/qevil/internal/selection"
	"github.com/kobzarvs/qevil/internal/textview"
)

// SelectionStore holds the active selection of the current view.
type SelectionStore interface {
	Selection() selection.Selection
	SetSelection(selection.Selection)
}

// Document is the buffer a command reads from and deletes in.
type Document interface {
	View() textview.View
	Slice(from, to int) string
	Delete(from, to int) error
}

// Register receives yanked text, one entry per range.
type Register interface {
	Yank(texts []string)
}

// ModeSwitcher applies the mode a command asks for.
type ModeSwitcher interface {
	SetMode(Mode)
}

// MotionFunc computes the target of a motion for one range.
type MotionFunc func(v textview.View, r selection.Range, count int, m selection.Movement) selection.Range

// MotionTable resolves command motions. Motions absent from the table are
// reported as unavailable.
type MotionTable map[Motion]MotionFunc

// DefaultMotions binds the paragraph motions.
func DefaultMotions() MotionTable {
	return MotionTable{
		ParagraphForward: func(v textview.View, r selection.Range, count int, m selection.Movement) selection.Range {
			return motion.Compute(motion.Forward, v, r, count, m)
		},
		ParagraphBackward: func(v textview.View, r selection.Range, count int, m selection.Movement) selection.Range {
			return motion.Compute(motion.Backward, v, r, count, m)
		},
	}
}

// Dispatcher runs completed commands.
type Dispatcher struct {
	Selections SelectionStore
	Doc        Document
	Register   Register
	Modes      ModeSwitcher
	Notifier   Notifier
	Motions    MotionTable

	log *zap.Logger
}

func NewDispatcher(sel SelectionStore, doc Document, reg Register, modes ModeSwitcher, n Notifier, log *zap.Logger) *Dispatcher {
	if n == nil {
		n = nopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		Selections: sel,
		Doc:        doc,
		Register:   reg,
		Modes:      modes,
		Notifier:   n,
		Motions:    DefaultMotions(),
		log:        log,
	}
}

type span struct{ from, to int }

// Run applies cmd to every range of the active selection.
func (d *Dispatcher) Run(cmd *Command) error {
	if cmd == nil || !cmd.Operator.valid() {
		return nil
	}
	fn, ok := d.Motions[cmd.Motion]
	if !ok {
		d.Notifier.Notify("motion not available: " + cmd.Motion.String())
		d.log.Debug("motion not available", zap.Stringer("command", cmd))
		return nil
	}

	v := d.Doc.View()
	sel := d.Selections.Selection()
	spans := make([]span, 0, sel.Len())
	for _, r := range sel.Ranges() {
		t := fn(v, r, cmd.Count, selection.Move)
		spans = append(spans, span{
			from: clampPos(min(r.From(), t.From()), v.LenChars()),
			to:   clampPos(max(r.To(), t.To()), v.LenChars()),
		})
	}

	switch cmd.Operator {
	case Yank:
		texts := make([]string, len(spans))
		for i, s := range spans {
			texts[i] = d.Doc.Slice(s.from, s.to)
		}
		if d.Register != nil {
			d.Register.Yank(texts)
		}
		d.Selections.SetSelection(sel)
		d.Notifier.Notify(fmt.Sprintf("yanked %d selection(s)", len(texts)))
	case Delete, Change:
		if err := d.remove(spans); err != nil {
			d.log.Error("command failed", zap.Stringer("command", cmd), zap.Error(err))
			return err
		}
	}

	mode := cmd.Mode
	if mode == 0 && cmd.Operator == Change {
		mode = ModeInsert
	}
	if mode != 0 && d.Modes != nil {
		d.Modes.SetMode(mode)
	}
	d.log.Debug("command done",
		zap.Stringer("command", cmd),
		zap.Int("ranges", len(spans)),
		zap.String("mode", mode.String()),
	)
	return nil
}

// remove deletes the merged spans last to first and collapses every range
// to the start of its span, shifted by the text removed before it.
func (d *Dispatcher) remove(spans []span) error {
	merged := mergeSpans(spans)
	for i := len(merged) - 1; i >= 0; i-- {
		s := merged[i]
		if s.from == s.to {
			continue
		}
		if err := d.Doc.Delete(s.from, s.to); err != nil {
			return fmt.Errorf("delete %d..%d: %w", s.from, s.to, err)
		}
	}
	points := make([]selection.Range, len(spans))
	for i, s := range spans {
		points[i] = selection.Point(mapPos(s.from, merged))
	}
	d.Selections.SetSelection(selection.New(points...))
	return nil
}

func mergeSpans(spans []span) []span {
	sorted := append([]span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].from < sorted[j].from })
	var out []span
	for _, s := range sorted {
		if n := len(out); n > 0 && s.from <= out[n-1].to {
			out[n-1].to = max(out[n-1].to, s.to)
			continue
		}
		out = append(out, s)
	}
	return out
}

// mapPos maps a position through the deletion of spans.
func mapPos(pos int, deleted []span) int {
	shift := 0
	for _, s := range deleted {
		if s.from >= pos {
			break
		}
		shift += min(pos, s.to) - s.from
	}
	return pos - shift
}

func clampPos(pos, limit int) int {
	return max(0, min(pos, limit))
}
