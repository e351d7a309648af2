package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/kobzarvs/qevil/internal/config"
	"github.com/kobzarvs/qevil/internal/evil"
	"github.com/kobzarvs/qevil/internal/keys"
	"github.com/kobzarvs/qevil/internal/motion"
	"github.com/kobzarvs/qevil/internal/selection"
	"github.com/kobzarvs/qevil/internal/session"
	"github.com/kobzarvs/qevil/internal/textview"
)

// Editor is one editing session: a buffer, its selection and the pending
// command machine. It is the store, document, register, mode switcher and
// notifier the dispatcher works against.
type Editor struct {
	cfg        config.Config
	buf        *textview.Buffer
	sel        selection.Selection
	mode       evil.Mode
	selectMode bool
	register   []string

	machine    *evil.Machine
	dispatcher *evil.Dispatcher
	mapper     *keys.Mapper
	log        *zap.Logger

	filename      string
	dirty         bool
	statusMessage string
	scroll        int
	styles        styles
}

func NewEditor(cfg config.Config, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Editor{
		cfg:    cfg,
		buf:    textview.NewBuffer(""),
		sel:    selection.Single(selection.Point(0)),
		mode:   evil.ModeNormal,
		mapper: keys.NewMapper(cfg.Keymap),
		log:    log,
		styles: newStyles(cfg.Theme),
	}
	e.machine = evil.NewMachine(e, log.Named("evil"))
	e.dispatcher = evil.NewDispatcher(e, e, e, e, e, log.Named("dispatch"))
	return e
}

// OpenFile loads path into the buffer. A missing file opens empty and is
// created on save.
func (e *Editor) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("open %s: %w", path, err)
	}
	e.buf = textview.NewBuffer(string(data))
	e.sel = selection.Single(selection.Point(0))
	e.filename = path
	e.dirty = false
	e.log.Info("file opened", zap.String("path", path), zap.Int("chars", e.buf.LenChars()))
	return nil
}

func (e *Editor) Save() error {
	if e.filename == "" {
		return fmt.Errorf("no file name")
	}
	if err := os.WriteFile(e.filename, []byte(e.buf.String()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", e.filename, err)
	}
	e.dirty = false
	e.Notify(fmt.Sprintf("written %s", filepath.Base(e.filename)))
	return nil
}

// SetConfig applies a reloaded configuration.
func (e *Editor) SetConfig(cfg config.Config) {
	e.cfg = cfg
	e.mapper.SetKeymap(cfg.Keymap)
	e.styles = newStyles(cfg.Theme)
}

func (e *Editor) Selection() selection.Selection { return e.sel }

// SetSelection clamps sel to the buffer and drops repeated ranges, keeping
// the first of each.
func (e *Editor) SetSelection(sel selection.Selection) {
	ranges := sel.Clamp(e.buf.LenChars()).Ranges()
	unique := ranges[:0]
	seen := make(map[selection.Range]bool, len(ranges))
	for _, r := range ranges {
		if !seen[r] {
			seen[r] = true
			unique = append(unique, r)
		}
	}
	e.sel = selection.New(unique...)
}

func (e *Editor) View() textview.View       { return e.buf }
func (e *Editor) Slice(from, to int) string { return e.buf.Slice(from, to) }

func (e *Editor) Delete(from, to int) error {
	if err := e.buf.Delete(from, to); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

func (e *Editor) Yank(texts []string) {
	e.register = append([]string(nil), texts...)
}

func (e *Editor) SetMode(m evil.Mode) {
	if m == evil.ModeInsert || m == evil.ModeNormal {
		e.mode = m
		e.selectMode = false
	}
}

func (e *Editor) Notify(msg string) {
	e.statusMessage = msg
	e.log.Debug("notify", zap.String("msg", msg))
}

func (e *Editor) Mode() evil.Mode       { return e.mode }
func (e *Editor) Content() string       { return e.buf.String() }
func (e *Editor) Register() []string    { return append([]string(nil), e.register...) }
func (e *Editor) Pending() string       { return e.machine.State().Pending() }
func (e *Editor) StatusMessage() string { return e.statusMessage }

// HandleKey processes one key event and reports whether the editor should
// quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	return e.HandleKeyName(keys.String(ev))
}

// HandleKeyName processes a key already rendered as a keymap name.
func (e *Editor) HandleKeyName(key string) bool {
	b := e.mapper.Resolve(key, e.mode, e.machine.State())
	e.log.Debug("key", zap.String("key", key), zap.Stringer("binding", b))

	switch b.Kind {
	case keys.Event:
		if cmd := e.machine.Feed(b.Event); cmd != nil {
			if err := e.dispatcher.Run(cmd); err != nil {
				e.Notify(err.Error())
			}
		}
	case keys.Collapse:
		e.SetSelection(selection.CollapseWithin(b.Collapse, e.sel, e.buf.LenChars()))
		e.selectMode = false
	case keys.Motion:
		m := selection.Move
		if e.selectMode {
			m = selection.Extend
		}
		e.SetSelection(motion.Apply(b.Direction, e.buf, e.sel, b.Count, m))
	case keys.Text:
		e.insertText(b.Text)
	case keys.Action:
		return e.runAction(b.Action)
	}
	return false
}

func (e *Editor) runAction(action string) bool {
	switch action {
	case "quit":
		return true
	case "save":
		if err := e.Save(); err != nil {
			e.Notify(err.Error())
			e.log.Error("save failed", zap.Error(err))
		}
	case "toggle_select":
		e.selectMode = !e.selectMode
	case "collapse_selection":
		e.SetSelection(e.sel.Map(collapseToCursor))
		e.selectMode = false
	case "flip_selection":
		e.sel = e.sel.Map(func(r selection.Range) selection.Range {
			return selection.NewRange(r.Head, r.Anchor)
		})
	case "enter_insert":
		e.SetMode(evil.ModeInsert)
	case "enter_normal":
		e.SetMode(evil.ModeNormal)
		e.machine.Reset()
	case "newline":
		e.insertText("\n")
	case "indent":
		e.insertText("\t")
	case "backspace":
		e.backspace()
	default:
		e.Notify("unknown action: " + action)
	}
	return false
}

// collapseToCursor keeps only the grapheme under the block cursor.
func collapseToCursor(r selection.Range) selection.Range {
	if r.IsEmpty() {
		return r
	}
	if r.IsForward() {
		return selection.CollapseRange(selection.CollapseForward, r)
	}
	return selection.CollapseRange(selection.CollapseBackward, r)
}

// edit is one change made at pos: delta chars were inserted (positive) or
// removed (negative).
type edit struct {
	pos   int
	delta int
}

// applyEdits runs change once per distinct range start, highest first so
// lower positions stay valid, then shifts every start by the edits below it.
// Ranges sharing a start become one point.
func (e *Editor) applyEdits(change func(pos int) (int, int, error)) {
	var starts []int
	seen := make(map[int]bool)
	for _, r := range e.sel.Ranges() {
		if !seen[r.From()] {
			seen[r.From()] = true
			starts = append(starts, r.From())
		}
	}
	order := append([]int(nil), starts...)
	sort.Sort(sort.Reverse(sort.IntSlice(order)))

	after := make(map[int]int, len(order))
	var edits []edit
	for _, pos := range order {
		newPos, delta, err := change(pos)
		if err != nil {
			e.Notify(err.Error())
			e.log.Error("edit failed", zap.Int("pos", pos), zap.Error(err))
			newPos, delta = pos, 0
		}
		after[pos] = newPos
		if delta != 0 {
			edits = append(edits, edit{pos: pos, delta: delta})
			e.dirty = true
		}
	}

	points := make([]selection.Range, len(starts))
	for i, start := range starts {
		p := after[start]
		for _, ed := range edits {
			if ed.pos < start {
				p += ed.delta
			}
		}
		points[i] = selection.Point(p)
	}
	e.SetSelection(selection.New(points...))
}

func (e *Editor) insertText(text string) {
	n := len([]rune(text))
	e.applyEdits(func(pos int) (int, int, error) {
		if err := e.buf.Insert(pos, text); err != nil {
			return pos, 0, err
		}
		return pos + n, n, nil
	})
}

func (e *Editor) backspace() {
	e.applyEdits(func(pos int) (int, int, error) {
		if pos == 0 {
			return 0, 0, nil
		}
		prev := e.buf.PrevGraphemeBoundary(pos)
		if err := e.buf.Delete(prev, pos); err != nil {
			return pos, 0, err
		}
		return prev, prev - pos, nil
	})
}

func (e *Editor) modeName() string {
	switch {
	case e.mode == evil.ModeInsert:
		return "INSERT"
	case e.selectMode:
		return "SELECT"
	default:
		return "NORMAL"
	}
}

func (e *Editor) displayName() string {
	if e.filename == "" {
		return "[No Name]"
	}
	return filepath.Base(e.filename)
}

// primaryLine is the line of the primary block cursor.
func (e *Editor) primaryLine() int {
	if e.sel.Len() == 0 {
		return 0
	}
	return e.sel.Primary().CursorLine(e.buf)
}

func (e *Editor) ensureCursorVisible(height int) {
	if height <= 0 {
		return
	}
	line := e.primaryLine()
	if line < e.scroll {
		e.scroll = line
	}
	if line >= e.scroll+height {
		e.scroll = line - height + 1
	}
	e.scroll = max(0, min(e.scroll, e.buf.LenLines()-1))
}

func (e *Editor) registerSummary() string {
	if len(e.register) == 0 {
		return ""
	}
	n := 0
	for _, t := range e.register {
		n += strings.Count(t, "\n")
	}
	return fmt.Sprintf("reg %d/%dL", len(e.register), n)
}

// FileState captures what is persisted for the open file.
func (e *Editor) FileState() session.FileState {
	state := session.NewFileState(e.sel, e.mode.String())
	state.SelectMode = e.selectMode
	state.ScrollY = e.scroll
	return state
}

// RestoreFileState reapplies a persisted state to the open buffer.
func (e *Editor) RestoreFileState(state session.FileState) {
	e.SetSelection(state.Selection(e.buf.LenChars()))
	if m, ok := evil.ParseMode(state.Mode); ok {
		e.mode = m
	}
	e.selectMode = state.SelectMode && e.mode == evil.ModeNormal
	e.scroll = max(0, min(state.ScrollY, e.buf.LenLines()-1))
}
