package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/kobzarvs/qevil/internal/config"
	"github.com/kobzarvs/qevil/internal/evil"
)

type styles struct {
	main             tcell.Style
	status           tcell.Style
	pending          tcell.Style
	lineNumber       tcell.Style
	lineNumberActive tcell.Style
	selection        tcell.Style
	cursor           tcell.Style
}

func newStyles(t config.Theme) styles {
	fg := parseColor(t.Foreground, tcell.ColorDefault)
	bg := parseColor(t.Background, tcell.ColorDefault)
	main := tcell.StyleDefault.Foreground(fg).Background(bg)
	status := tcell.StyleDefault.
		Foreground(parseColor(t.StatuslineForeground, fg)).
		Background(parseColor(t.StatuslineBackground, bg))
	return styles{
		main:             main,
		status:           status,
		pending:          status.Foreground(parseColor(t.PendingForeground, fg)).Bold(true),
		lineNumber:       main.Foreground(parseColor(t.LineNumberForeground, fg)),
		lineNumberActive: main.Foreground(parseColor(t.LineNumberActiveForeground, fg)),
		selection: main.
			Foreground(parseColor(t.SelectionForeground, fg)).
			Background(parseColor(t.SelectionBackground, tcell.ColorNavy)),
		cursor: main.Foreground(bg).Background(parseColor(t.CursorBackground, tcell.ColorYellow)),
	}
}

// Render draws the visible lines, the statusline and the pending keys.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	statusY := h - 2
	cmdY := h - 1
	viewHeight := h - 2
	if h < 2 {
		statusY = h - 1
		cmdY = h - 1
	}
	if viewHeight < 0 {
		viewHeight = 0
	}
	e.ensureCursorVisible(viewHeight)

	s.SetStyle(e.styles.main)
	s.Clear()

	gutter := e.gutterWidth()
	for y := 0; y < viewHeight; y++ {
		line := e.scroll + y
		if line >= e.buf.LenLines() {
			clearLine(s, y, w, e.styles.main)
			continue
		}
		e.drawGutter(s, y, w, gutter, line)
		e.drawLine(s, y, w, gutter, line)
	}

	if statusY >= 0 {
		e.renderStatusline(s, w, statusY)
	}
	if cmdY >= 0 && cmdY != statusY {
		e.renderPending(s, w, cmdY)
	}

	if e.mode == evil.ModeInsert {
		s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	} else {
		s.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
	cx, cy, ok := e.cursorCell(gutter, viewHeight)
	if ok && cx < w {
		s.ShowCursor(cx, cy)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (e *Editor) gutterWidth() int {
	if e.cfg.Editor.LineNumbers == "off" {
		return 0
	}
	digits := len(strconv.Itoa(e.buf.LenLines()))
	if digits < 2 {
		digits = 2
	}
	return 1 + digits + 1
}

func (e *Editor) drawGutter(s tcell.Screen, y, w, gutter, line int) {
	if gutter == 0 {
		return
	}
	active := e.primaryLine()
	num := line + 1
	if e.cfg.Editor.LineNumbers == "relative" && line != active {
		num = line - active
		if num < 0 {
			num = -num
		}
	}
	style := e.styles.lineNumber
	if line == active {
		style = e.styles.lineNumberActive
	}
	text := fmt.Sprintf(" %*d ", gutter-2, num)
	for x, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
	}
}

// drawLine draws one buffer line grapheme by grapheme. Selected chars get
// the selection style and the block cursors of secondary ranges the cursor
// style. A cursor on the line ending is drawn as a space after the text.
func (e *Editor) drawLine(s tcell.Screen, y, w, gutter, line int) {
	tabWidth := max(1, e.cfg.Editor.TabWidth)
	pos := e.buf.LineStart(line)
	x := gutter
	col := 0

	text := e.buf.Line(line)
	state := -1
	for len(text) > 0 && x < w {
		var cluster string
		var boundaries int
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		runes := []rune(cluster)
		style := e.cellStyle(pos)

		if runes[0] == '\t' {
			width := tabWidth - (col % tabWidth)
			for i := 0; i < width && x < w; i++ {
				s.SetContent(x, y, ' ', nil, style)
				x++
			}
			col += width
		} else {
			width := max(1, boundaries>>uniseg.ShiftWidth)
			s.SetContent(x, y, runes[0], runes[1:], style)
			x += width
			col += width
		}
		pos += len(runes)
	}
	if x < w {
		s.SetContent(x, y, ' ', nil, e.cellStyle(pos))
		x++
	}
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, e.styles.main)
	}
}

func (e *Editor) cellStyle(pos int) tcell.Style {
	ranges := e.sel.Ranges()
	for _, r := range ranges[min(1, len(ranges)):] {
		if r.Cursor(e.buf) == pos {
			return e.styles.cursor
		}
	}
	for _, r := range ranges {
		if pos >= r.From() && pos < r.To() {
			return e.styles.selection
		}
	}
	return e.styles.main
}

// cursorCell is the screen cell of the primary block cursor.
func (e *Editor) cursorCell(gutter, viewHeight int) (int, int, bool) {
	if e.sel.Len() == 0 {
		return 0, 0, false
	}
	r := e.sel.Primary()
	pos := r.Cursor(e.buf)
	if e.mode == evil.ModeInsert {
		pos = r.From()
	}
	line := e.buf.LineOf(pos)
	y := line - e.scroll
	if y < 0 || y >= viewHeight {
		return 0, 0, false
	}
	return gutter + e.visualCol(line, pos-e.buf.LineStart(line)), y, true
}

func (e *Editor) visualCol(line, chars int) int {
	tabWidth := max(1, e.cfg.Editor.TabWidth)
	text := e.buf.Line(line)
	col := 0
	state := -1
	for len(text) > 0 && chars > 0 {
		var cluster string
		var boundaries int
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		if cluster == "\t" {
			col += tabWidth - (col % tabWidth)
		} else {
			col += max(1, boundaries>>uniseg.ShiftWidth)
		}
		chars -= len([]rune(cluster))
	}
	return col
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	dirty := ""
	if e.dirty {
		dirty = "*"
	}
	status := fmt.Sprintf(" %s | %s%s ", e.modeName(), e.displayName(), dirty)
	if e.statusMessage != "" {
		status = fmt.Sprintf(" %s | %s%s | %s ", e.modeName(), e.displayName(), dirty, e.statusMessage)
	}

	row, col := 1, 1
	if e.sel.Len() > 0 {
		pos := e.sel.Primary().Cursor(e.buf)
		line := e.buf.LineOf(pos)
		row = line + 1
		col = e.visualCol(line, pos-e.buf.LineStart(line)) + 1
	}
	right := fmt.Sprintf(" Ln %d, Col %d", row, col)
	if n := e.sel.Len(); n > 1 {
		right += fmt.Sprintf(" | %d sel", n)
	}
	if reg := e.registerSummary(); reg != "" {
		right += " | " + reg
	}
	right += " "

	line := composeStatusLine(status, right, w)
	for x, r := range line {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, e.styles.status)
	}
}

// renderPending shows the keys of the command being composed, or the plain
// motion count, right aligned on the bottom row.
func (e *Editor) renderPending(s tcell.Screen, w, y int) {
	clearLine(s, y, w, e.styles.main)
	pending := e.Pending()
	if pending == "" && e.mapper.PendingCount() > 0 {
		pending = strconv.Itoa(e.mapper.PendingCount())
	}
	if pending == "" {
		return
	}
	line := composeStatusLine("", pending+" ", w)
	for x, r := range line {
		if r == ' ' {
			continue
		}
		s.SetContent(x, y, r, nil, e.styles.pending)
	}
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for len(line) < width-len(rightRunes) {
		line = append(line, ' ')
	}
	return append(line, rightRunes...)
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
