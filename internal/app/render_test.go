package app

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qevil/internal/selection"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(string(runes))
	}
	return b.String()
}

func TestRenderStatusline(t *testing.T) {
	e := newTestEditor("a", "b", "", "c")
	s := newSimScreen(t, 40, 6)

	e.Render(s)
	status := rowText(s, 4)
	if !strings.HasPrefix(status, " NORMAL | [No Name] ") {
		t.Fatalf("statusline = %q", status)
	}
	if !strings.HasSuffix(status, " Ln 1, Col 1 ") {
		t.Fatalf("statusline position = %q", status)
	}

	press(t, e, "v")
	e.Render(s)
	if status := rowText(s, 4); !strings.HasPrefix(status, " SELECT |") {
		t.Fatalf("statusline in select mode = %q", status)
	}
}

func TestRenderPendingKeys(t *testing.T) {
	e := newTestEditor("a", "b", "", "c")
	s := newSimScreen(t, 20, 5)

	e.Render(s)
	if got := strings.TrimSpace(rowText(s, 4)); got != "" {
		t.Fatalf("pending row = %q, want blank", got)
	}

	press(t, e, "d", "2")
	e.Render(s)
	if got := strings.TrimSpace(rowText(s, 4)); got != "d2" {
		t.Fatalf("pending row = %q, want %q", got, "d2")
	}

	press(t, e, "esc", "3")
	e.Render(s)
	if got := strings.TrimSpace(rowText(s, 4)); got != "3" {
		t.Fatalf("pending row = %q, want plain count %q", got, "3")
	}
}

func TestRenderLineNumbers(t *testing.T) {
	e := newTestEditor("a", "b", "", "c")
	s := newSimScreen(t, 20, 6)

	e.Render(s)
	if got := rowText(s, 0); !strings.HasPrefix(got, "  1 a") {
		t.Fatalf("first row = %q", got)
	}

	e.cfg.Editor.LineNumbers = "relative"
	e.SetSelection(selection.Single(selection.Point(4)))
	e.Render(s)
	if got := rowText(s, 0); !strings.HasPrefix(got, "  2 a") {
		t.Fatalf("relative first row = %q", got)
	}
	if got := rowText(s, 2); !strings.HasPrefix(got, "  3 ") {
		t.Fatalf("active row = %q", got)
	}

	e.cfg.Editor.LineNumbers = "off"
	e.Render(s)
	if got := rowText(s, 0); !strings.HasPrefix(got, "a ") {
		t.Fatalf("row without gutter = %q", got)
	}
}

func TestRenderCursorWithTab(t *testing.T) {
	e := newTestEditor("a\tb")
	e.cfg.Editor.LineNumbers = "off"
	e.SetSelection(selection.Single(selection.Point(2)))
	s := newSimScreen(t, 20, 5)

	e.Render(s)
	x, y, visible := s.GetCursor()
	if !visible {
		t.Fatalf("cursor not visible")
	}
	if x != 4 || y != 0 {
		t.Fatalf("cursor = (%d, %d), want (4, 0)", x, y)
	}
}

func TestRenderSelectionHighlight(t *testing.T) {
	e := newTestEditor("ab", "cd")
	e.cfg.Editor.LineNumbers = "off"
	e.SetSelection(selection.Single(selection.NewRange(0, 2)))
	s := newSimScreen(t, 20, 5)

	e.Render(s)
	cells, w, _ := s.GetContents()
	for x := 0; x < 2; x++ {
		if cells[x].Style != e.styles.selection {
			t.Fatalf("cell %d not selected", x)
		}
	}
	if cells[2].Style == e.styles.selection {
		t.Fatalf("line ending drawn as selected")
	}
	if cells[w].Style == e.styles.selection {
		t.Fatalf("second line drawn as selected")
	}
}

func TestRenderScrollsToCursor(t *testing.T) {
	e := newTestEditor("a", "b", "c", "d", "e", "f")
	s := newSimScreen(t, 20, 5)

	e.SetSelection(selection.Single(selection.Point(10)))
	e.Render(s)
	if e.scroll != 3 {
		t.Fatalf("scroll = %d, want 3", e.scroll)
	}
	if got := rowText(s, 2); !strings.HasPrefix(got, "  6 f") {
		t.Fatalf("last visible row = %q", got)
	}
}

func TestComposeStatusLine(t *testing.T) {
	if got := string(composeStatusLine("left", "right", 12)); got != "left   right" {
		t.Fatalf("compose = %q", got)
	}
	if got := string(composeStatusLine("left", "right", 7)); got != "leright" {
		t.Fatalf("compose truncated = %q", got)
	}
	if got := string(composeStatusLine("left", "right", 3)); got != "ght" {
		t.Fatalf("compose narrow = %q", got)
	}
	if got := composeStatusLine("a", "b", 0); got != nil {
		t.Fatalf("compose zero width = %q", string(got))
	}
}

func TestParseColor(t *testing.T) {
	if got := parseColor("#FF0000", tcell.ColorDefault); got != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("hex color = %v", got)
	}
	if got := parseColor("default", tcell.ColorRed); got != tcell.ColorDefault {
		t.Fatalf("default color = %v", got)
	}
	if got := parseColor("#GG0000", tcell.ColorBlue); got != tcell.ColorBlue {
		t.Fatalf("bad hex fallback = %v", got)
	}
	if got := parseColor("", tcell.ColorGreen); got != tcell.ColorGreen {
		t.Fatalf("empty fallback = %v", got)
	}
}
