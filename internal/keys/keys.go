// Package keys turns terminal key events into keymap names and resolves
// those names into editor bindings.
package keys

import (
	"github.com/gdamore/tcell/v2"
)

// String renders ev the way keymaps spell keys: "d", "}", "ctrl+c", "esc",
// "shift+tab", "alt+up", "space". Unknown keys render as "".
func String(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	if mods&tcell.ModAlt != 0 {
		if name := arrowName(ev.Key()); name != "" {
			if mods&tcell.ModShift != 0 {
				return "alt+shift+" + name
			}
			return "alt+" + name
		}
		if ev.Key() == tcell.KeyRune {
			return "alt+" + runeName(ev.Rune())
		}
	}
	if mods&tcell.ModCtrl != 0 {
		switch ev.Key() {
		case tcell.KeyHome:
			return "ctrl+home"
		case tcell.KeyEnd:
			return "ctrl+end"
		}
	}
	if ev.Key() == tcell.KeyRune {
		return runeName(ev.Rune())
	}
	// These share codes with ctrl+i, ctrl+m, ctrl+h and ctrl+[.
	switch ev.Key() {
	case tcell.KeyTab:
		if mods&tcell.ModShift != 0 {
			return "shift+tab"
		}
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		if mods&tcell.ModShift != 0 {
			return "shift+enter"
		}
		return "enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEscape:
		return "esc"
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	if name := arrowName(ev.Key()); name != "" {
		return name
	}
	switch ev.Key() {
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyDelete:
		return "del"
	}
	return ""
}

func runeName(r rune) string {
	if r == ' ' {
		return "space"
	}
	return string(r)
}

func arrowName(key tcell.Key) string {
	switch key {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	}
	return ""
}

func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+key-tcell.KeyCtrlA))
	}
	return ""
}
