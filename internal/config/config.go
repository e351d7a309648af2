package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Keymap values are action names. Evil bindings use a kind prefix:
// "op:delete", "motion:paragraph_forward", "mod:inner", "mode:insert",
// "collapse:forward" and the bare "cancel".
type Keymap struct {
	Normal map[string]string `toml:"normal"`
	Evil   map[string]string `toml:"evil"`
	Insert map[string]string `toml:"insert"`
}

type EditorOptions struct {
	TabWidth        int    `toml:"tab-width"`
	LineNumbers     string `toml:"line-numbers"`
	AutosaveSeconds int    `toml:"session-autosave"`
	WatchConfig     bool   `toml:"watch-config"`
}

type Theme struct {
	Theme                      string `toml:"theme"`
	Foreground                 string `toml:"foreground"`
	Background                 string `toml:"background"`
	StatuslineForeground       string `toml:"statusline-foreground"`
	StatuslineBackground       string `toml:"statusline-background"`
	PendingForeground          string `toml:"pending-foreground"`
	LineNumberForeground       string `toml:"line-number-foreground"`
	LineNumberActiveForeground string `toml:"line-number-active-foreground"`
	SelectionForeground        string `toml:"selection-foreground"`
	SelectionBackground        string `toml:"selection-background"`
	CursorBackground           string `toml:"cursor-background"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:        4,
			LineNumbers:     "absolute",
			AutosaveSeconds: 15,
			WatchConfig:     true,
		},
		Theme: Theme{
			Theme:                      "",
			Foreground:                 "#B3B1AD",
			Background:                 "#0A0E14",
			StatuslineForeground:       "#B3B1AD",
			StatuslineBackground:       "#0F1419",
			PendingForeground:          "#E6B450",
			LineNumberForeground:       "#3E4B59",
			LineNumberActiveForeground: "#B3B1AD",
			SelectionForeground:        "#B3B1AD",
			SelectionBackground:        "#27425A",
			CursorBackground:           "#E6B450",
		},
		Keymap: Keymap{
			Normal: map[string]string{
				"}":      "paragraph_forward",
				"{":      "paragraph_backward",
				"v":      "toggle_select",
				";":      "collapse_selection",
				"alt+;":  "flip_selection",
				"i":      "enter_insert",
				"ctrl+s": "save",
				"ctrl+c": "quit",
				"ctrl+q": "quit",
			},
			Evil: map[string]string{
				"d":   "op:delete",
				"c":   "op:change",
				"y":   "op:yank",
				"}":   "motion:paragraph_forward",
				"{":   "motion:paragraph_backward",
				"w":   "motion:next_word_start",
				"e":   "motion:next_word_end",
				"b":   "motion:prev_word_start",
				"p":   "motion:paragraph",
				"W":   "motion:word",
				"i":   "mod:inner",
				"a":   "mod:around",
				"I":   "mode:insert",
				"esc": "cancel",
				",":   "collapse:forward",
				"<":   "collapse:backward",
				"[":   "collapse:anchor",
				"]":   "collapse:head",
			},
			Insert: map[string]string{
				"esc":       "enter_normal",
				"backspace": "backspace",
				"enter":     "newline",
				"tab":       "indent",
				"ctrl+s":    "save",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.LineNumbers != "" {
		cfg.Editor.LineNumbers = userCfg.Editor.LineNumbers
	}
	if userCfg.Editor.AutosaveSeconds > 0 {
		cfg.Editor.AutosaveSeconds = userCfg.Editor.AutosaveSeconds
	}
	// watch-config defaults to on, so only an explicit key can turn it off.
	if md.IsDefined("editor", "watch-config") {
		cfg.Editor.WatchConfig = userCfg.Editor.WatchConfig
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	mergeKeys(cfg.Keymap.Normal, userCfg.Keymap.Normal)
	mergeKeys(cfg.Keymap.Evil, userCfg.Keymap.Evil)
	mergeKeys(cfg.Keymap.Insert, userCfg.Keymap.Insert)

	return cfg, nil
}

// mergeKeys copies src over dst. An empty action unbinds the key.
func mergeKeys(dst, src map[string]string) {
	for k, v := range src {
		if v == "" {
			delete(dst, k)
			continue
		}
		dst[k] = v
	}
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.PendingForeground != "" {
		dst.PendingForeground = src.PendingForeground
	}
	if src.LineNumberForeground != "" {
		dst.LineNumberForeground = src.LineNumberForeground
	}
	if src.LineNumberActiveForeground != "" {
		dst.LineNumberActiveForeground = src.LineNumberActiveForeground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.CursorBackground != "" {
		dst.CursorBackground = src.CursorBackground
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme %q: %w", name, err)
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, fmt.Errorf("theme %q: %w", name, err)
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QEVIL_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qevil"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qevil"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
