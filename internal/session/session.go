package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kobzarvs/qevil/internal/logger"
	"github.com/kobzarvs/qevil/internal/selection"
)

// RangeState is one persisted selection range.
type RangeState struct {
	Anchor int `json:"anchor"`
	Head   int `json:"head"`
}

// FileState stores the editing state of a single file
type FileState struct {
	Ranges     []RangeState `json:"ranges"`
	Mode       string       `json:"mode"` // "normal", "insert"
	SelectMode bool         `json:"select_mode,omitempty"`
	ScrollY    int          `json:"scroll_y"`
}

// NewFileState captures sel and mode.
func NewFileState(sel selection.Selection, mode string) FileState {
	ranges := make([]RangeState, 0, sel.Len())
	for _, r := range sel.Ranges() {
		ranges = append(ranges, RangeState{Anchor: r.Anchor, Head: r.Head})
	}
	return FileState{Ranges: ranges, Mode: mode}
}

// Selection restores the ranges, clamped to a buffer of limit chars. A
// state without ranges gives a point at 0.
func (s FileState) Selection(limit int) selection.Selection {
	if len(s.Ranges) == 0 {
		return selection.Single(selection.Point(0))
	}
	ranges := make([]selection.Range, len(s.Ranges))
	for i, r := range s.Ranges {
		ranges[i] = selection.NewRange(r.Anchor, r.Head)
	}
	return selection.New(ranges...).Clamp(limit)
}

// Session stores the complete editor session state
type Session struct {
	ID         string               `json:"id"`
	Files      map[string]FileState `json:"files"`
	Register   []string             `json:"register,omitempty"`
	ActiveFile string               `json:"active_file,omitempty"`
	LastSaved  time.Time            `json:"last_saved"`
}

// Manager handles session persistence
type Manager struct {
	mu       sync.RWMutex
	session  Session
	path     string
	dirty    bool
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewManager opens the session under $XDG_STATE_HOME/qevil and autosaves it
// every interval. A zero interval disables autosave.
func NewManager(interval time.Duration) (*Manager, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	return Open(path, interval), nil
}

// Open loads the session stored at path, starting fresh if it is missing or
// unreadable. Every Open gets a new session id.
func Open(path string, interval time.Duration) *Manager {
	m := &Manager{
		session: Session{
			Files: make(map[string]FileState),
		},
		path:     path,
		stopChan: make(chan struct{}),
	}
	m.load()
	m.session.ID = uuid.NewString()

	if interval > 0 {
		go m.autosaveLoop(interval)
	}
	return m
}

func sessionPath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "qevil")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("session dir: %w", err)
	}
	return filepath.Join(dir, "session.json"), nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		logger.Warn("ignoring unreadable session", "path", m.path, "error", err)
		return
	}
	if session.Files == nil {
		session.Files = make(map[string]FileState)
	}
	m.session = session
	logger.Debug("session loaded", "path", m.path, "previous_id", session.ID, "files", len(session.Files))
}

// ID identifies this editing session.
func (m *Manager) ID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.ID
}

// Save persists the session if anything changed since the last save.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}

	m.session.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	m.dirty = false
	return nil
}

// ForceSave saves even if not dirty
func (m *Manager) ForceSave() error {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
	return m.Save()
}

func (m *Manager) GetFileState(absPath string) (FileState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.session.Files[absPath]
	return state, ok
}

// SetFileState updates the state for a file and makes it the active one.
func (m *Manager) SetFileState(absPath string, state FileState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Files[absPath] = state
	m.session.ActiveFile = absPath
	m.dirty = true
}

func (m *Manager) GetActiveFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.ActiveFile
}

// Register returns the persisted yank register.
func (m *Manager) Register() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.session.Register...)
}

func (m *Manager) SetRegister(texts []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Register = append([]string(nil), texts...)
	m.dirty = true
}

func (m *Manager) autosaveLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.Save(); err != nil {
				logger.Warn("session autosave failed", "error", err)
			}
		case <-m.stopChan:
			return
		}
	}
}

// Stop stops the autosave loop and saves final state
func (m *Manager) Stop() error {
	m.stopOnce.Do(func() { close(m.stopChan) })
	if err := m.ForceSave(); err != nil {
		logger.Error("session save failed", "path", m.path, "error", err)
		return err
	}
	logger.Info("session saved", "path", m.path, "id", m.ID())
	return nil
}
