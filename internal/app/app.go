package app

import (
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/kobzarvs/qevil/internal/config"
	"github.com/kobzarvs/qevil/internal/keys"
	"github.com/kobzarvs/qevil/internal/logger"
	"github.com/kobzarvs/qevil/internal/session"
)

const configDebounce = 200 * time.Millisecond

// Options configure a run.
type Options struct {
	// Path is the file to open. Empty starts with an unnamed buffer.
	Path string
}

// App is the top-level runtime for qevil.
type App struct {
	opts Options
	log  *zap.Logger
}

func New(opts Options) *App {
	return &App{opts: opts, log: logger.Named("app")}
}

// configChanged is posted to the screen when the config directory changed.
type configChanged struct{}

func (a *App) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := keys.Validate(cfg.Keymap); err != nil {
		return err
	}

	ed := NewEditor(cfg, a.log)
	absPath := ""
	if a.opts.Path != "" {
		if err := ed.OpenFile(a.opts.Path); err != nil {
			return err
		}
		absPath, err = filepath.Abs(a.opts.Path)
		if err != nil {
			absPath = a.opts.Path
		}
	}

	sessions, err := session.NewManager(time.Duration(cfg.Editor.AutosaveSeconds) * time.Second)
	if err != nil {
		a.log.Warn("session disabled", zap.Error(err))
	} else {
		defer func() {
			if absPath != "" {
				sessions.SetFileState(absPath, ed.FileState())
			}
			sessions.SetRegister(ed.Register())
			if err := sessions.Stop(); err != nil {
				a.log.Warn("session save failed", zap.Error(err))
			}
		}()
		a.log.Info("session started", zap.String("id", sessions.ID()))
		ed.Yank(sessions.Register())
		if state, ok := sessions.GetFileState(absPath); ok && absPath != "" {
			ed.RestoreFileState(state)
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	if cfg.Editor.WatchConfig {
		stop := a.watchConfig(s)
		defer stop()
	}

	ed.Render(s)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(configChanged); ok {
				a.reloadConfig(ed)
			}
		}
		if sessions != nil && absPath != "" {
			sessions.SetFileState(absPath, ed.FileState())
		}
		ed.Render(s)
	}
}

// watchConfig posts configChanged to s whenever the config directory
// changes. The returned func stops watching.
func (a *App) watchConfig(s tcell.Screen) func() {
	dir, err := config.ConfigDir()
	if err != nil {
		a.log.Warn("config watch disabled", zap.Error(err))
		return func() {}
	}
	w, err := config.Watch(dir, configDebounce, func(err error) {
		a.log.Warn("config watch error", zap.Error(err))
	})
	if err != nil {
		a.log.Warn("config watch disabled", zap.String("dir", dir), zap.Error(err))
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case _, ok := <-w.Changes():
				if !ok {
					return
				}
				_ = s.PostEvent(tcell.NewEventInterrupt(configChanged{}))
			}
		}
	}()
	return func() {
		close(done)
		_ = w.Stop()
	}
}

// reloadConfig applies the config on disk. An invalid config keeps the
// current one and reports why.
func (a *App) reloadConfig(ed *Editor) {
	cfg, err := config.Load()
	if err == nil {
		err = keys.Validate(cfg.Keymap)
	}
	if err != nil {
		a.log.Warn("config reload failed", zap.Error(err))
		ed.Notify("config: " + err.Error())
		return
	}
	ed.SetConfig(cfg)
	ed.Notify("config reloaded")
	a.log.Info("config reloaded")
}
