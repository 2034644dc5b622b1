// Package ui renders the worthbar status display with Bubble Tea.
//
// The UI never talks to the provider directly. It reads display state
// published by the engine on a one-second tick and forwards user intent
// (mode changes, manual refresh, diagnostics) back to the engine, so a
// slow fetch can never freeze the interface.
package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nealmueller/simplifi-worthbar/internal/engine"
	"github.com/nealmueller/simplifi-worthbar/internal/format"
	"github.com/nealmueller/simplifi-worthbar/internal/prefs"
	"github.com/nealmueller/simplifi-worthbar/internal/state"
)

const uiTick = time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Engine    *engine.Engine
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	engine    *engine.Engine
	prefsPath string

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	display state.Display

	// Diagnostics overlay
	showDiag bool
	diagText string
	diagErr  error
	diagBusy bool
	copyNote string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:       ctx,
		engine:    opts.Engine,
		prefsPath: prefsPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
		readDisplayCmd(m.engine),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(tickCmd(), readDisplayCmd(m.engine))

	case displayMsg:
		m.display = state.Display(msg)
		return m, nil

	case diagMsg:
		m.diagBusy = false
		m.diagText = msg.text
		m.diagErr = msg.err
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.copyNote = "copy failed: " + msg.err.Error()
		} else {
			m.copyNote = "copied to clipboard"
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDiag {
		switch msg.String() {
		case "c":
			return m, copyCmd(m.diagText)
		case "ctrl+c":
			return m, tea.Quit
		default:
			// Any other key closes the overlay.
			m.showDiag = false
			m.copyNote = ""
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "1":
		m.engine.SetMode(format.ModeCompact)
		return m, readDisplayCmd(m.engine)

	case "2":
		m.engine.SetMode(format.ModeFull)
		return m, readDisplayCmd(m.engine)

	case "3":
		m.engine.SetMode(format.ModeDeltaToday)
		return m, readDisplayCmd(m.engine)

	case "r":
		m.engine.RefreshNow()
		return m, nil

	case "d":
		m.showDiag = true
		m.diagBusy = true
		m.diagText = ""
		m.diagErr = nil
		m.copyNote = ""
		return m, diagCmd(m.ctx, m.engine)

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{
				Mode:  m.engine.Mode().String(),
				Theme: m.theme.Name,
			})
		}
		return m, nil
	}

	return m, nil
}

// Messages

type tickMsg time.Time

type displayMsg state.Display

type diagMsg struct {
	text string
	err  error
}

type copiedMsg struct {
	err error
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func readDisplayCmd(e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		return displayMsg(e.Display())
	}
}

func diagCmd(ctx context.Context, e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		text, err := e.DiagnosticsText(ctx)
		return diagMsg{text: text, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
