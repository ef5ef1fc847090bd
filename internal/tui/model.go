// Package tui is the pass-and-play terminal front end.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/fishbowl/internal/game"
)

// Dispatcher is the part of the session the model drives.
type Dispatcher interface {
	Dispatch(a game.Action) (game.State, error)
	State() game.State
}

// StateMsg tells the program the session state changed outside of a key
// press, typically a timer tick.
type StateMsg struct {
	Prev, Next game.State
}

// Model represents the Bubble Tea model for a fishbowl game
type Model struct {
	session Dispatcher
	logger  *log.Logger
	state   game.State

	// UI components
	input       textinput.Model
	logViewport viewport.Model

	draft  entryDraft
	notice string

	// Dimensions
	width    int
	height   int
	quitting bool
}

// New creates a model over session.
func New(session Dispatcher, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.CharLimit = 80
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		session:     session,
		logger:      logger.WithPrefix("tui"),
		input:       ti,
		logViewport: vp,
	}
	m.setState(session.State())
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the state the model last rendered.
func (m *Model) State() game.State {
	return m.state
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		// Sends race each other, so render whatever is live now.
		m.setState(m.session.State())
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLog()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+r":
			m.dispatch(game.RestartRound{})
			return m, nil
		case "ctrl+n":
			m.dispatch(game.RestartGame{})
			return m, nil
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.input.Focused() {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.state.Screen {
	case game.ScreenHostSetup, game.ScreenWordEntry:
		if key == "enter" {
			line := m.input.Value()
			m.input.SetValue("")
			if m.state.Screen == game.ScreenHostSetup {
				return m, m.runCommand(line)
			}
			m.submitEntry(line)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case game.ScreenEntryHandoff:
		m.onEnter(key, game.EntryContinue{})
	case game.ScreenReady:
		m.onEnter(key, game.StartRound1{})
	case game.ScreenTurnHandoff:
		m.onEnter(key, game.TurnHandoffContinue{})
	case game.ScreenTurnStart:
		m.onEnter(key, game.StartTurn{})
	case game.ScreenTimeUp:
		m.onEnter(key, game.TimeUpAck{})
	case game.ScreenRoundComplete:
		m.onEnter(key, game.RoundProceed{})

	case game.ScreenTurnActive:
		switch key {
		case "g", " ":
			m.dispatch(game.Guessed{})
		case "p":
			m.dispatch(game.Passed{})
		case "u":
			m.dispatch(game.Undo{})
		}

	case game.ScreenFinal:
		switch key {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "n":
			m.dispatch(game.RestartGame{})
		default:
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) onEnter(key string, a game.Action) {
	if key == "enter" {
		m.dispatch(a)
	}
}

// dispatch sends a to the session and installs the result. Stale actions
// change nothing.
func (m *Model) dispatch(a game.Action) error {
	next, err := m.session.Dispatch(a)
	if errors.Is(err, game.ErrPrecondition) || errors.Is(err, game.ErrNoChange) {
		m.logger.Debug("Action ignored", "action", a.Type(), "error", err)
		return err
	}
	m.notice = ""
	m.setState(next)
	return err
}

func (m *Model) setState(s game.State) {
	prev := m.state.Screen
	m.state = s

	if s.Screen != prev {
		m.notice = ""
		if s.Screen == game.ScreenWordEntry || s.Screen == game.ScreenHostSetup {
			m.draft = entryDraft{}
		}
	}

	switch s.Screen {
	case game.ScreenHostSetup:
		m.input.Placeholder = "team a <name> | players <n> | timer [round] <secs> | start"
		m.input.Focus()
	case game.ScreenWordEntry:
		m.input.Placeholder = m.draft.placeholder()
		m.input.Focus()
	default:
		m.input.Blur()
	}

	if s.Screen == game.ScreenFinal {
		formatter := game.NewEventFormatter(s.Teams, game.FormattingOptions{ShowRound: true})
		m.logViewport.SetContent(joinLines(formatter.FormatAll(s.Events)))
		m.logViewport.GotoTop()
	}
}

func (m *Model) resizeLog() {
	width := m.width - 4
	height := m.height - 14
	if width < 1 {
		width = 1
	}
	if height < 3 {
		height = 3
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
}
