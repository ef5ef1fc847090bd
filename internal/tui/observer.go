package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/fishbowl/internal/game"
)

// ProgramObserver forwards session state changes to a running program.
type ProgramObserver struct {
	Program *tea.Program
}

// OnStateChange is called with the session lock released, but possibly from
// inside the program's own Update, so the send must not block.
func (o ProgramObserver) OnStateChange(prev, next game.State) {
	go o.Program.Send(StateMsg{Prev: prev, Next: next})
}
