package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/fishbowl/internal/game"
)

var roundRules = [game.NumRounds]string{
	"Describe it. Say anything except the words themselves.",
	"One word only. Choose it well.",
	"Charades. No words, no sounds.",
}

// View renders the current screen
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderScreen())
	b.WriteString("\n")

	if msg := m.errorLine(); msg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) errorLine() string {
	if m.notice != "" {
		return m.notice
	}
	return m.state.LastError
}

func (m *Model) teamLabel(id game.TeamID) string {
	name := m.state.Team(id).Name
	if id == game.TeamB {
		return TeamBStyle.Render(name)
	}
	return TeamAStyle.Render(name)
}

func (m *Model) renderHeader() string {
	s := m.state
	title := HeaderStyle.Render("FISHBOWL")
	if s.CurrentRound == 0 {
		return title
	}
	totals := s.Totals()
	score := fmt.Sprintf("%s %d : %d %s",
		m.teamLabel(game.TeamA), totals.A, totals.B, m.teamLabel(game.TeamB))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ",
		WarningStyle.Render(fmt.Sprintf("Round %d/%d", s.CurrentRound, game.NumRounds)), "  ", score)
}

func (m *Model) renderScreen() string {
	s := m.state
	switch s.Screen {
	case game.ScreenHostSetup:
		return m.renderHostSetup()

	case game.ScreenWordEntry:
		return m.renderWordEntry()

	case game.ScreenEntryHandoff:
		return fmt.Sprintf("%s\n\nPass the device to the next player. %d of %d have entered items.",
			SuccessStyle.Render("Thanks!"), len(s.Players), s.PlayerCount)

	case game.ScreenReady:
		return fmt.Sprintf("%s\n\n%d items in the bowl. %s starts round 1.",
			SuccessStyle.Render("Everyone is in."), len(s.Items), m.teamLabel(s.StartingTeamRound1))

	case game.ScreenTurnHandoff:
		return fmt.Sprintf("Pass the device to %s.", m.teamLabel(s.CurrentTeamTurn))

	case game.ScreenTurnStart:
		return m.renderTurnStart()

	case game.ScreenTurnActive:
		return m.renderTurnActive()

	case game.ScreenTimeUp:
		return fmt.Sprintf("%s\n\n%s scored %d this round.",
			ErrorStyle.Render("Time's up!"), m.teamLabel(s.CurrentTeamTurn),
			s.Scores.Round(s.CurrentRound).Get(s.CurrentTeamTurn))

	case game.ScreenRoundComplete:
		return m.renderRoundComplete()

	case game.ScreenFinal:
		return m.renderFinal()
	}
	return ""
}

func (m *Model) renderHostSetup() string {
	s := m.state
	var b strings.Builder
	fmt.Fprintf(&b, "Teams:    %s vs %s\n", m.teamLabel(game.TeamA), m.teamLabel(game.TeamB))
	fmt.Fprintf(&b, "Players:  %d (%d items each)\n", s.PlayerCount, game.ItemsPerPlayer)
	fmt.Fprintf(&b, "Timers:   %ds / %ds / %ds\n\n", s.TimerSeconds[0], s.TimerSeconds[1], s.TimerSeconds[2])
	b.WriteString(m.input.View())
	return b.String()
}

func (m *Model) renderWordEntry() string {
	s := m.state
	var b strings.Builder
	fmt.Fprintf(&b, "Player %d of %d\n", s.EntryIndex+1, s.PlayerCount)
	if m.draft.name != "" {
		fmt.Fprintf(&b, "Name: %s\n", m.draft.name)
	}
	for i, item := range m.draft.items {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, item)
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m *Model) renderTurnStart() string {
	s := m.state
	secs := s.TimerSeconds[s.CurrentRound-1]
	extra := ""
	if s.PendingCarryoverSeconds > 0 {
		secs = s.PendingCarryoverSeconds
		extra = WarningStyle.Render(" (carried over)")
	}
	remaining := len(s.Items)
	if s.Pools != nil {
		remaining = s.Pools.Remaining()
	}
	return fmt.Sprintf("%s's turn, round %d\n%s\n\n%d seconds%s, %d items in the bowl.\n\nPress enter to start the clock.",
		m.teamLabel(s.CurrentTeamTurn), s.CurrentRound, InfoStyle.Render(roundRules[s.CurrentRound-1]),
		secs, extra, remaining)
}

func (m *Model) renderTurnActive() string {
	s := m.state
	timer := TimerStyle
	if s.TimerSecondsRemaining <= lowTimeSeconds {
		timer = TimerLowStyle
	}

	item := "(bowl is empty)"
	if it, ok := s.CurrentItem(); ok {
		item = it.DisplayText
	}

	remaining := 0
	if s.Pools != nil {
		remaining = s.Pools.Remaining()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s  %d left in the bowl",
			m.teamLabel(s.CurrentTeamTurn), timer.Render(fmt.Sprintf("%ds", s.TimerSecondsRemaining)), remaining),
		"",
		ItemStyle.Render(item),
		"",
		ActionsStyle.Render("[g] got it   [p] pass   [u] undo"),
	)
}

func (m *Model) renderRoundComplete() string {
	s := m.state
	r := s.CurrentRound
	round := s.Scores.Round(r)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", SuccessStyle.Render(fmt.Sprintf("Round %d complete!", r)))
	fmt.Fprintf(&b, "%s %d   %s %d\n", m.teamLabel(game.TeamA), round.A, m.teamLabel(game.TeamB), round.B)
	if c := s.CarryoverForNextRound; c != nil && r < game.NumRounds {
		fmt.Fprintf(&b, "\n%s carries %ds into round %d.\n", m.teamLabel(c.TeamID), c.Seconds, r+1)
	}
	return b.String()
}

func (m *Model) renderFinal() string {
	s := m.state
	totals := s.Totals()

	var b strings.Builder
	winner, tie := s.Winner()
	if tie {
		b.WriteString(WarningStyle.Render("It's a tie!"))
	} else {
		b.WriteString(m.teamLabel(winner) + SuccessStyle.Render(" win!"))
	}
	b.WriteString("\n\n")
	for r := 1; r <= game.NumRounds; r++ {
		round := s.Scores.Round(r)
		fmt.Fprintf(&b, "Round %d   %3d %3d\n", r, round.A, round.B)
	}
	fmt.Fprintf(&b, "Total     %3d %3d\n\n", totals.A, totals.B)
	b.WriteString(PaneStyle.Render(m.logViewport.View()))
	return b.String()
}

func (m *Model) helpLine() string {
	switch m.state.Screen {
	case game.ScreenHostSetup, game.ScreenWordEntry:
		return "Enter to submit • Ctrl+N new game • Ctrl+C to quit"
	case game.ScreenTurnActive:
		return "g/space got it • p pass • u undo • Ctrl+C to quit"
	case game.ScreenFinal:
		return "↑↓ scroll log • n new game • q to quit"
	default:
		return "Enter to continue • Ctrl+R restart round • Ctrl+N new game • Ctrl+C to quit"
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
