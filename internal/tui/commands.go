package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/fishbowl/internal/game"
	"github.com/lox/fishbowl/internal/normalize"
)

// runCommand executes one host setup command line.
func (m *Model) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "team":
		if len(fields) < 3 {
			m.notice = "usage: team <a|b> <name>"
			return nil
		}
		team, ok := parseTeam(fields[1], m.state)
		if !ok {
			m.notice = fmt.Sprintf("unknown team %q", fields[1])
			return nil
		}
		m.dispatch(game.SetTeamName{Team: team, Name: strings.Join(fields[2:], " ")})

	case "players":
		if len(fields) != 2 {
			m.notice = "usage: players <n>"
			return nil
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			m.notice = fmt.Sprintf("invalid player count %q", fields[1])
			return nil
		}
		m.dispatch(game.SetPlayerCount{Count: n})

	case "timer":
		var round int
		args := fields[1:]
		if len(args) == 2 {
			r, err := strconv.Atoi(args[0])
			if err != nil || r < 1 || r > game.NumRounds {
				m.notice = fmt.Sprintf("round must be 1 to %d", game.NumRounds)
				return nil
			}
			round, args = r, args[1:]
		}
		if len(args) != 1 {
			m.notice = "usage: timer [round] <seconds>"
			return nil
		}
		secs, err := strconv.Atoi(args[0])
		if err != nil {
			m.notice = fmt.Sprintf("invalid seconds %q", args[0])
			return nil
		}
		m.dispatch(game.SetTimerSeconds{Round: round, Seconds: secs})

	case "start":
		m.dispatch(game.StartWordEntry{})

	case "quit", "exit":
		m.quitting = true
		return tea.Quit

	default:
		m.notice = fmt.Sprintf("unknown command %q", fields[0])
	}
	return nil
}

// parseTeam accepts a team letter or a team's current name.
func parseTeam(s string, state game.State) (game.TeamID, bool) {
	switch strings.ToLower(s) {
	case "a":
		return game.TeamA, true
	case "b":
		return game.TeamB, true
	}
	for _, t := range state.Teams {
		if strings.EqualFold(t.Name, s) {
			return t.ID, true
		}
	}
	return "", false
}

type entryStep int

const (
	stepName entryStep = iota
	stepTeam
	stepItems
)

// entryDraft collects one player's submission one prompt at a time.
type entryDraft struct {
	step  entryStep
	name  string
	team  game.TeamID
	items []string
}

func (d entryDraft) placeholder() string {
	switch d.step {
	case stepName:
		return "your name"
	case stepTeam:
		return "team a or b (enter to be assigned)"
	default:
		return fmt.Sprintf("item %d of %d", len(d.items)+1, game.ItemsPerPlayer)
	}
}

// submitEntry feeds one line into the draft and submits the player once
// every item is in.
func (m *Model) submitEntry(line string) {
	value := strings.TrimSpace(line)
	m.notice = ""

	switch m.draft.step {
	case stepName:
		if value == "" {
			m.notice = "name required"
			return
		}
		m.draft.name = value
		m.draft.step = stepTeam

	case stepTeam:
		if value != "" {
			team, ok := parseTeam(value, m.state)
			if !ok {
				m.notice = fmt.Sprintf("unknown team %q", value)
				return
			}
			m.draft.team = team
		}
		m.draft.step = stepItems

	case stepItems:
		if msg := m.checkItem(value); msg != "" {
			m.notice = msg
			return
		}
		m.draft.items = append(m.draft.items, value)
		if len(m.draft.items) < game.ItemsPerPlayer {
			break
		}
		submit := game.SubmitPlayer{Name: m.draft.name, Team: m.draft.team, Items: m.draft.items}
		if err := m.dispatch(submit); err != nil {
			m.logger.Debug("Submission rejected", "player", m.draft.name, "error", err)
			m.draft.items = nil
		}
	}
	m.input.Placeholder = m.draft.placeholder()
}

// checkItem gives early feedback on an item. The engine still has the final
// say when the player is submitted.
func (m *Model) checkItem(raw string) string {
	r := normalize.Normalize(raw)
	if !r.Valid {
		return r.Err.Error()
	}
	for _, it := range m.state.Items {
		if it.NormalizedText == r.Normalized {
			return fmt.Sprintf("%q is already in the bowl", r.Display)
		}
	}
	seen := slices.ContainsFunc(m.draft.items, func(s string) bool {
		return normalize.Normalize(s).Normalized == r.Normalized
	})
	if seen {
		return fmt.Sprintf("you already entered %q", r.Display)
	}
	return ""
}
