package game

import (
	"fmt"
	"strings"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowTimestamps bool // Prefix each line with the wall clock time (for `fishbowl show`)
	ShowRound      bool // Prefix each line with the round number
}

// EventFormatter turns log events into single human-readable lines
type EventFormatter struct {
	opts  FormattingOptions
	teams [2]Team
}

// NewEventFormatter creates a new event formatter for the given teams
func NewEventFormatter(teams [2]Team, opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts, teams: teams}
}

func (ef *EventFormatter) teamName(id TeamID) string {
	if !id.Valid() {
		return "?"
	}
	return ef.teams[id.index()].Name
}

// Format renders one event
func (ef *EventFormatter) Format(ev Event) string {
	team := ef.teamName(ev.Team)

	var text string
	switch ev.Type {
	case EventRoundStarted:
		verb := "started"
		if ev.Note == noteRestarted {
			verb = "restarted"
		}
		text = fmt.Sprintf("Round %d %s, %s to play", ev.Round, verb, team)
	case EventTurnStarted:
		text = fmt.Sprintf("%s turn started", team)
		if ev.Note != "" {
			text += " (" + ev.Note + ")"
		}
	case EventWordGuessed:
		text = fmt.Sprintf("%s guessed %q%s", team, ev.WordText, formatDelta(ev.PointsDelta))
	case EventWordPassed:
		text = fmt.Sprintf("%s passed %q", team, ev.WordText)
	case EventUndo:
		text = fmt.Sprintf("%s undid %s of %q%s", team, ev.Note, ev.WordText, formatDelta(ev.PointsDelta))
	case EventTimeUp:
		text = fmt.Sprintf("Time up for %s", team)
		if ev.WordText != "" {
			text += fmt.Sprintf(", %q goes back in the bowl", ev.WordText)
		}
	case EventRoundCompleted:
		text = fmt.Sprintf("Round %d complete, bowl cleared by %s", ev.Round, team)
		if ev.Note != "" {
			text += " (" + ev.Note + ")"
		}
	default:
		text = fmt.Sprintf("%s %s", ev.Type, team)
	}

	var prefix []string
	if ef.opts.ShowTimestamps && !ev.Timestamp.IsZero() {
		prefix = append(prefix, ev.Timestamp.Format("15:04:05"))
	}
	if ef.opts.ShowRound && ev.Round > 0 {
		prefix = append(prefix, fmt.Sprintf("R%d", ev.Round))
	}
	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + text
	}
	return text
}

// FormatAll renders a whole log, one line per event
func (ef *EventFormatter) FormatAll(events []Event) []string {
	lines := make([]string, len(events))
	for i, ev := range events {
		lines[i] = ef.Format(ev)
	}
	return lines
}

func formatDelta(d *int) string {
	if d == nil || *d == 0 {
		return ""
	}
	return fmt.Sprintf(" (%+d)", *d)
}
