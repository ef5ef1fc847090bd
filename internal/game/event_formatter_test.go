package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventFormatter(t *testing.T) {
	teams := [2]Team{{ID: TeamA, Name: "Blue"}, {ID: TeamB, Name: "Red"}}

	tests := []struct {
		name     string
		opts     FormattingOptions
		event    Event
		expected string
	}{
		{
			name:     "round started",
			event:    Event{Type: EventRoundStarted, Round: 1, Team: TeamA},
			expected: "Round 1 started, Blue to play",
		},
		{
			name:     "round restarted",
			event:    Event{Type: EventRoundStarted, Round: 2, Team: TeamB, Note: noteRestarted},
			expected: "Round 2 restarted, Red to play",
		},
		{
			name:     "turn with carryover",
			event:    Event{Type: EventTurnStarted, Round: 2, Team: TeamB, Note: "12s carryover"},
			expected: "Red turn started (12s carryover)",
		},
		{
			name:     "guess",
			event:    Event{Type: EventWordGuessed, Team: TeamA, WordText: "Spider-Man", PointsDelta: points(1)},
			expected: `Blue guessed "Spider-Man" (+1)`,
		},
		{
			name:     "pass",
			event:    Event{Type: EventWordPassed, Team: TeamB, WordText: "Paris", PointsDelta: points(0)},
			expected: `Red passed "Paris"`,
		},
		{
			name:     "undo guess",
			event:    Event{Type: EventUndo, Team: TeamA, WordText: "Paris", Note: "guess", PointsDelta: points(-1)},
			expected: `Blue undid guess of "Paris" (-1)`,
		},
		{
			name:     "time up with item",
			event:    Event{Type: EventTimeUp, Team: TeamB, WordText: "Tango"},
			expected: `Time up for Red, "Tango" goes back in the bowl`,
		},
		{
			name:     "round completed",
			event:    Event{Type: EventRoundCompleted, Round: 1, Team: TeamA, Note: "12s carry over"},
			expected: "Round 1 complete, bowl cleared by Blue (12s carry over)",
		},
		{
			name:     "with prefixes",
			opts:     FormattingOptions{ShowTimestamps: true, ShowRound: true},
			event:    Event{Type: EventTimeUp, Round: 3, Team: TeamA, Timestamp: time.Date(2025, 3, 1, 20, 15, 7, 0, time.UTC)},
			expected: "20:15:07 R3 Time up for Blue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ef := NewEventFormatter(teams, tt.opts)
			assert.Equal(t, tt.expected, ef.Format(tt.event))
		})
	}
}

func TestEventFormatterFormatAll(t *testing.T) {
	ef := NewEventFormatter([2]Team{{ID: TeamA, Name: "A"}, {ID: TeamB, Name: "B"}}, FormattingOptions{})
	lines := ef.FormatAll([]Event{
		{Type: EventRoundStarted, Round: 1, Team: TeamA},
		{Type: EventTurnStarted, Round: 1, Team: TeamA, Note: "60s"},
	})
	assert.Equal(t, []string{"Round 1 started, A to play", "A turn started (60s)"}, lines)
}
