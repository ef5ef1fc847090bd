package game

import (
	"slices"
	"time"

	"github.com/lox/fishbowl/internal/gameid"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for the game log
const (
	EventRoundStarted   EventType = "ROUND_STARTED"
	EventTurnStarted    EventType = "TURN_STARTED"
	EventWordGuessed    EventType = "WORD_GUESSED"
	EventWordPassed     EventType = "WORD_PASSED"
	EventUndo           EventType = "UNDO"
	EventTimeUp         EventType = "TIME_UP"
	EventRoundCompleted EventType = "ROUND_COMPLETED"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is an immutable entry of the game log.
type Event struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
	Round       int       `json:"round,omitempty"`
	Team        TeamID    `json:"team,omitempty"`
	WordID      string    `json:"wordId,omitempty"`
	WordText    string    `json:"wordText,omitempty"`
	PointsDelta *int      `json:"pointsDelta,omitempty"`
	Note        string    `json:"note,omitempty"`
}

func points(n int) *int {
	return &n
}

// appendEvent stamps ev with a fresh id and time and returns a new log with ev
// at the end. The input log is never modified.
func (e *Engine) appendEvent(log []Event, ev Event) []Event {
	ev.ID = e.ids.New(gameid.Event)
	ev.Timestamp = e.clock.Now()
	return append(slices.Clip(log), ev)
}
