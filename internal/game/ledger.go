package game

import "slices"

// MaxUndo bounds the undo stack; the oldest entry is dropped past it.
const MaxUndo = 10

// TeamScores is one round's score per team.
type TeamScores struct {
	A int `json:"A"`
	B int `json:"B"`
}

// Get returns the score of team t.
func (ts TeamScores) Get(t TeamID) int {
	if t == TeamB {
		return ts.B
	}
	return ts.A
}

// Add returns a copy with n added to team t.
func (ts TeamScores) Add(t TeamID, n int) TeamScores {
	if t == TeamB {
		ts.B += n
	} else {
		ts.A += n
	}
	return ts
}

// Scores holds TeamScores for rounds 1 to NumRounds at index round-1.
type Scores [NumRounds]TeamScores

// Round returns the scores of round r (1-based).
func (s Scores) Round(r int) TeamScores {
	if r < 1 || r > NumRounds {
		return TeamScores{}
	}
	return s[r-1]
}

// Total sums all rounds.
func (s Scores) Total() TeamScores {
	var total TeamScores
	for _, r := range s {
		total.A += r.A
		total.B += r.B
	}
	return total
}

// UndoKind is the action an UndoEntry reverts.
type UndoKind string

const (
	UndoGuessed UndoKind = "guessed"
	UndoPassed  UndoKind = "passed"
)

// UndoEntry records the pools and scores as they were before an action.
type UndoEntry struct {
	Kind        UndoKind `json:"kind"`
	Round       int      `json:"round"`
	Team        TeamID   `json:"team"`
	Pools       Pools    `json:"pools"`
	Scores      Scores   `json:"scores"`
	ItemID      string   `json:"itemId"`
	ItemText    string   `json:"itemText"`
	PointsDelta int      `json:"pointsDelta"`
}

// Ledger tracks scores and the undo stack.
type Ledger struct {
	Scores Scores      `json:"scoresByRound"`
	Undo   []UndoEntry `json:"undoStack"`
}

// RecordGuess awards a point to team and remembers how to take it back.
// before is the pools snapshot taken before the guess was applied.
func (l Ledger) RecordGuess(round int, team TeamID, before Pools, item Item) Ledger {
	entry := UndoEntry{
		Kind:        UndoGuessed,
		Round:       round,
		Team:        team,
		Pools:       before,
		Scores:      l.Scores,
		ItemID:      item.ID,
		ItemText:    item.DisplayText,
		PointsDelta: 1,
	}
	l.Scores[round-1] = l.Scores[round-1].Add(team, 1)
	return l.push(entry)
}

// RecordPass remembers a pass so that it can be reverted. Scores are unchanged.
func (l Ledger) RecordPass(round int, team TeamID, before Pools, item Item) Ledger {
	return l.push(UndoEntry{
		Kind:     UndoPassed,
		Round:    round,
		Team:     team,
		Pools:    before,
		Scores:   l.Scores,
		ItemID:   item.ID,
		ItemText: item.DisplayText,
	})
}

// UndoLast pops the newest entry and restores its scores. The caller restores
// entry.Pools. Entries from another round are never undone.
func (l Ledger) UndoLast(round int) (Ledger, UndoEntry, error) {
	if len(l.Undo) == 0 {
		return l, UndoEntry{}, ErrNothingToUndo
	}
	top := l.Undo[len(l.Undo)-1]
	if top.Round != round {
		return l, UndoEntry{}, ErrNothingToUndo
	}
	l.Undo = slices.Clip(l.Undo[:len(l.Undo)-1])
	l.Scores = top.Scores
	return l, top, nil
}

// ClearUndo drops every undo entry.
func (l Ledger) ClearUndo() Ledger {
	l.Undo = nil
	return l
}

// ResetRound zeroes round r and clears the undo stack.
func (l Ledger) ResetRound(r int) Ledger {
	l.Scores[r-1] = TeamScores{}
	return l.ClearUndo()
}

func (l Ledger) push(e UndoEntry) Ledger {
	stack := l.Undo
	if len(stack) >= MaxUndo {
		stack = stack[len(stack)-MaxUndo+1:]
	}
	l.Undo = append(slices.Clip(stack), e)
	return l
}
