package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamScores(t *testing.T) {
	var ts TeamScores
	ts = ts.Add(TeamA, 2).Add(TeamB, 1)
	assert.Equal(t, 2, ts.Get(TeamA))
	assert.Equal(t, 1, ts.Get(TeamB))

	s := Scores{{A: 1, B: 2}, {A: 3}, {B: 4}}
	assert.Equal(t, TeamScores{A: 4, B: 6}, s.Total())
	assert.Equal(t, TeamScores{A: 3}, s.Round(2))
	assert.Equal(t, TeamScores{}, s.Round(0))
	assert.Equal(t, TeamScores{}, s.Round(4))
}

func TestLedgerGuessAndUndo(t *testing.T) {
	item := Item{ID: "i1", DisplayText: "Paris"}
	before := Pools{Primary: []string{"i2"}, Deferred: []string{}, Current: "i1"}

	var l Ledger
	l = l.RecordGuess(1, TeamB, before, item)
	assert.Equal(t, TeamScores{B: 1}, l.Scores.Round(1))
	require.Len(t, l.Undo, 1)
	assert.Equal(t, UndoGuessed, l.Undo[0].Kind)
	assert.Equal(t, 1, l.Undo[0].PointsDelta)
	assert.Equal(t, Scores{}, l.Undo[0].Scores)

	restored, entry, err := l.UndoLast(1)
	require.NoError(t, err)
	assert.Equal(t, Scores{}, restored.Scores)
	assert.Equal(t, before, entry.Pools)
	assert.Empty(t, restored.Undo)
	assert.Len(t, l.Undo, 1, "receiver untouched")
}

func TestLedgerPass(t *testing.T) {
	var l Ledger
	l = l.RecordPass(2, TeamA, Pools{Current: "i1"}, Item{ID: "i1"})
	assert.Equal(t, Scores{}, l.Scores)
	require.Len(t, l.Undo, 1)
	assert.Equal(t, UndoPassed, l.Undo[0].Kind)
	assert.Zero(t, l.Undo[0].PointsDelta)
}

func TestLedgerUndoErrors(t *testing.T) {
	var l Ledger
	_, _, err := l.UndoLast(1)
	assert.ErrorIs(t, err, ErrNothingToUndo)

	l = l.RecordGuess(1, TeamA, Pools{}, Item{ID: "i1"})
	_, _, err = l.UndoLast(2)
	assert.ErrorIs(t, err, ErrNothingToUndo, "undo never crosses rounds")
}

func TestLedgerUndoBounded(t *testing.T) {
	var l Ledger
	for i := range MaxUndo + 3 {
		l = l.RecordGuess(1, TeamA, Pools{}, Item{ID: string(rune('a' + i))})
	}
	require.Len(t, l.Undo, MaxUndo)
	assert.Equal(t, "d", l.Undo[0].ItemID, "oldest entries evicted first")
	assert.Equal(t, MaxUndo+3, l.Scores.Round(1).A)

	for range MaxUndo {
		var err error
		l, _, err = l.UndoLast(1)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, l.Scores.Round(1).A)
	_, _, err := l.UndoLast(1)
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestLedgerResetRound(t *testing.T) {
	l := Ledger{Scores: Scores{{A: 2, B: 3}, {A: 1, B: 1}}}
	l = l.RecordGuess(2, TeamA, Pools{}, Item{ID: "x"})
	l = l.ResetRound(2)
	assert.Equal(t, Scores{{A: 2, B: 3}, {}, {}}, l.Scores)
	assert.Empty(t, l.Undo)
}
