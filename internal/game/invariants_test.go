package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lox/fishbowl/internal/randutil"
)

// checkPools asserts that the pools hold each unguessed item exactly once and
// that every guessed item is accounted for by a point.
func checkPools(t *testing.T, s State) {
	t.Helper()
	if s.Pools == nil {
		return
	}
	seen := map[string]bool{}
	for _, id := range poolIDs(*s.Pools) {
		require.False(t, seen[id], "item %s appears twice", id)
		seen[id] = true
		_, ok := s.Item(id)
		require.True(t, ok, "unknown item %s", id)
	}
	round := s.Scores.Round(s.CurrentRound)
	guessed := len(s.Items) - s.Pools.Remaining()
	require.Equal(t, guessed, round.A+round.B, "guessed items and points disagree")
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	for seed := range int64(25) {
		h := newHarness(t, testSettings(3))
		h.must(SetTimerSeconds{Seconds: 20})
		h.startPlaying()
		pick := randutil.New(seed + 1000)

		prev := h.state.Scores
		for step := 0; step < 500 && h.state.Screen != ScreenFinal; step++ {
			var a Action
			switch h.state.Screen {
			case ScreenTurnActive:
				switch n := pick.IntN(10); {
				case n < 4:
					a = Guessed{}
				case n < 7:
					a = Passed{}
				case n < 8:
					a = Undo{}
				default:
					h.clock.Advance(time.Duration(pick.IntN(4000)) * time.Millisecond)
					a = SyncTimer{NowMs: h.nowMs()}
				}
			case ScreenTimeUp:
				a = TimeUpAck{}
			case ScreenTurnHandoff:
				a = TurnHandoffContinue{}
			case ScreenTurnStart:
				a = StartTurn{}
			case ScreenRoundComplete:
				a = RoundProceed{}
			default:
				t.Fatalf("seed %d: unexpected screen %s", seed, h.state.Screen)
			}

			_ = h.apply(a)
			checkPools(t, h.state)

			if a.Type() != ActionUndo {
				for r := range NumRounds {
					require.GreaterOrEqual(t, h.state.Scores[r].A, prev[r].A, "seed %d: score decreased", seed)
					require.GreaterOrEqual(t, h.state.Scores[r].B, prev[r].B, "seed %d: score decreased", seed)
				}
			}
			require.LessOrEqual(t, len(h.state.Undo), MaxUndo)
			prev = h.state.Scores
		}

		require.Equal(t, ScreenFinal, h.state.Screen, "seed %d did not finish", seed)
		total := h.state.Totals()
		require.Equal(t, NumRounds*len(h.state.Items), total.A+total.B, "seed %d", seed)
	}
}
