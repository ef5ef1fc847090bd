package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/fishbowl/internal/gameid"
	"github.com/lox/fishbowl/internal/randutil"
)

// harness drives an engine with deterministic collaborators.
type harness struct {
	t      *testing.T
	engine *Engine
	clock  *quartz.Mock
	state  State
}

func newHarness(t *testing.T, settings Settings) *harness {
	t.Helper()
	clock := quartz.NewMock(t)
	return &harness{
		t: t,
		engine: NewEngine(
			WithRand(randutil.New(42)),
			WithIDs(gameid.NewSequence()),
			WithClock(clock),
		),
		clock: clock,
		state: NewState(settings),
	}
}

func testSettings(players int) Settings {
	s := DefaultSettings()
	s.TeamNames = [2]string{"Blue", "Red"}
	s.PlayerCount = players
	return s
}

func (h *harness) apply(a Action) error {
	next, err := h.engine.Step(h.state, a)
	h.state = next
	return err
}

func (h *harness) must(actions ...Action) {
	h.t.Helper()
	for _, a := range actions {
		require.NoError(h.t, h.apply(a), "action %s on %s", a.Type(), h.state.Screen)
	}
}

func (h *harness) nowMs() int64 {
	return h.clock.Now().UnixMilli()
}

// advance moves the clock and syncs the timer. ErrNoChange is tolerated.
func (h *harness) advance(d time.Duration) {
	h.t.Helper()
	h.clock.Advance(d)
	if err := h.apply(SyncTimer{NowMs: h.nowMs()}); err != nil {
		require.ErrorIs(h.t, err, ErrNoChange)
	}
}

// items returns three unique items for player i.
func items(i int) []string {
	return []string{
		fmt.Sprintf("Alpha %c", 'a'+i),
		fmt.Sprintf("Bravo %c", 'a'+i),
		fmt.Sprintf("Charlie %c", 'a'+i),
	}
}

// enterAll runs word entry for every player and stops on the ready screen.
func (h *harness) enterAll() {
	h.t.Helper()
	h.must(StartWordEntry{})
	for i := range h.state.PlayerCount {
		h.must(SubmitPlayer{Name: fmt.Sprintf("Player %d", i+1), Items: items(i)})
		if h.state.Screen == ScreenEntryHandoff {
			h.must(EntryContinue{})
		}
	}
	require.Equal(h.t, ScreenReady, h.state.Screen)
}

// startPlaying goes from a fresh state to an active first turn.
func (h *harness) startPlaying() {
	h.t.Helper()
	h.enterAll()
	h.must(StartRound1{}, TurnHandoffContinue{}, StartTurn{})
	require.Equal(h.t, ScreenTurnActive, h.state.Screen)
}

// clearBowl guesses every remaining item of the round.
func (h *harness) clearBowl() {
	h.t.Helper()
	for h.state.Screen == ScreenTurnActive {
		h.must(Guessed{})
	}
	require.Equal(h.t, ScreenRoundComplete, h.state.Screen)
}

func (h *harness) lastEvent() Event {
	h.t.Helper()
	require.NotEmpty(h.t, h.state.Events)
	return h.state.Events[len(h.state.Events)-1]
}
