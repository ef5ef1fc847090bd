package game

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/coder/quartz"

	"github.com/lox/fishbowl/internal/gameid"
	"github.com/lox/fishbowl/internal/normalize"
	"github.com/lox/fishbowl/internal/randutil"
)

const noteRestarted = "restarted"

// Engine applies actions to game states. It holds only collaborators, never
// game state, and must be driven by one caller at a time.
type Engine struct {
	rng   randutil.Source
	ids   gameid.Generator
	clock quartz.Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the entropy source used for shuffling.
func WithRand(src randutil.Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithIDs sets the id generator for players, items and events.
func WithIDs(ids gameid.Generator) Option {
	return func(e *Engine) { e.ids = ids }
}

// WithClock sets the clock used to start turns and stamp events.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine returns an engine using crypto randomness, UUIDv7 ids and the
// real clock unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rng:   randutil.NewCrypto(),
		ids:   gameid.UUIDv7{},
		clock: quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply returns the state that follows s after a. Rejected actions return s
// unchanged, or s with LastError set for user-facing failures.
func (e *Engine) Apply(s State, a Action) State {
	next, _ := e.Step(s, a)
	return next
}

// Step is Apply with the reason for a rejection. The returned state is always
// safe to install: ErrPrecondition and ErrNoChange come with s itself.
func (e *Engine) Step(s State, a Action) (State, error) {
	switch a := a.(type) {
	case SetTeamName:
		return e.setTeamName(s, a)
	case SetPlayerCount:
		return e.setPlayerCount(s, a)
	case SetTimerSeconds:
		return e.setTimerSeconds(s, a)
	case StartWordEntry:
		return e.startWordEntry(s)
	case SubmitPlayer:
		return e.submitPlayer(s, a)
	case EntryContinue:
		return e.moveScreen(s, ScreenEntryHandoff, ScreenWordEntry)
	case StartRound1:
		return e.startRound1(s)
	case TurnHandoffContinue:
		return e.moveScreen(s, ScreenTurnHandoff, ScreenTurnStart)
	case StartTurn:
		return e.startTurn(s)
	case SyncTimer:
		return e.syncTimer(s, a)
	case Guessed:
		return e.guessed(s)
	case Passed:
		return e.passed(s)
	case Undo:
		return e.undo(s)
	case TimeUpAck:
		return e.timeUpAck(s)
	case RoundProceed:
		return e.roundProceed(s)
	case RestartRound:
		return e.restartRound(s)
	case RestartGame:
		return NewState(s.Settings()), nil
	default:
		return s, fmt.Errorf("%w: unknown action %T", ErrPrecondition, a)
	}
}

// reject records a user-facing error without otherwise changing s.
func reject(s State, err error) (State, error) {
	s.LastError = err.Error()
	return s, err
}

func (e *Engine) now() int64 {
	return e.clock.Now().UnixMilli()
}

func (e *Engine) moveScreen(s State, from, to Screen) (State, error) {
	if s.Screen != from {
		return s, ErrPrecondition
	}
	s.Screen = to
	s.LastError = ""
	return s, nil
}

func (e *Engine) setTeamName(s State, a SetTeamName) (State, error) {
	if s.CurrentRound != 0 || !a.Team.Valid() {
		return s, ErrPrecondition
	}
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return reject(s, invalid("team name required", nil))
	}
	s.Teams[a.Team.index()].Name = name
	s.LastError = ""
	return s, nil
}

func (e *Engine) setPlayerCount(s State, a SetPlayerCount) (State, error) {
	if s.CurrentRound != 0 || len(s.Players) > 0 {
		return s, ErrPrecondition
	}
	s.PlayerCount = clamp(a.Count, MinPlayers, MaxPlayers)
	s.LastError = ""
	return s, nil
}

func (e *Engine) setTimerSeconds(s State, a SetTimerSeconds) (State, error) {
	if s.CurrentRound != 0 || a.Round < 0 || a.Round > NumRounds {
		return s, ErrPrecondition
	}
	secs := clamp(a.Seconds, MinTimerSeconds, MaxTimerSeconds)
	if a.Round == 0 {
		for i := range s.TimerSeconds {
			s.TimerSeconds[i] = secs
		}
	} else {
		s.TimerSeconds[a.Round-1] = secs
	}
	s.LastError = ""
	return s, nil
}

func (e *Engine) startWordEntry(s State) (State, error) {
	if s.Screen != ScreenHostSetup {
		return s, ErrPrecondition
	}
	next := NewState(s.Settings())
	next.Screen = ScreenWordEntry
	return next, nil
}

func (e *Engine) submitPlayer(s State, a SubmitPlayer) (State, error) {
	if s.Screen != ScreenWordEntry {
		return s, ErrPrecondition
	}

	name := strings.TrimSpace(a.Name)
	if name == "" {
		return reject(s, invalid("player name required", nil))
	}

	team := a.Team
	if team == "" {
		team = TeamA
		if s.EntryIndex%2 == 1 {
			team = TeamB
		}
	}
	if !team.Valid() {
		return reject(s, invalid(fmt.Sprintf("unknown team %q", team), nil))
	}

	if len(a.Items) != ItemsPerPlayer {
		return reject(s, invalid(fmt.Sprintf("exactly %d items required", ItemsPerPlayer), nil))
	}

	results := make([]normalize.Result, len(a.Items))
	for i, raw := range a.Items {
		res := normalize.Normalize(raw)
		if !res.Valid {
			return reject(s, invalid(fmt.Sprintf("item %d: %s", i+1, res.Err), res.Err))
		}
		if slices.ContainsFunc(s.Items, func(it Item) bool { return it.NormalizedText == res.Normalized }) {
			return reject(s, invalid(fmt.Sprintf("item %d: %q is already in the bowl", i+1, res.Display), nil))
		}
		if j := slices.IndexFunc(results[:i], func(r normalize.Result) bool { return r.Normalized == res.Normalized }); j >= 0 {
			return reject(s, invalid(fmt.Sprintf("item %d duplicates item %d", i+1, j+1), nil))
		}
		results[i] = res
	}

	player := Player{
		ID:         e.ids.New(gameid.Player),
		Name:       name,
		TeamID:     team,
		EntryIndex: s.EntryIndex,
	}
	items := make([]Item, len(results))
	for i, res := range results {
		items[i] = Item{
			ID:             e.ids.New(gameid.Item),
			DisplayText:    res.Display,
			NormalizedText: res.Normalized,
			OwnerPlayerID:  player.ID,
		}
	}

	s.Players = append(slices.Clip(s.Players), player)
	s.Items = append(slices.Clip(s.Items), items...)
	if s.StartingTeamRound1 == "" {
		s.StartingTeamRound1 = team
	}
	s.EntryIndex++
	s.LastError = ""
	if s.EntryIndex >= s.PlayerCount {
		s.Screen = ScreenReady
	} else {
		s.Screen = ScreenEntryHandoff
	}
	return s, nil
}

func (e *Engine) startRound1(s State) (State, error) {
	if s.Screen != ScreenReady {
		return s, ErrPrecondition
	}
	if want := s.PlayerCount * ItemsPerPlayer; len(s.Items) != want {
		return reject(s, invalid(fmt.Sprintf("expected %d items, have %d", want, len(s.Items)), nil))
	}

	starter := s.StartingTeamRound1
	if starter == "" {
		starter = TeamA
	}
	pools := NewPools(e.rng, s.itemIDs())

	s.CurrentRound = 1
	s.CurrentTeamTurn = starter
	s.RoundStartTeam[0] = starter
	s.Pools = &pools
	s.Ledger = s.Ledger.ClearUndo()
	s = clearTimer(s)
	s.Events = e.appendEvent(s.Events, Event{Type: EventRoundStarted, Round: 1, Team: starter})
	s.Screen = ScreenTurnHandoff
	s.LastError = ""
	return s, nil
}

func (e *Engine) startTurn(s State) (State, error) {
	if s.Screen != ScreenTurnStart {
		return s, ErrPrecondition
	}

	var pools Pools
	if s.Pools == nil {
		pools = NewPools(e.rng, s.itemIDs())
	} else {
		pools = *s.Pools
	}
	pools = pools.DrawIfNeeded(e.rng)
	s.Pools = &pools

	pending := s.PendingCarryoverSeconds
	s.PendingCarryoverSeconds = 0
	s.LastError = ""

	if pools.IsComplete() {
		return e.completeRound(s, e.now()), nil
	}

	duration := s.roundDefaultSeconds(s.CurrentRound)
	note := fmt.Sprintf("%ds", duration)
	if pending > 0 {
		duration = pending
		note = fmt.Sprintf("%ds carryover", duration)
	}

	s.TurnEndEpochMs = e.now() + int64(duration)*1000
	s.TurnDurationSeconds = duration
	s.TimerSecondsRemaining = duration
	s.Ledger = s.Ledger.ClearUndo()
	s.Events = e.appendEvent(s.Events, Event{
		Type:  EventTurnStarted,
		Round: s.CurrentRound,
		Team:  s.CurrentTeamTurn,
		Note:  note,
	})
	s.Screen = ScreenTurnActive
	return s, nil
}

// remainingSeconds rounds the time left up to whole seconds, never below 0
// and never above the turn length (a rewound clock does not add time).
func remainingSeconds(s State, nowMs int64) int {
	diff := s.TurnEndEpochMs - nowMs
	if diff <= 0 {
		return 0
	}
	secs := int((diff + 999) / 1000)
	if s.TurnDurationSeconds > 0 {
		secs = min(secs, s.TurnDurationSeconds)
	}
	return secs
}

func (e *Engine) syncTimer(s State, a SyncTimer) (State, error) {
	if s.Screen != ScreenTurnActive {
		return s, ErrPrecondition
	}
	remaining := remainingSeconds(s, a.NowMs)
	if remaining == s.TimerSecondsRemaining {
		return s, ErrNoChange
	}
	s.TimerSecondsRemaining = remaining
	if remaining > 0 {
		return s, nil
	}

	ev := Event{Type: EventTimeUp, Round: s.CurrentRound, Team: s.CurrentTeamTurn}
	if s.Pools != nil {
		if item, ok := s.CurrentItem(); ok {
			ev.WordID = item.ID
			ev.WordText = item.DisplayText
		}
		pools := s.Pools.ReturnCurrent(e.rng)
		s.Pools = &pools
	}
	s.Ledger = s.Ledger.ClearUndo()
	s = clearTimer(s)
	s.Events = e.appendEvent(s.Events, ev)
	s.Screen = ScreenTimeUp
	s.LastError = ""
	return s, nil
}

func (e *Engine) guessed(s State) (State, error) {
	item, ok := e.presented(s)
	if !ok {
		return s, ErrPrecondition
	}
	before := *s.Pools
	after, err := before.MarkGuessed(e.rng)
	if err != nil {
		return s, errors.Join(ErrPrecondition, err)
	}

	s.Pools = &after
	s.Ledger = s.Ledger.RecordGuess(s.CurrentRound, s.CurrentTeamTurn, before, item)
	s.Events = e.appendEvent(s.Events, Event{
		Type:        EventWordGuessed,
		Round:       s.CurrentRound,
		Team:        s.CurrentTeamTurn,
		WordID:      item.ID,
		WordText:    item.DisplayText,
		PointsDelta: points(1),
	})
	s.LastError = ""

	if after.IsComplete() {
		return e.completeRound(s, e.now()), nil
	}
	return s, nil
}

func (e *Engine) passed(s State) (State, error) {
	item, ok := e.presented(s)
	if !ok {
		return s, ErrPrecondition
	}
	before := *s.Pools
	after, err := before.Pass(e.rng)
	if err != nil {
		return s, errors.Join(ErrPrecondition, err)
	}

	s.Pools = &after
	s.Ledger = s.Ledger.RecordPass(s.CurrentRound, s.CurrentTeamTurn, before, item)
	s.Events = e.appendEvent(s.Events, Event{
		Type:        EventWordPassed,
		Round:       s.CurrentRound,
		Team:        s.CurrentTeamTurn,
		WordID:      item.ID,
		WordText:    item.DisplayText,
		PointsDelta: points(0),
	})
	s.LastError = ""
	return s, nil
}

// presented returns the item on screen during an active turn.
func (e *Engine) presented(s State) (Item, bool) {
	if s.Screen != ScreenTurnActive {
		return Item{}, false
	}
	return s.CurrentItem()
}

func (e *Engine) undo(s State) (State, error) {
	if s.Screen != ScreenTurnActive {
		return s, ErrPrecondition
	}
	ledger, entry, err := s.Ledger.UndoLast(s.CurrentRound)
	if err != nil {
		return reject(s, err)
	}

	pools := entry.Pools
	s.Pools = &pools
	s.Ledger = ledger
	s.Events = e.appendEvent(s.Events, Event{
		Type:        EventUndo,
		Round:       entry.Round,
		Team:        entry.Team,
		WordID:      entry.ItemID,
		WordText:    entry.ItemText,
		PointsDelta: points(-entry.PointsDelta),
		Note:        undoNote(entry.Kind),
	})
	s.LastError = ""
	return s, nil
}

func undoNote(k UndoKind) string {
	if k == UndoPassed {
		return "pass"
	}
	return "guess"
}

func (e *Engine) timeUpAck(s State) (State, error) {
	if s.Screen != ScreenTimeUp {
		return s, ErrPrecondition
	}
	s.CurrentTeamTurn = s.CurrentTeamTurn.Other()
	s.Screen = ScreenTurnHandoff
	s.LastError = ""
	return s, nil
}

// completeRound closes the round the current team just cleared. Time left on
// the clock carries over to the same team in the next round.
func (e *Engine) completeRound(s State, nowMs int64) State {
	remaining := s.TimerSecondsRemaining
	if s.TurnEndEpochMs > 0 {
		remaining = remainingSeconds(s, nowMs)
	}
	finisher := s.CurrentTeamTurn

	ev := Event{Type: EventRoundCompleted, Round: s.CurrentRound, Team: finisher}
	if s.CurrentRound < NumRounds && remaining > 0 {
		s.CarryoverForNextRound = &Carryover{Seconds: remaining, TeamID: finisher}
		ev.Note = fmt.Sprintf("%ds carry over", remaining)
	} else {
		s.CarryoverForNextRound = nil
	}
	s.RoundFinisherTeam[s.CurrentRound-1] = finisher
	s.Ledger = s.Ledger.ClearUndo()
	s = clearTimer(s)
	s.Events = e.appendEvent(s.Events, ev)
	s.Screen = ScreenRoundComplete
	return s
}

func (e *Engine) roundProceed(s State) (State, error) {
	if s.Screen != ScreenRoundComplete {
		return s, ErrPrecondition
	}
	s.LastError = ""
	if s.CurrentRound >= NumRounds {
		s.Screen = ScreenFinal
		return s, nil
	}

	next := s.CurrentRound + 1
	starter := s.RoundFinisherTeam[s.CurrentRound-1]
	if starter == "" {
		starter = s.CurrentTeamTurn
	}

	s.PendingCarryoverSeconds = 0
	if c := s.CarryoverForNextRound; c != nil && c.TeamID == starter && c.Seconds > 0 {
		s.PendingCarryoverSeconds = c.Seconds
	}
	s.CarryoverForNextRound = nil

	s.CurrentRound = next
	s.CurrentTeamTurn = starter
	s.RoundStartTeam[next-1] = starter
	s.Pools = nil
	s.Ledger = s.Ledger.ClearUndo()
	s = clearTimer(s)
	s.Events = e.appendEvent(s.Events, Event{Type: EventRoundStarted, Round: next, Team: starter})
	s.Screen = ScreenTurnHandoff
	return s, nil
}

func (e *Engine) restartRound(s State) (State, error) {
	if s.CurrentRound == 0 || s.Screen == ScreenTurnActive {
		return s, ErrPrecondition
	}
	round := s.CurrentRound
	starter := s.RoundStartTeam[round-1]
	if starter == "" {
		starter = s.CurrentTeamTurn
	}

	s.CurrentTeamTurn = starter
	s.RoundFinisherTeam[round-1] = ""
	s.CarryoverForNextRound = nil
	s.Pools = nil
	s.Ledger = s.Ledger.ResetRound(round)
	s = clearTimer(s)
	s.Events = e.appendEvent(s.Events, Event{Type: EventRoundStarted, Round: round, Team: starter, Note: noteRestarted})
	s.Screen = ScreenTurnHandoff
	s.LastError = ""
	return s, nil
}

func clearTimer(s State) State {
	s.TurnEndEpochMs = 0
	s.TurnDurationSeconds = 0
	s.TimerSecondsRemaining = 0
	return s
}
