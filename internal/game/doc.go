// Package game implements the fishbowl state machine.
//
// Two teams take turns drawing items (words or phrases submitted by the
// players) out of a shared bowl across three fixed rounds. The main type is
// State, an immutable snapshot of a whole game, and Engine, which applies one
// Action at a time to produce the next snapshot.
//
// # Basic Usage
//
//	e := game.NewEngine()
//	s := game.NewState(game.DefaultSettings())
//	s = e.Apply(s, game.StartWordEntry{})
//	s = e.Apply(s, game.SubmitPlayer{Name: "Ada", Items: []string{"Paris", "Tango", "Moby Dick"}})
//
// Apply never fails. Step returns the same state plus an error describing why
// an action was rejected, for callers that want to tell a stale tap
// (ErrPrecondition) from a validation failure.
//
// # Deterministic Testing
//
// The engine's collaborators are injectable:
//
//	e := game.NewEngine(
//	    game.WithRand(randutil.New(42)),
//	    game.WithIDs(gameid.NewSequence()),
//	    game.WithClock(quartz.NewMock(t)),
//	)
//
// # Architecture
//
// Engine delegates to small value types:
//   - Pools: primary/deferred draw piles for the active round
//   - Ledger: per-round scores and the bounded undo stack
//   - Event: append-only log entries
//
// Every helper returns new values instead of mutating its receiver, so a
// State handed out by the engine is never changed afterwards.
package game
