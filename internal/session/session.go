// Package session owns the live game state of a single device.
//
// A Session is the single action queue in front of the engine: callers from
// any goroutine (key handlers, the timer tick) are serialized, each action
// replaces the state wholesale, observers are told about the change, and the
// new snapshot is handed to a background saver that never blocks play.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/fishbowl/internal/game"
	"github.com/lox/fishbowl/internal/store"
)

// DefaultTickInterval is how often the timer is synced with the wall clock.
const DefaultTickInterval = 250 * time.Millisecond

// Observer reacts to state changes (rendering, sound, screen wake lock). It
// must not call back into the session synchronously.
type Observer interface {
	OnStateChange(prev, next game.State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(prev, next game.State)

func (f ObserverFunc) OnStateChange(prev, next game.State) { f(prev, next) }

// Session serializes actions against one live game.State.
type Session struct {
	engine *game.Engine
	store  store.Store
	clock  quartz.Clock
	logger *log.Logger

	mu        sync.Mutex
	state     game.State
	observers []Observer

	// pending holds the newest unsaved snapshot; older ones are dropped.
	pending chan game.State
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used by the timer tick.
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// New returns a session starting from initial.
func New(engine *game.Engine, st store.Store, initial game.State, logger *log.Logger, opts ...Option) *Session {
	s := &Session{
		engine:  engine,
		store:   st,
		clock:   quartz.NewReal(),
		logger:  logger.WithPrefix("session"),
		state:   initial,
		pending: make(chan game.State, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the live snapshot.
func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe adds an observer.
func (s *Session) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Dispatch applies one action and returns the resulting state along with the
// engine's verdict. Stale actions (game.ErrPrecondition) and no-op ticks
// (game.ErrNoChange) leave everything untouched.
func (s *Session) Dispatch(a game.Action) (game.State, error) {
	s.mu.Lock()
	prev := s.state
	next, err := s.engine.Step(prev, a)
	if errors.Is(err, game.ErrPrecondition) || errors.Is(err, game.ErrNoChange) {
		s.mu.Unlock()
		if errors.Is(err, game.ErrPrecondition) {
			s.logger.Debug("Ignoring action", "action", a.Type(), "screen", prev.Screen)
		}
		return prev, err
	}
	s.state = next
	observers := s.observers
	s.mu.Unlock()

	if a.Type() != game.ActionSyncTimer {
		s.logger.Debug("Applied action", "action", a.Type(), "screen", next.Screen)
	}
	if err != nil {
		s.logger.Info("Action rejected", "action", a.Type(), "reason", err)
	}
	if prev.Screen != next.Screen {
		s.logger.Info("Screen changed", "from", prev.Screen, "to", next.Screen, "round", next.CurrentRound, "team", next.CurrentTeamTurn)
	}

	s.enqueue(next)
	for _, o := range observers {
		o.OnStateChange(prev, next)
	}
	return next, err
}

// Tick syncs the turn timer with the session clock.
func (s *Session) Tick() (game.State, error) {
	return s.Dispatch(game.SyncTimer{NowMs: s.clock.Now().UnixMilli()})
}

// RunTicker calls Tick every interval until ctx is cancelled.
func (s *Session) RunTicker(ctx context.Context, interval time.Duration) error {
	w := s.clock.TickerFunc(ctx, interval, func() error {
		_, _ = s.Tick()
		return nil
	}, "session", "tick")
	err := w.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Resume installs a previously saved game if there is one. It reports
// whether a game was restored.
func (s *Session) Resume() (bool, error) {
	saved, ok, err := s.store.Load()
	if err != nil || !ok {
		return false, err
	}
	s.mu.Lock()
	prev := s.state
	s.state = saved
	observers := s.observers
	s.mu.Unlock()

	s.logger.Info("Resumed saved game", "screen", saved.Screen, "round", saved.CurrentRound)
	for _, o := range observers {
		o.OnStateChange(prev, saved)
	}
	return true, nil
}

// Discard drops any saved game and restarts from a clean baseline.
func (s *Session) Discard() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	_, err := s.Dispatch(game.RestartGame{})
	if errors.Is(err, game.ErrPrecondition) {
		return nil
	}
	return err
}

func (s *Session) enqueue(state game.State) {
	for {
		select {
		case s.pending <- state:
			return
		default:
		}
		// Drop the stale snapshot and retry.
		select {
		case <-s.pending:
		default:
		}
	}
}

// Run persists snapshots until ctx is cancelled. In-progress games are saved;
// clean or finished games clear the save. The final pending snapshot is
// flushed before returning.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case state := <-s.pending:
			s.persist(state)
		case <-ctx.Done():
			select {
			case state := <-s.pending:
				s.persist(state)
			default:
			}
			return nil
		}
	}
}

func (s *Session) persist(state game.State) {
	var err error
	if state.InProgress() {
		err = s.store.Save(state)
	} else {
		err = s.store.Clear()
	}
	if err != nil {
		s.logger.Error("Failed to persist game", "error", err)
	}
}
