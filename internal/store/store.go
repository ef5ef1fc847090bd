// Package store persists game snapshots so an interrupted game can be resumed.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lox/fishbowl/internal/game"
)

// Version is the snapshot format written by this package.
const Version = 1

// ErrVersion is returned when a snapshot was written by an unknown format.
var ErrVersion = errors.New("unsupported snapshot version")

// Store saves, loads and clears the single saved game.
type Store interface {
	Save(state game.State) error
	// Load returns ok=false when no game is saved.
	Load() (state game.State, ok bool, err error)
	Clear() error
}

// Snapshot is the persisted envelope around a game state.
type Snapshot struct {
	Version int        `json:"version"`
	SavedAt time.Time  `json:"savedAt"`
	State   game.State `json:"state"`
}

// Encode serializes state into a snapshot document.
func Encode(state game.State, savedAt time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(Snapshot{Version: Version, SavedAt: savedAt, State: state}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot document.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != Version {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrVersion, snap.Version)
	}
	return snap, nil
}

// Memory keeps the snapshot in memory. The zero value is ready to use.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(state game.State) error {
	data, err := Encode(state, time.Time{})
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

func (m *Memory) Load() (game.State, bool, error) {
	m.mu.Lock()
	data := m.data
	m.mu.Unlock()
	if data == nil {
		return game.State{}, false, nil
	}
	snap, err := Decode(data)
	if err != nil {
		return game.State{}, false, err
	}
	return snap.State, true, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// Saves returns how many times Save succeeded.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Saved reports whether a snapshot is currently held.
func (m *Memory) Saved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data != nil
}
