package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fishbowl/internal/game"
	"github.com/lox/fishbowl/internal/gameid"
	"github.com/lox/fishbowl/internal/randutil"
)

// midGameState plays into the middle of round 1 so that every part of the
// state is populated.
func midGameState(t *testing.T) game.State {
	t.Helper()
	e := game.NewEngine(
		game.WithRand(randutil.New(7)),
		game.WithIDs(gameid.NewSequence()),
		game.WithClock(quartz.NewMock(t)),
	)
	settings := game.DefaultSettings()
	settings.PlayerCount = 2
	s := game.NewState(settings)
	for _, a := range []game.Action{
		game.StartWordEntry{},
		game.SubmitPlayer{Name: "Ada", Items: []string{"Spider-Man", "Paris", "Tango"}},
		game.EntryContinue{},
		game.SubmitPlayer{Name: "Bo", Items: []string{"Beyoncé", "Moby Dick", "Oslo"}},
		game.StartRound1{},
		game.TurnHandoffContinue{},
		game.StartTurn{},
		game.Passed{},
		game.Guessed{},
	} {
		var err error
		s, err = e.Step(s, a)
		require.NoError(t, err, "action %s", a.Type())
	}
	return s
}

func jsonOf(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestEncodeDecode(t *testing.T) {
	state := midGameState(t)
	data, err := Encode(state, quartz.NewMock(t).Now())
	require.NoError(t, err)

	snap, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Version, snap.Version)
	assert.JSONEq(t, jsonOf(t, state), jsonOf(t, snap.State))

	require.NotNil(t, snap.State.Pools)
	assert.Equal(t, *state.Pools, *snap.State.Pools)
	assert.Equal(t, state.Scores, snap.State.Scores)
	assert.Equal(t, state.Undo, snap.State.Undo)
	assert.Equal(t, state.Screen, snap.State.Screen)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`{"version": 99, "state": {}}`))
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "game.json")
	clock := quartz.NewMock(t)
	f := NewFile(path, clock)

	_, ok, err := f.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, f.Clear(), "clearing a missing file is fine")

	state := midGameState(t)
	require.NoError(t, f.Save(state))

	loaded, ok, err := f.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, jsonOf(t, state), jsonOf(t, loaded))

	snap, ok, err := f.Snapshot()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, clock.Now().Equal(snap.SavedAt))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	require.NoError(t, f.Clear())
	_, ok, err = f.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, ok, err := NewFile(path, quartz.NewMock(t)).Load()
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	_, ok, err := m.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	state := midGameState(t)
	require.NoError(t, m.Save(state))
	assert.True(t, m.Saved())
	assert.Equal(t, 1, m.Saves())

	loaded, ok, err := m.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, jsonOf(t, state), jsonOf(t, loaded))

	require.NoError(t, m.Clear())
	assert.False(t, m.Saved())
}
