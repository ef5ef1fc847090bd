package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fishbowl/internal/randutil"
)

var fiveItems = []string{"i1", "i2", "i3", "i4", "i5"}

func poolIDs(p Pools) []string {
	ids := slices.Concat(p.Primary, p.Deferred)
	if p.Current != "" {
		ids = append(ids, p.Current)
	}
	return ids
}

func TestNewPools(t *testing.T) {
	rng := randutil.New(1)
	input := slices.Clone(fiveItems)
	p := NewPools(rng, input)

	assert.ElementsMatch(t, fiveItems, p.Primary)
	assert.Empty(t, p.Deferred)
	assert.NotNil(t, p.Deferred)
	assert.Empty(t, p.Current)
	assert.Equal(t, fiveItems, input, "input must not be reordered")
	assert.False(t, p.IsComplete())
}

func TestDrawIfNeeded(t *testing.T) {
	rng := randutil.New(1)

	t.Run("pops head of primary", func(t *testing.T) {
		p := Pools{Primary: []string{"a", "b"}, Deferred: []string{}}
		got := p.DrawIfNeeded(rng)
		assert.Equal(t, "a", got.Current)
		assert.Equal(t, []string{"b"}, got.Primary)
		assert.Equal(t, []string{"a", "b"}, p.Primary, "receiver untouched")
	})

	t.Run("no-op when an item is presented", func(t *testing.T) {
		p := Pools{Primary: []string{"b"}, Deferred: []string{}, Current: "a"}
		assert.Equal(t, p, p.DrawIfNeeded(rng))
	})

	t.Run("refills from deferred", func(t *testing.T) {
		p := Pools{Primary: []string{}, Deferred: []string{"x", "y", "z"}}
		got := p.DrawIfNeeded(rng)
		assert.NotEmpty(t, got.Current)
		assert.Empty(t, got.Deferred)
		assert.ElementsMatch(t, []string{"x", "y", "z"}, poolIDs(got))
	})

	t.Run("nothing left", func(t *testing.T) {
		p := Pools{Primary: []string{}, Deferred: []string{}}
		got := p.DrawIfNeeded(rng)
		assert.Empty(t, got.Current)
		assert.True(t, got.IsComplete())
	})
}

func TestPassAndGuess(t *testing.T) {
	rng := randutil.New(3)

	t.Run("require a presented item", func(t *testing.T) {
		p := Pools{Primary: []string{"a"}, Deferred: []string{}}
		_, err := p.Pass(rng)
		assert.ErrorIs(t, err, ErrNoCurrentItem)
		_, err = p.MarkGuessed(rng)
		assert.ErrorIs(t, err, ErrNoCurrentItem)
	})

	t.Run("pass appends to deferred", func(t *testing.T) {
		p := Pools{Primary: []string{"b", "c"}, Deferred: []string{"z"}, Current: "a"}
		got, err := p.Pass(rng)
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "a"}, got.Deferred)
		assert.Equal(t, "b", got.Current)
		assert.Equal(t, []string{"z"}, p.Deferred, "receiver untouched")
	})

	t.Run("guess removes permanently", func(t *testing.T) {
		p := NewPools(rng, fiveItems).DrawIfNeeded(rng)
		guessed := map[string]bool{}
		for !p.IsComplete() {
			guessed[p.Current] = true
			var err error
			p, err = p.MarkGuessed(rng)
			require.NoError(t, err)
			for _, id := range poolIDs(p) {
				assert.False(t, guessed[id], "guessed item %s came back", id)
			}
		}
		assert.Len(t, guessed, len(fiveItems))
	})

	t.Run("single item pass is redrawn", func(t *testing.T) {
		p := Pools{Primary: []string{}, Deferred: []string{}, Current: "a"}
		got, err := p.Pass(rng)
		require.NoError(t, err)
		assert.Equal(t, "a", got.Current)
		assert.Empty(t, got.Primary)
		assert.Empty(t, got.Deferred)
	})
}

func TestPassFairness(t *testing.T) {
	for seed := range int64(20) {
		rng := randutil.New(seed)
		p := NewPools(rng, fiveItems).DrawIfNeeded(rng)

		passed := p.Current
		prevPrimaryEmpty := len(p.Primary) == 0
		p, _ = p.Pass(rng)
		for range 20 {
			if p.Current == passed {
				assert.True(t, prevPrimaryEmpty, "seed %d: passed item redrawn before primary emptied", seed)
				break
			}
			prevPrimaryEmpty = len(p.Primary) == 0
			p, _ = p.Pass(rng)
		}
	}
}

func TestReturnCurrent(t *testing.T) {
	rng := randutil.New(5)

	p := Pools{Primary: []string{"b", "c"}, Deferred: []string{"d"}, Current: "a"}
	got := p.ReturnCurrent(rng)
	assert.Empty(t, got.Current)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, got.Primary)
	assert.Equal(t, []string{"d"}, got.Deferred)
	assert.Equal(t, 4, got.Remaining())

	empty := Pools{Primary: []string{"b"}, Deferred: []string{}}
	assert.Equal(t, empty, empty.ReturnCurrent(rng))
}
