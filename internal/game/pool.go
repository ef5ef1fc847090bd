package game

import (
	"slices"

	"github.com/lox/fishbowl/internal/randutil"
)

// Pools holds the draw piles for the active round. An item id is in at most
// one of Primary, Deferred and Current; guessed items are in none.
//
// Methods return a new Pools and leave the receiver untouched.
type Pools struct {
	Primary  []string `json:"primary"`
	Deferred []string `json:"deferred"`
	Current  string   `json:"currentItemId,omitempty"`
}

// NewPools shuffles ids into a fresh primary pile.
func NewPools(src randutil.Source, ids []string) Pools {
	return Pools{
		Primary:  randutil.Shuffle(src, ids),
		Deferred: []string{},
	}
}

// DrawIfNeeded presents the next item when nothing is presented. An empty
// primary pile is refilled from a reshuffle of the deferred pile first.
func (p Pools) DrawIfNeeded(src randutil.Source) Pools {
	if p.Current != "" {
		return p
	}
	if len(p.Primary) == 0 && len(p.Deferred) > 0 {
		p.Primary = randutil.Shuffle(src, p.Deferred)
		p.Deferred = []string{}
	}
	if len(p.Primary) == 0 {
		return p
	}
	p.Current = p.Primary[0]
	p.Primary = p.Primary[1:]
	return p
}

// Pass moves the presented item to the back of the deferred pile and draws
// the next one. Deferred items are not seen again until primary runs dry.
func (p Pools) Pass(src randutil.Source) (Pools, error) {
	if p.Current == "" {
		return p, ErrNoCurrentItem
	}
	p.Deferred = append(slices.Clip(p.Deferred), p.Current)
	p.Current = ""
	return p.DrawIfNeeded(src), nil
}

// MarkGuessed removes the presented item for the rest of the round and draws
// the next one.
func (p Pools) MarkGuessed(src randutil.Source) (Pools, error) {
	if p.Current == "" {
		return p, ErrNoCurrentItem
	}
	p.Current = ""
	return p.DrawIfNeeded(src), nil
}

// ReturnCurrent puts the presented item back into primary with a fresh
// shuffle. Used when the clock runs out mid-item.
func (p Pools) ReturnCurrent(src randutil.Source) Pools {
	if p.Current == "" {
		return p
	}
	p.Primary = randutil.Shuffle(src, append(slices.Clip(p.Primary), p.Current))
	p.Current = ""
	return p
}

// IsComplete reports whether every item of the round has been guessed.
func (p Pools) IsComplete() bool {
	return p.Current == "" && len(p.Primary) == 0 && len(p.Deferred) == 0
}

// Remaining counts items not yet guessed this round.
func (p Pools) Remaining() int {
	n := len(p.Primary) + len(p.Deferred)
	if p.Current != "" {
		n++
	}
	return n
}
