// Package gameid generates identifiers for players, items and log events.
//
// Identifiers follow the TypeID shape: a prefix, an underscore and a UUIDv7
// encoded as 26 characters of Crockford base32, so they sort by creation time.
package gameid

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Prefixes used by the game.
const (
	Player = "player"
	Item   = "item"
	Event  = "evt"
)

// Generator hands out fresh identifiers.
type Generator interface {
	New(prefix string) string
}

// UUIDv7 generates time-ordered random identifiers.
type UUIDv7 struct{}

// New returns prefix_<base32 uuidv7>.
func (UUIDv7) New(prefix string) string {
	return prefix + "_" + encodeBase32(uuid.Must(uuid.NewV7()))
}

// Sequence generates predictable identifiers (prefix-1, prefix-2, ...) with
// one counter per prefix. Used by tests that assert on exact ids.
type Sequence struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewSequence returns an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{counts: make(map[string]int)}
}

// New returns the next identifier for prefix.
func (s *Sequence) New(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[prefix]++
	return fmt.Sprintf("%s-%d", prefix, s.counts[prefix])
}

// encodeBase32 encodes the 128 uuid bits behind two zero bits, which gives 26
// characters with a leading character in 0-7.
func encodeBase32(u uuid.UUID) string {
	result := make([]byte, 26)
	for i := range result {
		var value byte
		for b := range 5 {
			pos := i*5 + b - 2
			var bit byte
			if pos >= 0 {
				bit = (u[pos/8] >> (7 - pos%8)) & 1
			}
			value = value<<1 | bit
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// Validate checks that id is prefix_ followed by a valid 26 character suffix.
func Validate(id, prefix string) error {
	suffix, ok := strings.CutPrefix(id, prefix+"_")
	if !ok {
		return fmt.Errorf("id %q does not have prefix %q", id, prefix)
	}
	if len(suffix) != 26 {
		return fmt.Errorf("id suffix must be exactly 26 characters, got %d", len(suffix))
	}
	if suffix[0] > '7' {
		return fmt.Errorf("id suffix first character must be 0-7, got %c", suffix[0])
	}
	for i, char := range suffix {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
