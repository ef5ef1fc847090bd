package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	"io"
	"math"
	"time"

	rand "math/rand/v2"
)

// CryptoSource draws integers from a cryptographically strong reader using
// rejection sampling, so there is no modulo bias. If the reader ever fails it
// degrades to a time-seeded PCG for the rest of its life.
//
// A CryptoSource is not safe for concurrent use.
type CryptoSource struct {
	r        io.Reader
	fallback *rand.Rand
}

// NewCrypto returns a source backed by crypto/rand.
func NewCrypto() *CryptoSource {
	return NewCryptoFromReader(crand.Reader)
}

// NewCryptoFromReader returns a source backed by r.
func NewCryptoFromReader(r io.Reader) *CryptoSource {
	return &CryptoSource{r: r}
}

// Degraded reports whether the source has fallen back to the pseudo-random
// generator.
func (c *CryptoSource) Degraded() bool {
	return c.fallback != nil
}

// IntN returns a uniformly distributed integer in [0, n). It panics if n <= 0.
// Bounds above 2^32 are served by the fallback generator.
func (c *CryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("randutil: invalid argument to IntN")
	}
	if c.fallback == nil && uint64(n) <= math.MaxUint32 {
		if v, err := c.uniform(uint64(n)); err == nil {
			return v
		}
	}
	if c.fallback == nil {
		c.fallback = New(time.Now().UnixNano())
	}
	return c.fallback.IntN(n)
}

func (c *CryptoSource) uniform(n uint64) (int, error) {
	const span = uint64(1) << 32
	limit := span - span%n

	var buf [4]byte
	for {
		if _, err := io.ReadFull(c.r, buf[:]); err != nil {
			return 0, err
		}
		v := uint64(binary.BigEndian.Uint32(buf[:]))
		if v < limit {
			return int(v % n), nil
		}
	}
}
