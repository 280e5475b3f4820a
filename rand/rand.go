// Package rand provides the seeded pseudo-random source behind all
// distribution draws.
package rand

import (
	"github.com/pkg/errors"
	"github.com/seehuhn/mt19937"
)

// A Generator uses a goroutine to populate batches of random numbers from a
// 64-bit Mersenne twister. It satisfies the math/rand/v2 Source interface
// the distribution layer consumes.
type Generator struct {
	ch chan uint64
}

// NewGenerator starts a new background PRNG based on the given seed.
func NewGenerator(seed int64) (*Generator, error) {
	return start(func(r *mt19937.MT19937) {
		r.Seed(seed)
	}), nil
}

// NewGeneratorSlice starts a new background PRNG seeded from a key array.
func NewGeneratorSlice(seed []uint64) (*Generator, error) {
	if len(seed) < 1 {
		return nil, errors.Errorf("empty seed slice")
	}

	key := make([]uint64, len(seed))
	copy(key, seed)
	return start(func(r *mt19937.MT19937) {
		r.SeedFromSlice(key)
	}), nil
}

func start(seed func(*mt19937.MT19937)) *Generator {
	numChan := make(chan uint64, 1024)

	go func() {
		r := mt19937.New()
		seed(r)
		for {
			numChan <- r.Uint64()
		}
	}()

	return &Generator{
		ch: numChan,
	}
}

// Uint64 provides the math/rand/v2 Source interface, but with
// pre-generation.
func (g *Generator) Uint64() uint64 {
	return <-g.ch
}

// Int63 provides the same interface as Go's math/rand.
func (g *Generator) Int63() int64 {
	return int64(g.Uint64() & 0x7fffffffffffffff)
}

// Float64 returns a uniform value in [0, 1) using the top 53 bits.
func (g *Generator) Float64() float64 {
	return float64(g.Uint64()>>11) / (1 << 53)
}
