package simulator

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the single source of randomness for the simulator.
// IntN returns a uniform integer in [0, n).
type Source interface {
	IntN(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a goroutine-safe Source. The same non-zero seed always
// produces the same sequence; seed 0 picks one from the clock.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
