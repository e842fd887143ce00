package engine

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the source of randomness for pool selection and spins.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// LockedRand serialises access to a Rand so one generator can be shared by
// spins and catalog resolution.
type LockedRand struct {
	mu  sync.Mutex
	src Rand
}

// NewRand returns a PCG generator seeded with seed. A zero seed means
// "seed from the clock".
func NewRand(seed uint64) *LockedRand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &LockedRand{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Locked wraps an existing generator.
func Locked(src Rand) *LockedRand {
	if l, ok := src.(*LockedRand); ok {
		return l
	}
	return &LockedRand{src: src}
}

func (r *LockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}
