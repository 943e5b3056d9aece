package osal

import (
	"math/rand/v2"
	"sync"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
)

// reseed replaces the process-wide generator state.
func reseed(seed uint64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uint64 draws from the process-wide generator seeded by Reseed.
func Uint64() uint64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Uint64()
}
