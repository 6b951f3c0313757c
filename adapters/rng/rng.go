package rng

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Adapter implements ports.RNGPort on math/rand
type Adapter struct {
	mu   sync.Mutex
	seed *rand.Rand
}

// NewAdapter creates an RNG adapter whose fresh generators derive from the clock
func NewAdapter() *Adapter {
	return &Adapter{seed: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Fresh returns an independent generator with a non-deterministic seed
func (a *Adapter) Fresh() *rand.Rand {
	a.mu.Lock()
	defer a.mu.Unlock()
	return rand.New(rand.NewSource(a.seed.Int63()))
}

// Stream creates a deterministic generator for one scope of a run. The seed
// combines baseSeed with hashes of runID and scope, so one-vs-rest classes of
// the same run draw from distinct but reproducible sequences.
func (a *Adapter) Stream(ctx context.Context, runID, scope string, baseSeed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seed := baseSeed
	if runID != "" {
		seed = int64(hashString(runID)) + seed
	}
	if scope != "" {
		seed = int64(hashString(scope)) + seed
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString is djb2
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}
