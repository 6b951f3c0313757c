package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides the random sources used for bootstrap resampling
type RNGPort interface {
	// Fresh returns a generator seeded from a non-deterministic source
	Fresh() *rand.Rand

	// Stream creates a deterministic generator for one scope (metric, class...) of a run.
	// The same runID, scope and baseSeed always yield the same sequence.
	Stream(ctx context.Context, runID, scope string, baseSeed int64) (*rand.Rand, error)
}
