package intervals

import (
	"math/rand"
	"testing"

	"classci/internal"

	"github.com/stretchr/testify/require"
)

const (
	validPopulationSize  = 1000000
	validFlaggedCount    = 50000
	validConfidenceLevel = 0.95
	validExactPrecision  = 0.2
	validSampleSize      = 200
	testIterations       = 200
)

// validSample returns a fixed sample of a noisy classifier: about 30% actual
// positives, each prediction flipped with probability 0.15
func validSample() ([]int, []int) {
	rng := rand.New(rand.NewSource(37))
	labels := make([]int, validSampleSize)
	predictions := make([]int, validSampleSize)
	for i := range labels {
		if rng.Float64() < 0.3 {
			labels[i] = 1
		}
		predictions[i] = labels[i]
		if rng.Float64() < 0.15 {
			predictions[i] = 1 - labels[i]
		}
	}
	return labels, predictions
}

func newValidEstimator(t *testing.T, opts ...Option) *Estimator {
	t.Helper()
	labels, predictions := validSample()
	opts = append([]Option{WithLogger(internal.NewNopLogger())}, opts...)
	e, err := New(labels, predictions, validPopulationSize, validFlaggedCount, validConfidenceLevel, opts...)
	require.NoError(t, err)
	return e
}

func seeded(seed int64) ComputeOption {
	return WithRand(rand.New(rand.NewSource(seed)))
}
