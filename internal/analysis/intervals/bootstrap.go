package intervals

import (
	"context"
	"math"
	"math/rand"

	"classci/domain/confusion"
	"classci/domain/metrics"
)

// DefaultIterations is the number of bootstrap resamples when the caller does not choose one
const DefaultIterations = 1000

// ctxCheckEvery bounds how many resamples run between cancellation checks
const ctxCheckEvery = 64

// Distributions holds the corrected bootstrap values of each metric
type Distributions [metrics.Count][]float64

// FinitePopulationBootstrapper resamples the observed sample with replacement
// and rescales every resampled metric for sampling without replacement
type FinitePopulationBootstrapper struct{}

// NewBootstrapper creates a new bootstrapper
func NewBootstrapper() *FinitePopulationBootstrapper {
	return &FinitePopulationBootstrapper{}
}

// correction shrinks a resampled value towards the sample estimate
type correction struct {
	center  float64
	scale   float64
	defined bool
}

func (c correction) apply(v float64) float64 {
	return math.Min(1, math.Max(0, c.center+c.scale*(v-c.center)))
}

// Resample draws `iterations` resamples of len(cells) items. A resample in
// which a metric's denominator is zero contributes nothing to that metric
// only, so each distribution has at most `iterations` values.
func (b *FinitePopulationBootstrapper) Resample(ctx context.Context, cells []confusion.Cell, pop Population, iterations int, rng *rand.Rand) (Distributions, error) {
	var dists Distributions
	n := len(cells)
	if n == 0 || iterations <= 0 {
		return dists, nil
	}

	observed := confusion.FromCells(cells)

	var corrections [metrics.Count]correction
	for _, m := range metrics.All {
		center, ok := m.Value(observed)
		_, den := m.Ratio(observed)
		corrections[m] = correction{
			center:  center,
			scale:   finitePopulationScale(subpopulationSize(m, observed, pop), den),
			defined: ok,
		}
		if ok {
			dists[m] = make([]float64, 0, iterations)
		}
	}

	for i := 0; i < iterations; i++ {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return dists, err
			}
		}

		var resampled confusion.Counts
		for j := 0; j < n; j++ {
			resampled.Add(cells[rng.Intn(n)])
		}

		for _, m := range metrics.All {
			if !corrections[m].defined {
				continue
			}
			v, ok := m.Value(resampled)
			if !ok {
				continue
			}
			dists[m] = append(dists[m], corrections[m].apply(v))
		}
	}

	return dists, nil
}
