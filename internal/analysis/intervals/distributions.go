package intervals

import (
	"math"

	"classci/domain/metrics"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
)

// StatisticalDistributions provides the distribution functions the interval
// calculators share
type StatisticalDistributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *StatisticalDistributions {
	return &StatisticalDistributions{}
}

// TCritical returns the two-sided Student's t critical value for the given
// degrees of freedom and confidence level
func (sd *StatisticalDistributions) TCritical(degreesOfFreedom int, confidenceLevel float64) float64 {
	if degreesOfFreedom <= 0 {
		return math.Inf(1)
	}
	alpha := 1.0 - confidenceLevel
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}.Quantile(1.0 - alpha/2.0)
}

// hypergeometric describes drawing `draws` items without replacement from
// `population` items of which `successes` are successes
type hypergeometric struct {
	population int
	successes  int
	draws      int
	logTotal   float64
}

func newHypergeometric(population, successes, draws int) hypergeometric {
	return hypergeometric{
		population: population,
		successes:  successes,
		draws:      draws,
		logTotal:   combin.LogGeneralizedBinomial(float64(population), float64(draws)),
	}
}

// support returns the smallest and largest attainable success counts
func (h hypergeometric) support() (int, int) {
	lo := h.draws - (h.population - h.successes)
	if lo < 0 {
		lo = 0
	}
	hi := h.draws
	if h.successes < hi {
		hi = h.successes
	}
	return lo, hi
}

func (h hypergeometric) logPMF(k int) float64 {
	return combin.LogGeneralizedBinomial(float64(h.successes), float64(k)) +
		combin.LogGeneralizedBinomial(float64(h.population-h.successes), float64(h.draws-k)) -
		h.logTotal
}

func (h hypergeometric) sum(from, to int) float64 {
	total := 0.0
	for k := from; k <= to; k++ {
		total += math.Exp(h.logPMF(k))
	}
	return math.Min(total, 1)
}

// CDF returns P(X <= x)
func (h hypergeometric) CDF(x int) float64 {
	lo, hi := h.support()
	if x < lo {
		return 0
	}
	if x >= hi {
		return 1
	}
	return h.sum(lo, x)
}

// Survival returns P(X >= x)
func (h hypergeometric) Survival(x int) float64 {
	lo, hi := h.support()
	if x <= lo {
		return 1
	}
	if x > hi {
		return 0
	}
	return h.sum(x, hi)
}

// HypergeometricCDF returns P(X <= x) for X ~ Hypergeometric(population, successes, draws)
func (sd *StatisticalDistributions) HypergeometricCDF(x, population, successes, draws int) float64 {
	return newHypergeometric(population, successes, draws).CDF(x)
}

// HypergeometricSurvival returns P(X >= x) for X ~ Hypergeometric(population, successes, draws)
func (sd *StatisticalDistributions) HypergeometricSurvival(x, population, successes, draws int) float64 {
	return newHypergeometric(population, successes, draws).Survival(x)
}

// FinitePopulationInterval inverts two one-sided hypergeometric tests to bound
// the share of successes in a finite population, given `observed` successes in
// `draws` items sampled without replacement. Bounds are success counts K of
// the population divided by its size; both tails use alpha/2.
func (sd *StatisticalDistributions) FinitePopulationInterval(population, draws, observed int, confidenceLevel float64) metrics.Interval {
	if draws <= 0 || population <= 0 {
		return metrics.Interval{Lower: 0, Upper: 1}
	}
	if draws > population {
		population = draws
	}
	halfAlpha := (1.0 - confidenceLevel) / 2.0

	// K ranges over success counts consistent with the observation
	minK := observed
	maxK := population - (draws - observed)

	lowerK := 0
	if observed > 0 {
		// smallest K whose upper tail at the observation exceeds alpha/2;
		// the tail grows with K
		lo, hi := minK, maxK
		for lo < hi {
			mid := lo + (hi-lo)/2
			if newHypergeometric(population, mid, draws).Survival(observed) > halfAlpha {
				hi = mid
			} else {
				lo = mid + 1
			}
		}
		lowerK = lo
	}

	upperK := population
	if observed < draws {
		// largest K whose lower tail at the observation exceeds alpha/2;
		// the tail shrinks with K
		lo, hi := minK, maxK
		for lo < hi {
			mid := lo + (hi-lo+1)/2
			if newHypergeometric(population, mid, draws).CDF(observed) > halfAlpha {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		upperK = lo
	}

	return metrics.Interval{
		Lower: float64(lowerK) / float64(population),
		Upper: float64(upperK) / float64(population),
	}
}

// PercentileInterval returns the equal-tailed percentile interval of samples
func (sd *StatisticalDistributions) PercentileInterval(samples []float64, confidenceLevel float64) (metrics.Interval, error) {
	alpha := 1.0 - confidenceLevel
	lower, err := stats.PercentileNearestRank(samples, 100*alpha/2)
	if err != nil {
		return metrics.Interval{}, err
	}
	upper, err := stats.PercentileNearestRank(samples, 100*(1-alpha/2))
	if err != nil {
		return metrics.Interval{}, err
	}
	return metrics.Interval{Lower: lower, Upper: upper}, nil
}
