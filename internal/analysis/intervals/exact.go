package intervals

import (
	"classci/domain/confusion"
	"classci/domain/metrics"
)

// ExactIntervalCalculator bounds each metric from the hypergeometric
// structure of sampling without replacement, with no simulation
type ExactIntervalCalculator struct {
	distributions *StatisticalDistributions
}

// NewExactCalculator creates a new exact interval calculator
func NewExactCalculator() *ExactIntervalCalculator {
	return &ExactIntervalCalculator{distributions: NewDistributions()}
}

// Interval returns the exact interval for one metric. A metric with a zero
// denominator carries no information and gets [0, 1].
func (c *ExactIntervalCalculator) Interval(m metrics.Metric, counts confusion.Counts, pop Population, confidenceLevel float64) metrics.Interval {
	num, den := m.Ratio(counts)
	if den == 0 {
		return metrics.Interval{Lower: 0, Upper: 1}
	}
	size := subpopulationSize(m, counts, pop)
	return c.distributions.FinitePopulationInterval(size, den, num, confidenceLevel)
}
