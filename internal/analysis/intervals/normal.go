package intervals

import (
	"fmt"
	"math"

	"classci/domain/metrics"

	"github.com/montanaflynn/stats"
)

// Summary describes one metric's bootstrap distribution
type Summary struct {
	Mean       float64
	StdErr     float64
	Approx     metrics.Interval
	Percentile metrics.Interval
}

// NormalApproximator forms Student-t intervals around the bootstrap mean
type NormalApproximator struct {
	distributions *StatisticalDistributions
}

// NewNormalApproximator creates a new approximator
func NewNormalApproximator() *NormalApproximator {
	return &NormalApproximator{distributions: NewDistributions()}
}

// Summarize computes the mean and standard error of a bootstrap distribution
// and the t interval mean ± t(len-1) * SE, clipped to [0, 1]. The standard
// deviation of the bootstrap values is the standard error of the statistic.
// A single value, or values without spread, collapse to a point.
func (a *NormalApproximator) Summarize(values []float64, confidenceLevel float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("empty distribution")
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return Summary{}, err
	}

	percentile, err := a.distributions.PercentileInterval(values, confidenceLevel)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Mean:       mean,
		Approx:     metrics.Point(mean),
		Percentile: percentile,
	}
	if len(values) < 2 {
		return summary, nil
	}

	se, err := stats.StandardDeviationSample(values)
	if err != nil {
		return Summary{}, err
	}
	if se == 0 || math.IsNaN(se) {
		return summary, nil
	}

	margin := a.distributions.TCritical(len(values)-1, confidenceLevel) * se
	summary.StdErr = se
	summary.Approx = metrics.Interval{Lower: mean - margin, Upper: mean + margin}.Clip(0, 1)
	return summary, nil
}
