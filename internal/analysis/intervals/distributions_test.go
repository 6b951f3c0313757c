package intervals

import (
	"math"
	"testing"

	"classci/domain/confusion"
	"classci/domain/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHypergeometricTails(t *testing.T) {
	sd := NewDistributions()

	tests := []struct {
		name                         string
		population, successes, draws int
	}{
		{"small urn", 20, 7, 5},
		{"draw everything", 10, 4, 10},
		{"large population", 100000, 4000, 30},
		{"no successes", 50, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHypergeometric(tt.population, tt.successes, tt.draws)
			lo, hi := h.support()

			assert.InDelta(t, 1.0, sd.HypergeometricCDF(hi, tt.population, tt.successes, tt.draws), 1e-9)
			assert.InDelta(t, 1.0, sd.HypergeometricSurvival(lo, tt.population, tt.successes, tt.draws), 1e-9)
			for x := lo; x < hi; x++ {
				total := sd.HypergeometricCDF(x, tt.population, tt.successes, tt.draws) +
					sd.HypergeometricSurvival(x+1, tt.population, tt.successes, tt.draws)
				assert.InDelta(t, 1.0, total, 1e-9, "x=%d", x)
			}
		})
	}
}

func TestHypergeometricKnownValue(t *testing.T) {
	sd := NewDistributions()
	// P(X = 0) drawing 2 from 5 with 2 successes is C(3,2)/C(5,2) = 0.3
	assert.InDelta(t, 0.3, sd.HypergeometricCDF(0, 5, 2, 2), 1e-9)
	// P(X = 2) is C(2,2)/C(5,2) = 0.1
	assert.InDelta(t, 0.1, sd.HypergeometricSurvival(2, 5, 2, 2), 1e-9)
}

func TestFinitePopulationInterval(t *testing.T) {
	sd := NewDistributions()

	t.Run("all successes in a large population", func(t *testing.T) {
		ci := sd.FinitePopulationInterval(1000000, 2, 2, 0.95)
		assert.InDelta(t, math.Sqrt(0.025), ci.Lower, 0.002)
		assert.Equal(t, 1.0, ci.Upper)
	})

	t.Run("no successes in a large population", func(t *testing.T) {
		ci := sd.FinitePopulationInterval(1000000, 2, 0, 0.95)
		assert.Equal(t, 0.0, ci.Lower)
		assert.InDelta(t, 1-math.Sqrt(0.025), ci.Upper, 0.002)
	})

	t.Run("census is a point", func(t *testing.T) {
		ci := sd.FinitePopulationInterval(40, 40, 13, 0.99)
		assert.Equal(t, 13.0/40.0, ci.Lower)
		assert.Equal(t, 13.0/40.0, ci.Upper)
	})

	t.Run("contains the estimate and narrows with coverage", func(t *testing.T) {
		wide := sd.FinitePopulationInterval(5000, 100, 30, 0.99)
		narrow := sd.FinitePopulationInterval(5000, 100, 30, 0.80)
		assert.True(t, wide.Contains(0.3))
		assert.True(t, narrow.Contains(0.3))
		assert.LessOrEqual(t, wide.Lower, narrow.Lower)
		assert.GreaterOrEqual(t, wide.Upper, narrow.Upper)
	})

	t.Run("sampling a larger share narrows the interval", func(t *testing.T) {
		small := sd.FinitePopulationInterval(1000000, 100, 30, 0.95)
		large := sd.FinitePopulationInterval(200, 100, 30, 0.95)
		assert.Less(t, large.Width(), small.Width())
	})
}

func TestExactIntervalCalculator(t *testing.T) {
	calc := NewExactCalculator()
	counts := confusion.Counts{TP: 0, FP: 0, TN: 5, FN: 1}

	ci := calc.Interval(metrics.PPV, counts, Population{Size: 100, FlaggedCount: 10}, 0.95)
	assert.Equal(t, metrics.Interval{Lower: 0, Upper: 1}, ci)

	ci = calc.Interval(metrics.NPV, counts, Population{Size: 100, FlaggedCount: 10}, 0.95)
	assert.True(t, ci.Contains(5.0/6.0))
	assert.LessOrEqual(t, ci.Upper, 1.0)
}

func TestTCritical(t *testing.T) {
	sd := NewDistributions()
	assert.InDelta(t, 2.262, sd.TCritical(9, 0.95), 0.001)
	assert.InDelta(t, 1.984, sd.TCritical(100, 0.95), 0.001)
	assert.True(t, math.IsInf(sd.TCritical(0, 0.95), 1))
}

func TestPercentileInterval(t *testing.T) {
	sd := NewDistributions()
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i+1) / 100
	}

	ci, err := sd.PercentileInterval(values, 0.90)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, ci.Lower, 0.011)
	assert.InDelta(t, 0.95, ci.Upper, 0.011)

	ci, err = sd.PercentileInterval([]float64{0.4}, 0.95)
	require.NoError(t, err)
	assert.Equal(t, metrics.Point(0.4), ci)
}

func TestSubpopulationSize(t *testing.T) {
	counts := confusion.Counts{TP: 8, FP: 2, TN: 85, FN: 5}
	pop := Population{Size: 10000, FlaggedCount: 900}

	assert.Equal(t, 10000, subpopulationSize(metrics.PositiveRate, counts, pop))
	assert.Equal(t, 900, subpopulationSize(metrics.PPV, counts, pop))
	assert.Equal(t, 9100, subpopulationSize(metrics.NPV, counts, pop))
	// 900*0.8 + 9100*(5/90)
	assert.Equal(t, int(math.Round(720+9100*5.0/90.0)), subpopulationSize(metrics.Recall, counts, pop))

	// never below the sample denominator
	assert.Equal(t, 10, subpopulationSize(metrics.PPV, counts, Population{Size: 10000, FlaggedCount: 3}))
}

func TestFinitePopulationScale(t *testing.T) {
	assert.Equal(t, 0.0, finitePopulationScale(50, 50))
	assert.Equal(t, 0.0, finitePopulationScale(1, 1))
	assert.InDelta(t, 1.0, finitePopulationScale(10000000, 10), 1e-6)
	assert.InDelta(t, math.Sqrt(50.0/99.0), finitePopulationScale(100, 50), 1e-12)
}
