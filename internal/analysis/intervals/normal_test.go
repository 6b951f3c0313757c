package intervals

import (
	"math"
	"testing"

	"classci/domain/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	approx := NewNormalApproximator()

	t.Run("t interval around the mean", func(t *testing.T) {
		values := []float64{0.3, 0.35, 0.4, 0.45, 0.5}
		s, err := approx.Summarize(values, 0.95)
		require.NoError(t, err)

		sd := math.Sqrt(0.00625)
		margin := NewDistributions().TCritical(4, 0.95) * sd
		assert.InDelta(t, 0.4, s.Mean, 1e-12)
		assert.InDelta(t, sd, s.StdErr, 1e-12)
		assert.InDelta(t, 0.4-margin, s.Approx.Lower, 1e-9)
		assert.InDelta(t, 0.4+margin, s.Approx.Upper, 1e-9)
	})

	t.Run("clipped to the unit interval", func(t *testing.T) {
		s, err := approx.Summarize([]float64{0.95, 1, 1, 0.9, 1}, 0.99)
		require.NoError(t, err)
		assert.Equal(t, 1.0, s.Approx.Upper)
		assert.GreaterOrEqual(t, s.Approx.Lower, 0.0)
	})

	t.Run("single value collapses", func(t *testing.T) {
		s, err := approx.Summarize([]float64{0.7}, 0.95)
		require.NoError(t, err)
		assert.Equal(t, metrics.Point(0.7), s.Approx)
		assert.Equal(t, 0.0, s.StdErr)
	})

	t.Run("constant values collapse", func(t *testing.T) {
		s, err := approx.Summarize([]float64{1, 1, 1, 1}, 0.95)
		require.NoError(t, err)
		assert.Equal(t, metrics.Point(1), s.Approx)
	})

	t.Run("empty distribution", func(t *testing.T) {
		_, err := approx.Summarize(nil, 0.95)
		assert.Error(t, err)
	})
}

func TestLinearBlender(t *testing.T) {
	exact := metrics.Interval{Lower: 0.1, Upper: 0.9}
	approx := metrics.Interval{Lower: 0.3, Upper: 0.5}
	b := LinearBlender{}

	tests := []struct {
		name string
		w    float64
		want metrics.Interval
	}{
		{"exact only", 1, exact},
		{"approximate only", 0, approx},
		{"halfway", 0.5, metrics.Interval{Lower: 0.2, Upper: 0.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Blend(exact, approx, tt.w)
			assert.InDelta(t, tt.want.Lower, got.Lower, 1e-12)
			assert.InDelta(t, tt.want.Upper, got.Upper, 1e-12)
			assert.LessOrEqual(t, got.Lower, got.Upper)
		})
	}
}
