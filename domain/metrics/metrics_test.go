package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"classci/domain/confusion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMetricValue(t *testing.T) {
	c := confusion.Counts{TP: 3, FP: 1, TN: 4, FN: 2}

	tests := []struct {
		metric   Metric
		expected float64
	}{
		{PositiveRate, 4.0 / 10.0},
		{PPV, 3.0 / 4.0},
		{NPV, 4.0 / 6.0},
		{Recall, 3.0 / 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.metric.String(), func(t *testing.T) {
			v, ok := tt.metric.Value(c)
			require.True(t, ok)
			assert.InDelta(t, tt.expected, v, 1e-12)
		})
	}
}

func TestMetricValueUndefined(t *testing.T) {
	// nothing flagged: PPV has a zero denominator, the others do not
	c := confusion.Counts{TN: 3, FN: 1}

	v, ok := PPV.Value(c)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(v))

	_, ok = NPV.Value(c)
	assert.True(t, ok)
	_, ok = Recall.Value(c)
	assert.True(t, ok)
}

func TestMetricOrder(t *testing.T) {
	assert.Equal(t, [Count]Metric{PositiveRate, PPV, NPV, Recall}, All)
	for i, m := range All {
		assert.Equal(t, i, int(m))
	}
}

func TestIntervalClip(t *testing.T) {
	clipped := Interval{Lower: -0.2, Upper: 1.3}.Clip(0, 1)
	assert.Equal(t, Interval{Lower: 0, Upper: 1}, clipped)
	assert.True(t, clipped.Contains(0.5))
	assert.Equal(t, 1.0, clipped.Width())
	assert.Equal(t, Point(0.25), Interval{Lower: 0.25, Upper: 0.25})
}

func sampleResult() Result {
	return NewResult(ResultParams{
		Metric:          PPV,
		Numerator:       3,
		Denominator:     4,
		Estimate:        0.75,
		Exact:           Interval{Lower: 0.2, Upper: 0.99},
		Approx:          Interval{Lower: 0.4, Upper: 1},
		Percentile:      Interval{Lower: 0.5, Upper: 1},
		Blended:         Interval{Lower: 0.39, Upper: 0.9995},
		BootstrapMean:   0.74,
		BootstrapSE:     0.2,
		Resamples:       100,
		ConfidenceLevel: 0.95,
		ExactPrecision:  0.05,
	})
}

func TestResultIsImmutable(t *testing.T) {
	r := sampleResult()

	ci := r.TNormCI()
	ci.Lower = 0.5
	ci.Upper = 0.8

	assert.Equal(t, Interval{Lower: 0.39, Upper: 0.9995}, r.TNormCI())

	cp := r
	assert.Equal(t, r.String(), cp.String())
}

func TestResultStringMatchesGoString(t *testing.T) {
	r := sampleResult()

	assert.Equal(t, r.String(), r.GoString())
	assert.Equal(t, fmt.Sprintf("%v", r), fmt.Sprintf("%#v", r))
	assert.Contains(t, r.String(), "tnorm_ci=[0.3900, 0.9995]")

	var set Set
	set[PPV] = r
	assert.Equal(t, set.String(), set.GoString())
	assert.Equal(t, r, set.Get(PPV))
}

func TestResultMarshal(t *testing.T) {
	r := sampleResult()

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "ppv", decoded["metric"])
	assert.Contains(t, decoded, "tnorm_ci")

	out, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "tnorm_ci:")
}
