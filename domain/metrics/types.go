package metrics

import (
	"fmt"
	"math"

	"classci/domain/confusion"
)

// Metric is one of the four reported binary-classification metrics
type Metric int

// Metrics are always reported in this order.
const (
	PositiveRate Metric = iota
	PPV
	NPV
	Recall

	Count = 4
)

// All lists the metrics in reporting order
var All = [Count]Metric{PositiveRate, PPV, NPV, Recall}

// String returns the machine-friendly metric name, also used for plot files
func (m Metric) String() string {
	switch m {
	case PositiveRate:
		return "positive_rate"
	case PPV:
		return "ppv"
	case NPV:
		return "npv"
	case Recall:
		return "recall"
	default:
		return fmt.Sprintf("metric_%d", int(m))
	}
}

// Title returns a human-readable label
func (m Metric) Title() string {
	switch m {
	case PositiveRate:
		return "Positive rate"
	case PPV:
		return "Positive predictive value"
	case NPV:
		return "Negative predictive value"
	case Recall:
		return "Recall"
	default:
		return m.String()
	}
}

// Ratio returns the numerator and denominator of the metric for the given counts
func (m Metric) Ratio(c confusion.Counts) (num, den int) {
	switch m {
	case PositiveRate:
		return c.Flagged(), c.N()
	case PPV:
		return c.TP, c.Flagged()
	case NPV:
		return c.TN, c.Unflagged()
	case Recall:
		return c.TP, c.Positives()
	default:
		return 0, 0
	}
}

// Value computes the metric, reporting false when the denominator is zero
func (m Metric) Value(c confusion.Counts) (float64, bool) {
	num, den := m.Ratio(c)
	if den == 0 {
		return math.NaN(), false
	}
	return float64(num) / float64(den), true
}

// Interval is a closed interval [Lower, Upper]
type Interval struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// Point returns the degenerate interval [v, v]
func Point(v float64) Interval {
	return Interval{Lower: v, Upper: v}
}

// Width returns Upper - Lower
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// Contains reports whether v lies within the interval
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// Clip restricts both bounds to [lo, hi]
func (i Interval) Clip(lo, hi float64) Interval {
	return Interval{
		Lower: math.Min(math.Max(i.Lower, lo), hi),
		Upper: math.Min(math.Max(i.Upper, lo), hi),
	}
}

// String renders the interval with four decimals
func (i Interval) String() string {
	return fmt.Sprintf("[%.4f, %.4f]", i.Lower, i.Upper)
}
