package intervals

import "classci/domain/metrics"

// Blender combines the exact and approximate intervals of a metric given the
// exact precision weight w in [0, 1]
type Blender interface {
	Blend(exact, approx metrics.Interval, w float64) metrics.Interval
}

// BlenderFunc adapts a function to Blender
type BlenderFunc func(exact, approx metrics.Interval, w float64) metrics.Interval

// Blend calls f
func (f BlenderFunc) Blend(exact, approx metrics.Interval, w float64) metrics.Interval {
	return f(exact, approx, w)
}

// LinearBlender interpolates each bound: w=1 is the exact interval, w=0 the
// approximate one. Ordered inputs within [0, 1] give an ordered output within
// [0, 1].
type LinearBlender struct{}

// Blend implements Blender
func (LinearBlender) Blend(exact, approx metrics.Interval, w float64) metrics.Interval {
	return metrics.Interval{
		Lower: w*exact.Lower + (1-w)*approx.Lower,
		Upper: w*exact.Upper + (1-w)*approx.Upper,
	}
}
