package metrics

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResultParams carries every field of a Result at construction time
type ResultParams struct {
	Metric          Metric
	Numerator       int
	Denominator     int
	Estimate        float64
	Exact           Interval
	Approx          Interval
	Percentile      Interval
	Blended         Interval
	BootstrapMean   float64
	BootstrapSE     float64
	Resamples       int
	ConfidenceLevel float64
	ExactPrecision  float64
}

// Result holds the intervals computed for one metric. All fields are set once
// by NewResult and only exposed through value-returning accessors, so a Result
// cannot be altered after construction.
type Result struct {
	p ResultParams
}

// NewResult freezes the given parameters into a Result
func NewResult(p ResultParams) Result {
	return Result{p: p}
}

func (r Result) Metric() Metric           { return r.p.Metric }
func (r Result) Numerator() int           { return r.p.Numerator }
func (r Result) Denominator() int         { return r.p.Denominator }
func (r Result) Estimate() float64        { return r.p.Estimate }
func (r Result) ExactCI() Interval        { return r.p.Exact }
func (r Result) ApproxCI() Interval       { return r.p.Approx }
func (r Result) PercentileCI() Interval   { return r.p.Percentile }
func (r Result) BootstrapMean() float64   { return r.p.BootstrapMean }
func (r Result) BootstrapSE() float64     { return r.p.BootstrapSE }
func (r Result) Resamples() int           { return r.p.Resamples }
func (r Result) ConfidenceLevel() float64 { return r.p.ConfidenceLevel }
func (r Result) ExactPrecision() float64  { return r.p.ExactPrecision }

// TNormCI is the final reported interval: the exact and t-approximation
// intervals blended by the exact precision weight.
func (r Result) TNormCI() Interval { return r.p.Blended }

// String is deterministic and identical to GoString
func (r Result) String() string {
	return fmt.Sprintf(
		"%s: estimate=%.4f (%d/%d) tnorm_ci=%s exact_ci=%s approx_ci=%s percentile_ci=%s resamples=%d confidence_level=%.4f exact_precision=%.4f",
		r.p.Metric, r.p.Estimate, r.p.Numerator, r.p.Denominator,
		r.p.Blended, r.p.Exact, r.p.Approx, r.p.Percentile,
		r.p.Resamples, r.p.ConfidenceLevel, r.p.ExactPrecision,
	)
}

// GoString makes %#v print the same summary as %v
func (r Result) GoString() string { return r.String() }

// resultView is the serialized form of a Result
type resultView struct {
	Metric          string   `json:"metric" yaml:"metric"`
	Numerator       int      `json:"numerator" yaml:"numerator"`
	Denominator     int      `json:"denominator" yaml:"denominator"`
	Estimate        float64  `json:"estimate" yaml:"estimate"`
	TNormCI         Interval `json:"tnorm_ci" yaml:"tnorm_ci"`
	ExactCI         Interval `json:"exact_ci" yaml:"exact_ci"`
	ApproxCI        Interval `json:"approx_ci" yaml:"approx_ci"`
	PercentileCI    Interval `json:"percentile_ci" yaml:"percentile_ci"`
	BootstrapMean   float64  `json:"bootstrap_mean" yaml:"bootstrap_mean"`
	BootstrapSE     float64  `json:"bootstrap_se" yaml:"bootstrap_se"`
	Resamples       int      `json:"resamples" yaml:"resamples"`
	ConfidenceLevel float64  `json:"confidence_level" yaml:"confidence_level"`
	ExactPrecision  float64  `json:"exact_precision" yaml:"exact_precision"`
}

func (r Result) view() resultView {
	return resultView{
		Metric:          r.p.Metric.String(),
		Numerator:       r.p.Numerator,
		Denominator:     r.p.Denominator,
		Estimate:        r.p.Estimate,
		TNormCI:         r.p.Blended,
		ExactCI:         r.p.Exact,
		ApproxCI:        r.p.Approx,
		PercentileCI:    r.p.Percentile,
		BootstrapMean:   r.p.BootstrapMean,
		BootstrapSE:     r.p.BootstrapSE,
		Resamples:       r.p.Resamples,
		ConfidenceLevel: r.p.ConfidenceLevel,
		ExactPrecision:  r.p.ExactPrecision,
	}
}

// MarshalJSON implements json.Marshaler
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.view())
}

// MarshalYAML implements yaml.Marshaler
func (r Result) MarshalYAML() (interface{}, error) {
	return r.view(), nil
}

// Set holds one Result per metric, indexed by Metric in reporting order
type Set [Count]Result

// Get returns the result for a metric
func (s Set) Get(m Metric) Result {
	return s[m]
}

// String joins the per-metric summaries, one per line
func (s Set) String() string {
	lines := make([]string, 0, Count)
	for _, r := range s {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}

// GoString makes %#v print the same summary as %v
func (s Set) GoString() string { return s.String() }
