package intervals

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"classci/adapters/plot"
	"classci/domain/confusion"
	"classci/domain/core"
	"classci/domain/metrics"
	"classci/internal"
	"classci/internal/errors"
	"classci/ports"
)

// DefaultExactPrecision weights the exact interval when no precision is supplied.
// Exact intervals from small samples are very wide, so the default leans on
// the bootstrap approximation.
const DefaultExactPrecision = 0.05

// Estimator computes finite-population confidence intervals for the positive
// rate, PPV, NPV and recall of a labeled sample.
//
// All fields are written once by New. Compute only reads them and allocates
// fresh state per call, so concurrent Compute calls on one Estimator are safe
// as long as they do not share a *rand.Rand.
type Estimator struct {
	cells           []confusion.Cell
	counts          confusion.Counts
	fingerprint     core.Hash
	population      Population
	confidenceLevel float64
	exactPrecision  float64

	bootstrapper *FinitePopulationBootstrapper
	exact        *ExactIntervalCalculator
	approx       *NormalApproximator
	blender      Blender
	plotter      ports.DistributionPlotter
	logger       *internal.Logger
}

type options struct {
	exactPrecision *float64
	blender        Blender
	plotter        ports.DistributionPlotter
	logger         *internal.Logger
}

// Option configures an Estimator
type Option func(*options)

// WithExactPrecision sets the weight w of the exact interval in the blend
func WithExactPrecision(w float64) Option {
	return func(o *options) { o.exactPrecision = &w }
}

// WithBlender replaces the default LinearBlender
func WithBlender(b Blender) Option {
	return func(o *options) { o.blender = b }
}

// WithPlotter replaces the default gonum histogram plotter
func WithPlotter(p ports.DistributionPlotter) Option {
	return func(o *options) { o.plotter = p }
}

// WithLogger sets the logger
func WithLogger(l *internal.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New validates its inputs and builds the confusion matrix once. It returns
// an INVALID_CONFIGURATION error, and no Estimator, for any invalid argument.
func New(labels, predictions []int, populationSize, populationFlaggedCount int, confidenceLevel float64, opts ...Option) (*Estimator, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateSample(labels, predictions); err != nil {
		return nil, err
	}
	pop := Population{Size: populationSize, FlaggedCount: populationFlaggedCount}
	if err := validatePopulation(pop, len(labels)); err != nil {
		return nil, err
	}
	if err := validateConfidenceLevel(confidenceLevel); err != nil {
		return nil, err
	}
	precision := DefaultExactPrecision
	if o.exactPrecision != nil {
		precision = *o.exactPrecision
	}
	if err := validateExactPrecision(precision); err != nil {
		return nil, err
	}

	if o.blender == nil {
		o.blender = LinearBlender{}
	}
	if o.plotter == nil {
		o.plotter = plot.NewHistogramPlotter()
	}
	if o.logger == nil {
		o.logger = internal.DefaultLogger
	}

	counts, cells := confusion.Build(labels, predictions)
	e := &Estimator{
		cells:           cells,
		counts:          counts,
		fingerprint:     core.SampleFingerprint(labels, predictions),
		population:      pop,
		confidenceLevel: confidenceLevel,
		exactPrecision:  precision,
		bootstrapper:    NewBootstrapper(),
		exact:           NewExactCalculator(),
		approx:          NewNormalApproximator(),
		blender:         o.blender,
		plotter:         o.plotter,
		logger:          o.logger,
	}
	e.logger.Debug("estimator ready: n=%d %s population=%d flagged=%d",
		len(cells), counts, pop.Size, pop.FlaggedCount)
	return e, nil
}

type computeRequest struct {
	iterations   int
	plotFilename string
	rng          *rand.Rand
}

// ComputeOption configures one Compute call
type ComputeOption func(*computeRequest)

// WithIterations sets the number of bootstrap resamples (default DefaultIterations)
func WithIterations(n int) ComputeOption {
	return func(r *computeRequest) { r.iterations = n }
}

// WithPlotFilename requests one histogram per metric, named
// <stem>_<metric><ext>; ext defaults to .png. Empty disables plotting.
func WithPlotFilename(name string) ComputeOption {
	return func(r *computeRequest) { r.plotFilename = name }
}

// WithRand supplies the resampling source; by default each call seeds a fresh one
func WithRand(rng *rand.Rand) ComputeOption {
	return func(r *computeRequest) { r.rng = rng }
}

// Compute bootstraps the sample and returns one Result per metric in the
// order positive rate, PPV, NPV, recall. Previously returned results are
// never touched.
func (e *Estimator) Compute(ctx context.Context, opts ...ComputeOption) (metrics.Set, error) {
	req := computeRequest{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(&req)
	}
	if err := validateComputeRequest(req); err != nil {
		return metrics.Set{}, err
	}
	rng := req.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	dists, err := e.bootstrapper.Resample(ctx, e.cells, e.population, req.iterations, rng)
	if err != nil {
		return metrics.Set{}, errors.Wrap(err, "bootstrap interrupted")
	}
	for _, m := range metrics.All {
		e.logger.Trace("%s: %d of %d resamples defined", m, len(dists[m]), req.iterations)
		if len(dists[m]) == 0 {
			return metrics.Set{}, errors.NumericalDegeneracy(m.String())
		}
	}

	var results metrics.Set
	for _, m := range metrics.All {
		result, err := e.interval(m, dists[m])
		if err != nil {
			return metrics.Set{}, err
		}
		results[m] = result
	}

	if req.plotFilename != "" {
		if err := e.plot(ctx, req.plotFilename, dists); err != nil {
			return metrics.Set{}, err
		}
	}

	return results, nil
}

func (e *Estimator) interval(m metrics.Metric, dist []float64) (metrics.Result, error) {
	summary, err := e.approx.Summarize(dist, e.confidenceLevel)
	if err != nil {
		return metrics.Result{}, errors.Wrapf(err, "failed to summarize %s distribution", m)
	}
	exact := e.exact.Interval(m, e.counts, e.population, e.confidenceLevel)
	blended := e.blender.Blend(exact, summary.Approx, e.exactPrecision)

	num, den := m.Ratio(e.counts)
	estimate, _ := m.Value(e.counts)

	return metrics.NewResult(metrics.ResultParams{
		Metric:          m,
		Numerator:       num,
		Denominator:     den,
		Estimate:        estimate,
		Exact:           exact,
		Approx:          summary.Approx,
		Percentile:      summary.Percentile,
		Blended:         blended,
		BootstrapMean:   summary.Mean,
		BootstrapSE:     summary.StdErr,
		Resamples:       len(dist),
		ConfidenceLevel: e.confidenceLevel,
		ExactPrecision:  e.exactPrecision,
	}), nil
}

func (e *Estimator) plot(ctx context.Context, filename string, dists Distributions) error {
	names := PlotFilenames(filename)
	for _, m := range metrics.All {
		if err := e.plotter.PlotDistribution(ctx, m.Title(), dists[m], names[m]); err != nil {
			return errors.PlotFailure(names[m], err)
		}
		e.logger.Debug("wrote %s histogram to %s", m, names[m])
	}
	return nil
}

// PlotFilenames derives the per-metric artifact names for a plot filename
func PlotFilenames(filename string) [metrics.Count]string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	if ext == "" {
		ext = ".png"
	}
	var names [metrics.Count]string
	for _, m := range metrics.All {
		names[m] = fmt.Sprintf("%s_%s%s", stem, m, ext)
	}
	return names
}

// Counts returns the confusion counts of the sample
func (e *Estimator) Counts() confusion.Counts { return e.counts }

// Population returns the population descriptor
func (e *Estimator) Population() Population { return e.population }

// SampleSize returns the number of labeled items
func (e *Estimator) SampleSize() int { return len(e.cells) }

// ConfidenceLevel returns the nominal two-sided coverage
func (e *Estimator) ConfidenceLevel() float64 { return e.confidenceLevel }

// ExactPrecision returns the exact interval weight
func (e *Estimator) ExactPrecision() float64 { return e.exactPrecision }

// String is deterministic and identical to GoString
func (e *Estimator) String() string {
	return fmt.Sprintf(
		"Estimator(sample_size=%d, %s, population_size=%d, population_flagged_count=%d, confidence_level=%.4f, exact_precision=%.4f, sample=%s)",
		len(e.cells), e.counts, e.population.Size, e.population.FlaggedCount,
		e.confidenceLevel, e.exactPrecision, e.fingerprint.Short(),
	)
}

// GoString makes %#v print the same summary as %v
func (e *Estimator) GoString() string { return e.String() }
