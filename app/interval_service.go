package app

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"classci/adapters/report"
	"classci/domain/core"
	"classci/domain/metrics"
	"classci/domain/run"
	"classci/internal"
	"classci/internal/analysis/intervals"
	"classci/internal/config"
	"classci/internal/errors"
	"classci/ports"

	"golang.org/x/sync/errgroup"
)

// IntervalService runs estimators for binary and one-vs-rest requests,
// filling unset request fields from the configured defaults
type IntervalService struct {
	defaults config.EstimationConfig
	rngPort  ports.RNGPort
	plotter  ports.DistributionPlotter
	logger   *internal.Logger
}

// EstimationOptions are the per-request knobs shared by both request kinds.
// Nil fields take the service defaults.
type EstimationOptions struct {
	ConfidenceLevel *float64 `json:"confidence_level,omitempty"`
	ExactPrecision  *float64 `json:"exact_precision,omitempty"`
	Iterations      *int     `json:"n_iters,omitempty"`
	Seed            *int64   `json:"seed,omitempty"`
	// RunID is generated when empty. With a seed, the same RunID reproduces a run.
	RunID core.RunID `json:"run_id,omitempty"`
	// PlotFilename requests histograms; see intervals.PlotFilenames
	PlotFilename string `json:"plot_filename,omitempty"`
}

// BinaryRequest estimates intervals for a binary classifier sample
type BinaryRequest struct {
	Labels                 []int `json:"labels"`
	Predictions            []int `json:"predictions"`
	PopulationSize         int   `json:"population_size"`
	PopulationFlaggedCount int   `json:"population_flagged_count"`
	EstimationOptions
}

// OneVsRestRequest estimates intervals for every class of a multi-class
// sample, treating each class in turn as the positive class
type OneVsRestRequest struct {
	Labels         []string `json:"labels"`
	Predictions    []string `json:"predictions"`
	PopulationSize int      `json:"population_size"`
	// FlaggedCounts is the number of population items predicted as each class
	FlaggedCounts map[string]int `json:"population_flagged_counts"`
	// DefaultFlaggedCount applies to classes missing from FlaggedCounts
	DefaultFlaggedCount *int `json:"default_flagged_count,omitempty"`
	EstimationOptions
}

// Section is the outcome of one estimator
type Section struct {
	Name      string
	Estimator *intervals.Estimator
	Results   metrics.Set
	PlotFiles []string
}

// Run is the outcome of one request
type Run struct {
	RunID           core.RunID
	Manifest        *run.Manifest
	CreatedAt       time.Time
	ConfidenceLevel float64
	ExactPrecision  float64
	Iterations      int
	Seed            *int64
	Sections        []Section
}

// PlotFiles lists every artifact written by the run
func (r *Run) PlotFiles() []string {
	var files []string
	for _, s := range r.Sections {
		files = append(files, s.PlotFiles...)
	}
	return files
}

// Document converts the run for rendering
func (r *Run) Document() report.Document {
	doc := report.Document{
		RunID:           r.RunID.String(),
		CreatedAt:       r.CreatedAt,
		ConfidenceLevel: r.ConfidenceLevel,
		ExactPrecision:  r.ExactPrecision,
		Iterations:      r.Iterations,
		Seed:            r.Seed,
		Fingerprint:     r.Manifest.Fingerprint.Hash.String(),
		Reproducible:    r.Manifest.Reproducible(),
		PlotFiles:       r.PlotFiles(),
		Sections:        make([]report.Section, len(r.Sections)),
	}
	for i, s := range r.Sections {
		pop := s.Estimator.Population()
		doc.Sections[i] = report.Section{
			Name:                   s.Name,
			SampleSize:             s.Estimator.SampleSize(),
			PopulationSize:         pop.Size,
			PopulationFlaggedCount: pop.FlaggedCount,
			Counts:                 s.Estimator.Counts().String(),
			Results:                s.Results,
		}
	}
	return doc
}

// NewIntervalService creates an interval service. A nil plotter keeps the
// estimator's histogram default.
func NewIntervalService(defaults config.EstimationConfig, rngPort ports.RNGPort, plotter ports.DistributionPlotter, logger *internal.Logger) *IntervalService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &IntervalService{
		defaults: defaults,
		rngPort:  rngPort,
		plotter:  plotter,
		logger:   logger,
	}
}

// resolved is EstimationOptions with every default applied
type resolved struct {
	runID           core.RunID
	seedNamespace   string
	confidenceLevel float64
	exactPrecision  float64
	iterations      int
	seed            *int64
}

func (s *IntervalService) resolve(opts EstimationOptions) resolved {
	r := resolved{
		runID:           opts.RunID,
		seedNamespace:   opts.RunID.String(),
		confidenceLevel: s.defaults.ConfidenceLevel,
		exactPrecision:  s.defaults.ExactPrecision,
		iterations:      s.defaults.Iterations,
		seed:            s.defaults.Seed,
	}
	if r.runID == "" {
		r.runID = core.NewRunID()
	}
	if opts.ConfidenceLevel != nil {
		r.confidenceLevel = *opts.ConfidenceLevel
	}
	if opts.ExactPrecision != nil {
		r.exactPrecision = *opts.ExactPrecision
	}
	if opts.Iterations != nil {
		r.iterations = *opts.Iterations
	}
	if opts.Seed != nil {
		r.seed = opts.Seed
	}
	return r
}

func (s *IntervalService) newRun(r resolved, sections int, manifest *run.Manifest) *Run {
	return &Run{
		RunID:           r.runID,
		Manifest:        manifest,
		CreatedAt:       manifest.CreatedAt,
		ConfidenceLevel: r.confidenceLevel,
		ExactPrecision:  r.exactPrecision,
		Iterations:      r.iterations,
		Seed:            r.seed,
		Sections:        make([]Section, sections),
	}
}

func (s *IntervalService) estimatorOptions(r resolved, logger *internal.Logger) []intervals.Option {
	opts := []intervals.Option{
		intervals.WithExactPrecision(r.exactPrecision),
		intervals.WithLogger(logger),
	}
	if s.plotter != nil {
		opts = append(opts, intervals.WithPlotter(s.plotter))
	}
	return opts
}

// stream returns the resampling source for one scope of a run
func (s *IntervalService) stream(ctx context.Context, r resolved, scope string) (*rand.Rand, error) {
	if r.seed == nil {
		return s.rngPort.Fresh(), nil
	}
	return s.rngPort.Stream(ctx, r.seedNamespace, scope, *r.seed)
}

// estimate builds one estimator and computes its intervals
func (s *IntervalService) estimate(ctx context.Context, r resolved, name, scope string, labels, predictions []int, size, flagged int, plotFilename string) (Section, error) {
	logger := s.logger.With("run_id", r.runID.String()).With("section", name)

	estimator, err := intervals.New(labels, predictions, size, flagged, r.confidenceLevel, s.estimatorOptions(r, logger)...)
	if err != nil {
		return Section{}, err
	}

	rng, err := s.stream(ctx, r, scope)
	if err != nil {
		return Section{}, errors.Wrap(err, "failed to create random stream")
	}

	computeOpts := []intervals.ComputeOption{
		intervals.WithIterations(r.iterations),
		intervals.WithRand(rng),
	}
	if plotFilename != "" {
		computeOpts = append(computeOpts, intervals.WithPlotFilename(plotFilename))
	}

	results, err := estimator.Compute(ctx, computeOpts...)
	if err != nil {
		return Section{}, err
	}

	section := Section{Name: name, Estimator: estimator, Results: results}
	if plotFilename != "" {
		names := intervals.PlotFilenames(plotFilename)
		section.PlotFiles = names[:]
	}
	logger.Info("computed %d intervals from %d resamples", metrics.Count, r.iterations)
	return section, nil
}

// EstimateBinary computes the four intervals of a binary sample
func (s *IntervalService) EstimateBinary(ctx context.Context, req BinaryRequest) (*Run, error) {
	start := time.Now()
	r := s.resolve(req.EstimationOptions)

	section, err := s.estimate(ctx, r, "binary", "binary", req.Labels, req.Predictions,
		req.PopulationSize, req.PopulationFlaggedCount, req.PlotFilename)
	if err != nil {
		s.logger.Error("run %s failed: %v", r.runID, err)
		return nil, err
	}

	fingerprint := run.NewFingerprint(core.SampleFingerprint(req.Labels, req.Predictions), req.PopulationSize,
		map[string]int{section.Name: req.PopulationFlaggedCount},
		r.confidenceLevel, r.exactPrecision, r.iterations, r.seed, r.seedNamespace)
	out := s.newRun(r, 1, run.NewManifest(r.runID, run.KindBinary, nil, fingerprint))
	out.Sections[0] = section
	s.logger.Info("run %s finished in %s", r.runID, time.Since(start))
	return out, nil
}

// EstimateOneVsRest computes the four intervals of every class, one
// estimator per class, concurrently. Classes are reported in sorted order.
func (s *IntervalService) EstimateOneVsRest(ctx context.Context, req OneVsRestRequest) (*Run, error) {
	start := time.Now()
	r := s.resolve(req.EstimationOptions)

	if len(req.Labels) == 0 || len(req.Predictions) == 0 {
		return nil, errors.InvalidConfiguration(fmt.Errorf("%w: labels and predictions are required", core.ErrEmptySample))
	}
	if len(req.Labels) != len(req.Predictions) {
		return nil, errors.InvalidConfiguration(fmt.Errorf("%w: %d labels, %d predictions",
			core.ErrLengthMismatch, len(req.Labels), len(req.Predictions)))
	}

	classes := Classes(req.Labels, req.Predictions)
	flagged := make([]int, len(classes))
	for i, class := range classes {
		count, ok := req.FlaggedCounts[class]
		if !ok {
			if req.DefaultFlaggedCount == nil {
				return nil, errors.InvalidConfiguration(core.NewValidationError("population_flagged_counts",
					fmt.Sprintf("missing class %q and no default given", class)))
			}
			count = *req.DefaultFlaggedCount
		}
		flagged[i] = count
	}

	counts := make(map[string]int, len(classes))
	for i, class := range classes {
		counts[class] = flagged[i]
	}
	fingerprint := run.NewFingerprint(core.ClassSampleFingerprint(req.Labels, req.Predictions), req.PopulationSize,
		counts, r.confidenceLevel, r.exactPrecision, r.iterations, r.seed, r.seedNamespace)
	out := s.newRun(r, len(classes), run.NewManifest(r.runID, run.KindOneVsRest, classes, fingerprint))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, class := range classes {
		i, class := i, class
		g.Go(func() error {
			labels, predictions := OneHot(req.Labels, req.Predictions, class)
			section, err := s.estimate(gctx, r, class, "class:"+class, labels, predictions,
				req.PopulationSize, flagged[i], ClassPlotFilename(req.PlotFilename, class))
			if err != nil {
				return errors.Wrapf(err, "class %q", class)
			}
			out.Sections[i] = section
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("run %s failed: %v", r.runID, err)
		return nil, err
	}

	s.logger.Info("run %s finished %d classes in %s", r.runID, len(classes), time.Since(start))
	return out, nil
}

// Classes returns the sorted distinct classes seen in labels or predictions
func Classes(labels, predictions []string) []string {
	seen := make(map[string]struct{})
	for _, v := range labels {
		seen[v] = struct{}{}
	}
	for _, v := range predictions {
		seen[v] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Strings(classes)
	return classes
}

// OneHot encodes class as 1 and every other class as 0
func OneHot(labels, predictions []string, class string) ([]int, []int) {
	l := make([]int, len(labels))
	p := make([]int, len(predictions))
	for i := range labels {
		if labels[i] == class {
			l[i] = 1
		}
		if predictions[i] == class {
			p[i] = 1
		}
	}
	return l, p
}

// ClassPlotFilename inserts a file-safe class name before the extension
func ClassPlotFilename(filename, class string) string {
	if filename == "" {
		return ""
	}
	ext := filepath.Ext(filename)
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, class)
	return strings.TrimSuffix(filename, ext) + "_" + safe + ext
}
