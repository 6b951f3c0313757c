package main

import (
	"fmt"
	"io"
	"os"

	"classci/adapters/excel"
	"classci/adapters/report"
	"classci/adapters/rng"
	"classci/app"
	"classci/domain/core"
	"classci/internal"
	"classci/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "classci",
		Short:         "Finite-population confidence intervals for classifier metrics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newEstimateCmd(),
		newOneVsRestCmd(),
	)
	return rootCmd
}

// sharedFlags are the flags common to every estimation command
type sharedFlags struct {
	file             string
	labelColumn      string
	predictionColumn string
	populationSize   int
	confidence       float64
	exactPrecision   float64
	iterations       int
	seed             int64
	runID            string
	plot             string
	format           string
	color            bool
}

func (f *sharedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "CSV or XLSX file holding the labeled sample")
	cmd.Flags().StringVar(&f.labelColumn, "label-column", "label", "Column with the true labels")
	cmd.Flags().StringVar(&f.predictionColumn, "prediction-column", "prediction", "Column with the classifier predictions")
	cmd.Flags().IntVar(&f.populationSize, "population-size", 0, "Number of items in the population")
	cmd.Flags().Float64Var(&f.confidence, "confidence", 0.95, "Two-sided confidence level (default from CCI_CONFIDENCE_LEVEL)")
	cmd.Flags().Float64Var(&f.exactPrecision, "exact-precision", config.DefaultExactPrecision, "Weight of the exact interval in [0, 1] (default from CCI_EXACT_PRECISION)")
	cmd.Flags().IntVar(&f.iterations, "iterations", 1000, "Bootstrap resamples (default from CCI_ITERATIONS)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Seed for reproducible resampling (default from CCI_SEED)")
	cmd.Flags().StringVar(&f.runID, "run-id", "", "Run identifier; with --seed it makes runs reproducible")
	cmd.Flags().StringVar(&f.plot, "plot", "", "Write one histogram per metric, named <stem>_<metric><ext>")
	cmd.Flags().StringVar(&f.format, "format", "table", "Output format: table, json, yaml, csv, markdown, html")
	cmd.Flags().BoolVar(&f.color, "color", false, "Colorize table output")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("population-size")
}

// options copies only the flags the user set, so configuration supplies the rest
func (f *sharedFlags) options(cmd *cobra.Command) app.EstimationOptions {
	opts := app.EstimationOptions{PlotFilename: f.plot}
	opts.RunID = core.RunID(f.runID)
	if cmd.Flags().Changed("confidence") {
		opts.ConfidenceLevel = &f.confidence
	}
	if cmd.Flags().Changed("exact-precision") {
		opts.ExactPrecision = &f.exactPrecision
	}
	if cmd.Flags().Changed("iterations") {
		opts.Iterations = &f.iterations
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = &f.seed
	}
	return opts
}

func (f *sharedFlags) service() (*app.IntervalService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
	return app.NewIntervalService(cfg.Estimation, rng.NewAdapter(), nil, logger), nil
}

func (f *sharedFlags) write(w io.Writer, run *app.Run) error {
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}
	opts := report.DefaultOptions()
	opts.UseColors = f.color
	return report.Write(w, format, run.Document(), opts)
}

func newEstimateCmd() *cobra.Command {
	var flags sharedFlags
	var flaggedCount int

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate intervals for a binary classifier",
		Long: `Estimate confidence intervals for the positive rate, PPV, NPV and recall
of a binary classifier from a labeled sample of a finite population.

Example: classci estimate --file sample.csv --population-size 100000 --flagged-count 4200 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := report.ParseFormat(flags.format); err != nil {
				return err
			}
			labels, predictions, err := excel.ReadSample(flags.file, flags.labelColumn, flags.predictionColumn)
			if err != nil {
				return err
			}
			svc, err := flags.service()
			if err != nil {
				return err
			}
			run, err := svc.EstimateBinary(cmd.Context(), app.BinaryRequest{
				Labels:                 labels,
				Predictions:            predictions,
				PopulationSize:         flags.populationSize,
				PopulationFlaggedCount: flaggedCount,
				EstimationOptions:      flags.options(cmd),
			})
			if err != nil {
				return err
			}
			return flags.write(cmd.OutOrStdout(), run)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&flaggedCount, "flagged-count", 0, "Number of population items the classifier flagged")
	_ = cmd.MarkFlagRequired("flagged-count")
	return cmd
}

func newOneVsRestCmd() *cobra.Command {
	var flags sharedFlags
	var flaggedCounts map[string]int
	var defaultFlagged int

	cmd := &cobra.Command{
		Use:   "one-vs-rest",
		Short: "Estimate intervals for every class of a multi-class classifier",
		Long: `Treat each class in turn as the positive class and estimate its intervals.

Example: classci one-vs-rest --file sample.xlsx --population-size 50000 --flagged-count-for cat=20000,dog=18000 --default-flagged-count 12000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := report.ParseFormat(flags.format); err != nil {
				return err
			}
			labels, predictions, err := excel.ReadClassSample(flags.file, flags.labelColumn, flags.predictionColumn)
			if err != nil {
				return err
			}
			svc, err := flags.service()
			if err != nil {
				return err
			}
			req := app.OneVsRestRequest{
				Labels:            labels,
				Predictions:       predictions,
				PopulationSize:    flags.populationSize,
				FlaggedCounts:     flaggedCounts,
				EstimationOptions: flags.options(cmd),
			}
			if cmd.Flags().Changed("default-flagged-count") {
				req.DefaultFlaggedCount = &defaultFlagged
			}
			run, err := svc.EstimateOneVsRest(cmd.Context(), req)
			if err != nil {
				return err
			}
			return flags.write(cmd.OutOrStdout(), run)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringToIntVar(&flaggedCounts, "flagged-count-for", nil, "Population items predicted as each class, e.g. cat=120,dog=80")
	cmd.Flags().IntVar(&defaultFlagged, "default-flagged-count", 0, "Flagged count for classes missing from --flagged-count-for")
	return cmd
}
