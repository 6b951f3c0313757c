package plot

import (
	"context"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// HistogramPlotter renders bootstrap distributions as histograms with gonum/plot.
// The output format follows the filename extension (png, svg, pdf, jpg...).
type HistogramPlotter struct {
	Bins   int
	Width  vg.Length
	Height vg.Length
}

// NewHistogramPlotter creates a plotter with 30 bins on a 8x5 inch canvas
func NewHistogramPlotter() *HistogramPlotter {
	return &HistogramPlotter{
		Bins:   30,
		Width:  8 * vg.Inch,
		Height: 5 * vg.Inch,
	}
}

// PlotDistribution writes one histogram of values to filename
func (hp *HistogramPlotter) PlotDistribution(ctx context.Context, label string, values []float64, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no values to plot for %s", label)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: bootstrap distribution (%d resamples)", label, len(values))
	p.X.Label.Text = label
	p.Y.Label.Text = "Resamples"

	hist, err := plotter.NewHist(plotter.Values(values), hp.Bins)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(hp.Width, hp.Height, filename); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}
