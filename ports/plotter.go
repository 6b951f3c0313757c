package ports

import "context"

// DistributionPlotter renders a bootstrap distribution to an image artifact.
// One call writes exactly one file; any failure to do so is returned.
type DistributionPlotter interface {
	PlotDistribution(ctx context.Context, label string, values []float64, filename string) error
}
