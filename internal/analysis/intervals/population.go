package intervals

import (
	"math"

	"classci/domain/confusion"
	"classci/domain/metrics"
)

// Population describes the finite universe a sample was drawn from
type Population struct {
	Size         int `json:"population_size" yaml:"population_size"`
	FlaggedCount int `json:"population_flagged_count" yaml:"population_flagged_count"`
}

// Unflagged is the number of population items the classifier did not flag
func (p Population) Unflagged() int {
	return p.Size - p.FlaggedCount
}

// subpopulationSize is the size of the population counterpart of a metric's
// denominator: every item for the positive rate, flagged items for PPV,
// unflagged items for NPV and the estimated actual positives for recall.
// It is never smaller than the sample denominator.
func subpopulationSize(m metrics.Metric, c confusion.Counts, pop Population) int {
	_, den := m.Ratio(c)
	var size int
	switch m {
	case metrics.PositiveRate:
		size = pop.Size
	case metrics.PPV:
		size = pop.FlaggedCount
	case metrics.NPV:
		size = pop.Unflagged()
	case metrics.Recall:
		size = estimatedPopulationPositives(c, pop)
	}
	if size < den {
		size = den
	}
	return size
}

// estimatedPopulationPositives extrapolates the number of actual positives in
// the population by stratifying on the known flagged count:
// F*PPV + (P-F)*(1-NPV). Falls back to the sample prevalence when either
// predictive value is undefined.
func estimatedPopulationPositives(c confusion.Counts, pop Population) int {
	estimate := float64(pop.Size) * float64(c.Positives()) / float64(c.N())
	ppv, okPPV := metrics.PPV.Value(c)
	npv, okNPV := metrics.NPV.Value(c)
	if okPPV && okNPV {
		estimate = float64(pop.FlaggedCount)*ppv + float64(pop.Unflagged())*(1-npv)
	}

	k := int(math.Round(estimate))
	if k > pop.Size {
		k = pop.Size
	}
	if k < c.Positives() {
		k = c.Positives()
	}
	return k
}

// finitePopulationScale is the square root of the finite population
// correction (Np-n)/(Np-1): the factor by which a with-replacement spread
// shrinks when n of Np items are drawn without replacement
func finitePopulationScale(subpopulation, drawn int) float64 {
	if subpopulation <= 1 || drawn >= subpopulation {
		return 0
	}
	fpc := float64(subpopulation-drawn) / float64(subpopulation-1)
	return math.Sqrt(math.Max(0, math.Min(1, fpc)))
}
