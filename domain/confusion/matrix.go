package confusion

import "fmt"

// Cell identifies which confusion-matrix cell a label/prediction pair falls into
type Cell uint8

const (
	TruePositive Cell = iota
	FalsePositive
	TrueNegative
	FalseNegative
)

// String returns the conventional abbreviation
func (c Cell) String() string {
	switch c {
	case TruePositive:
		return "TP"
	case FalsePositive:
		return "FP"
	case TrueNegative:
		return "TN"
	case FalseNegative:
		return "FN"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Classify maps a validated (label, prediction) pair to its cell.
func Classify(label, prediction int) Cell {
	switch {
	case label == 1 && prediction == 1:
		return TruePositive
	case label == 0 && prediction == 1:
		return FalsePositive
	case label == 0:
		return TrueNegative
	default:
		return FalseNegative
	}
}

// Counts holds the four cells of a binary confusion matrix
type Counts struct {
	TP int `json:"tp" yaml:"tp"`
	FP int `json:"fp" yaml:"fp"`
	TN int `json:"tn" yaml:"tn"`
	FN int `json:"fn" yaml:"fn"`
}

// Add increments the count for one cell
func (c *Counts) Add(cell Cell) {
	switch cell {
	case TruePositive:
		c.TP++
	case FalsePositive:
		c.FP++
	case TrueNegative:
		c.TN++
	case FalseNegative:
		c.FN++
	}
}

// N is the number of classified items
func (c Counts) N() int { return c.TP + c.FP + c.TN + c.FN }

// Flagged is the number of predicted positives
func (c Counts) Flagged() int { return c.TP + c.FP }

// Unflagged is the number of predicted negatives
func (c Counts) Unflagged() int { return c.TN + c.FN }

// Positives is the number of actual positives
func (c Counts) Positives() int { return c.TP + c.FN }

// String renders the counts in a fixed order
func (c Counts) String() string {
	return fmt.Sprintf("TP=%d FP=%d TN=%d FN=%d", c.TP, c.FP, c.TN, c.FN)
}

// Build derives confusion counts from aligned label/prediction sequences in
// one pass, together with the per-item cells used for resampling. Inputs are
// expected to be validated: equal length, values in {0, 1}.
func Build(labels, predictions []int) (Counts, []Cell) {
	var counts Counts
	cells := make([]Cell, len(labels))
	for i := range labels {
		cell := Classify(labels[i], predictions[i])
		cells[i] = cell
		counts.Add(cell)
	}
	return counts, cells
}

// FromCells tallies a sequence of cells
func FromCells(cells []Cell) Counts {
	var counts Counts
	for _, cell := range cells {
		counts.Add(cell)
	}
	return counts
}
