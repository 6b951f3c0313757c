package report

import (
	"fmt"
	"strings"
	"time"

	"classci/domain/metrics"
)

// Format selects how a Document is rendered
type Format string

const (
	TableOut    Format = "table"
	JSONOut     Format = "json"
	YAMLOut     Format = "yaml"
	CSVOut      Format = "csv"
	MarkdownOut Format = "markdown"
	HTMLOut     Format = "html"
)

// Formats lists every supported format
var Formats = []Format{TableOut, JSONOut, YAMLOut, CSVOut, MarkdownOut, HTMLOut}

// ParseFormat accepts a format name, case-insensitively; "md" is markdown
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		return MarkdownOut, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(names, ", "))
}

// Section is one estimator run: the whole sample for a binary run, or one
// class for a one-vs-rest run
type Section struct {
	Name                   string      `json:"name" yaml:"name"`
	SampleSize             int         `json:"sample_size" yaml:"sample_size"`
	PopulationSize         int         `json:"population_size" yaml:"population_size"`
	PopulationFlaggedCount int         `json:"population_flagged_count" yaml:"population_flagged_count"`
	Counts                 string      `json:"counts" yaml:"counts"`
	Results                metrics.Set `json:"results" yaml:"results"`
}

// Document is everything a report renders
type Document struct {
	RunID           string    `json:"run_id" yaml:"run_id"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	ConfidenceLevel float64   `json:"confidence_level" yaml:"confidence_level"`
	ExactPrecision  float64   `json:"exact_precision" yaml:"exact_precision"`
	Iterations      int       `json:"iterations" yaml:"iterations"`
	Seed            *int64    `json:"seed,omitempty" yaml:"seed,omitempty"`
	Fingerprint     string    `json:"fingerprint" yaml:"fingerprint"`
	Reproducible    bool      `json:"reproducible" yaml:"reproducible"`
	PlotFiles       []string  `json:"plot_files,omitempty" yaml:"plot_files,omitempty"`
	Sections        []Section `json:"sections" yaml:"sections"`
}

// Options tune the human-readable formats
type Options struct {
	Precision int
	UseColors bool
}

// DefaultOptions prints four decimals without colors
func DefaultOptions() Options {
	return Options{Precision: 4}
}

func (o Options) float(v float64) string {
	return fmt.Sprintf("%.*f", o.Precision, v)
}

func (o Options) interval(ci metrics.Interval) string {
	return fmt.Sprintf("[%s, %s]", o.float(ci.Lower), o.float(ci.Upper))
}
