package run

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"classci/domain/core"
)

// Kind distinguishes binary runs from one-vs-rest runs
type Kind string

const (
	KindBinary    Kind = "binary"
	KindOneVsRest Kind = "one_vs_rest"
)

// Fingerprint identifies every input that determines a run's results.
// Two seeded runs with equal fingerprints produce identical intervals.
type Fingerprint struct {
	SampleHash      core.Hash      `json:"sample_hash" yaml:"sample_hash"`
	PopulationSize  int            `json:"population_size" yaml:"population_size"`
	FlaggedCounts   map[string]int `json:"flagged_counts" yaml:"flagged_counts"`
	ConfidenceLevel float64        `json:"confidence_level" yaml:"confidence_level"`
	ExactPrecision  float64        `json:"exact_precision" yaml:"exact_precision"`
	Iterations      int            `json:"iterations" yaml:"iterations"`
	Seed            *int64         `json:"seed,omitempty" yaml:"seed,omitempty"`
	SeedNamespace   string         `json:"seed_namespace,omitempty" yaml:"seed_namespace,omitempty"`
	Hash            core.Hash      `json:"hash" yaml:"hash"` // hash of all above
}

// NewFingerprint computes the fingerprint hash of the given parameters
func NewFingerprint(sampleHash core.Hash, populationSize int, flaggedCounts map[string]int,
	confidenceLevel, exactPrecision float64, iterations int, seed *int64, seedNamespace string) Fingerprint {

	fp := Fingerprint{
		SampleHash:      sampleHash,
		PopulationSize:  populationSize,
		FlaggedCounts:   flaggedCounts,
		ConfidenceLevel: confidenceLevel,
		ExactPrecision:  exactPrecision,
		Iterations:      iterations,
		Seed:            seed,
		SeedNamespace:   seedNamespace,
	}
	fp.Hash = computeFingerprint(fp)
	return fp
}

// computeFingerprint hashes a canonical string; flagged counts are sorted by class
func computeFingerprint(fp Fingerprint) core.Hash {
	classes := make([]string, 0, len(fp.FlaggedCounts))
	for class := range fp.FlaggedCounts {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	counts := make([]string, len(classes))
	for i, class := range classes {
		counts[i] = fmt.Sprintf("%q=%d", class, fp.FlaggedCounts[class])
	}

	seed := "fresh"
	if fp.Seed != nil {
		seed = fmt.Sprintf("%d@%q", *fp.Seed, fp.SeedNamespace)
	}

	data := fmt.Sprintf("sample:%s|population:%d|flagged:%s|confidence:%v|precision:%v|iterations:%d|seed:%s",
		fp.SampleHash, fp.PopulationSize, strings.Join(counts, ","), fp.ConfidenceLevel, fp.ExactPrecision, fp.Iterations, seed)

	hash := sha256.Sum256([]byte(data))
	return core.Hash(fmt.Sprintf("%x", hash))
}
