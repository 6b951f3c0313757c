package intervals

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"classci/domain/core"
	"classci/internal/errors"
)

// validateSample rejects empty, misaligned or non-binary label/prediction sequences
func validateSample(labels, predictions []int) error {
	if len(labels) == 0 {
		return errors.InvalidConfiguration(fmt.Errorf("%w: sample_labels", core.ErrEmptySample))
	}
	if len(predictions) == 0 {
		return errors.InvalidConfiguration(fmt.Errorf("%w: sample_predictions", core.ErrEmptySample))
	}
	if len(labels) != len(predictions) {
		return errors.InvalidConfiguration(fmt.Errorf("%w: %d labels, %d predictions",
			core.ErrLengthMismatch, len(labels), len(predictions)))
	}
	for i, v := range labels {
		if v != 0 && v != 1 {
			return errors.InvalidConfiguration(fmt.Errorf("%w: sample_labels[%d]=%d", core.ErrNonBinaryValue, i, v))
		}
	}
	for i, v := range predictions {
		if v != 0 && v != 1 {
			return errors.InvalidConfiguration(fmt.Errorf("%w: sample_predictions[%d]=%d", core.ErrNonBinaryValue, i, v))
		}
	}
	return nil
}

// validatePopulation checks the population descriptor against the sample size
func validatePopulation(pop Population, sampleSize int) error {
	if pop.Size <= 0 {
		return errors.InvalidConfiguration(core.NewValidationError("population_size", fmt.Sprintf("must be positive, got %d", pop.Size)))
	}
	if pop.FlaggedCount < 0 {
		return errors.InvalidConfiguration(core.NewValidationError("population_flagged_count", fmt.Sprintf("must be non-negative, got %d", pop.FlaggedCount)))
	}
	if pop.Size < sampleSize {
		return errors.InvalidConfiguration(fmt.Errorf("%w: population_size=%d, sample size=%d",
			core.ErrPopulationTooSmall, pop.Size, sampleSize))
	}
	if pop.FlaggedCount > pop.Size {
		return errors.InvalidConfiguration(core.NewValidationError("population_flagged_count",
			fmt.Sprintf("%d exceeds population_size %d", pop.FlaggedCount, pop.Size)))
	}
	return nil
}

// validateConfidenceLevel requires a probability strictly inside (0, 1)
func validateConfidenceLevel(level float64) error {
	if math.IsNaN(level) || level <= 0 || level >= 1 {
		return errors.InvalidConfiguration(fmt.Errorf("%w: confidence_level must be strictly between 0 and 1, got %v",
			core.ErrProbabilityRange, level))
	}
	return nil
}

// validateExactPrecision requires a weight within [0, 1]
func validateExactPrecision(w float64) error {
	if math.IsNaN(w) || w < 0 || w > 1 {
		return errors.InvalidConfiguration(fmt.Errorf("%w: exact_precision must be within [0, 1], got %v",
			core.ErrProbabilityRange, w))
	}
	return nil
}

// validateComputeRequest checks the per-call arguments
func validateComputeRequest(req computeRequest) error {
	if req.iterations <= 0 {
		return errors.InvalidRequest("n_iters", fmt.Sprintf("must be a positive integer, got %d", req.iterations))
	}
	if req.plotFilename != "" {
		if err := validatePlotFilename(req.plotFilename); err != nil {
			return err
		}
	}
	return nil
}

// validatePlotFilename rejects names that cannot serve as a file path stem
func validatePlotFilename(name string) error {
	switch {
	case strings.ContainsRune(name, 0):
		return errors.InvalidRequest("plot_filename", "contains a NUL byte")
	case strings.TrimSpace(name) == "":
		return errors.InvalidRequest("plot_filename", "is blank")
	case strings.HasSuffix(name, "/") || strings.HasSuffix(name, string(filepath.Separator)):
		return errors.InvalidRequest("plot_filename", "names a directory")
	}
	base := filepath.Base(name)
	if base == "." || base == ".." {
		return errors.InvalidRequest("plot_filename", "names a directory")
	}
	return nil
}
