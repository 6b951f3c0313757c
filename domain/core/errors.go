package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Construction-time errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrEmptySample          = fmt.Errorf("%w: empty sample", ErrInvalidConfiguration)
	ErrLengthMismatch       = fmt.Errorf("%w: labels and predictions differ in length", ErrInvalidConfiguration)
	ErrNonBinaryValue       = fmt.Errorf("%w: value outside {0, 1}", ErrInvalidConfiguration)
	ErrPopulationTooSmall   = fmt.Errorf("%w: population smaller than sample", ErrInvalidConfiguration)
	ErrProbabilityRange     = fmt.Errorf("%w: probability out of range", ErrInvalidConfiguration)

	// Compute-time errors
	ErrInvalidRequest      = errors.New("invalid computation request")
	ErrNumericalDegeneracy = errors.New("numerical degeneracy")
	ErrPlotFailure         = errors.New("plot failure")
)

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfiguration, field, reason)
}

func NewRequestError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidRequest, field, reason)
}

func NewDegeneracyError(metric string) error {
	return fmt.Errorf("%w: no resample produced a defined %s", ErrNumericalDegeneracy, metric)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

func IsRequestError(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

func IsDegeneracyError(err error) bool {
	return errors.Is(err, ErrNumericalDegeneracy)
}

func IsPlotError(err error) bool {
	return errors.Is(err, ErrPlotFailure)
}
