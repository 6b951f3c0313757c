package errors

import (
	stderrors "errors"
	"fmt"

	"classci/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is, or wraps, an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeNumericalDegeneracy  = "NUMERICAL_DEGENERACY"
	CodePlotFailure          = "PLOT_FAILURE"
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInternalError        = "INTERNAL_ERROR"
)

// InvalidConfiguration reports a rejected estimator argument; cause should wrap core.ErrInvalidConfiguration
func InvalidConfiguration(cause error) *AppError {
	return &AppError{Code: CodeInvalidConfiguration, Message: "invalid estimator configuration", Cause: cause}
}

// InvalidRequest reports a rejected compute argument
func InvalidRequest(field, reason string) *AppError {
	return &AppError{
		Code:    CodeInvalidRequest,
		Message: "invalid computation request",
		Cause:   core.NewRequestError(field, reason),
	}
}

// NumericalDegeneracy reports a metric whose bootstrap distribution is empty
func NumericalDegeneracy(metric string) *AppError {
	return &AppError{
		Code:    CodeNumericalDegeneracy,
		Message: "cannot compute interval",
		Cause:   core.NewDegeneracyError(metric),
	}
}

// PlotFailure reports that the plotting collaborator could not write its artifact
func PlotFailure(filename string, cause error) *AppError {
	return &AppError{
		Code:    CodePlotFailure,
		Message: fmt.Sprintf("failed to plot %s", filename),
		Cause:   fmt.Errorf("%w: %w", core.ErrPlotFailure, cause),
	}
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
