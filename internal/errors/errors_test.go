package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"classci/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestCodesWrapDomainSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     string
		sentinel error
	}{
		{"configuration", InvalidConfiguration(core.ErrEmptySample), CodeInvalidConfiguration, core.ErrInvalidConfiguration},
		{"request", InvalidRequest("n_iters", "must be positive"), CodeInvalidRequest, core.ErrInvalidRequest},
		{"degeneracy", NumericalDegeneracy("ppv"), CodeNumericalDegeneracy, core.ErrNumericalDegeneracy},
		{"plot", PlotFailure("out.png", fmt.Errorf("disk full")), CodePlotFailure, core.ErrPlotFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetCode(tt.err))
			assert.True(t, stderrors.Is(tt.err, tt.sentinel))
			assert.True(t, IsAppError(tt.err))
		})
	}
}

func TestWrapKeepsCode(t *testing.T) {
	base := NumericalDegeneracy("npv")
	wrapped := Wrapf(base, "class %s", "setosa")

	assert.Equal(t, CodeNumericalDegeneracy, GetCode(wrapped))
	assert.True(t, core.IsDegeneracyError(wrapped))
	assert.Contains(t, wrapped.Error(), "class setosa")

	plain := Wrap(fmt.Errorf("boom"), "context")
	assert.Equal(t, CodeInternalError, GetCode(plain))
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}
