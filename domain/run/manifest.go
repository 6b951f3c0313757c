package run

import (
	"time"

	"classci/domain/core"
)

// Manifest records what a run computed and from which inputs
type Manifest struct {
	RunID       core.RunID  `json:"run_id" yaml:"run_id"`
	Kind        Kind        `json:"kind" yaml:"kind"`
	Classes     []string    `json:"classes,omitempty" yaml:"classes,omitempty"`
	Fingerprint Fingerprint `json:"fingerprint" yaml:"fingerprint"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
}

// NewManifest creates a manifest stamped with the current time
func NewManifest(runID core.RunID, kind Kind, classes []string, fingerprint Fingerprint) *Manifest {
	return &Manifest{
		RunID:       runID,
		Kind:        kind,
		Classes:     classes,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
	}
}

// Reproducible reports whether rerunning the manifest yields the same intervals
func (m *Manifest) Reproducible() bool {
	return m.Fingerprint.Seed != nil
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("run_manifest", "run_id cannot be empty")
	}
	if m.Kind != KindBinary && m.Kind != KindOneVsRest {
		return core.NewValidationError("run_manifest", "kind must be binary or one_vs_rest")
	}
	if m.Kind == KindOneVsRest && len(m.Classes) == 0 {
		return core.NewValidationError("run_manifest", "one_vs_rest runs need classes")
	}
	if m.Fingerprint.SampleHash.IsEmpty() {
		return core.NewValidationError("run_manifest", "sample_hash cannot be empty")
	}
	if m.Fingerprint.Hash.IsEmpty() {
		return core.NewValidationError("run_manifest", "fingerprint cannot be empty")
	}
	return nil
}
