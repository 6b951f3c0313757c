package run

import (
	"testing"

	"classci/domain/core"
)

func seedPtr(v int64) *int64 { return &v }

func baseFingerprint() Fingerprint {
	return NewFingerprint(core.Hash("sample"), 1000, map[string]int{"cat": 10, "dog": 20}, 0.95, 0.05, 500, seedPtr(42), "run-1")
}

func TestFingerprint_Deterministic(t *testing.T) {
	fp1 := baseFingerprint()
	fp2 := NewFingerprint(core.Hash("sample"), 1000, map[string]int{"dog": 20, "cat": 10}, 0.95, 0.05, 500, seedPtr(42), "run-1")

	if fp1.Hash != fp2.Hash {
		t.Errorf("Fingerprints not identical: %s vs %s", fp1.Hash, fp2.Hash)
	}
	if fp1.Hash.IsEmpty() {
		t.Error("Fingerprint hash is empty")
	}
}

func TestFingerprint_Unique(t *testing.T) {
	base := baseFingerprint()

	testCases := []struct {
		name string
		fp   Fingerprint
	}{
		{"different sample", NewFingerprint(core.Hash("other"), 1000, map[string]int{"cat": 10, "dog": 20}, 0.95, 0.05, 500, seedPtr(42), "run-1")},
		{"different population", NewFingerprint(core.Hash("sample"), 1001, map[string]int{"cat": 10, "dog": 20}, 0.95, 0.05, 500, seedPtr(42), "run-1")},
		{"different flagged count", NewFingerprint(core.Hash("sample"), 1000, map[string]int{"cat": 11, "dog": 20}, 0.95, 0.05, 500, seedPtr(42), "run-1")},
		{"different confidence", NewFingerprint(core.Hash("sample"), 1000, map[string]int{"cat": 10, "dog": 20}, 0.9, 0.05, 500, seedPtr(42), "run-1")},
		{"different precision", NewFingerprint(core.Hash("sample"), 1000, map[string]int{"cat": 10, "dog": 20}, 0.95, 0.5, 500, seedPtr(42), "run-1")},
		{"different iterations", NewFingerprint(core.Hash("sample"), 1000, map[string]int{"cat": 10, "dog": 20}, 0.95, 0.05, 501, seedPtr(42), "run-1")},
		{"different seed", NewFingerprint(core.Hash("sample"), 1000, map[string]int{"cat": 10, "dog": 20}, 0.95, 0.05, 500, seedPtr(43), "run-1")},
		{"no seed", NewFingerprint(core.Hash("sample"), 1000, map[string]int{"cat": 10, "dog": 20}, 0.95, 0.05, 500, nil, "run-1")},
		{"different namespace", NewFingerprint(core.Hash("sample"), 1000, map[string]int{"cat": 10, "dog": 20}, 0.95, 0.05, 500, seedPtr(42), "run-2")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fp.Hash == base.Hash {
				t.Errorf("Fingerprint should differ when %s", tc.name)
			}
		})
	}
}

func TestManifest_Validate(t *testing.T) {
	valid := NewManifest(core.RunID("run-1"), KindOneVsRest, []string{"cat", "dog"}, baseFingerprint())
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}
	if !valid.Reproducible() {
		t.Error("seeded manifest should be reproducible")
	}

	testCases := []struct {
		name     string
		manifest *Manifest
	}{
		{"empty run id", NewManifest("", KindBinary, nil, baseFingerprint())},
		{"unknown kind", NewManifest("run-1", Kind("other"), nil, baseFingerprint())},
		{"one-vs-rest without classes", NewManifest("run-1", KindOneVsRest, nil, baseFingerprint())},
		{"empty sample hash", NewManifest("run-1", KindBinary, nil, Fingerprint{Hash: core.Hash("x")})},
		{"empty fingerprint", NewManifest("run-1", KindBinary, nil, Fingerprint{SampleHash: core.Hash("x")})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !core.IsConfigurationError(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}
