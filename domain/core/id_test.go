package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{"run-123", RunID("run-123"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseRunID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestParseClassKey tests class key parsing
func TestParseClassKey(t *testing.T) {
	key, err := ParseClassKey("setosa")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key.String() != "setosa" {
		t.Errorf("Expected 'setosa', got '%s'", key)
	}
	if _, err := ParseClassKey(" "); err == nil {
		t.Error("Expected error for blank class key")
	}
}

// TestSampleFingerprint tests that fingerprints are order sensitive and stable
func TestSampleFingerprint(t *testing.T) {
	a := SampleFingerprint([]int{1, 0, 1}, []int{1, 1, 0})
	b := SampleFingerprint([]int{1, 0, 1}, []int{1, 1, 0})
	c := SampleFingerprint([]int{0, 1, 1}, []int{1, 1, 0})

	if a != b {
		t.Errorf("Expected identical fingerprints, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected reordered sample to change the fingerprint")
	}
	if len(a.Short()) != 12 {
		t.Errorf("Expected 12 character short hash, got %q", a.Short())
	}
}
