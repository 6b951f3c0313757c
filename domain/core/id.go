package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// RunID identifies one estimation request and every result it produced.
	RunID ID
	// ClassKey names a class in a one-vs-rest decomposition.
	ClassKey ID
)

func (id RunID) String() string    { return ID(id).String() }
func (id ClassKey) String() string { return ID(id).String() }

// NewRunID creates a time-ordered run identifier
func NewRunID() RunID {
	return RunID(NewID())
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseClassKey parses a string into ClassKey
func ParseClassKey(s string) (ClassKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("class key cannot be empty")
	}
	return ClassKey(s), nil
}
