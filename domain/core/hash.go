package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough to tell samples apart in logs
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// SampleFingerprint hashes aligned label/prediction pairs in order.
func SampleFingerprint(labels, predictions []int) Hash {
	var data strings.Builder
	data.Grow(4 * len(labels))
	for i := range labels {
		data.WriteString(strconv.Itoa(labels[i]))
		data.WriteByte(':')
		if i < len(predictions) {
			data.WriteString(strconv.Itoa(predictions[i]))
		}
		data.WriteByte(',')
	}
	return NewHash([]byte(data.String()))
}

// ClassSampleFingerprint hashes aligned class label/prediction pairs in order
func ClassSampleFingerprint(labels, predictions []string) Hash {
	var data strings.Builder
	for i := range labels {
		data.WriteString(strconv.Quote(labels[i]))
		data.WriteByte(':')
		if i < len(predictions) {
			data.WriteString(strconv.Quote(predictions[i]))
		}
		data.WriteByte(',')
	}
	return NewHash([]byte(data.String()))
}
