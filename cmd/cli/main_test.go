package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimateCommand(t *testing.T) {
	file := writeSample(t, "label,prediction\n1,1\n1,0\n0,0\n0,1\n1,1\n0,0\n1,1\n0,0\n")

	out, err := execute(t, "estimate", "--file", file, "--population-size", "2000", "--flagged-count", "900",
		"--iterations", "80", "--seed", "5", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Iterations int `json:"iterations"`
		Sections   []struct {
			Counts string `json:"counts"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 80, doc.Iterations)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "TP=3 FP=1 TN=3 FN=1", doc.Sections[0].Counts)
}

func TestEstimateCommandTable(t *testing.T) {
	file := writeSample(t, "label,prediction\n1,1\n1,0\n0,0\n0,1\n1,1\n0,0\n")

	out, err := execute(t, "estimate", "--file", file, "--population-size", "500", "--flagged-count", "200", "--iterations", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Recall")
	assert.Contains(t, out, "binary")
}

func TestEstimateCommandErrors(t *testing.T) {
	file := writeSample(t, "label,prediction\n1,1\n0,0\n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing population", []string{"estimate", "--file", file, "--flagged-count", "1"}},
		{"bad format", []string{"estimate", "--file", file, "--population-size", "10", "--flagged-count", "1", "--format", "xml"}},
		{"population too small", []string{"estimate", "--file", file, "--population-size", "1", "--flagged-count", "1"}},
		{"missing column", []string{"estimate", "--file", file, "--population-size", "10", "--flagged-count", "1", "--label-column", "truth"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestOneVsRestCommand(t *testing.T) {
	file := writeSample(t, "label,prediction\ncat,cat\ncat,dog\ndog,dog\ndog,dog\nbird,bird\nbird,cat\ncat,cat\nbird,bird\n")

	out, err := execute(t, "one-vs-rest", "--file", file, "--population-size", "900",
		"--flagged-count-for", "cat=300,dog=300", "--default-flagged-count", "300",
		"--iterations", "60", "--seed", "9", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## bird")
	assert.Contains(t, out, "## cat")
	assert.Contains(t, out, "## dog")
}
