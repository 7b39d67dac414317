package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	ledgerPath := filepath.Join(t.TempDir(), "ledger.csv")
	_, _, err := runCLI(t, "classify", sampleCSV, "-o", ledgerPath)
	require.NoError(t, err)

	out, _, err := runCLI(t, "summary", ledgerPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "Amazon Bank Account")
	assert.Contains(t, out, "SIMPL-PAY")
	assert.Contains(t, out, "spam credits")
}

func TestSummary_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "summary", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "smsledger version dev")
}
