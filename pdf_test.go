package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReportPDF(t *testing.T) {
	report := "       3       6      28 notes.txt\n" +
		"       1       2      11 other.txt\n" +
		"       4       8      39 total\n"
	path := filepath.Join(t.TempDir(), "report.pdf")

	require.NoError(t, writeReportPDF(report, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteReportPDFBadPath(t *testing.T) {
	err := writeReportPDF("       1 x\n", filepath.Join(t.TempDir(), "missing", "report.pdf"))
	assert.Error(t, err)
}
