package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCommand builds a throwaway command whose error stream is captured
// and whose report goes to a file instead of stdout.
func newTestCommand(t *testing.T, diag *bytes.Buffer) (*cobra.Command, string) {
	t.Helper()
	cmd := &cobra.Command{Use: "tally"}
	cmd.SetOut(io.Discard)
	cmd.SetErr(diag)

	reportPath := filepath.Join(t.TempDir(), "report.txt")
	prev := outputFile
	outputFile = reportPath
	t.Cleanup(func() { outputFile = prev })

	return cmd, reportPath
}

func TestRunMainAllInputsSucceed(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "one line\n")
	b := writeTestFile(t, dir, "b.txt", "two more lines\nhere\n")

	var diag bytes.Buffer
	cmd, reportPath := newTestCommand(t, &diag)

	code := runMain(cmd, []string{a, b})

	assert.Equal(t, 0, code)
	assert.Empty(t, diag.String())

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	rows := strings.Split(strings.TrimRight(string(report), "\n"), "\n")
	require.Len(t, rows, 3)
	assert.True(t, strings.HasSuffix(rows[2], " total"))
}

func TestRunMainFailedInputMeansExitOne(t *testing.T) {
	dir := t.TempDir()
	present := writeTestFile(t, dir, "present.txt", "counted\n")
	missing := filepath.Join(dir, "missing.txt")

	var diag bytes.Buffer
	cmd, reportPath := newTestCommand(t, &diag)

	code := runMain(cmd, []string{present, missing})

	assert.Equal(t, 1, code)
	assert.Contains(t, diag.String(), missing)

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	rows := strings.Split(strings.TrimRight(string(report), "\n"), "\n")
	require.Len(t, rows, 1)
	assert.True(t, strings.HasSuffix(rows[0], " "+present))
}

func TestRunMainNoInputsMeansExitTwo(t *testing.T) {
	var diag bytes.Buffer
	cmd, reportPath := newTestCommand(t, &diag)

	code := runMain(cmd, nil)

	assert.Equal(t, 2, code)
	assert.Contains(t, diag.String(), "no input files")

	// usage case: no report is emitted at all
	_, err := os.Stat(reportPath)
	assert.True(t, os.IsNotExist(err))
}
