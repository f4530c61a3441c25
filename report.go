package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// fieldWidth is the fixed width every numeric column is right-justified to.
const fieldWidth = 8

// formatRow renders one report row: each selected field right-justified in a
// fixed-width column, in the fixed order lines, words, chars, bytes, tokens,
// max line length, followed by a space and the label when one is given.
func formatRow(c StatCounts, display DisplayFlags, label string) string {
	var b strings.Builder
	if display.Lines {
		fmt.Fprintf(&b, "%*d", fieldWidth, c.Lines)
	}
	if display.Words {
		fmt.Fprintf(&b, "%*d", fieldWidth, c.Words)
	}
	if display.Chars {
		fmt.Fprintf(&b, "%*d", fieldWidth, c.Chars)
	}
	if display.Bytes {
		fmt.Fprintf(&b, "%*d", fieldWidth, c.Bytes)
	}
	if display.Tokens {
		fmt.Fprintf(&b, "%*d", fieldWidth, c.Tokens)
	}
	if display.MaxLine {
		fmt.Fprintf(&b, "%*d", fieldWidth, c.MaxLine)
	}
	if label != "" {
		b.WriteByte(' ')
		b.WriteString(label)
	}
	b.WriteByte('\n')
	return b.String()
}

// formatLanguageRows renders the per-language breakdown, one row per
// detected language in name order, using the language as the row label.
func formatLanguageRows(perLang map[string]*StatCounts, display DisplayFlags) string {
	if len(perLang) == 0 {
		return ""
	}
	names := make([]string, 0, len(perLang))
	for name := range perLang {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteByte('\n')
	for _, name := range names {
		b.WriteString(formatRow(*perLang[name], display, name))
	}
	return b.String()
}

// emitReport sends the finished report to its destination: a PDF file, a
// plain file, the clipboard, or stdout. Clipboard failures fall back to
// stdout so the report is never lost.
func emitReport(report string) error {
	switch {
	case pdfOutputFile != "":
		if err := writeReportPDF(report, pdfOutputFile); err != nil {
			return err
		}
		logger.Debug().Str("path", pdfOutputFile).Msg("report written as PDF")
	case outputFile != "":
		if err := os.WriteFile(outputFile, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing report to %s: %w", outputFile, err)
		}
		logger.Debug().Str("path", outputFile).Msg("report written to file")
	case copyToClipboard:
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Fprintf(os.Stderr, "tally: clipboard write failed: %v\n", err)
			fmt.Print(report)
			return nil
		}
		logger.Debug().Msg("report copied to clipboard")
	default:
		fmt.Print(report)
	}
	return nil
}
