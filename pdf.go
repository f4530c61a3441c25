package main

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // margin in mm
	pdfLineHeight = 5   // line height in mm
	pdfFontSize   = 9
)

// writeReportPDF renders the finished report into a PDF file. Courier keeps
// the fixed-width columns aligned exactly as they appear on stdout.
func writeReportPDF(report, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", pdfFontSize+2)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, "tally report", "", "L", false)
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Courier", "", pdfFontSize)
	for _, line := range strings.Split(strings.TrimRight(report, "\n"), "\n") {
		pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, line, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("saving PDF to %s: %w", outputPath, err)
	}
	return nil
}
