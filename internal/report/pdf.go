// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/result-gazette/pkg/types"
)

// Table geometry and colors, in points on landscape A4.
const (
	colWidthRoll   = 100
	colWidthName   = 180
	colWidthResult = 250

	headerRowHeight = 28
	dataRowHeight   = 20
)

var (
	headerFill = [3]int{0, 0, 139}     // dark blue
	headerText = [3]int{245, 245, 245} // white smoke
	evenFill   = [3]int{245, 245, 245} // white smoke
	oddFill    = [3]int{211, 211, 211} // light grey
)

// WritePDF renders the summary table to a PDF at path: a centered title,
// a styled header row, and one gridded, center-aligned row per record
// with alternating background colors. Long runs flow onto further pages
// with the header repeated.
func WritePDF(records []types.Record, path, title string) error {
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetAutoPageBreak(true, 36)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	tableW := float64(colWidthRoll + colWidthName + colWidthResult)
	left := (pageW - tableW) / 2

	widths := []float64{colWidthRoll, colWidthName, colWidthResult}

	writeHeader := func() {
		pdf.SetX(left)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		pdf.SetTextColor(headerText[0], headerText[1], headerText[2])
		for i, cell := range Header {
			pdf.CellFormat(widths[i], headerRowHeight, tr(cell), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 24, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(20)

	writeHeader()

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	pdf.SetFont("Helvetica", "", 10)
	for i, rec := range records {
		// Manual break keeps the header attached to its rows.
		if pdf.GetY()+dataRowHeight > pageH-bottom {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 10)
		}

		if i%2 == 0 {
			pdf.SetFillColor(evenFill[0], evenFill[1], evenFill[2])
		} else {
			pdf.SetFillColor(oddFill[0], oddFill[1], oddFill[2])
		}
		pdf.SetTextColor(0, 0, 0)

		pdf.SetX(left)
		row := []string{rec.RollNo, rec.Name, rec.Result}
		for j, cell := range row {
			pdf.CellFormat(widths[j], dataRowHeight, tr(cell), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF %s: %w", path, err)
	}
	return nil
}
