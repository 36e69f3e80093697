// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders an ordered record list into the summary
// document: a styled PDF or XLSX table, or a YAML/JSON export.
package report

import (
	"fmt"

	"github.com/pdiddy/result-gazette/pkg/types"
)

// DefaultTitle is the document title when the caller provides none.
const DefaultTitle = "BISE Sargodha Exam Results (Summary)"

// Header lists the table header cells in render order.
var Header = []string{"Roll No", "Name", "Final Result"}

// Rows builds the cell matrix for the summary table: the header row
// followed by one row per record in input order. Text is carried
// verbatim — no escaping beyond what the rendering libraries do.
func Rows(records []types.Record) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, Header)
	for _, rec := range records {
		rows = append(rows, []string{rec.RollNo, rec.Name, rec.Result})
	}
	return rows
}

// Write renders records to cfg.OutputPath in cfg.Format. An empty
// format defaults to PDF.
func Write(records []types.Record, cfg types.ReportConfig) error {
	title := cfg.Title
	if title == "" {
		title = DefaultTitle
	}

	switch cfg.Format {
	case types.FormatPDF, "":
		return WritePDF(records, cfg.OutputPath, title)
	case types.FormatXLSX:
		return WriteXLSX(records, cfg.OutputPath, title)
	case types.FormatYAML:
		return WriteYAML(records, cfg.OutputPath)
	case types.FormatJSON:
		return WriteJSON(records, cfg.OutputPath)
	default:
		return fmt.Errorf("unsupported format %q: use pdf, xlsx, yaml, or json", cfg.Format)
	}
}
