// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/result-gazette/pkg/types"
)

const sheetName = "Sheet1"

// Hex colors matching the PDF table styling.
const (
	xlsxHeaderFill = "00008B"
	xlsxHeaderText = "F5F5F5"
	xlsxEvenFill   = "F5F5F5"
	xlsxOddFill    = "D3D3D3"
)

func gridBorder() []excelize.Border {
	var borders []excelize.Border
	for _, side := range []string{"left", "top", "right", "bottom"} {
		borders = append(borders, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return borders
}

// WriteXLSX renders the summary table to a spreadsheet at path, with the
// same title, header styling, alternating row fills, and grid as the PDF.
func WriteXLSX(records []types.Record, path, title string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeXLSXTable(f, records, title); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing XLSX %s: %w", path, err)
	}
	return nil
}

func writeXLSXTable(f *excelize.File, records []types.Record, title string) error {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: xlsxHeaderText},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{xlsxHeaderFill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    gridBorder(),
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	rowStyles := make([]int, 2)
	for i, fill := range []string{xlsxEvenFill, xlsxOddFill} {
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    gridBorder(),
		})
		if err != nil {
			return fmt.Errorf("creating row style: %w", err)
		}
		rowStyles[i] = style
	}

	if err := f.SetColWidth(sheetName, "A", "A", 14); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 28); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "C", "C", 40); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	// Row 1: merged title. Row 2: header. Data starts at row 3.
	if err := f.MergeCell(sheetName, "A1", "C1"); err != nil {
		return fmt.Errorf("merging title cells: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "C1", titleStyle); err != nil {
		return fmt.Errorf("styling title: %w", err)
	}

	rows := Rows(records)
	for r, row := range rows {
		sheetRow := r + 2
		for c, cell := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, sheetRow)
			if err != nil {
				return fmt.Errorf("cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cellName, cell); err != nil {
				return fmt.Errorf("writing cell %s: %w", cellName, err)
			}
		}

		first, _ := excelize.CoordinatesToCellName(1, sheetRow)
		last, _ := excelize.CoordinatesToCellName(len(row), sheetRow)
		style := headerStyle
		if r > 0 {
			style = rowStyles[(r-1)%2]
		}
		if err := f.SetCellStyle(sheetName, first, last, style); err != nil {
			return fmt.Errorf("styling row %d: %w", sheetRow, err)
		}
	}

	return nil
}
