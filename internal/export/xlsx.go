package export

import (
	"fmt"

	"github.com/piwi3910/PillBoard/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names used in the XLSX report.
const (
	SheetPills   = "Pills"
	SheetSummary = "Summary"
)

var pillHeaders = []interface{}{"ID", "X", "Y", "Width", "Height", "Area", "Color", "Swatch", "Rounded corners"}

// ExportXLSX writes a workbook with one row per pill on the "Pills" sheet and
// board totals on the "Summary" sheet.
func ExportXLSX(path string, doc Document) error {
	if err := doc.check(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPills); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writePillSheet(f, doc.Pills); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, doc); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func writePillSheet(f *excelize.File, pills []model.Pill) error {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetSheetRow(SheetPills, "A1", &pillHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(pillHeaders), 1)
	if err := f.SetCellStyle(SheetPills, "A1", last, header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, p := range pills {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			int(p.ID), p.Rect.X, p.Rect.Y, p.Rect.Width, p.Rect.Height,
			p.Rect.Area(), p.Color.String(), "", p.Corners.String(),
		}
		if err := f.SetSheetRow(SheetPills, cell, &values); err != nil {
			return fmt.Errorf("failed to write pill %d: %w", p.ID, err)
		}

		r, g, b := p.Color.RGB()
		swatch, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fmt.Sprintf("#%02X%02X%02X", r, g, b)}},
		})
		if err != nil {
			return fmt.Errorf("failed to create swatch style: %w", err)
		}
		swatchCell, _ := excelize.CoordinatesToCellName(8, row)
		if err := f.SetCellStyle(SheetPills, swatchCell, swatchCell, swatch); err != nil {
			return fmt.Errorf("failed to style swatch: %w", err)
		}
	}
	return f.SetColWidth(SheetPills, "G", "G", 22)
}

func writeSummarySheet(f *excelize.File, doc Document) error {
	stats := doc.Stats()
	rows := [][]interface{}{
		{"Session", doc.Session},
		{"Board width", doc.Board.Width},
		{"Board height", doc.Board.Height},
		{"Pills", stats.Count},
		{"Rounded corners", stats.RoundedCorners},
		{"Pill area", stats.PillArea},
		{"Board area", stats.BoardArea},
		{"Coverage %", stats.Coverage()},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(SheetSummary, cell, v); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
		}
	}
	return f.SetColWidth(SheetSummary, "A", "A", 18)
}
