package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/WireCut/internal/model"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// ExportXLSX writes a workbook with a "Results" sheet (same columns as the
// CSV) and a "Summary" sheet with the run parameters and aggregates.
func ExportXLSX(path string, result model.SimulationResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("failed to name results sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writeResultsSheet(f, result); err != nil {
		return err
	}
	if err := writeSummarySheet(f, result); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeResultsSheet(f *excelize.File, result model.SimulationResult) error {
	header := make([]interface{}, len(CSVHeader))
	for i, h := range CSVHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}

	failStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "C62828"},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, p := range result.Plates {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{p.Number(), p.FinalHeight, p.Status()}
		if err := f.SetSheetRow(resultsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row for plate %d: %w", p.Number(), err)
		}
		if !p.Passed {
			statusCell, _ := excelize.CoordinatesToCellName(3, row)
			if err := f.SetCellStyle(resultsSheet, statusCell, statusCell, failStyle); err != nil {
				return fmt.Errorf("failed to style row for plate %d: %w", p.Number(), err)
			}
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, result model.SimulationResult) error {
	rows := summaryRows(result)
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		values := []interface{}{r.label, r.value}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write summary row %q: %w", r.label, err)
		}
	}
	return nil
}

type summaryRow struct {
	label string
	value interface{}
}

// summaryRows lists the run parameters and aggregates shared by the
// workbook and the PDF report.
func summaryRows(result model.SimulationResult) []summaryRow {
	s := result.Summary
	return []summaryRow{
		{"Number of Plates", result.Config.PlateCount},
		{"Plate Height (in)", result.Config.PlateHeight},
		{"Plate Width (in)", result.Config.PlateWidth},
		{"Wire Cut Angle (degrees)", result.Wire.AngleDegrees},
		{"Wire Offset (in)", result.Wire.VerticalOffset},
		{"Measured From", result.Wire.OriginSide.String()},
		{"Frame", result.Frame.String()},
		{"Height Strategy", result.Strategy.String()},
		{"Min Tolerance Height (in)", result.Tolerance.MinHeight},
		{"Max Tolerance Height (in)", result.Tolerance.MaxHeight},
		{"Plates Passed", s.Passed},
		{"Plates Failed", s.Failed},
		{"Pass Rate (%)", s.PassRate()},
		{"Lowest Height (in)", s.MinHeight},
		{"Highest Height (in)", s.MaxHeight},
		{"Mean Height (in)", s.MeanHeight},
	}
}
