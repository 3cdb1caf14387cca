package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/WireCut/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 10.0
	rowHeight    = 6.0
	chartHeight  = 80.0
)

// Chart raster size embedded in the report.
const (
	reportChartPxW = 1200
	reportChartPxH = 540
)

// ExportPDF writes a report with the run parameters, the summary, the
// height chart and a per-plate results table.
func ExportPDF(path string, result model.SimulationResult) error {
	if len(result.Plates) == 0 {
		return fmt.Errorf("no plates to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	y := renderReportHeader(pdf, result)
	y = renderSummary(pdf, result, y)

	chartPNG, err := HeightChartPNG(result, reportChartPxW, reportChartPxH)
	if err != nil {
		return err
	}
	pdf.RegisterImageOptionsReader("height_chart", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(chartPNG))
	pdf.ImageOptions("height_chart", marginLeft, y, pageWidth-marginLeft-marginRight, chartHeight, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	y += chartHeight + 6

	renderPlateTable(pdf, result, y)

	return pdf.OutputFileAndClose(path)
}

func renderReportHeader(pdf *fpdf.Fpdf, result model.SimulationResult) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Wire Cut Simulation Report", "", 0, "L", false, 0, "")

	if result.ID != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(marginLeft, marginTop)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Run "+result.ID, "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight+1, pageWidth-marginRight, marginTop+headerHeight+1)
	return marginTop + headerHeight + 5
}

// renderSummary lays the summary rows out in two label/value columns.
func renderSummary(pdf *fpdf.Fpdf, result model.SimulationResult, y float64) float64 {
	rows := summaryRows(result)
	half := (len(rows) + 1) / 2
	colW := (pageWidth - marginLeft - marginRight) / 2

	for i, r := range rows {
		col := i / half
		x := marginLeft + float64(col)*colW
		ry := y + float64(i%half)*5

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(x, ry)
		pdf.CellFormat(colW*0.6, 5, r.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(colW*0.4, 5, formatSummaryValue(r.value), "", 0, "L", false, 0, "")
	}
	return y + float64(half)*5 + 4
}

func formatSummaryValue(v interface{}) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%.4f", x)
	case int:
		return fmt.Sprintf("%d", x)
	default:
		return fmt.Sprint(x)
	}
}

// renderPlateTable draws the results table, continuing on new pages as
// needed. Failing rows are tinted red.
func renderPlateTable(pdf *fpdf.Fpdf, result model.SimulationResult, y float64) {
	colWidths := []float64{30, 60, 30}
	headers := []string{"Plate #", "Final Height (in)", "Status"}

	drawHeader := func(y float64) float64 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		return y + rowHeight
	}

	y = drawHeader(y)
	pdf.SetFont("Helvetica", "", 9)
	for i, p := range result.Plates {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = drawHeader(marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}

		switch {
		case !p.Passed:
			pdf.SetFillColor(255, 220, 220)
		case i%2 == 0:
			pdf.SetFillColor(245, 245, 245)
		default:
			pdf.SetFillColor(255, 255, 255)
		}

		cells := []string{
			fmt.Sprintf("%d", p.Number()),
			fmt.Sprintf("%.4f", p.FinalHeight),
			p.Status(),
		}
		x := marginLeft
		for j, c := range cells {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, c, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}
}
