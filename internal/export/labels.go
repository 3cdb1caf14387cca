package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/WireCut/internal/model"
)

// LabelInfo holds the data encoded into each plate label's QR code.
type LabelInfo struct {
	RunID       string  `json:"run,omitempty"`
	Plate       int     `json:"plate"`
	FinalHeight float64 `json:"height_in"`
	MinHeight   float64 `json:"min_in"`
	MaxHeight   float64 `json:"max_in"`
	Status      string  `json:"status"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos returns one label per plate in plate order.
func CollectLabelInfos(result model.SimulationResult) []LabelInfo {
	labels := make([]LabelInfo, 0, len(result.Plates))
	for _, p := range result.Plates {
		labels = append(labels, LabelInfo{
			RunID:       result.ID,
			Plate:       p.Number(),
			FinalHeight: p.FinalHeight,
			MinHeight:   result.Tolerance.MinHeight,
			MaxHeight:   result.Tolerance.MaxHeight,
			Status:      p.Status(),
		})
	}
	return labels
}

// ExportLabels writes a Letter-size PDF of QR-coded plate labels. When
// failedOnly is set only out-of-tolerance plates get a label.
func ExportLabels(path string, result model.SimulationResult, failedOnly bool) error {
	var labels []LabelInfo
	for _, l := range CollectLabelInfos(result) {
		if failedOnly && l.Status == model.StatusPass {
			continue
		}
		labels = append(labels, l)
	}
	if len(labels) == 0 {
		return fmt.Errorf("no plates to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for plate %d: %w", label.Plate, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_plate_%d", info.Plate)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5, fmt.Sprintf("Plate %d", info.Plate), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(textX, y+labelPadding+6)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%.4f in", info.FinalHeight), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+10)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Window %.3f - %.3f in", info.MinHeight, info.MaxHeight), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	if info.Status == model.StatusPass {
		pdf.SetTextColor(0, 130, 0)
	} else {
		pdf.SetTextColor(200, 0, 0)
	}
	pdf.SetXY(textX, y+labelPadding+14)
	pdf.CellFormat(textW, 4, info.Status, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
