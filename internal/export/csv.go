// Package export writes simulation results to the file formats the
// cutting station uses: CSV and Excel tables, a PDF report with the
// height chart, QR-coded plate labels and a DXF side view.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/piwi3910/WireCut/internal/model"
)

// DefaultCSVName is the file name offered for CSV downloads.
const DefaultCSVName = "cut_simulation_results.csv"

// CSVHeader is the fixed column layout of the results table.
var CSVHeader = []string{"Plate #", "Final Height (in)", "Status"}

// WriteCSV writes one row per plate: 1-based plate number, final height
// and PASS/FAIL.
func WriteCSV(w io.Writer, result model.SimulationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range result.Plates {
		row := []string{
			strconv.Itoa(p.Number()),
			strconv.FormatFloat(p.FinalHeight, 'f', -1, 64),
			p.Status(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for plate %d: %w", p.Number(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the results table to path.
func ExportCSV(path string, result model.SimulationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := WriteCSV(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
