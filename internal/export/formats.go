package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/WireCut/internal/model"
)

// Format is one output the results can be written as.
type Format struct {
	Name     string // short name used on the command line
	Label    string // menu label
	FileName string // suggested file name
	Write    func(path string, result model.SimulationResult) error
}

// Formats lists every export in the order "all" writes them.
var Formats = []Format{
	{"csv", "Results CSV", DefaultCSVName, ExportCSV},
	{"xlsx", "Excel Workbook", "cut_simulation_results.xlsx", ExportXLSX},
	{"pdf", "PDF Report", "cut_simulation_report.pdf", ExportPDF},
	{"chart", "Height Chart (PNG)", "plate_heights.png", ExportChartPNG},
	{"dxf", "Side View (DXF)", "stack_side_view.dxf", ExportDXF},
	{"labels", "Plate Labels (PDF)", "plate_labels.pdf", func(path string, r model.SimulationResult) error {
		return ExportLabels(path, r, false)
	}},
}

// FormatNames returns the short names of all formats.
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = f.Name
	}
	return names
}

// LookupFormat finds a format by short name, ignoring case.
func LookupFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range Formats {
		if f.Name == name {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(FormatNames(), ", "))
}
