package export

import (
	"bytes"
	"fmt"
	"io"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/piwi3910/WireCut/internal/model"
)

var (
	passColor      = drawing.ColorFromHex("4caf50")
	failColor      = drawing.ColorFromHex("f44336")
	toleranceColor = chart.ColorBlue
)

// barHalfWidth is half a bar's width in plate-number units.
const barHalfWidth = 0.4

// RenderHeightChart draws the per-plate height bar chart as PNG: green
// bars for passing plates, red for failing ones and two dashed lines at
// the tolerance bounds.
func RenderHeightChart(w io.Writer, result model.SimulationResult, width, height int) error {
	if len(result.Plates) == 0 {
		return fmt.Errorf("no plates to chart")
	}

	var series []chart.Series
	if s, ok := barSeries("PASS", result.Plates, true, passColor); ok {
		series = append(series, s)
	}
	if s, ok := barSeries("FAIL", result.Plates, false, failColor); ok {
		series = append(series, s)
	}

	xMin := 1 - 0.5
	xMax := float64(len(result.Plates)) + 0.5
	series = append(series,
		toleranceLine("Min Tolerance", result.Tolerance.MinHeight, xMin, xMax),
		toleranceLine("Max Tolerance", result.Tolerance.MaxHeight, xMin, xMax),
	)

	yMax := result.Config.PlateHeight
	if result.Tolerance.MaxHeight > yMax {
		yMax = result.Tolerance.MaxHeight
	}

	ch := chart.Chart{
		Title:      "Plate Height After Wire Cut",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Plate Number", Range: &chart.ContinuousRange{Min: xMin, Max: xMax}},
		YAxis:      chart.YAxis{Name: "Height After Cut (in)", Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.05}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// HeightChartPNG renders the chart into memory.
func HeightChartPNG(result model.SimulationResult, width, height int) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderHeightChart(&buf, result, width, height); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportChartPNG writes the chart to path.
func ExportChartPNG(path string, result model.SimulationResult) error {
	data, err := HeightChartPNG(result, 1200, 480)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// barSeries traces the selected plates as filled rectangles on a single
// polyline that returns to zero between bars.
func barSeries(name string, plates []model.PlateResult, passed bool, col drawing.Color) (chart.ContinuousSeries, bool) {
	var xs, ys []float64
	for _, p := range plates {
		if p.Passed != passed {
			continue
		}
		x := float64(p.Number())
		xs = append(xs, x-barHalfWidth, x-barHalfWidth, x+barHalfWidth, x+barHalfWidth)
		ys = append(ys, 0, p.FinalHeight, p.FinalHeight, 0)
	}
	if len(xs) == 0 {
		return chart.ContinuousSeries{}, false
	}
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: col,
			StrokeWidth: 1,
			FillColor:   col.WithAlpha(200),
		},
	}, true
}

func toleranceLine(name string, y, xMin, xMax float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{xMin, xMax},
		YValues: []float64{y, y},
		Style: chart.Style{
			StrokeColor:     toleranceColor,
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{6, 4},
		},
	}
}
