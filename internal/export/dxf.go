package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/model"
)

// DXF layer names.
const (
	LayerPlates = "PLATES"
	LayerCut    = "CUT"
	LayerWire   = "WIRE"
)

// dxfTextHeight is the plate number text height in inches.
const dxfTextHeight = 0.15

// ExportDXF writes a side view of the stack in inches: plate outlines
// and numbers on PLATES, each plate's cut surface on CUT and the wire
// across the whole travel on WIRE. Plates are drawn side by side in
// either frame.
func ExportDXF(path string, result model.SimulationResult) error {
	if len(result.Plates) == 0 {
		return fmt.Errorf("no plates to export")
	}
	line, err := engine.NewWireLine(result.Wire)
	if err != nil {
		return err
	}

	d := dxf.NewDrawing()
	for _, l := range []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerPlates, color.White},
		{LayerCut, color.Red},
		{LayerWire, color.Blue},
	} {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	h := result.Config.PlateHeight
	w := result.Config.PlateWidth

	if err := d.ChangeLayer(LayerPlates); err != nil {
		return err
	}
	for _, p := range result.Plates {
		x0 := float64(p.Index) * w
		x1 := float64(p.Index+1) * w
		if err := dxfRect(d, x0, 0, x1, h); err != nil {
			return fmt.Errorf("failed to draw plate %d: %w", p.Number(), err)
		}
		if _, err := d.Text(fmt.Sprintf("%d", p.Number()), x0+w*0.1, -2*dxfTextHeight, 0, dxfTextHeight); err != nil {
			return fmt.Errorf("failed to label plate %d: %w", p.Number(), err)
		}
	}

	if err := d.ChangeLayer(LayerCut); err != nil {
		return err
	}
	for _, p := range result.Plates {
		x0 := float64(p.Index) * w
		x1 := float64(p.Index+1) * w
		if _, err := d.Line(x0, p.LeadingEdge, 0, x1, p.TrailingEdge, 0); err != nil {
			return fmt.Errorf("failed to draw cut for plate %d: %w", p.Number(), err)
		}
	}

	if err := d.ChangeLayer(LayerWire); err != nil {
		return err
	}
	span := result.Config.StackWidth()
	if result.Frame == model.FrameSinglePlate {
		span = w
	}
	start, end := line.Point(0, h), line.Point(span, h)
	if _, err := d.Line(start.X, start.Y, 0, end.X, end.Y, 0); err != nil {
		return fmt.Errorf("failed to draw wire: %w", err)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

func dxfRect(d *drawing.Drawing, x0, y0, x1, y1 float64) error {
	corners := [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	for i, c := range corners {
		n := corners[(i+1)%len(corners)]
		if _, err := d.Line(c[0], c[1], 0, n[0], n[1], 0); err != nil {
			return err
		}
	}
	return nil
}
