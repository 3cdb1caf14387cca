package widgets

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/model"
)

var (
	colorPlateOutline = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colorMaterial     = color.NRGBA{R: 176, G: 190, B: 197, A: 255} // steel grey while cutting
	colorPass         = color.NRGBA{R: 76, G: 175, B: 80, A: 220}
	colorFail         = color.NRGBA{R: 244, G: 67, B: 54, A: 220}
	colorTolerance    = color.NRGBA{R: 255, G: 152, B: 0, A: 255}
	colorWire         = color.NRGBA{R: 211, G: 47, B: 47, A: 255}
)

// StackCanvas draws the stack from the side: one column per plate, the
// remaining material in each, the tolerance band and the wire. Only the
// top of the plates is shown so that tolerance-sized differences stay
// visible.
type StackCanvas struct {
	widget.BaseWidget
	stack     model.PlateStackConfig
	tol       model.ToleranceWindow
	frame     model.Frame
	floor     float64
	heights   []float64
	passed    []bool // nil until the run is classified
	wire      [2]model.Point2D
	hasWire   bool
	maxWidth  float32
	maxHeight float32
}

// NewStackCanvas creates an empty canvas of the given size.
func NewStackCanvas(maxW, maxH float32) *StackCanvas {
	sc := &StackCanvas{maxWidth: maxW, maxHeight: maxH}
	sc.ExtendBaseWidget(sc)
	return sc
}

// SetJob shows the uncut stack of a job.
func (sc *StackCanvas) SetJob(job model.Job) {
	sc.stack = job.Stack
	sc.tol = job.Tolerance
	sc.frame = job.Frame
	sc.floor = viewFloor(job.Stack.PlateHeight, job.Tolerance, nil)
	sc.heights = nil
	sc.passed = nil
	sc.hasWire = false
	sc.Refresh()
}

// SetFrame shows one sweep sample.
func (sc *StackCanvas) SetFrame(f model.SweepFrame) {
	sc.heights = f.PlateHeights
	sc.passed = nil
	sc.wire = f.Wire
	sc.hasWire = true
	sc.Refresh()
}

// SetResult shows a finished run coloured by status.
func (sc *StackCanvas) SetResult(r model.SimulationResult) {
	sc.stack = r.Config
	sc.tol = r.Tolerance
	sc.frame = r.Frame
	sc.heights = r.Heights()
	sc.passed = make([]bool, len(r.Plates))
	for i, p := range r.Plates {
		sc.passed[i] = p.Passed
	}
	sc.floor = viewFloor(r.Config.PlateHeight, r.Tolerance, sc.heights)

	sc.hasWire = false
	if line, err := engine.NewWireLine(r.Wire); err == nil {
		span := r.Config.StackWidth()
		if r.Frame == model.FrameSinglePlate {
			span = r.Config.PlateWidth
		}
		sc.wire = [2]model.Point2D{line.Point(0, r.Config.PlateHeight), line.Point(span, r.Config.PlateHeight)}
		sc.hasWire = true
	}
	sc.Refresh()
}

// viewFloor picks the lowest height shown: the lower tolerance bound or
// the lowest plate, less half the distance from there to the top.
func viewFloor(h float64, tol model.ToleranceWindow, heights []float64) float64 {
	low := math.Min(tol.MinHeight, h)
	for _, v := range heights {
		low = math.Min(low, v)
	}
	pad := math.Max((h-low)*0.5, 0.01)
	return math.Max(0, low-pad)
}

// CreateRenderer implements fyne.Widget.
func (sc *StackCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newStackCanvasRenderer(sc)
}

type stackCanvasRenderer struct {
	sc      *StackCanvas
	objects []fyne.CanvasObject
}

func newStackCanvasRenderer(sc *StackCanvas) *stackCanvasRenderer {
	r := &stackCanvasRenderer{sc: sc}
	r.rebuild()
	return r
}

func (r *stackCanvasRenderer) rebuild() {
	r.objects = nil

	sc := r.sc
	n := sc.stack.PlateCount
	w := sc.stack.PlateWidth
	h := sc.stack.PlateHeight
	if n <= 0 || w <= 0 || h <= 0 {
		r.objects = append(r.objects, canvas.NewText("No stack", color.Gray{Y: 128}))
		return
	}

	top := h + (h-sc.floor)*0.25
	v := fitViewport(0, float64(n)*w, sc.floor, top, sc.maxWidth, sc.maxHeight, 12)

	for i := 0; i < n; i++ {
		x0, x1 := float64(i)*w, float64(i+1)*w

		height := h
		if i < len(sc.heights) {
			height = sc.heights[i]
		}
		fill := colorMaterial
		if sc.passed != nil && i < len(sc.passed) {
			fill = colorFail
			if sc.passed[i] {
				fill = colorPass
			}
		}
		pos, size := v.rect(x0, sc.floor, x1, math.Max(sc.floor, height))
		material := canvas.NewRectangle(fill)
		material.Resize(size)
		material.Move(pos)
		r.objects = append(r.objects, material)

		pos, size = v.rect(x0, sc.floor, x1, h)
		outline := canvas.NewRectangle(color.Transparent)
		outline.StrokeColor = colorPlateOutline
		outline.StrokeWidth = 1
		outline.Resize(size)
		outline.Move(pos)
		r.objects = append(r.objects, outline)

		if size.Width > 18 {
			label := canvas.NewText(fmt.Sprintf("%d", i+1), color.Black)
			label.TextSize = 9
			label.Move(fyne.NewPos(pos.X+2, pos.Y+size.Height-12))
			r.objects = append(r.objects, label)
		}
	}

	for _, y := range []float64{sc.tol.MinHeight, sc.tol.MaxHeight} {
		if y < sc.floor || y > top {
			continue
		}
		line := canvas.NewLine(colorTolerance)
		line.StrokeWidth = 1
		line.Position1 = v.pos(0, y)
		line.Position2 = v.pos(float64(n)*w, y)
		r.objects = append(r.objects, line)
	}

	if sc.hasWire {
		r.drawWire(v, top)
	}
}

// drawWire draws the wire segment clipped to the view. In the single-plate
// frame every plate shares the same local segment, so it repeats per plate.
func (r *stackCanvasRenderer) drawWire(v viewport, top float64) {
	sc := r.sc
	repeats := 1
	if sc.frame == model.FrameSinglePlate {
		repeats = sc.stack.PlateCount
	}
	for i := 0; i < repeats; i++ {
		dx := float64(i) * sc.stack.PlateWidth
		a, b, ok := clipVertical(sc.wire[0], sc.wire[1], sc.floor, top)
		if !ok {
			continue
		}
		line := canvas.NewLine(colorWire)
		line.StrokeWidth = 2
		line.Position1 = v.pos(a.X+dx, a.Y)
		line.Position2 = v.pos(b.X+dx, b.Y)
		r.objects = append(r.objects, line)
	}
}

// clipVertical trims the segment a-b to lo <= y <= hi.
func clipVertical(a, b model.Point2D, lo, hi float64) (model.Point2D, model.Point2D, bool) {
	if a.Y == b.Y {
		return a, b, a.Y >= lo && a.Y <= hi
	}
	t0 := (lo - a.Y) / (b.Y - a.Y)
	t1 := (hi - a.Y) / (b.Y - a.Y)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	t0, t1 = math.Max(t0, 0), math.Min(t1, 1)
	if t0 > t1 {
		return a, b, false
	}
	lerp := func(t float64) model.Point2D {
		return model.Point2D{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
	}
	return lerp(t0), lerp(t1), true
}

func (r *stackCanvasRenderer) Layout(size fyne.Size)        {}
func (r *stackCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *stackCanvasRenderer) Destroy()                     {}
func (r *stackCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *stackCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.sc.maxWidth, r.sc.maxHeight)
}
