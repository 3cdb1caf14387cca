package widgets

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/WireCut/internal/gcode"
)

// Path colors for the different move types.
var (
	colorRapid     = color.NRGBA{R: 255, G: 60, B: 60, A: 200}   // G0
	colorFeed      = color.NRGBA{R: 180, G: 180, B: 0, A: 200}   // G1, wire off
	colorCut       = color.NRGBA{R: 30, G: 120, B: 255, A: 230}  // G1, wire on
	colorCollision = color.NRGBA{R: 200, G: 0, B: 200, A: 255}   // non-cutting move through the stack
	colorStack     = color.NRGBA{R: 220, G: 224, B: 230, A: 255} // plates before cutting
)

// GCodePreview renders a parsed wire program over the side view of the
// uncut stack.
type GCodePreview struct {
	widget.BaseWidget
	moves      []gcode.GCodeMove
	bounds     gcode.StackBounds
	collisions map[int]bool
	maxWidth   float32
	maxHeight  float32
}

// NewGCodePreview creates a preview widget. Moves listed in collisions
// are highlighted.
func NewGCodePreview(moves []gcode.GCodeMove, bounds gcode.StackBounds, collisions []gcode.Collision, maxW, maxH float32) *GCodePreview {
	gp := &GCodePreview{
		moves:      moves,
		bounds:     bounds,
		collisions: make(map[int]bool, len(collisions)),
		maxWidth:   maxW,
		maxHeight:  maxH,
	}
	for _, c := range collisions {
		gp.collisions[c.MoveIndex] = true
	}
	gp.ExtendBaseWidget(gp)
	return gp
}

// CreateRenderer implements fyne.Widget.
func (gp *GCodePreview) CreateRenderer() fyne.WidgetRenderer {
	return newGCodePreviewRenderer(gp)
}

type gcodePreviewRenderer struct {
	gp      *GCodePreview
	objects []fyne.CanvasObject
}

func newGCodePreviewRenderer(gp *GCodePreview) *gcodePreviewRenderer {
	r := &gcodePreviewRenderer{gp: gp}
	r.rebuild()
	return r
}

// extent returns the world rectangle covering the stack and every move.
func (gp *GCodePreview) extent() (minX, maxX, minY, maxY float64) {
	b := gp.bounds
	minX, maxX, minY, maxY = b.MinX, b.MaxX, b.MinY, b.MaxY
	for _, m := range gp.moves {
		minX = math.Min(minX, math.Min(m.FromX, m.ToX))
		maxX = math.Max(maxX, math.Max(m.FromX, m.ToX))
		minY = math.Min(minY, math.Min(m.FromY, m.ToY))
		maxY = math.Max(maxY, math.Max(m.FromY, m.ToY))
	}
	return minX, maxX, minY, maxY
}

func (r *gcodePreviewRenderer) rebuild() {
	r.objects = nil

	gp := r.gp
	minX, maxX, minY, maxY := gp.extent()
	if maxX <= minX || maxY <= minY {
		return
	}
	v := fitViewport(minX, maxX, minY, maxY, gp.maxWidth, gp.maxHeight, 10)

	b := gp.bounds
	pos, size := v.rect(b.MinX, b.MinY, b.MaxX, b.MaxY)
	bg := canvas.NewRectangle(colorStack)
	bg.StrokeColor = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
	bg.StrokeWidth = 1
	bg.Resize(size)
	bg.Move(pos)
	r.objects = append(r.objects, bg)

	for i, m := range gp.moves {
		if m.Length() < 1e-6 {
			continue
		}
		from, to := v.pos(m.FromX, m.FromY), v.pos(m.ToX, m.ToY)

		col, width := colorCut, float32(2)
		switch m.Type {
		case gcode.MoveRapid:
			col, width = colorRapid, 1
		case gcode.MoveFeed:
			col, width = colorFeed, 1
		}
		if gp.collisions[i] {
			col, width = colorCollision, 3
		}

		line := canvas.NewLine(col)
		line.StrokeWidth = width
		line.Position1 = from
		line.Position2 = to
		r.objects = append(r.objects, line)

		if m.Type == gcode.MoveRapid {
			r.drawDashedOverlay(from, to)
		}
	}
}

// drawDashedOverlay paints background-coloured gaps along a rapid move.
func (r *gcodePreviewRenderer) drawDashedOverlay(from, to fyne.Position) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 8 {
		return
	}

	dashLen := float32(6)
	gapLen := float32(4)
	nx := dx / length
	ny := dy / length

	cursor := dashLen
	for cursor+gapLen < length {
		gap := canvas.NewLine(color.White)
		gap.StrokeWidth = 2.5
		gap.Position1 = fyne.NewPos(from.X+nx*cursor, from.Y+ny*cursor)
		gap.Position2 = fyne.NewPos(from.X+nx*(cursor+gapLen), from.Y+ny*(cursor+gapLen))
		r.objects = append(r.objects, gap)

		cursor += dashLen + gapLen
	}
}

func (r *gcodePreviewRenderer) Layout(size fyne.Size)        {}
func (r *gcodePreviewRenderer) Refresh()                     { r.rebuild() }
func (r *gcodePreviewRenderer) Destroy()                     {}
func (r *gcodePreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *gcodePreviewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.gp.maxWidth, r.gp.maxHeight)
}

// RenderGCodePreview builds the preview panel for a program: the path
// drawing, the move statistics and any collision warnings.
func RenderGCodePreview(code string, bounds gcode.StackBounds) fyne.CanvasObject {
	moves := gcode.ParseGCode(code)
	collisions := gcode.CheckRapidCollisions(moves, bounds)
	stats := gcode.Stats(moves)

	items := []fyne.CanvasObject{
		NewGCodePreview(moves, bounds, collisions, 700, 300),
		widget.NewLabel(fmt.Sprintf("Cut length %.3f in, rapid travel %.3f in, cutting time %.2f min",
			stats.CutLength, stats.RapidLength, stats.CutMinutes)),
	}
	for _, w := range gcode.FormatCollisionWarnings(collisions) {
		warning := widget.NewLabel(w)
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}
	return container.NewVBox(items...)
}
