package widgets

import "fyne.io/fyne/v2"

// viewport maps side-view inches (x along the stack, y up from the plate
// bottom face) onto widget pixels. X and Y scale independently because a
// long stack would otherwise flatten to a line.
type viewport struct {
	minX, minY     float64
	scaleX, scaleY float32
	margin         float32
	height         float32 // drawing height in pixels, without margins
}

// fitViewport fits the world rectangle [minX, maxX] x [minY, maxY] into
// a widget of maxW x maxH pixels with margin on every side.
func fitViewport(minX, maxX, minY, maxY float64, maxW, maxH, margin float32) viewport {
	v := viewport{minX: minX, minY: minY, margin: margin, height: maxH - 2*margin}
	if v.height < 1 {
		v.height = 1
	}
	w := maxW - 2*margin
	if w < 1 {
		w = 1
	}
	v.scaleX, v.scaleY = 1, 1
	if maxX > minX {
		v.scaleX = w / float32(maxX-minX)
	}
	if maxY > minY {
		v.scaleY = v.height / float32(maxY-minY)
	}
	return v
}

// pos converts a world point to pixels; y grows downwards on screen.
func (v viewport) pos(x, y float64) fyne.Position {
	return fyne.NewPos(
		v.margin+float32(x-v.minX)*v.scaleX,
		v.margin+v.height-float32(y-v.minY)*v.scaleY,
	)
}

// rect returns the top-left corner and size of a world rectangle.
func (v viewport) rect(x0, y0, x1, y1 float64) (fyne.Position, fyne.Size) {
	a, b := v.pos(x0, y1), v.pos(x1, y0)
	return a, fyne.NewSize(b.X-a.X, b.Y-a.Y)
}
