// Package engine implements the wire cut model: the wire line geometry,
// per-plate height evaluation, tolerance classification and the sweep
// of the wire through the stack. Everything here is a pure function of
// its inputs.
package engine

import (
	"math"

	"github.com/piwi3910/WireCut/internal/model"
)

// WireLine is the straight cutting wire in the side view of the stack.
// Y is measured from the wire's origin face: down from the top face for
// FromTop, up from the bottom face for FromBottom.
type WireLine struct {
	Offset float64
	Slope  float64
	Side   model.OriginSide
}

// NewWireLine converts the wire parameters into a line. It fails with
// model.ErrDomain when the angle has no finite slope.
func NewWireLine(wire model.WireCutParams) (WireLine, error) {
	if err := wire.Validate(); err != nil {
		return WireLine{}, err
	}
	return WireLine{
		Offset: wire.VerticalOffset,
		Slope:  slope(wire.AngleDegrees),
		Side:   wire.OriginSide,
	}, nil
}

// slope reduces the angle to one half turn before converting, so huge
// finite angles keep a finite tangent.
func slope(degrees float64) float64 {
	return math.Tan(math.Mod(degrees, 180) * (math.Pi / 180))
}

// At returns the wire coordinate at position x along the stack.
func (l WireLine) At(x float64) float64 {
	return l.Offset + l.Slope*x
}

// Remaining returns the unclamped material height left under the wire at x.
// Measured from the top, the wire removes its depth from the plate; measured
// from the bottom, the wire coordinate is the height that stays.
func (l WireLine) Remaining(x, plateHeight float64) float64 {
	if l.Side == model.FromBottom {
		return l.At(x)
	}
	return plateHeight - l.At(x)
}

// Elevation returns the wire's height above the plate bottom face at x.
// It is the same quantity as Remaining, named for drawing.
func (l WireLine) Elevation(x, plateHeight float64) float64 {
	return l.Remaining(x, plateHeight)
}

// Point returns the wire position at x as a side-view point.
func (l WireLine) Point(x, plateHeight float64) model.Point2D {
	return model.Point2D{X: x, Y: l.Elevation(x, plateHeight)}
}

// clamp limits a raw height to the physical range [0, plateHeight]:
// the wire can neither remove more than the whole plate nor add material.
// An undefined height (NaN from overflowing arithmetic) counts as cut away.
func clamp(h, plateHeight float64) float64 {
	if math.IsNaN(h) {
		return 0
	}
	return math.Max(0, math.Min(plateHeight, h))
}
