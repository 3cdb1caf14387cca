package model

import (
	"fmt"
	"math"
	"strings"
)

// OriginSide selects which face of a plate the wire offset and the
// remaining height are measured from.
type OriginSide int

const (
	FromTop    OriginSide = iota // Offset measured down from the top face
	FromBottom                   // Offset measured up from the bottom face
)

func (o OriginSide) String() string {
	switch o {
	case FromBottom:
		return "bottom"
	default:
		return "top"
	}
}

// ParseOriginSide accepts "top"/"bottom" (case-insensitive, with or without a "from-" prefix).
func ParseOriginSide(s string) (OriginSide, error) {
	switch normalizeToken(s) {
	case "top", "fromtop":
		return FromTop, nil
	case "bottom", "frombottom":
		return FromBottom, nil
	}
	return FromTop, fmt.Errorf("unknown origin side %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o OriginSide) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *OriginSide) UnmarshalText(b []byte) error {
	v, err := ParseOriginSide(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Frame is the coordinate frame the wire is evaluated in.
type Frame int

const (
	// FrameFullStack places plate i at x in [i*W, (i+1)*W] along the wire.
	FrameFullStack Frame = iota
	// FrameSinglePlate evaluates every plate in its own local x in [0, W].
	FrameSinglePlate
)

func (f Frame) String() string {
	switch f {
	case FrameSinglePlate:
		return "single-plate"
	default:
		return "full-stack"
	}
}

// ParseFrame accepts "full-stack" or "single-plate".
func ParseFrame(s string) (Frame, error) {
	switch normalizeToken(s) {
	case "fullstack", "stack":
		return FrameFullStack, nil
	case "singleplate", "plate", "single":
		return FrameSinglePlate, nil
	}
	return FrameFullStack, fmt.Errorf("unknown frame %q", s)
}

func (f Frame) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Frame) UnmarshalText(b []byte) error {
	v, err := ParseFrame(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Strategy reduces the wire's cut across a plate to a single final height.
type Strategy int

const (
	WidthAverage Strategy = iota // Mean of the leading and trailing edge heights
	EdgeSampling                 // Height at the trailing (exit) edge
)

func (s Strategy) String() string {
	switch s {
	case EdgeSampling:
		return "edge-sampling"
	default:
		return "width-average"
	}
}

// ParseStrategy accepts "width-average" or "edge-sampling".
func ParseStrategy(s string) (Strategy, error) {
	switch normalizeToken(s) {
	case "widthaverage", "average", "avg":
		return WidthAverage, nil
	case "edgesampling", "edge":
		return EdgeSampling, nil
	}
	return WidthAverage, fmt.Errorf("unknown strategy %q", s)
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Point2D is a point in the side view of the stack, in inches.
// X runs along the stack, Y is the elevation above the plate bottom face.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlateStackConfig describes the row of identical plates being cut.
type PlateStackConfig struct {
	PlateCount  int     `json:"plate_count"`
	PlateHeight float64 `json:"plate_height"` // inches
	PlateWidth  float64 `json:"plate_width"`  // inches, measured along the wire
}

// Validate reports ErrInvalidConfiguration for non-positive dimensions.
func (c PlateStackConfig) Validate() error {
	if c.PlateCount < 1 {
		return fmt.Errorf("%w: plate count %d must be at least 1", ErrInvalidConfiguration, c.PlateCount)
	}
	if !(c.PlateHeight > 0) || math.IsInf(c.PlateHeight, 0) {
		return fmt.Errorf("%w: plate height %g must be a positive number", ErrInvalidConfiguration, c.PlateHeight)
	}
	if !(c.PlateWidth > 0) || math.IsInf(c.PlateWidth, 0) {
		return fmt.Errorf("%w: plate width %g must be a positive number", ErrInvalidConfiguration, c.PlateWidth)
	}
	if math.IsInf(c.StackWidth(), 0) {
		return fmt.Errorf("%w: stack of %d plates %g wide is too long", ErrInvalidConfiguration, c.PlateCount, c.PlateWidth)
	}
	return nil
}

// StackWidth returns the length of the whole row along the wire.
func (c PlateStackConfig) StackWidth() float64 {
	return float64(c.PlateCount) * c.PlateWidth
}

// WireCutParams positions the cutting wire.
type WireCutParams struct {
	AngleDegrees   float64    `json:"angle_degrees"`
	VerticalOffset float64    `json:"vertical_offset"` // inches from the origin face
	OriginSide     OriginSide `json:"origin_side"`
}

// Validate reports ErrDomain for non-finite values and for angles whose
// slope is undefined (an odd multiple of 90 degrees).
func (w WireCutParams) Validate() error {
	if math.IsNaN(w.AngleDegrees) || math.IsInf(w.AngleDegrees, 0) {
		return fmt.Errorf("%w: wire angle %g is not finite", ErrDomain, w.AngleDegrees)
	}
	if math.IsNaN(w.VerticalOffset) || math.IsInf(w.VerticalOffset, 0) {
		return fmt.Errorf("%w: wire offset %g is not finite", ErrDomain, w.VerticalOffset)
	}
	if math.Abs(math.Mod(math.Abs(w.AngleDegrees), 180)-90) < verticalAngleEpsilon {
		return fmt.Errorf("%w: wire angle %g has no finite slope", ErrDomain, w.AngleDegrees)
	}
	return nil
}

// verticalAngleEpsilon is how close (in degrees) to vertical an angle may get.
const verticalAngleEpsilon = 1e-9

// ToleranceWindow is the inclusive range of acceptable final heights.
type ToleranceWindow struct {
	MinHeight float64 `json:"min_height"`
	MaxHeight float64 `json:"max_height"`
}

// Validate reports ErrInvalidTolerance for NaN bounds or Min > Max.
func (t ToleranceWindow) Validate() error {
	if math.IsNaN(t.MinHeight) || math.IsNaN(t.MaxHeight) {
		return fmt.Errorf("%w: tolerance bounds must be numbers", ErrInvalidTolerance)
	}
	if t.MinHeight > t.MaxHeight {
		return fmt.Errorf("%w: min height %g exceeds max height %g", ErrInvalidTolerance, t.MinHeight, t.MaxHeight)
	}
	return nil
}

// Contains reports whether h lies in the window, bounds included.
func (t ToleranceWindow) Contains(h float64) bool {
	return t.MinHeight <= h && h <= t.MaxHeight
}

// Status strings used in every human-facing output.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// PlateResult is the outcome for a single plate.
type PlateResult struct {
	Index        int     `json:"index"`         // 0-based
	FinalHeight  float64 `json:"final_height"`  // clamped to [0, PlateHeight]
	LeadingEdge  float64 `json:"leading_edge"`  // clamped height at the entry edge
	TrailingEdge float64 `json:"trailing_edge"` // clamped height at the exit edge
	Passed       bool    `json:"passed"`
}

// Number returns the 1-based plate number shown to users.
func (p PlateResult) Number() int {
	return p.Index + 1
}

// Status returns PASS or FAIL.
func (p PlateResult) Status() string {
	if p.Passed {
		return StatusPass
	}
	return StatusFail
}

// Summary aggregates a classified run.
type Summary struct {
	Count          int     `json:"count"`
	Passed         int     `json:"passed"`
	Failed         int     `json:"failed"`
	MinHeight      float64 `json:"min_height"`
	MaxHeight      float64 `json:"max_height"`
	MeanHeight     float64 `json:"mean_height"`
	FailingIndices []int   `json:"failing_indices"` // 0-based
}

// PassRate returns the passing share in percent.
func (s Summary) PassRate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Count) * 100.0
}

// SimulationResult holds the full outcome of one run.
type SimulationResult struct {
	ID        string           `json:"id"`
	Config    PlateStackConfig `json:"config"`
	Wire      WireCutParams    `json:"wire"`
	Tolerance ToleranceWindow  `json:"tolerance"`
	Frame     Frame            `json:"frame"`
	Strategy  Strategy         `json:"strategy"`
	Plates    []PlateResult    `json:"plates"`
	Summary   Summary          `json:"summary"`
}

// FailureCount returns the number of plates outside the window.
func (r SimulationResult) FailureCount() int {
	return r.Summary.Failed
}

// FailingIndices returns the 0-based indices of failing plates.
func (r SimulationResult) FailingIndices() []int {
	out := make([]int, len(r.Summary.FailingIndices))
	copy(out, r.Summary.FailingIndices)
	return out
}

// Heights returns the final heights in plate order.
func (r SimulationResult) Heights() []float64 {
	hs := make([]float64, len(r.Plates))
	for i, p := range r.Plates {
		hs[i] = p.FinalHeight
	}
	return hs
}

// SweepFrame is one sample of the wire's progress through the stack.
type SweepFrame struct {
	Step         int        `json:"step"`
	T            float64    `json:"t"` // progress in [0, 1]
	Wire         [2]Point2D `json:"wire"`
	PlateHeights []float64  `json:"plate_heights"`
}

var tokenReplacer = strings.NewReplacer("-", "", "_", "", " ", "")

func normalizeToken(s string) string {
	return tokenReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}
