package engine

import "github.com/piwi3910/WireCut/internal/model"

// Evaluator computes per-plate final heights for one stack and wire.
//
// The frame is resolved in exactly one place, plateSpan. In the full-stack
// frame the wire runs along the whole row and plate i occupies
// [i*W, (i+1)*W]; its local coordinate is the stack coordinate minus the
// cumulative offset i*W, and its height is always compared against the
// single-plate range [0, H]. The plates stand face to face along the wire,
// so the cumulative offset runs along x in widths; every plate shares the
// same top and bottom faces and needs no vertical shift. In the
// single-plate frame every plate is cut over its own [0, W], so all
// plates come out the same.
type Evaluator struct {
	stack    model.PlateStackConfig
	line     WireLine
	frame    model.Frame
	strategy model.Strategy
}

// NewEvaluator validates the stack and wire and builds an evaluator.
func NewEvaluator(stack model.PlateStackConfig, wire model.WireCutParams, frame model.Frame, strategy model.Strategy) (*Evaluator, error) {
	if err := stack.Validate(); err != nil {
		return nil, err
	}
	line, err := NewWireLine(wire)
	if err != nil {
		return nil, err
	}
	return &Evaluator{stack: stack, line: line, frame: frame, strategy: strategy}, nil
}

// Line returns the wire line the evaluator uses.
func (e *Evaluator) Line() WireLine { return e.line }

// Span returns the wire travel along x needed to cut every plate.
func (e *Evaluator) Span() float64 {
	if e.frame == model.FrameSinglePlate {
		return e.stack.PlateWidth
	}
	return e.stack.StackWidth()
}

// plateSpan returns the x range plate i occupies in the evaluation frame.
func (e *Evaluator) plateSpan(i int) (lead, trail float64) {
	if e.frame == model.FrameSinglePlate {
		return 0, e.stack.PlateWidth
	}
	return float64(i) * e.stack.PlateWidth, float64(i+1) * e.stack.PlateWidth
}

// heightOver reduces the cut between lead and trail to one clamped height.
func (e *Evaluator) heightOver(lead, trail float64) float64 {
	h := e.stack.PlateHeight
	var raw float64
	switch e.strategy {
	case model.EdgeSampling:
		raw = e.line.Remaining(trail, h)
	default:
		raw = (e.line.Remaining(lead, h) + e.line.Remaining(trail, h)) / 2
	}
	return clamp(raw, h)
}

// Plate evaluates plate i. Passed is left false; see Classify.
func (e *Evaluator) Plate(i int) model.PlateResult {
	h := e.stack.PlateHeight
	lead, trail := e.plateSpan(i)
	return model.PlateResult{
		Index:        i,
		FinalHeight:  e.heightOver(lead, trail),
		LeadingEdge:  clamp(e.line.Remaining(lead, h), h),
		TrailingEdge: clamp(e.line.Remaining(trail, h), h),
	}
}

// PartialHeight returns the height of plate i once the wire front has
// reached x = front. A plate the front has not entered is still whole;
// a plate the front has left has its final height; in between, the
// strategy is applied to the part already cut.
func (e *Evaluator) PartialHeight(i int, front float64) float64 {
	lead, trail := e.plateSpan(i)
	switch {
	case front <= lead:
		return e.stack.PlateHeight
	case front >= trail:
		return e.heightOver(lead, trail)
	default:
		return e.heightOver(lead, front)
	}
}

// Evaluate returns one unclassified result per plate in index order.
func (e *Evaluator) Evaluate() []model.PlateResult {
	plates := make([]model.PlateResult, e.stack.PlateCount)
	for i := range plates {
		plates[i] = e.Plate(i)
	}
	return plates
}
