package engine

import (
	"fmt"
	"iter"

	"github.com/piwi3910/WireCut/internal/model"
)

// Sweep is the wire's progress through the stack as a fixed number of
// samples. It holds only immutable parameters: every frame is computed on
// demand, so the sequence can be replayed any number of times and the
// caller decides the pacing.
type Sweep struct {
	eval  *Evaluator
	steps int
}

func newSweep(eval *Evaluator, steps int) (*Sweep, error) {
	if steps == 0 {
		steps = model.DefaultSweepSteps
	}
	if steps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps, got %d", model.ErrInvalidConfiguration, steps)
	}
	return &Sweep{eval: eval, steps: steps}, nil
}

// Len returns the number of frames.
func (s *Sweep) Len() int { return s.steps }

// Span returns the wire travel covered by the last frame.
func (s *Sweep) Span() float64 { return s.eval.Span() }

// Frame computes frame k, 0 <= k < Len().
func (s *Sweep) Frame(k int) model.SweepFrame {
	if k < 0 {
		k = 0
	}
	if k >= s.steps {
		k = s.steps - 1
	}

	t := float64(k) / float64(s.steps-1)
	front := t * s.eval.Span()
	h := s.eval.stack.PlateHeight
	line := s.eval.line

	heights := make([]float64, s.eval.stack.PlateCount)
	for i := range heights {
		heights[i] = s.eval.PartialHeight(i, front)
	}

	return model.SweepFrame{
		Step:         k,
		T:            t,
		Wire:         [2]model.Point2D{line.Point(0, h), line.Point(front, h)},
		PlateHeights: heights,
	}
}

// All yields every frame in order. Each call starts from frame 0.
func (s *Sweep) All() iter.Seq2[int, model.SweepFrame] {
	return func(yield func(int, model.SweepFrame) bool) {
		for k := 0; k < s.steps; k++ {
			if !yield(k, s.Frame(k)) {
				return
			}
		}
	}
}

// Frames materialises the whole sequence.
func (s *Sweep) Frames() []model.SweepFrame {
	frames := make([]model.SweepFrame, 0, s.steps)
	for _, f := range s.All() {
		frames = append(frames, f)
	}
	return frames
}
