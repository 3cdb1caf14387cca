package engine

import "github.com/piwi3910/WireCut/internal/model"

type options struct {
	frame    model.Frame
	strategy model.Strategy
}

// Option adjusts how a run is evaluated.
type Option func(*options)

// WithFrame selects the coordinate frame (default full-stack).
func WithFrame(f model.Frame) Option {
	return func(o *options) { o.frame = f }
}

// WithStrategy selects the height strategy (default width-average).
func WithStrategy(s model.Strategy) Option {
	return func(o *options) { o.strategy = s }
}

func buildOptions(opts []Option) options {
	o := options{frame: model.FrameFullStack, strategy: model.WidthAverage}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ComputeResult evaluates and classifies every plate. All inputs are
// validated first, so an error means no plate was evaluated. Identical
// inputs give identical results.
func ComputeResult(stack model.PlateStackConfig, wire model.WireCutParams, tol model.ToleranceWindow, opts ...Option) (model.SimulationResult, error) {
	if err := tol.Validate(); err != nil {
		return model.SimulationResult{}, err
	}
	o := buildOptions(opts)
	eval, err := NewEvaluator(stack, wire, o.frame, o.strategy)
	if err != nil {
		return model.SimulationResult{}, err
	}

	plates, summary := Classify(eval.Evaluate(), tol)
	return model.SimulationResult{
		Config:    stack,
		Wire:      wire,
		Tolerance: tol,
		Frame:     o.frame,
		Strategy:  o.strategy,
		Plates:    plates,
		Summary:   summary,
	}, nil
}

// GenerateSweep builds the animation sequence. steps = 0 selects
// model.DefaultSweepSteps (101 frames, steps 0..100).
func GenerateSweep(stack model.PlateStackConfig, wire model.WireCutParams, steps int, opts ...Option) (*Sweep, error) {
	o := buildOptions(opts)
	eval, err := NewEvaluator(stack, wire, o.frame, o.strategy)
	if err != nil {
		return nil, err
	}
	return newSweep(eval, steps)
}

// Run computes the result for a job. The result carries the job's ID.
func Run(job model.Job) (model.SimulationResult, error) {
	result, err := ComputeResult(job.Stack, job.Wire, job.Tolerance, jobOptions(job)...)
	if err != nil {
		return model.SimulationResult{}, err
	}
	result.ID = job.ID
	return result, nil
}

// RunSweep builds the sweep for a job.
func RunSweep(job model.Job) (*Sweep, error) {
	return GenerateSweep(job.Stack, job.Wire, job.SweepSteps, jobOptions(job)...)
}

func jobOptions(job model.Job) []Option {
	return []Option{WithFrame(job.Frame), WithStrategy(job.Strategy)}
}
