package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// DefaultSweepSteps is the number of animation samples (steps 0..100).
const DefaultSweepSteps = 101

// Job ties together every input of a simulation run.
type Job struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Stack      PlateStackConfig `json:"stack"`
	Wire       WireCutParams    `json:"wire"`
	Tolerance  ToleranceWindow  `json:"tolerance"`
	Frame      Frame            `json:"frame"`
	Strategy   Strategy         `json:"strategy"`
	SweepSteps int              `json:"sweep_steps"`
}

// NewJob returns a job with a fresh short ID and the default parameters.
func NewJob(name string) Job {
	j := DefaultJob()
	j.ID = uuid.New().String()[:8]
	j.Name = name
	return j
}

// DefaultJob returns the parameters the cutting station starts with:
// a full 144-plate run of 5.5" x 1.5" plates held to 5.50" +/- 0.02".
func DefaultJob() Job {
	return Job{
		Name: "Untitled",
		Stack: PlateStackConfig{
			PlateCount:  144,
			PlateHeight: 5.5,
			PlateWidth:  1.5,
		},
		Wire: WireCutParams{
			AngleDegrees:   0,
			VerticalOffset: 0,
			OriginSide:     FromTop,
		},
		Tolerance: ToleranceWindow{
			MinHeight: 5.48,
			MaxHeight: 5.52,
		},
		Frame:      FrameFullStack,
		Strategy:   WidthAverage,
		SweepSteps: DefaultSweepSteps,
	}
}

// Validate checks the job the same way the engine does, so a UI can
// reject input before running.
func (j Job) Validate() error {
	if err := j.Stack.Validate(); err != nil {
		return err
	}
	if err := j.Wire.Validate(); err != nil {
		return err
	}
	if err := j.Tolerance.Validate(); err != nil {
		return err
	}
	if j.SweepSteps != 0 && j.SweepSteps < 2 {
		return fmt.Errorf("%w: sweep needs at least 2 steps, got %d", ErrInvalidConfiguration, j.SweepSteps)
	}
	return nil
}

// Limits are the input ranges offered by the parameter form.
type Limits struct {
	MinPlates, MaxPlates       int
	MinHeight, MaxHeight       float64
	MinWidth, MaxWidth         float64
	MinTolerance, MaxTolerance float64
	MinAngle, MaxAngle         float64
	AngleStep                  float64
	MaxSweepSteps              int
}

// DefaultLimits returns the ranges of the standard parameter form.
func DefaultLimits() Limits {
	return Limits{
		MinPlates:    1,
		MaxPlates:    500,
		MinHeight:    0.1,
		MaxHeight:    10.0,
		MinWidth:     0.1,
		MaxWidth:     5.0,
		MinTolerance: 0.0,
		MaxTolerance: 10.0,
		MinAngle:     -5.0,
		MaxAngle:     5.0,
		AngleStep:    0.01,

		MaxSweepSteps: 1001,
	}
}

// Check returns one message per job field outside the limits.
// An empty slice means the job is acceptable.
func (l Limits) Check(j Job) []string {
	var problems []string
	if j.Stack.PlateCount < l.MinPlates || j.Stack.PlateCount > l.MaxPlates {
		problems = append(problems, fmt.Sprintf("number of plates must be between %d and %d", l.MinPlates, l.MaxPlates))
	}
	if !inRange(j.Stack.PlateHeight, l.MinHeight, l.MaxHeight) {
		problems = append(problems, fmt.Sprintf("plate height must be between %.1f and %.1f in", l.MinHeight, l.MaxHeight))
	}
	if !inRange(j.Stack.PlateWidth, l.MinWidth, l.MaxWidth) {
		problems = append(problems, fmt.Sprintf("plate width must be between %.1f and %.1f in", l.MinWidth, l.MaxWidth))
	}
	if !inRange(j.Tolerance.MinHeight, l.MinTolerance, l.MaxTolerance) {
		problems = append(problems, fmt.Sprintf("min tolerance height must be between %.1f and %.1f in", l.MinTolerance, l.MaxTolerance))
	}
	if !inRange(j.Tolerance.MaxHeight, l.MinTolerance, l.MaxTolerance) {
		problems = append(problems, fmt.Sprintf("max tolerance height must be between %.1f and %.1f in", l.MinTolerance, l.MaxTolerance))
	}
	if j.Tolerance.MinHeight > j.Tolerance.MaxHeight {
		problems = append(problems, "min tolerance height must not exceed max tolerance height")
	}
	if !inRange(j.Wire.AngleDegrees, l.MinAngle, l.MaxAngle) {
		problems = append(problems, fmt.Sprintf("wire angle must be between %.1f and %.1f degrees", l.MinAngle, l.MaxAngle))
	}
	if l.MaxSweepSteps > 0 && j.SweepSteps > l.MaxSweepSteps {
		problems = append(problems, fmt.Sprintf("sweep steps must not exceed %d", l.MaxSweepSteps))
	}
	return problems
}

// SnapAngle rounds an angle to the form's step and clamps it to the range.
func (l Limits) SnapAngle(deg float64) float64 {
	if l.AngleStep > 0 {
		deg = math.Round(deg/l.AngleStep) * l.AngleStep
	}
	return math.Max(l.MinAngle, math.Min(l.MaxAngle, deg))
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
