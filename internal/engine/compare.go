package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/WireCut/internal/model"
)

// ComparisonScenario defines a named job variant to compare.
type ComparisonScenario struct {
	Name string
	Job  model.Job
}

// ComparisonResult holds the simulation result and headline numbers
// for a single scenario. Err is set when the scenario's job is invalid.
type ComparisonResult struct {
	Scenario  ComparisonScenario
	Result    model.SimulationResult
	Failed    int
	PassRate  float64
	MinHeight float64
	MaxHeight float64
	Err       error
}

// CompareScenarios runs each scenario and returns the results in scenario
// order. This enables side-by-side comparison of wire setups, strategies
// and frames for the same stack.
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := Run(scenario.Job)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		results = append(results, ComparisonResult{
			Scenario:  scenario,
			Result:    result,
			Failed:    result.Summary.Failed,
			PassRate:  result.Summary.PassRate(),
			MinHeight: result.Summary.MinHeight,
			MaxHeight: result.Summary.MaxHeight,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if variants of a job: the other
// strategy, the other frame, a level wire and the mirrored angle.
func BuildDefaultScenarios(base model.Job) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Job: base},
	}

	altStrategy := base
	if base.Strategy == model.WidthAverage {
		altStrategy.Strategy = model.EdgeSampling
	} else {
		altStrategy.Strategy = model.WidthAverage
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name: fmt.Sprintf("Strategy %s", altStrategy.Strategy),
		Job:  altStrategy,
	})

	altFrame := base
	if base.Frame == model.FrameFullStack {
		altFrame.Frame = model.FrameSinglePlate
	} else {
		altFrame.Frame = model.FrameFullStack
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name: fmt.Sprintf("Frame %s", altFrame.Frame),
		Job:  altFrame,
	})

	if base.Wire.AngleDegrees != 0 {
		level := base
		level.Wire.AngleDegrees = 0
		scenarios = append(scenarios, ComparisonScenario{Name: "Level Wire", Job: level})

		mirrored := base
		mirrored.Wire.AngleDegrees = -base.Wire.AngleDegrees
		scenarios = append(scenarios, ComparisonScenario{
			Name: fmt.Sprintf("Angle %.2f°", mirrored.Wire.AngleDegrees),
			Job:  mirrored,
		})
	}

	return scenarios
}

// MaxPassingAngle returns the largest angle magnitude, in multiples of
// limits.AngleStep and within the limits, at which every plate of the job
// passes for both tilt directions. ok is false when even a level wire
// fails.
func MaxPassingAngle(job model.Job, limits model.Limits) (angle float64, ok bool, err error) {
	step := limits.AngleStep
	if step <= 0 {
		step = 0.01
	}
	maxMag := math.Min(math.Abs(limits.MinAngle), math.Abs(limits.MaxAngle))

	passes := func(deg float64) (bool, error) {
		j := job
		j.Wire.AngleDegrees = deg
		result, err := Run(j)
		if err != nil {
			return false, err
		}
		return result.Summary.Failed == 0, nil
	}

	if pass, err := passes(0); err != nil || !pass {
		return 0, false, err
	}

	// Heights change monotonically with the tilt, so the passing range
	// is an interval around zero; walk outwards until it breaks.
	n := int(math.Floor(maxMag/step + 1e-9))
	best := 0.0
	for k := 1; k <= n; k++ {
		deg := float64(k) * step
		up, err := passes(deg)
		if err != nil {
			return 0, false, err
		}
		down, err := passes(-deg)
		if err != nil {
			return 0, false, err
		}
		if !up || !down {
			break
		}
		best = deg
	}
	return best, true, nil
}
