package engine

import (
	"testing"

	"github.com/piwi3910/WireCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeResult_LevelScenario(t *testing.T) {
	result, err := ComputeResult(
		smallStack(),
		model.WireCutParams{AngleDegrees: 0, VerticalOffset: 0.5, OriginSide: model.FromTop},
		model.ToleranceWindow{MinHeight: 4.4, MaxHeight: 4.6},
	)
	require.NoError(t, err)

	require.Len(t, result.Plates, 3)
	for i, p := range result.Plates {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, 4.5, p.FinalHeight)
		assert.True(t, p.Passed)
	}
	assert.Equal(t, 0, result.FailureCount())
	assert.Empty(t, result.FailingIndices())
	assert.Equal(t, model.FrameFullStack, result.Frame)
	assert.Equal(t, model.WidthAverage, result.Strategy)
}

func TestComputeResult_ExactBoundaryPasses(t *testing.T) {
	result, err := ComputeResult(
		smallStack(),
		model.WireCutParams{VerticalOffset: 0.5},
		model.ToleranceWindow{MinHeight: 4.5, MaxHeight: 4.5},
	)
	require.NoError(t, err)
	for _, p := range result.Plates {
		assert.True(t, p.Passed)
	}
}

func TestComputeResult_FailingIndices(t *testing.T) {
	// Plates 1 and 2 are clamped to the full plate height and fall outside the window.
	result, err := ComputeResult(
		smallStack(),
		model.WireCutParams{AngleDegrees: -20, VerticalOffset: 0.5},
		model.ToleranceWindow{MinHeight: 4.4, MaxHeight: 4.9},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, result.FailureCount())
	assert.Equal(t, []int{1, 2}, result.FailingIndices())
	assert.Equal(t, "PASS", result.Plates[0].Status())
	assert.Equal(t, "FAIL", result.Plates[2].Status())
	assert.Equal(t, 3, result.Plates[2].Number())
}

func TestComputeResult_Errors(t *testing.T) {
	okStack := smallStack()
	okWire := model.WireCutParams{}
	okTol := model.ToleranceWindow{MinHeight: 1, MaxHeight: 2}

	_, err := ComputeResult(model.PlateStackConfig{PlateCount: 0, PlateHeight: 1, PlateWidth: 1}, okWire, okTol)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)

	_, err = ComputeResult(okStack, okWire, model.ToleranceWindow{MinHeight: 3, MaxHeight: 2})
	assert.ErrorIs(t, err, model.ErrInvalidTolerance)

	result, err := ComputeResult(okStack, model.WireCutParams{AngleDegrees: -90}, okTol)
	assert.ErrorIs(t, err, model.ErrDomain)
	assert.Empty(t, result.Plates, "a failed run produces no plates")
}

func TestComputeResult_Idempotent(t *testing.T) {
	job := model.DefaultJob()
	job.Wire.AngleDegrees = 0.013
	job.Wire.VerticalOffset = 0.004

	a, err := Run(job)
	require.NoError(t, err)
	b, err := Run(job)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRun_UsesJobSettings(t *testing.T) {
	job := model.NewJob("frame check")
	job.Stack = smallStack()
	job.Wire = model.WireCutParams{AngleDegrees: 1, VerticalOffset: 0.5}
	job.Tolerance = model.ToleranceWindow{MinHeight: 0, MaxHeight: 5}
	job.Frame = model.FrameSinglePlate
	job.Strategy = model.EdgeSampling

	result, err := Run(job)
	require.NoError(t, err)

	assert.Equal(t, job.ID, result.ID)
	assert.Equal(t, model.FrameSinglePlate, result.Frame)
	assert.Equal(t, model.EdgeSampling, result.Strategy)
	assert.Equal(t, result.Plates[0].FinalHeight, result.Plates[2].FinalHeight)

	sweep, err := RunSweep(job)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSweepSteps, sweep.Len())
}
