package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/WireCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSweep_DefaultLength(t *testing.T) {
	sweep, err := GenerateSweep(smallStack(), model.WireCutParams{VerticalOffset: 0.5}, 0)
	require.NoError(t, err)

	assert.Equal(t, 101, sweep.Len())
	frames := sweep.Frames()
	require.Len(t, frames, 101)
	assert.Equal(t, 0, frames[0].Step)
	assert.Equal(t, 100, frames[100].Step)
	assert.Equal(t, 0.0, frames[0].T)
	assert.Equal(t, 1.0, frames[100].T)
}

func TestGenerateSweep_TooFewSteps(t *testing.T) {
	_, err := GenerateSweep(smallStack(), model.WireCutParams{}, 1)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)

	_, err = GenerateSweep(smallStack(), model.WireCutParams{}, -5)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestGenerateSweep_InvalidInputs(t *testing.T) {
	_, err := GenerateSweep(model.PlateStackConfig{}, model.WireCutParams{}, 0)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)

	_, err = GenerateSweep(smallStack(), model.WireCutParams{AngleDegrees: 90}, 0)
	assert.ErrorIs(t, err, model.ErrDomain)
}

func TestSweep_Restartable(t *testing.T) {
	stack := model.PlateStackConfig{PlateCount: 12, PlateHeight: 5.5, PlateWidth: 1.5}
	wire := model.WireCutParams{AngleDegrees: 1.25, VerticalOffset: 0.1}

	a, err := GenerateSweep(stack, wire, 0)
	require.NoError(t, err)
	b, err := GenerateSweep(stack, wire, 0)
	require.NoError(t, err)

	assert.Equal(t, a.Frames(), b.Frames())
	// Ranging the same sweep twice replays it
	assert.Equal(t, a.Frames(), a.Frames())
}

func TestSweep_StartAndEnd(t *testing.T) {
	stack := model.PlateStackConfig{PlateCount: 4, PlateHeight: 5.0, PlateWidth: 1.0}
	wire := model.WireCutParams{AngleDegrees: 2, VerticalOffset: 0.5}

	sweep, err := GenerateSweep(stack, wire, 0)
	require.NoError(t, err)
	result, err := ComputeResult(stack, wire, model.ToleranceWindow{MinHeight: 0, MaxHeight: 5})
	require.NoError(t, err)

	first := sweep.Frame(0)
	for _, h := range first.PlateHeights {
		assert.Equal(t, 5.0, h, "nothing is cut before the wire moves")
	}
	assert.Equal(t, first.Wire[0], first.Wire[1])
	assert.Equal(t, model.Point2D{X: 0, Y: 4.5}, first.Wire[0])

	last := sweep.Frame(sweep.Len() - 1)
	assert.Equal(t, result.Heights(), last.PlateHeights)
	assert.Equal(t, 4.0, last.Wire[1].X)

	line, err := NewWireLine(wire)
	require.NoError(t, err)
	assert.Equal(t, line.Elevation(4.0, 5.0), last.Wire[1].Y)
}

func TestSweep_PartialProgress(t *testing.T) {
	stack := model.PlateStackConfig{PlateCount: 4, PlateHeight: 5.0, PlateWidth: 1.0}
	wire := model.WireCutParams{AngleDegrees: 1, VerticalOffset: 0.5}

	sweep, err := GenerateSweep(stack, wire, 5, WithStrategy(model.EdgeSampling))
	require.NoError(t, err)
	result, err := ComputeResult(stack, wire, model.ToleranceWindow{MinHeight: 0, MaxHeight: 5}, WithStrategy(model.EdgeSampling))
	require.NoError(t, err)

	// t = 0.5: the front is at x = 2, plates 0 and 1 are done, 2 and 3 untouched
	mid := sweep.Frame(2)
	assert.Equal(t, 0.5, mid.T)
	assert.Equal(t, 2.0, mid.Wire[1].X)
	assert.Equal(t, result.Plates[0].FinalHeight, mid.PlateHeights[0])
	assert.Equal(t, result.Plates[1].FinalHeight, mid.PlateHeights[1])
	assert.Equal(t, 5.0, mid.PlateHeights[2])
	assert.Equal(t, 5.0, mid.PlateHeights[3])

	// t = 0.75: plate 2 is done, plate 3 untouched
	late := sweep.Frame(3)
	assert.Equal(t, 3.0, late.Wire[1].X)
	assert.Equal(t, result.Plates[2].FinalHeight, late.PlateHeights[2])
	assert.Equal(t, 5.0, late.PlateHeights[3])
}

func TestSweep_PartialProgressWidthAverage(t *testing.T) {
	stack := model.PlateStackConfig{PlateCount: 4, PlateHeight: 5.0, PlateWidth: 1.0}
	wire := model.WireCutParams{AngleDegrees: 1, VerticalOffset: 0.5}

	sweep, err := GenerateSweep(stack, wire, 9)
	require.NoError(t, err)
	line, err := NewWireLine(wire)
	require.NoError(t, err)

	// t = 0.375: the front is at x = 1.5, half way through plate 1
	f := sweep.Frame(3)
	assert.Equal(t, 1.5, f.Wire[1].X)
	expected := (line.Remaining(1.0, 5) + line.Remaining(1.5, 5)) / 2
	assert.InDelta(t, expected, f.PlateHeights[1], 1e-12)
	assert.Equal(t, 5.0, f.PlateHeights[2])
}

func TestSweep_StartAndEndFromBottom(t *testing.T) {
	stack := model.PlateStackConfig{PlateCount: 4, PlateHeight: 5.0, PlateWidth: 1.0}
	wire := model.WireCutParams{AngleDegrees: 1, VerticalOffset: 2.0, OriginSide: model.FromBottom}

	sweep, err := GenerateSweep(stack, wire, 0)
	require.NoError(t, err)
	result, err := ComputeResult(stack, wire, model.ToleranceWindow{MinHeight: 0, MaxHeight: 5})
	require.NoError(t, err)
	line, err := NewWireLine(wire)
	require.NoError(t, err)

	first := sweep.Frame(0)
	for _, h := range first.PlateHeights {
		assert.Equal(t, 5.0, h)
	}
	assert.Equal(t, model.Point2D{X: 0, Y: 2.0}, first.Wire[0])

	last := sweep.Frame(sweep.Len() - 1)
	assert.Equal(t, result.Heights(), last.PlateHeights)
	assert.InDelta(t, 2.0+math.Tan(math.Pi/180)*4, last.Wire[1].Y, 1e-12)
	assert.Equal(t, line.Elevation(4.0, 5.0), last.Wire[1].Y)
	// From the bottom a rising wire leaves later plates taller
	assert.Greater(t, last.PlateHeights[3], last.PlateHeights[0])
}

func TestSweep_WireFrontInterpolatesLinearly(t *testing.T) {
	stack := model.PlateStackConfig{PlateCount: 10, PlateHeight: 5.0, PlateWidth: 1.0}
	wire := model.WireCutParams{AngleDegrees: 1.5, VerticalOffset: 0.3}

	sweep, err := GenerateSweep(stack, wire, 0)
	require.NoError(t, err)

	start := sweep.Frame(0).Wire[1].Y
	end := sweep.Frame(100).Wire[1].Y
	for _, f := range sweep.All() {
		expected := start + f.T*(end-start)
		assert.InDelta(t, expected, f.Wire[1].Y, 1e-9)
		assert.InDelta(t, f.T*10.0, f.Wire[1].X, 1e-9)
	}
}

func TestSweep_SinglePlateFrameSpansOnePlate(t *testing.T) {
	stack := model.PlateStackConfig{PlateCount: 3, PlateHeight: 5.0, PlateWidth: 2.0}
	sweep, err := GenerateSweep(stack, model.WireCutParams{AngleDegrees: 1}, 0, WithFrame(model.FrameSinglePlate))
	require.NoError(t, err)

	last := sweep.Frame(100)
	assert.Equal(t, 2.0, last.Wire[1].X)
	mid := sweep.Frame(50)
	assert.Equal(t, mid.PlateHeights[0], mid.PlateHeights[1])
	assert.Equal(t, mid.PlateHeights[1], mid.PlateHeights[2])
}

func TestSweep_AllStopsEarly(t *testing.T) {
	sweep, err := GenerateSweep(smallStack(), model.WireCutParams{}, 0)
	require.NoError(t, err)

	count := 0
	for k := range sweep.All() {
		count++
		if k == 9 {
			break
		}
	}
	assert.Equal(t, 10, count)
}

func TestSweep_FrameIndexIsBounded(t *testing.T) {
	sweep, err := GenerateSweep(smallStack(), model.WireCutParams{}, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, sweep.Frame(-1).Step)
	assert.Equal(t, 2, sweep.Frame(99).Step)
}
