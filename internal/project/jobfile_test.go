package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/WireCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadJobFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs", "run.ini")

	job := model.NewJob("Batch 12")
	job.Stack = model.PlateStackConfig{PlateCount: 48, PlateHeight: 4.25, PlateWidth: 1.125}
	job.Wire = model.WireCutParams{AngleDegrees: -0.35, VerticalOffset: 0.02, OriginSide: model.FromBottom}
	job.Tolerance = model.ToleranceWindow{MinHeight: 4.2, MaxHeight: 4.3}
	job.Frame = model.FrameSinglePlate
	job.Strategy = model.EdgeSampling
	job.SweepSteps = 51

	require.NoError(t, SaveJobFile(path, job))

	loaded, err := LoadJobFile(path, model.DefaultJob())
	require.NoError(t, err)
	assert.Equal(t, job, loaded)
}

func TestParseJob_FillsGapsFromBase(t *testing.T) {
	data := []byte(`
name = partial

[wire]
angle_degrees = 0.5
`)
	base := model.DefaultJob()
	job, err := ParseJob(data, base)
	require.NoError(t, err)

	assert.Equal(t, "partial", job.Name)
	assert.Equal(t, 0.5, job.Wire.AngleDegrees)
	assert.Equal(t, base.Stack, job.Stack)
	assert.Equal(t, base.Tolerance, job.Tolerance)
	assert.Equal(t, base.Frame, job.Frame)
	assert.Equal(t, base.SweepSteps, job.SweepSteps)
}

func TestParseJob_BadEnum(t *testing.T) {
	_, err := ParseJob([]byte("[model]\nstrategy = median\n"), model.DefaultJob())
	assert.Error(t, err)

	_, err = ParseJob([]byte("[wire]\norigin_side = left\n"), model.DefaultJob())
	assert.Error(t, err)
}

func TestLoadJobFile_Missing(t *testing.T) {
	_, err := LoadJobFile(filepath.Join(t.TempDir(), "nope.ini"), model.DefaultJob())
	assert.Error(t, err)
}
