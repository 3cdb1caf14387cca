package ui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/piwi3910/WireCut/internal/model"
)

func TestJobForm_LoadReadRoundTrip(t *testing.T) {
	test.NewTempApp(t)

	job := model.NewJob("Batch 7")
	job.Stack.PlateCount = 12
	job.Wire.AngleDegrees = -0.35
	job.Wire.VerticalOffset = 0.02
	job.Wire.OriginSide = model.FromBottom
	job.Frame = model.FrameSinglePlate
	job.Strategy = model.EdgeSampling
	job.SweepSteps = 41

	f := newJobForm(model.DefaultLimits())
	f.load(job)

	got, err := f.read(model.Job{ID: job.ID})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got != job {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, job)
	}
}

func TestJobForm_ReadRejectsBadNumbers(t *testing.T) {
	test.NewTempApp(t)

	f := newJobForm(model.DefaultLimits())
	f.load(model.DefaultJob())
	f.width.SetText("wide")

	_, err := f.read(model.DefaultJob())
	if err == nil || !strings.Contains(err.Error(), "plate width") {
		t.Errorf("expected plate width error, got %v", err)
	}

	f.width.SetText("1.5")
	f.plates.SetText("2.5")
	if _, err := f.read(model.DefaultJob()); err == nil {
		t.Error("expected fractional plate count to be rejected")
	}
}

func TestJobForm_SliderSnapsAngle(t *testing.T) {
	test.NewTempApp(t)

	f := newJobForm(model.DefaultLimits())
	f.angleSlider.OnChanged(0.12345)
	if f.angle.Text != "0.12" {
		t.Errorf("expected snapped angle 0.12, got %q", f.angle.Text)
	}
	f.angleSlider.OnChanged(9)
	if f.angle.Text != "5.00" {
		t.Errorf("expected angle clamped to 5.00, got %q", f.angle.Text)
	}
}

func TestJobForm_Warnings(t *testing.T) {
	test.NewTempApp(t)

	job := model.DefaultJob()
	job.Stack.PlateCount = 900
	f := newJobForm(model.DefaultLimits())
	f.load(job)

	if !strings.Contains(f.warnings.Text, "number of plates") {
		t.Errorf("expected plate count warning, got %q", f.warnings.Text)
	}
}
