package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestParseEnums(t *testing.T) {
	side, err := ParseOriginSide("From-Bottom")
	if err != nil || side != FromBottom {
		t.Errorf("expected FromBottom, got %v (%v)", side, err)
	}
	if _, err := ParseOriginSide("sideways"); err == nil {
		t.Error("expected error for unknown origin side")
	}

	frame, err := ParseFrame("single_plate")
	if err != nil || frame != FrameSinglePlate {
		t.Errorf("expected FrameSinglePlate, got %v (%v)", frame, err)
	}

	strategy, err := ParseStrategy("EDGE-SAMPLING")
	if err != nil || strategy != EdgeSampling {
		t.Errorf("expected EdgeSampling, got %v (%v)", strategy, err)
	}
}

func TestEnumsRoundTripAsText(t *testing.T) {
	job := DefaultJob()
	job.Wire.OriginSide = FromBottom
	job.Frame = FrameSinglePlate
	job.Strategy = EdgeSampling

	data, err := json.Marshal(job)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Job
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Wire.OriginSide != FromBottom || decoded.Frame != FrameSinglePlate || decoded.Strategy != EdgeSampling {
		t.Errorf("enums did not survive JSON: %+v", decoded)
	}
}

func TestPlateStackConfigValidate(t *testing.T) {
	good := PlateStackConfig{PlateCount: 1, PlateHeight: 0.1, PlateWidth: 0.1}
	if err := good.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := []PlateStackConfig{
		{PlateCount: 0, PlateHeight: 1, PlateWidth: 1},
		{PlateCount: 1, PlateHeight: 0, PlateWidth: 1},
		{PlateCount: 1, PlateHeight: 1, PlateWidth: -1},
		{PlateCount: 1, PlateHeight: math.Inf(1), PlateWidth: 1},
		{PlateCount: 2, PlateHeight: 1, PlateWidth: math.MaxFloat64},
	}
	for _, c := range bad {
		if err := c.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%+v: expected ErrInvalidConfiguration, got %v", c, err)
		}
	}
}

func TestWireCutParamsValidate(t *testing.T) {
	for _, deg := range []float64{0, -5, 5, 89.99, 180, -180} {
		if err := (WireCutParams{AngleDegrees: deg}).Validate(); err != nil {
			t.Errorf("angle %g: unexpected error %v", deg, err)
		}
	}
	for _, deg := range []float64{90, -90, 270, math.NaN()} {
		if err := (WireCutParams{AngleDegrees: deg}).Validate(); !errors.Is(err, ErrDomain) {
			t.Errorf("angle %g: expected ErrDomain, got %v", deg, err)
		}
	}
}

func TestToleranceWindow(t *testing.T) {
	w := ToleranceWindow{MinHeight: 5.48, MaxHeight: 5.52}
	if !w.Contains(5.48) || !w.Contains(5.52) || w.Contains(5.47) || w.Contains(5.53) {
		t.Error("Contains should be inclusive on both bounds")
	}
	if err := (ToleranceWindow{MinHeight: 2, MaxHeight: 1}).Validate(); !errors.Is(err, ErrInvalidTolerance) {
		t.Errorf("expected ErrInvalidTolerance, got %v", err)
	}
	if err := (ToleranceWindow{MinHeight: 1, MaxHeight: 1}).Validate(); err != nil {
		t.Errorf("equal bounds should be valid: %v", err)
	}
}

func TestPlateResultDisplay(t *testing.T) {
	p := PlateResult{Index: 0, Passed: true}
	if p.Number() != 1 {
		t.Errorf("expected plate number 1, got %d", p.Number())
	}
	if p.Status() != "PASS" {
		t.Errorf("expected PASS, got %s", p.Status())
	}
	p.Passed = false
	if p.Status() != "FAIL" {
		t.Errorf("expected FAIL, got %s", p.Status())
	}
}

func TestSimulationResultAccessors(t *testing.T) {
	r := SimulationResult{
		Plates:  []PlateResult{{Index: 0, FinalHeight: 1}, {Index: 1, FinalHeight: 2}},
		Summary: Summary{Count: 2, Passed: 1, Failed: 1, FailingIndices: []int{1}},
	}
	if r.FailureCount() != 1 {
		t.Errorf("expected 1 failure, got %d", r.FailureCount())
	}
	idx := r.FailingIndices()
	idx[0] = 99
	if r.Summary.FailingIndices[0] != 1 {
		t.Error("FailingIndices should return a copy")
	}
	if hs := r.Heights(); len(hs) != 2 || hs[1] != 2 {
		t.Errorf("unexpected heights %v", hs)
	}
	if r.Summary.PassRate() != 50 {
		t.Errorf("expected 50%% pass rate, got %f", r.Summary.PassRate())
	}
}

func TestStackWidth(t *testing.T) {
	c := PlateStackConfig{PlateCount: 144, PlateHeight: 5.5, PlateWidth: 1.5}
	if c.StackWidth() != 216 {
		t.Errorf("expected 216, got %f", c.StackWidth())
	}
}
