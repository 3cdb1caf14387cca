package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/model"
)

// buildTestResult runs a ten-plate stack with a slight tilt so that
// plates 1-4 pass and plates 5-10 fail.
func buildTestResult(t *testing.T) model.SimulationResult {
	t.Helper()
	job := model.DefaultJob()
	job.ID = "run-test"
	job.Stack.PlateCount = 10
	job.Wire.AngleDegrees = 0.1
	job.Wire.VerticalOffset = 0.01

	result, err := engine.Run(job)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Summary.Passed != 4 || result.Summary.Failed != 6 {
		t.Fatalf("expected 4 passed / 6 failed, got %d / %d", result.Summary.Passed, result.Summary.Failed)
	}
	return result
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("output file is empty")
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	if err := ExportPDF(path, buildTestResult(t)); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("expected PDF magic header, got %q", data[:5])
	}
}

func TestExportPDF_LargeStackSpansPages(t *testing.T) {
	job := model.DefaultJob()
	job.Wire.AngleDegrees = 0.5

	result, err := engine.Run(job)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "large.pdf")
	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error for %d plates: %v", len(result.Plates), err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportPDF(path, model.SimulationResult{}); err == nil {
		t.Error("expected error for empty result, got nil")
	}
}

func TestFormatSummaryValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{5.5, "5.5000"},
		{144, "144"},
		{"top", "top"},
	}
	for _, tt := range tests {
		if got := formatSummaryValue(tt.in); got != tt.want {
			t.Errorf("formatSummaryValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
