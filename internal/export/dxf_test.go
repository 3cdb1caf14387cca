package export

import (
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/WireCut/internal/model"
)

func TestExportDXF_Entities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.dxf")
	result := buildTestResult(t)

	if err := ExportDXF(path, result); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}

	lines, texts := 0, 0
	for _, e := range d.Entities() {
		switch e.(type) {
		case *entity.Line:
			lines++
		case *entity.Text:
			texts++
		}
	}
	// Four outline edges and one cut per plate, plus the wire.
	if want := len(result.Plates)*5 + 1; lines != want {
		t.Errorf("expected %d lines, got %d", want, lines)
	}
	if texts != len(result.Plates) {
		t.Errorf("expected %d plate numbers, got %d", len(result.Plates), texts)
	}
}

func TestExportDXF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")

	if err := ExportDXF(path, model.SimulationResult{}); err == nil {
		t.Error("expected error for empty result, got nil")
	}
}
