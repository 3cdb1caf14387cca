package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportXLSX_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")

	if err := ExportXLSX(path, buildTestResult(t)); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("missing Results sheet: %v", err)
	}
	if len(rows) != 11 {
		t.Fatalf("expected header + 10 rows, got %d", len(rows))
	}
	if rows[0][0] != "Plate #" || rows[0][2] != "Status" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[5][0] != "5" || rows[5][2] != "FAIL" {
		t.Errorf("expected plate 5 to fail, got %v", rows[5])
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("missing Summary sheet: %v", err)
	}
	found := false
	for _, r := range summary {
		if len(r) == 2 && r[0] == "Plates Failed" {
			found = true
			if r[1] != "6" {
				t.Errorf("expected 6 failed plates, got %s", r[1])
			}
		}
	}
	if !found {
		t.Error("summary sheet has no Plates Failed row")
	}
}
