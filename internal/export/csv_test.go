package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, buildTestResult(t)); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 11 {
		t.Fatalf("expected header + 10 rows, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != "Plate #,Final Height (in),Status" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "1" || records[1][2] != "PASS" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[10][0] != "10" || records[10][2] != "FAIL" {
		t.Errorf("unexpected last row: %v", records[10])
	}
}

func TestWriteCSV_FullPrecision(t *testing.T) {
	result := buildTestResult(t)
	result.Plates = result.Plates[:1]
	result.Plates[0].FinalHeight = 5.123456789012

	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "1,5.123456789012,PASS") {
		t.Errorf("expected full precision height, got:\n%s", buf.String())
	}
}

func TestExportCSV_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultCSVName)

	if err := ExportCSV(path, buildTestResult(t)); err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Plate #,") {
		t.Errorf("expected CSV header at start of file, got %q", string(data[:20]))
	}
}
