// Package importer reads batches of simulation jobs from CSV and Excel
// sheets. It detects the delimiter, maps columns by header name and fills
// missing cells from a base job.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/WireCut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Jobs     []model.Job
	Errors   []string
	Warnings []string
}

// ColumnMapping maps job fields to their column indices; -1 means absent.
type ColumnMapping struct {
	Name     int
	Plates   int
	Height   int
	Width    int
	Angle    int
	Offset   int
	Side     int
	Min      int
	Max      int
	Frame    int
	Strategy int
	Steps    int
}

func emptyMapping() ColumnMapping {
	return ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
}

// positionalMapping is used when the first row is not a header.
func positionalMapping() ColumnMapping {
	return ColumnMapping{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
}

// headerAliases maps each field to its accepted header spellings (lowercase).
var headerAliases = []struct {
	field   func(*ColumnMapping) *int
	aliases []string
}{
	{func(m *ColumnMapping) *int { return &m.Name }, []string{"name", "job", "label", "description", "batch"}},
	{func(m *ColumnMapping) *int { return &m.Plates }, []string{"plates", "plate count", "number of plates", "count", "qty", "n"}},
	{func(m *ColumnMapping) *int { return &m.Height }, []string{"height", "plate height", "h", "plate height (in)"}},
	{func(m *ColumnMapping) *int { return &m.Width }, []string{"width", "plate width", "w", "plate width (in)"}},
	{func(m *ColumnMapping) *int { return &m.Angle }, []string{"angle", "wire angle", "angle (deg)", "wire cut angle (degrees)", "degrees"}},
	{func(m *ColumnMapping) *int { return &m.Offset }, []string{"offset", "wire offset", "vertical offset", "offset (in)"}},
	{func(m *ColumnMapping) *int { return &m.Side }, []string{"side", "origin", "origin side", "measured from"}},
	{func(m *ColumnMapping) *int { return &m.Min }, []string{"min", "min height", "min tolerance", "min tolerance height (in)", "lower"}},
	{func(m *ColumnMapping) *int { return &m.Max }, []string{"max", "max height", "max tolerance", "max tolerance height (in)", "upper"}},
	{func(m *ColumnMapping) *int { return &m.Frame }, []string{"frame", "model frame"}},
	{func(m *ColumnMapping) *int { return &m.Strategy }, []string{"strategy", "height strategy"}},
	{func(m *ColumnMapping) *int { return &m.Steps }, []string{"steps", "sweep steps", "frames"}},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive; the first column claiming a field wins. It returns
// the positional mapping and false when no cell is a known header.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := emptyMapping()
	isHeader := false

	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, h := range headerAliases {
			for _, alias := range h.aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if idx := h.field(&mapping); *idx == -1 {
					*idx = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(), false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rowParser accumulates the first error while reading one row.
type rowParser struct {
	row   []string
	label string
	err   string
	warns []string
}

func (p *rowParser) parseFloat(idx int, name string, dst *float64) {
	s := getCell(p.row, idx)
	if s == "" || p.err != "" {
		return
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = fmt.Sprintf("%s: Invalid %s '%s'", p.label, name, s)
		return
	}
	*dst = v
}

func (p *rowParser) parseInt(idx int, name string, dst *int) {
	s := getCell(p.row, idx)
	if s == "" || p.err != "" {
		return
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Sprintf("%s: Invalid %s '%s'", p.label, name, s)
		return
	}
	*dst = v
}

// enum applies parse to the cell; an unknown value keeps the base and warns.
func enum[T any](p *rowParser, idx int, name string, dst *T, parse func(string) (T, error)) {
	s := getCell(p.row, idx)
	if s == "" {
		return
	}
	v, err := parse(s)
	if err != nil {
		p.warns = append(p.warns, fmt.Sprintf("%s: Unknown %s '%s', keeping default", p.label, name, s))
		return
	}
	*dst = v
}

// parseRow builds a job from base and the mapped cells of row.
// Returns the job, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, base model.Job, jobCount int) (model.Job, string, []string) {
	job := base
	job.ID = uuid.New().String()[:8]
	job.Name = getCell(row, mapping.Name)
	if job.Name == "" {
		job.Name = fmt.Sprintf("Job %d", jobCount+1)
	}

	p := &rowParser{row: row, label: rowLabel}
	p.parseInt(mapping.Plates, "plate count", &job.Stack.PlateCount)
	p.parseFloat(mapping.Height, "plate height", &job.Stack.PlateHeight)
	p.parseFloat(mapping.Width, "plate width", &job.Stack.PlateWidth)
	p.parseFloat(mapping.Angle, "angle", &job.Wire.AngleDegrees)
	p.parseFloat(mapping.Offset, "offset", &job.Wire.VerticalOffset)
	p.parseFloat(mapping.Min, "min height", &job.Tolerance.MinHeight)
	p.parseFloat(mapping.Max, "max height", &job.Tolerance.MaxHeight)
	p.parseInt(mapping.Steps, "sweep steps", &job.SweepSteps)
	if p.err != "" {
		return model.Job{}, p.err, nil
	}

	enum(p, mapping.Side, "origin side", &job.Wire.OriginSide, model.ParseOriginSide)
	enum(p, mapping.Frame, "frame", &job.Frame, model.ParseFrame)
	enum(p, mapping.Strategy, "strategy", &job.Strategy, model.ParseStrategy)

	if err := job.Validate(); err != nil {
		return model.Job{}, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}
	for _, problem := range model.DefaultLimits().Check(job) {
		p.warns = append(p.warns, fmt.Sprintf("%s: %s", rowLabel, problem))
	}
	return job, "", p.warns
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports jobs from a CSV file, detecting the delimiter.
func ImportCSV(path string, base model.Job) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	return importFromRows(records, "Line", base, warnings)
}

// ImportCSVFromReader imports jobs from a CSV reader with a known delimiter.
func ImportCSVFromReader(r io.Reader, delimiter rune, base model.Job) ImportResult {
	records, err := readCSV(r, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", base, nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports jobs from the first sheet of an Excel workbook.
func ImportExcel(path string, base model.Job) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	return importFromRows(rows, "Row", base, nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string, base model.Job) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path, base)
	}
	return ImportCSV(path, base)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, base model.Job, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	} else if len(rows[0]) >= 2 {
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
			// Unrecognised header: skip it but keep positional columns.
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		job, errMsg, warnings := parseRow(row, mapping, rowLabel, base, len(result.Jobs))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Jobs = append(result.Jobs, job)
	}

	if len(result.Jobs) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
