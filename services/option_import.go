package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportField is one recognised column of an option import file.
type ImportField struct {
	Key      string
	Label    string
	Required bool
}

// OptionImportFields lists the columns an option import file may carry.
func OptionImportFields() []ImportField {
	return []ImportField{
		{Key: "name", Label: "Name", Required: true},
		{Key: "unit_price", Label: "Unit Price"},
		{Key: "width", Label: "Width"},
		{Key: "height", Label: "Height"},
		{Key: "depth", Label: "Depth"},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportedOption is a validated option row ready to be stored.
type ImportedOption struct {
	Name       string
	UnitPrice  float64
	Dimensions *Dimensions
}

// Measurement returns the precomputed area and volume, zero without
// dimensions.
func (o ImportedOption) Measurement() Measurement {
	if o.Dimensions == nil {
		return Measurement{}
	}
	return Measure(*o.Dimensions)
}

// ImportResult is returned after parsing and validating an uploaded file.
type ImportResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Options   []ImportedOption  `json:"-"`
}

// ParseOptionFile reads a .csv or .xlsx upload and validates every row.
// Row numbers in errors count the header as row 1.
func ParseOptionFile(r io.Reader, fileName string) (*ImportResult, error) {
	var (
		headers []string
		rows    [][]string
		err     error
	)
	lower := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		headers, rows, err = parseCSV(r)
	case strings.HasSuffix(lower, ".xlsx"):
		headers, rows, err = parseExcel(r)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	fields := OptionImportFields()
	keys, _ := mapHeadersToFields(headers, fields)
	hasName := false
	for _, k := range keys {
		if k == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, fmt.Errorf("file is missing the Name column")
	}

	result := &ImportResult{}
	for i, cells := range rows {
		data := make(map[string]string, len(keys))
		empty := true
		for j, key := range keys {
			if key == "" || j >= len(cells) {
				continue
			}
			v := strings.TrimSpace(cells[j])
			data[key] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		result.TotalRows++
		opt, errs := validateOptionRow(i+2, data)
		if len(errs) > 0 {
			result.ErrorRows++
			result.Errors = append(result.Errors, errs...)
			continue
		}
		result.ValidRows++
		result.Options = append(result.Options, opt)
	}
	return result, nil
}

func validateOptionRow(rowNum int, data map[string]string) (ImportedOption, []ValidationError) {
	var errs []ValidationError
	opt := ImportedOption{Name: data["name"]}
	if opt.Name == "" {
		errs = append(errs, ValidationError{Row: rowNum, Field: "name", Message: "Name is required"})
	}

	number := func(key string) float64 {
		raw := data[key]
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, ValidationError{Row: rowNum, Field: key, Message: "Must be a number"})
			return 0
		}
		if v < 0 {
			errs = append(errs, ValidationError{Row: rowNum, Field: key, Message: "Must be zero or greater"})
			return 0
		}
		return v
	}

	opt.UnitPrice = number("unit_price")
	d := Dimensions{Width: number("width"), Height: number("height"), Depth: number("depth")}
	if d.Width > 0 && d.Height > 0 {
		opt.Dimensions = &d
	} else if d.Width > 0 || d.Height > 0 {
		errs = append(errs, ValidationError{Row: rowNum, Field: "height", Message: "Width and height must be given together"})
	}
	return opt, errs
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to field keys.
// Returns ordered list of field keys (one per column) and any unrecognized columns.
func mapHeadersToFields(headers []string, fields []ImportField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(f.Label)] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))
		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
