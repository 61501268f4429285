package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel renders the quote as an .xlsx workbook.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are limited to 31 characters.
	sheetName := []rune(data.Title)
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	sheet := string(sheetName)
	if sheet == "" {
		sheet = "Quote"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	lastCol := columns[len(columns)-1]
	widths := []float64{5, 36, 40, 18, 10, 16, 8, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary style: %w", err)
	}

	// ── Header rows ─────────────────────────────────────────────────────

	header := []struct {
		text  string
		style int
	}{
		{data.CompanyName, subtitleStyle},
		{data.Title, titleStyle},
		{"Customer: " + data.CustomerName, subtitleStyle},
		{"Ref: " + data.ReferenceNumber + "    Date: " + data.CreatedDate, subtitleStyle},
	}
	for i, h := range header {
		r := fmt.Sprintf("%d", i+1)
		if err := f.MergeCell(sheet, "A"+r, lastCol+r); err != nil {
			return nil, fmt.Errorf("merge header row %s: %w", r, err)
		}
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(h.text))
		f.SetCellStyle(sheet, "A"+r, lastCol+r, h.style)
	}

	// ── Column headers (row 6) ──────────────────────────────────────────

	headers := []string{"#", "Name", "Description", "Dimensions", "Area (m²)", "Unit Price", "Qty", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+"6", h)
	}
	f.SetCellStyle(sheet, "A6", lastCol+"6", headerStyle)

	// ── Lines (from row 7) ──────────────────────────────────────────────

	row := 7
	for _, r := range data.Rows {
		rs := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rs, r.Index)
		f.SetCellValue(sheet, "B"+rs, sanitizeExcelCell(r.Name))
		f.SetCellValue(sheet, "C"+rs, sanitizeExcelCell(r.Description))
		f.SetCellValue(sheet, "D"+rs, r.Dimensions)
		if r.Area > 0 {
			f.SetCellValue(sheet, "E"+rs, r.Area)
		}
		f.SetCellValue(sheet, "F"+rs, data.money(r.UnitPrice))
		f.SetCellValue(sheet, "G"+rs, r.Quantity)
		f.SetCellValue(sheet, "H"+rs, data.money(r.TotalPrice))
		f.SetCellStyle(sheet, "A"+rs, lastCol+rs, lineStyle)
		row++
	}

	// ── Summary ─────────────────────────────────────────────────────────

	row++
	rs := fmt.Sprintf("%d", row)
	f.SetCellValue(sheet, "D"+rs, "Total area:")
	f.SetCellValue(sheet, "E"+rs, data.Totals.TotalArea)
	f.SetCellValue(sheet, "G"+rs, "Total:")
	f.SetCellValue(sheet, "H"+rs, data.money(data.Totals.GrandTotal))
	f.SetCellStyle(sheet, "D"+rs, lastCol+rs, summaryStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prefixes a quote to values Excel would read as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
