package services

// ExportRow is one quote line in an export.
type ExportRow struct {
	Index       string
	Name        string
	Description string
	Dimensions  string
	Area        float64
	UnitPrice   float64
	Quantity    float64
	TotalPrice  float64
}

// ExportData holds everything a quote export renders.
type ExportData struct {
	CompanyName     string
	Title           string
	CustomerName    string
	ReferenceNumber string
	CreatedDate     string
	Currency        string
	Rows            []ExportRow
	Totals          QuoteTotals
}

// BuildExportData numbers the lines and computes the totals.
func BuildExportData(title string, lines []QuoteLine) ExportData {
	data := ExportData{
		Title:    title,
		Currency: DefaultCurrency,
		Rows:     make([]ExportRow, 0, len(lines)),
		Totals:   CalcQuoteTotals(lines),
	}
	for i, l := range lines {
		data.Rows = append(data.Rows, ExportRow{
			Index:       formatNumber(float64(i + 1)),
			Name:        l.Name,
			Description: l.Description,
			Dimensions:  FormatDimensions(l.Dimensions()),
			Area:        l.Area,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			TotalPrice:  l.TotalPrice,
		})
	}
	return data
}

func (d ExportData) money(v float64) string {
	return FormatMoney(v, d.Currency)
}
