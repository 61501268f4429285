package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the quote as a landscape A4 PDF.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addLineTableHeader(m)
	for i, r := range data.Rows {
		addLineRow(m, data, r, i%2 == 1)
	}
	addQuoteSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addQuoteHeader(m core.Maroto, data ExportData) {
	grey := &props.Color{Red: 80, Green: 80, Blue: 80}

	if data.CompanyName != "" {
		m.AddRows(row.New(7).Add(
			col.New(12).Add(text.New(data.CompanyName, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: grey,
			})),
		))
	}
	m.AddRows(row.New(12).Add(
		col.New(12).Add(text.New(data.Title, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		})),
	))
	m.AddRows(row.New(8).Add(
		col.New(4).Add(text.New("Customer: "+data.CustomerName, props.Text{Size: 9, Align: align.Left, Color: grey})),
		col.New(4).Add(text.New("Reference: "+data.ReferenceNumber, props.Text{Size: 9, Align: align.Center, Color: grey})),
		col.New(4).Add(text.New("Date: "+data.CreatedDate, props.Text{Size: 9, Align: align.Right, Color: grey})),
	))
	m.AddRows(row.New(4))
}

func addLineTableHeader(m core.Maroto) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	cell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}

	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, headerText)).WithStyle(cell)
	}
	m.AddRows(row.New(8).Add(
		header(1, "#"),
		header(3, "Name"),
		header(3, "Description"),
		header(1, "Area (m²)"),
		header(2, "Unit Price"),
		header(1, "Qty"),
		header(1, "Total"),
	))
}

func addLineRow(m core.Maroto, data ExportData, r ExportRow, shaded bool) {
	base := props.Text{Size: 7, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	area := ""
	if r.Area > 0 {
		area = fmt.Sprintf("%.2f", r.Area)
	}

	cols := []core.Col{
		col.New(1).Add(text.New(r.Index, base)),
		col.New(3).Add(text.New(r.Name, left)),
		col.New(3).Add(text.New(r.Description, left)),
		col.New(1).Add(text.New(area, right)),
		col.New(2).Add(text.New(data.money(r.UnitPrice), right)),
		col.New(1).Add(text.New(formatQty(r.Quantity), right)),
		col.New(1).Add(text.New(data.money(r.TotalPrice), right)),
	}
	if shaded {
		cell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
		for i := range cols {
			cols[i] = cols[i].WithStyle(cell)
		}
	}
	m.AddRows(row.New(9).Add(cols...))
}

func addQuoteSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	cell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	style := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	summary := []struct{ label, value string }{
		{"Lines", fmt.Sprintf("%d", data.Totals.LineCount)},
		{"Total area (m²)", fmt.Sprintf("%.2f", data.Totals.TotalArea)},
		{"Grand total", data.money(data.Totals.GrandTotal)},
	}
	for _, s := range summary {
		m.AddRows(row.New(8).Add(
			col.New(8).Add(text.New(s.label, style)).WithStyle(cell),
			col.New(4).Add(text.New(s.value, style)).WithStyle(cell),
		))
	}
}

// formatQty prints whole quantities without decimals.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
