package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"catalogquote/services"
)

// QuoteViewData is a stored quote with its lines.
type QuoteViewData struct {
	ID              string
	Title           string
	CustomerName    string
	ReferenceNumber string
	CreatedDate     string
	Currency        string
	Lines           []services.QuoteLine
	Totals          services.QuoteTotals
}

func (d QuoteViewData) money(v float64) string {
	return services.FormatMoney(v, d.Currency)
}

// QuotePage is the full quote screen.
func QuotePage(data QuoteViewData) templ.Component {
	return Page(data.Title, QuoteContent(data))
}

// QuoteContent renders the quote header, its lines and export links.
func QuoteContent(data QuoteViewData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="quote"><header><h1>`)
		h.text(data.Title)
		h.raw("</h1><dl>")
		if data.ReferenceNumber != "" {
			h.raw("<dt>Reference</dt><dd>")
			h.text(data.ReferenceNumber)
			h.raw("</dd>")
		}
		if data.CustomerName != "" {
			h.raw("<dt>Customer</dt><dd>")
			h.text(data.CustomerName)
			h.raw("</dd>")
		}
		h.raw("<dt>Date</dt><dd>")
		h.text(data.CreatedDate)
		h.raw("</dd></dl>")

		h.raw(`<nav class="quote-actions">`)
		h.raw(`<a class="button"`)
		h.attr("href", "/engine/structures/default?quote="+data.ID)
		h.raw(">Add from catalog</a>")
		h.raw(`<a class="button"`)
		h.attr("href", "/quotes/"+data.ID+"/export/excel")
		h.raw(">Excel</a>")
		h.raw(`<a class="button"`)
		h.attr("href", "/quotes/"+data.ID+"/export/pdf")
		h.raw(">PDF</a></nav></header>")

		h.component(QuoteLinesSection(data))
		h.raw("</section>")
	})
}

// QuoteLinesSection is the #quote-lines fragment returned after lines are
// added.
func QuoteLinesSection(data QuoteViewData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="quote-lines">`)
		if len(data.Lines) == 0 {
			h.raw(`<p class="empty">No lines yet.</p></div>`)
			return
		}

		h.raw(`<table class="quote-lines"><thead><tr>`)
		h.raw("<th>#</th><th>Name</th><th>Description</th><th>Dimensions</th>")
		h.raw(`<th class="num">Area (m²)</th><th class="num">Unit price</th><th class="num">Qty</th><th class="num">Total</th>`)
		h.raw("</tr></thead><tbody>")
		for i, l := range data.Lines {
			h.raw("<tr><td>")
			h.text(strconv.Itoa(i + 1))
			h.raw("</td><td>")
			h.text(l.Name)
			h.raw("</td><td>")
			h.text(l.Description)
			h.raw("</td><td>")
			h.text(services.FormatDimensions(l.Dimensions()))
			h.raw(`</td><td class="num">`)
			if l.Area > 0 {
				h.text(strconv.FormatFloat(l.Area, 'f', 2, 64))
			}
			h.raw(`</td><td class="num">`)
			h.text(data.money(l.UnitPrice))
			h.raw(`</td><td class="num">`)
			h.text(strconv.FormatFloat(l.Quantity, 'f', -1, 64))
			h.raw(`</td><td class="num">`)
			h.text(data.money(l.TotalPrice))
			h.raw("</td></tr>")
		}
		h.raw("</tbody><tfoot><tr>")
		h.rawf(`<td colspan="4">%d lines</td>`, data.Totals.LineCount)
		h.raw(`<td class="num">`)
		h.text(strconv.FormatFloat(data.Totals.TotalArea, 'f', 2, 64))
		h.raw(`</td><td></td><td class="num">`)
		h.text(strconv.FormatFloat(data.Totals.Quantity, 'f', -1, 64))
		h.raw(`</td><td class="num grand-total">`)
		h.text(data.money(data.Totals.GrandTotal))
		h.raw("</td></tr></tfoot></table></div>")
	})
}
