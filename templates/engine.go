package templates

import (
	"github.com/a-h/templ"

	"catalogquote/services"
)

// StructureLink is one entry of the structure picker.
type StructureLink struct {
	ID     string
	Name   string
	Active bool
}

// EngineData is everything the combination screen renders.
type EngineData struct {
	View       services.SessionView
	Structures []StructureLink
	QuoteID    string
	Currency   string
	Errors     map[string]string
}

func (d EngineData) money(v float64) string {
	return services.FormatMoney(v, d.Currency)
}

// quoteQuery keeps the target quote on every engine request.
func (d EngineData) quoteQuery() string {
	if d.QuoteID == "" {
		return ""
	}
	return "?quote=" + d.QuoteID
}

// EnginePage is the full combination screen.
func EnginePage(data EngineData) templ.Component {
	title := "Combinations"
	if data.View.StructureName != "" {
		title = data.View.StructureName + " | Combinations"
	}
	if data.QuoteID == "" {
		return Page(title, EngineContent(data))
	}
	return Page(title, component(func(h *htmlWriter) {
		h.component(EngineContent(data))
		h.raw(`<div id="quote-lines"></div>`)
		h.raw(`<p><a`)
		h.attr("href", "/quotes/"+data.QuoteID)
		h.raw(">Back to quote</a></p>")
	}))
}

// EngineContent is the #engine fragment swapped by every engine request.
func EngineContent(data EngineData) templ.Component {
	return component(func(h *htmlWriter) {
		v := data.View
		h.raw(`<section id="engine" class="engine"`)
		if v.Loading {
			h.attr("aria-busy", "true")
		}
		h.raw(">")

		structurePicker(h, data)

		if v.Error != "" {
			h.raw(`<div class="alert alert-error" role="alert">`)
			h.text(v.Error)
			h.raw("</div>")
		}

		switch {
		case v.Loading:
			h.raw(`<p class="engine-loading">Loading catalog…</p>`)
		case v.StructureID == "":
			h.raw(`<p class="engine-empty">Choose a structure to list combinations.</p>`)
		default:
			header(h, v)
			filterPanel(h, data)
			combinationTable(h, data)
			selectionPanel(h, data)
		}
		h.raw("</section>")
	})
}

func structurePicker(h *htmlWriter, data EngineData) {
	if len(data.Structures) == 0 {
		return
	}
	h.raw(`<nav class="structure-picker"><ul>`)
	for _, s := range data.Structures {
		h.raw("<li>")
		h.raw(`<a`)
		h.attr("href", "/engine/structures/"+s.ID+data.quoteQuery())
		h.attr("hx-get", "/engine/structures/"+s.ID+data.quoteQuery())
		h.raw(` hx-target="#engine" hx-swap="outerHTML"`)
		if s.Active {
			h.raw(` class="active" aria-current="page"`)
		}
		h.raw(">")
		h.text(s.Name)
		h.raw("</a></li>")
	}
	h.raw("</ul></nav>")
}

func header(h *htmlWriter, v services.SessionView) {
	h.raw(`<header class="engine-header"><h1>`)
	h.text(v.StructureName)
	h.raw("</h1>")
	if v.CategoryName != "" {
		h.raw(`<p class="category">`)
		h.text(v.CategoryName)
		h.raw("</p>")
	}
	for _, id := range v.Unresolved {
		h.raw(`<p class="warning">Unknown column (`)
		h.text(id)
		h.raw(")</p>")
	}
	h.raw("</header>")
}

func filterPanel(h *htmlWriter, data EngineData) {
	h.raw(`<aside class="filters">`)
	for _, col := range data.View.Columns {
		if !col.Resolved {
			continue
		}
		h.raw(`<fieldset class="filter-column"`)
		h.attr("data-column", col.ID)
		h.raw("><legend>")
		h.text(col.Label)
		if col.Primary {
			h.raw(` <span class="badge">primary</span>`)
		}
		h.raw("</legend>")
		selected := false
		for _, o := range col.Options {
			selected = selected || o.Selected
			h.raw(`<label class="filter-option"><input type="checkbox"`)
			h.attr("hx-post", "/engine/filters"+data.quoteQuery())
			h.attr("hx-vals", `{"column_id":"`+col.ID+`","option_id":"`+o.ID+`"}`)
			h.raw(` hx-target="#engine" hx-swap="outerHTML"`)
			if o.Selected {
				h.raw(" checked")
			}
			h.raw("> ")
			h.text(o.Name)
			if o.Price > 0 {
				h.raw(` <span class="price">`)
				h.text(data.money(o.Price))
				h.raw("</span>")
			}
			h.raw("</label>")
		}
		if selected {
			h.raw(`<button type="button" class="link"`)
			h.attr("hx-delete", "/engine/filters/"+col.ID+data.quoteQuery())
			h.raw(` hx-target="#engine" hx-swap="outerHTML">Clear</button>`)
		}
		h.raw("</fieldset>")
	}
	h.raw("</aside>")
}

func combinationTable(h *htmlWriter, data EngineData) {
	v := data.View
	if v.NoCombinations {
		h.raw(`<p class="engine-empty">No combinations possible for this structure.</p>`)
		return
	}

	h.raw(`<div class="table-actions">`)
	h.rawf(`<span class="checked-count">%d selected</span>`, v.CheckedCount)
	h.raw(`<button type="button"`)
	h.attr("hx-post", "/engine/check-all"+data.quoteQuery())
	h.raw(` hx-target="#engine" hx-swap="outerHTML">Select all</button>`)
	if v.CheckedCount > 0 {
		h.raw(`<button type="button"`)
		h.attr("hx-post", "/engine/clear-checks"+data.quoteQuery())
		h.raw(` hx-target="#engine" hx-swap="outerHTML">Clear selection</button>`)
	}
	h.raw("</div>")

	h.raw(`<table class="combinations"><thead><tr><th></th>`)
	for _, col := range v.Columns {
		if !col.Resolved {
			continue
		}
		h.raw("<th>")
		h.text(col.Label)
		h.raw("</th>")
	}
	h.raw("<th>Dimensions</th><th>Unit price</th><th>Total</th><th></th></tr></thead><tbody>")

	for _, row := range v.Rows {
		h.raw("<tr")
		h.attr("id", "combination-"+row.ID)
		if row.Active {
			h.raw(` class="active"`)
		}
		h.raw(`><td><input type="checkbox"`)
		h.attr("aria-label", row.Name)
		h.attr("hx-post", "/engine/check/"+row.ID+data.quoteQuery())
		h.raw(` hx-target="#engine" hx-swap="outerHTML"`)
		if row.Checked {
			h.raw(" checked")
		}
		h.raw("></td>")
		for _, cell := range row.Cells {
			h.raw("<td>")
			h.text(cell)
			h.raw("</td>")
		}
		h.raw("<td>")
		h.text(row.Dimensions)
		h.raw(`</td><td class="num">`)
		h.text(data.money(row.UnitPrice))
		h.raw(`</td><td class="num">`)
		h.text(data.money(row.TotalPrice))
		h.raw(`</td><td><button type="button"`)
		h.attr("hx-post", "/engine/select/"+row.ID+data.quoteQuery())
		h.raw(` hx-target="#engine" hx-swap="outerHTML">Use</button></td></tr>`)
	}
	h.raw("</tbody></table>")
}

func selectionPanel(h *htmlWriter, data EngineData) {
	v := data.View
	m := v.Manual

	h.raw(`<form class="selection" hx-target="#engine" hx-swap="outerHTML"`)
	h.attr("hx-post", "/engine/manual"+data.quoteQuery())
	h.raw(` hx-trigger="change">`)
	h.raw(`<h2>`)
	if v.ActiveName != "" {
		h.text(v.ActiveName)
	} else {
		h.raw("No combination selected")
	}
	h.raw("</h2>")

	fields := []struct {
		name, label, value string
	}{
		{"width", "Width (mm)", m.Width},
		{"height", "Height (mm)", m.Height},
		{"depth", "Depth (mm)", m.Depth},
		{"unit_price", "Unit price", m.UnitPrice},
		{"quantity", "Quantity", m.Quantity},
	}
	for _, f := range fields {
		h.raw(`<label>`)
		h.text(f.label)
		h.raw(` <input type="text" inputmode="decimal"`)
		h.attr("name", f.name)
		h.attr("value", f.value)
		h.raw("></label>")
		fieldError(h, data.Errors, f.name)
	}
	h.raw("</form>")

	if data.QuoteID == "" {
		return
	}
	label := "Add to quote"
	if v.CheckedCount > 0 {
		label = "Add selected to quote"
	}
	h.raw(`<button type="button" class="primary"`)
	h.attr("hx-post", "/quotes/"+data.QuoteID+"/lines/from-engine")
	h.raw(` hx-include=".selection" hx-target="#quote-lines" hx-swap="outerHTML">`)
	h.text(label)
	h.raw("</button>")
}
