package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"catalogquote/services"
)

// OptionImportData is the outcome of an option upload.
type OptionImportData struct {
	ColumnID   string
	ColumnName string
	Result     *services.ImportResult
	Imported   int
}

// OptionImportResult renders the import summary and any row errors.
func OptionImportResult(data OptionImportData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="option-import"><h2>Import into `)
		h.text(data.ColumnName)
		h.raw("</h2>")
		r := data.Result
		if r == nil {
			h.raw("</section>")
			return
		}
		h.rawf(`<p class="summary">%d rows, %d valid, %d with errors</p>`, r.TotalRows, r.ValidRows, r.ErrorRows)
		if data.Imported > 0 {
			h.rawf(`<p class="success">Imported %d options.</p>`, data.Imported)
		}
		if len(r.Errors) > 0 {
			h.raw(`<table class="import-errors"><thead><tr><th>Row</th><th>Field</th><th>Error</th></tr></thead><tbody>`)
			for _, e := range r.Errors {
				h.raw("<tr><td>")
				h.text(strconv.Itoa(e.Row))
				h.raw("</td><td>")
				h.text(e.Field)
				h.raw("</td><td>")
				h.text(e.Message)
				h.raw("</td></tr>")
			}
			h.raw("</tbody></table>")
			h.raw(`<form method="post" enctype="multipart/form-data"`)
			h.attr("action", "/catalog/columns/"+data.ColumnID+"/options/import/errors")
			h.raw(`><input type="file" name="file" accept=".csv,.xlsx" required>`)
			h.raw(`<button type="submit">Download error report</button></form>`)
		}
		h.raw("</section>")
	})
}
