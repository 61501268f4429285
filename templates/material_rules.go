package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"catalogquote/services"
)

// MaterialRulesData lists the stored adjustment rules and the create form.
type MaterialRulesData struct {
	Rules      []services.AdjustmentRule
	Structures []StructureLink
	Form       services.AdjustmentRule
	Errors     map[string]string
}

// MaterialRulesPage is the full rules screen.
func MaterialRulesPage(data MaterialRulesData) templ.Component {
	return Page("Material adjustment rules", MaterialRulesContent(data))
}

// MaterialRulesContent renders the rule table followed by the create form.
func MaterialRulesContent(data MaterialRulesData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="material-rules"><h1>Material adjustment rules</h1>`)
		if len(data.Rules) == 0 {
			h.raw(`<p class="empty">No rules defined.</p>`)
		} else {
			h.raw(`<table><thead><tr><th>Name</th><th>Type</th><th class="num">Amount</th><th class="num">Priority</th><th>Active</th></tr></thead><tbody>`)
			for _, r := range data.Rules {
				h.raw("<tr><td>")
				h.text(r.Name)
				h.raw("</td><td>")
				h.text(r.AdjustmentType)
				h.raw(`</td><td class="num">`)
				h.text(strconv.FormatFloat(r.Amount, 'f', -1, 64))
				h.raw(`</td><td class="num">`)
				h.text(strconv.Itoa(r.Priority))
				h.raw("</td><td>")
				if r.Active {
					h.raw("yes")
				} else {
					h.raw("no")
				}
				h.raw("</td></tr>")
			}
			h.raw("</tbody></table>")
		}

		f := data.Form
		h.raw(`<form method="post" action="/material-rules" hx-post="/material-rules" hx-target="#material-rules" hx-swap="outerHTML">`)
		textInput(h, "name", "Name", f.Name)
		fieldError(h, data.Errors, "name")

		h.raw(`<label>Structure <select name="structure"><option value="">Any structure</option>`)
		for _, s := range data.Structures {
			h.raw("<option")
			h.attr("value", s.ID)
			if s.ID == f.StructureID {
				h.raw(" selected")
			}
			h.raw(">")
			h.text(s.Name)
			h.raw("</option>")
		}
		h.raw("</select></label>")

		textInput(h, "trigger_option", "Trigger option id", f.TriggerOption)
		fieldError(h, data.Errors, "trigger_option")
		textInput(h, "target_column", "Target column id", f.TargetColumn)
		fieldError(h, data.Errors, "target_column")

		h.raw(`<label>Type <select name="adjustment_type">`)
		for _, t := range services.AdjustmentTypes {
			h.raw("<option")
			h.attr("value", t)
			if t == f.AdjustmentType {
				h.raw(" selected")
			}
			h.raw(">")
			h.text(t)
			h.raw("</option>")
		}
		h.raw("</select></label>")
		fieldError(h, data.Errors, "adjustment_type")

		textInput(h, "amount", "Amount", strconv.FormatFloat(f.Amount, 'f', -1, 64))
		fieldError(h, data.Errors, "amount")
		textInput(h, "priority", "Priority", strconv.Itoa(f.Priority))
		fieldError(h, data.Errors, "priority")

		h.raw(`<label><input type="checkbox" name="active" value="true"`)
		if f.Active {
			h.raw(" checked")
		}
		h.raw("> Active</label>")
		h.raw(`<button type="submit" class="primary">Save rule</button></form></section>`)
	})
}

func textInput(h *htmlWriter, name, label, value string) {
	h.raw("<label>")
	h.text(label)
	h.raw(` <input type="text"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw("></label>")
}
