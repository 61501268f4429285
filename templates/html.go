// Package templates renders the quoting screens as templ components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so component bodies can
// emit markup without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes escaped text.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// rawf formats trusted markup. Text arguments are escaped; numbers and other
// values keep their type so verbs like %d still apply.
func (h *htmlWriter) rawf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			escaped[i] = templ.EscapeString(v)
		case fmt.Stringer:
			escaped[i] = templ.EscapeString(v.String())
		case error:
			escaped[i] = templ.EscapeString(v.Error())
		default:
			escaped[i] = a
		}
	}
	h.raw(fmt.Sprintf(format, escaped...))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// component wraps a body function as a templ.Component.
func component(body func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		body(h)
		return h.err
	})
}

// Page wraps content in the full HTML document with htmx loaded.
func Page(title string, content templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(title)
		h.raw("</title>")
		h.raw(`<link rel="stylesheet" href="/static/css/app.css">`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"></script>`)
		h.raw(`<script src="/static/js/toast.js" defer></script>`)
		h.raw(`</head><body><div id="toast-container"></div><main class="container">`)
		h.component(content)
		h.raw("</main></body></html>")
	})
}

// fieldError writes the validation message for a field, if any.
func fieldError(h *htmlWriter, errors map[string]string, field string) {
	msg, ok := errors[field]
	if !ok {
		return
	}
	h.raw(`<p class="field-error"`)
	h.attr("data-field", field)
	h.raw(">")
	h.text(msg)
	h.raw("</p>")
}
