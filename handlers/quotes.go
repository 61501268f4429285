package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/config"
	"catalogquote/services"
	"catalogquote/templates"
)

// quoteLineFromRecord maps a quote_lines record to its service type.
func quoteLineFromRecord(r *core.Record) services.QuoteLine {
	return services.QuoteLine{
		Name:        r.GetString("name"),
		Description: r.GetString("description"),
		UnitPrice:   r.GetFloat("unit_price"),
		Width:       r.GetFloat("width"),
		Height:      r.GetFloat("height"),
		Depth:       r.GetFloat("depth"),
		Area:        r.GetFloat("area"),
		Volume:      r.GetFloat("volume"),
		Quantity:    r.GetFloat("quantity"),
		TotalPrice:  r.GetFloat("total_price"),
		StructureID: r.GetString("structure"),
		Signature:   r.GetString("combination_signature"),
	}
}

// loadQuoteLines returns a quote's lines in sort order.
func loadQuoteLines(app core.App, quoteID string) ([]services.QuoteLine, error) {
	records, err := app.FindRecordsByFilter("quote_lines", "quote = {:quoteId}", "sort_order", 0, 0, map[string]any{"quoteId": quoteID})
	if err != nil {
		return nil, fmt.Errorf("load quote lines: %w", err)
	}
	lines := make([]services.QuoteLine, 0, len(records))
	for _, r := range records {
		lines = append(lines, quoteLineFromRecord(r))
	}
	return lines, nil
}

// loadQuote fetches a quote with its lines and totals.
func loadQuote(app core.App, quoteID string, cfg config.Config) (templates.QuoteViewData, error) {
	record, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return templates.QuoteViewData{}, fmt.Errorf("quote not found: %w", err)
	}
	lines, err := loadQuoteLines(app, quoteID)
	if err != nil {
		return templates.QuoteViewData{}, err
	}

	createdDate := "-"
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return templates.QuoteViewData{
		ID:              record.Id,
		Title:           record.GetString("title"),
		CustomerName:    record.GetString("customer_name"),
		ReferenceNumber: record.GetString("reference_number"),
		CreatedDate:     createdDate,
		Currency:        cfg.Currency,
		Lines:           lines,
		Totals:          services.CalcQuoteTotals(lines),
	}, nil
}

// nextReferenceNumber returns the next free Q-YYYY-NNN number for now.
func nextReferenceNumber(app core.App, now time.Time) (string, error) {
	prefix := services.QuoteNumberPrefix(now)
	records, err := app.FindRecordsByFilter("quotes", "reference_number ~ {:prefix}", "", 0, 0, map[string]any{"prefix": prefix + "%"})
	if err != nil {
		return "", fmt.Errorf("list reference numbers: %w", err)
	}
	existing := make([]string, 0, len(records))
	for _, r := range records {
		existing = append(existing, r.GetString("reference_number"))
	}
	return services.NextQuoteNumber(existing, now), nil
}

// HandleQuoteCreate creates a quote and redirects to it. A blank reference
// number is assigned the next one of the current year.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("quote_create: could not parse form: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		title := strings.TrimSpace(e.Request.FormValue("title"))
		if title == "" {
			return ErrorToast(e, http.StatusBadRequest, "Title is required")
		}

		ref := strings.TrimSpace(e.Request.FormValue("reference_number"))
		if ref == "" {
			next, err := nextReferenceNumber(app, time.Now())
			if err != nil {
				log.Printf("quote_create: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Internal error")
			}
			ref = next
		} else if dup, _ := app.FindFirstRecordByFilter("quotes", "reference_number = {:ref}", map[string]any{"ref": ref}); dup != nil {
			return ErrorToast(e, http.StatusConflict, "Reference number "+ref+" is already used")
		}

		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_create: could not find quotes collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Internal error")
		}
		record := core.NewRecord(col)
		record.Set("title", title)
		record.Set("customer_name", strings.TrimSpace(e.Request.FormValue("customer_name")))
		record.Set("reference_number", ref)
		if err := app.Save(record); err != nil {
			log.Printf("quote_create: could not save quote: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to create quote")
		}

		if wantsJSON(e.Request) {
			return e.JSON(http.StatusCreated, map[string]any{
				"id":               record.Id,
				"title":            title,
				"reference_number": ref,
			})
		}

		SetToast(e, "success", "Quote "+ref+" created")
		redirectURL := "/quotes/" + record.Id
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", redirectURL)
			return e.NoContent(http.StatusOK)
		}
		return e.Redirect(http.StatusFound, redirectURL)
	}
}

// HandleQuoteView renders a quote with its lines.
func HandleQuoteView(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		data, err := loadQuote(app, quoteID, cfg)
		if err != nil {
			log.Printf("quote_view: %v", err)
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		}

		if wantsJSON(e.Request) {
			return e.JSON(http.StatusOK, data)
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuoteContent(data)
		} else {
			component = templates.QuotePage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
