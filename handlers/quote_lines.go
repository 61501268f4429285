package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/config"
	"catalogquote/services"
	"catalogquote/templates"
)

// saveQuoteLine persists one engine line under quoteID.
func saveQuoteLine(app core.App, col *core.Collection, quoteID string, sortOrder int, l services.QuoteLine) error {
	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", sortOrder)
	record.Set("name", l.Name)
	record.Set("description", l.Description)
	record.Set("unit_price", l.UnitPrice)
	record.Set("width", l.Width)
	record.Set("height", l.Height)
	record.Set("depth", l.Depth)
	record.Set("area", l.Area)
	record.Set("volume", l.Volume)
	record.Set("quantity", l.Quantity)
	record.Set("total_price", l.TotalPrice)
	record.Set("structure", l.StructureID)
	record.Set("combination_signature", l.Signature)
	return app.Save(record)
}

// nextLineSortOrder returns one past the highest sort_order of the quote.
func nextLineSortOrder(app core.App, quoteID string) (int, error) {
	records, err := app.FindRecordsByFilter("quote_lines", "quote = {:quoteId}", "-sort_order", 1, 0, map[string]any{"quoteId": quoteID})
	if err != nil {
		return 0, fmt.Errorf("find last quote line: %w", err)
	}
	if len(records) == 0 {
		return 1, nil
	}
	return records[0].GetInt("sort_order") + 1, nil
}

// HandleQuoteLinesFromEngine adds the engine selection to a quote: one line
// per checked combination, or a single manual line when nothing is checked.
// All lines are written in one transaction.
func HandleQuoteLinesFromEngine(app *pocketbase.PocketBase, store *SessionStore, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		if _, err := app.FindRecordById("quotes", quoteID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("quote_lines: could not parse form: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		col, err := app.FindCollectionByNameOrId("quote_lines")
		if err != nil {
			log.Printf("quote_lines: could not find quote_lines collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Internal error")
		}

		var added int
		err = withEngine(app, store, e, func(s *services.EngineSession) error {
			if hasManualFields(e.Request) {
				s.SetManual(manualFromForm(e.Request, s.Selection().Manual))
			}
			p, err := s.PrepareAdd()
			if err != nil {
				return err
			}
			err = app.RunInTransaction(func(txApp core.App) error {
				sortOrder, err := nextLineSortOrder(txApp, quoteID)
				if err != nil {
					return err
				}
				for i, l := range p.Lines {
					if err := saveQuoteLine(txApp, col, quoteID, sortOrder+i, l); err != nil {
						return fmt.Errorf("save quote line %d: %w", i+1, err)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			// The checked set is only cleared once the lines are stored.
			s.CommitAdd(p)
			added = len(p.Lines)
			return nil
		})
		if err != nil {
			var manual *services.ManualInputError
			if errors.As(err, &manual) || isEngineRejection(err) {
				return respondEngineError(e, err)
			}
			log.Printf("quote_lines: could not add lines to quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to add lines")
		}
		if added == 0 {
			// withEngine already responded.
			return nil
		}

		data, err := loadQuote(app, quoteID, cfg)
		if err != nil {
			log.Printf("quote_lines: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Internal error")
		}

		if wantsJSON(e.Request) {
			return e.JSON(http.StatusOK, map[string]any{
				"added":  added,
				"lines":  data.Lines,
				"totals": data.Totals,
			})
		}

		SetToast(e, "success", fmt.Sprintf("Added %d line(s) to the quote", added))
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return templates.QuoteLinesSection(data).Render(e.Request.Context(), e.Response)
	}
}

// isEngineRejection reports whether err is one of the engine's user-facing
// rejections.
func isEngineRejection(err error) bool {
	for _, target := range []error{
		services.ErrNothingChecked,
		services.ErrCheckedUnavailable,
		services.ErrEmptyName,
		services.ErrUnknownCombination,
		services.ErrUnknownStructure,
		services.ErrNoStructure,
		services.ErrCatalogLoading,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
