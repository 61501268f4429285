package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/config"
	"catalogquote/services"
	"catalogquote/templates"
)

// manualFields are the form keys of the manual selection inputs.
var manualFields = []string{"width", "height", "depth", "unit_price", "quantity"}

// withEngine runs fn on the caller's engine session, loading the catalog
// the first time the session is used.
func withEngine(app *pocketbase.PocketBase, store *SessionStore, e *core.RequestEvent, fn func(*services.EngineSession) error) error {
	return store.With(GetEngineSessionID(e.Request), func(s *services.EngineSession) error {
		if !s.Loaded() {
			if err := s.Load(RecordCatalog{App: app}); err != nil {
				log.Printf("engine: withEngine: %v", err)
				return ErrorToast(e, http.StatusServiceUnavailable, "Catalog could not be loaded")
			}
		}
		return fn(s)
	})
}

// renderEngine writes the session as JSON or as the engine fragment/page.
func renderEngine(e *core.RequestEvent, s *services.EngineSession, cfg config.Config, status int, fieldErrors map[string]string) error {
	view := s.View()
	if wantsJSON(e.Request) {
		body := map[string]any{"view": view}
		if len(fieldErrors) > 0 {
			body["errors"] = fieldErrors
		}
		return e.JSON(status, body)
	}

	data := templates.EngineData{
		View:     view,
		QuoteID:  e.Request.URL.Query().Get("quote"),
		Currency: cfg.Currency,
		Errors:   fieldErrors,
	}
	for _, st := range s.Catalog().Structures {
		data.Structures = append(data.Structures, templates.StructureLink{
			ID:     st.ID,
			Name:   st.Name,
			Active: st.ID == view.StructureID,
		})
	}

	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.EngineContent(data)
	} else {
		component = templates.EnginePage(data)
	}
	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		e.Response.WriteHeader(status)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// respondEngineError maps engine rejections to HTTP responses.
func respondEngineError(e *core.RequestEvent, err error) error {
	var manual *services.ManualInputError
	switch {
	case errors.As(err, &manual):
		if wantsJSON(e.Request) {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": manual.Fields})
		}
		return ErrorToast(e, http.StatusUnprocessableEntity, "Check the highlighted fields")
	case errors.Is(err, services.ErrUnknownCombination), errors.Is(err, services.ErrUnknownStructure):
		return ErrorToast(e, http.StatusNotFound, capitalize(err.Error()))
	case errors.Is(err, services.ErrCatalogLoading):
		return ErrorToast(e, http.StatusConflict, capitalize(err.Error()))
	case errors.Is(err, services.ErrNothingChecked),
		errors.Is(err, services.ErrCheckedUnavailable),
		errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrNoStructure):
		return ErrorToast(e, http.StatusBadRequest, capitalize(err.Error()))
	}
	log.Printf("engine: respondEngineError: %v", err)
	return ErrorToast(e, http.StatusInternalServerError, "Internal error")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// HandleEngineStructure refreshes the catalog and opens a structure. The id
// "default" picks the catalog's default structure.
func HandleEngineStructure(app *pocketbase.PocketBase, store *SessionStore, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "default" {
			id = ""
		}

		return store.With(GetEngineSessionID(e.Request), func(s *services.EngineSession) error {
			if err := s.Load(RecordCatalog{App: app}); err != nil {
				log.Printf("engine: HandleEngineStructure: %v", err)
				if !s.Loaded() {
					return ErrorToast(e, http.StatusServiceUnavailable, "Catalog could not be loaded")
				}
			}

			if err := s.SetStructure(id); err != nil {
				if errors.Is(err, services.ErrUnknownStructure) && id == "" {
					return renderEngine(e, s, cfg, http.StatusOK, nil)
				}
				return respondEngineError(e, err)
			}
			if rs, ok := s.Structure(); ok && len(rs.Unresolved) > 0 {
				log.Printf("engine: HandleEngineStructure: structure %s has unresolved columns %v", rs.Structure.ID, rs.Unresolved)
			}
			return renderEngine(e, s, cfg, http.StatusOK, nil)
		})
	}
}

// HandleEngineToggleFilter adds or removes one option from a column filter.
func HandleEngineToggleFilter(app *pocketbase.PocketBase, store *SessionStore, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("engine: HandleEngineToggleFilter: could not parse form: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		columnID := strings.TrimSpace(e.Request.FormValue("column_id"))
		optionID := strings.TrimSpace(e.Request.FormValue("option_id"))
		if columnID == "" || optionID == "" {
			return ErrorToast(e, http.StatusBadRequest, "column_id and option_id are required")
		}

		return withEngine(app, store, e, func(s *services.EngineSession) error {
			if _, ok := s.Structure(); !ok {
				return respondEngineError(e, services.ErrNoStructure)
			}
			s.ToggleFilter(columnID, optionID)
			return renderEngine(e, s, cfg, http.StatusOK, nil)
		})
	}
}

// HandleEngineClearFilter removes a column's filter.
func HandleEngineClearFilter(app *pocketbase.PocketBase, store *SessionStore, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		columnID := e.Request.PathValue("columnId")
		return withEngine(app, store, e, func(s *services.EngineSession) error {
			s.ClearFilter(columnID)
			return renderEngine(e, s, cfg, http.StatusOK, nil)
		})
	}
}

// HandleEngineSelect makes a combination the active selection.
func HandleEngineSelect(app *pocketbase.PocketBase, store *SessionStore, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("combinationId")
		return withEngine(app, store, e, func(s *services.EngineSession) error {
			if err := s.Select(id); err != nil {
				return respondEngineError(e, err)
			}
			return renderEngine(e, s, cfg, http.StatusOK, nil)
		})
	}
}

// HandleEngineCheck toggles a combination in the checked set.
func HandleEngineCheck(app *pocketbase.PocketBase, store *SessionStore, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("combinationId")
		return withEngine(app, store, e, func(s *services.EngineSession) error {
			if err := s.ToggleChecked(id); err != nil {
				return respondEngineError(e, err)
			}
			return renderEngine(e, s, cfg, http.StatusOK, nil)
		})
	}
}

// HandleEngineCheckAll checks every listed combination.
func HandleEngineCheckAll(app *pocketbase.PocketBase, store *SessionStore, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withEngine(app, store, e, func(s *services.EngineSession) error {
			s.CheckAll()
			return renderEngine(e, s, cfg, http.StatusOK, nil)
		})
	}
}

// HandleEngineClearChecks empties the checked set.
func HandleEngineClearChecks(app *pocketbase.PocketBase, store *SessionStore, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withEngine(app, store, e, func(s *services.EngineSession) error {
			s.ClearChecked()
			return renderEngine(e, s, cfg, http.StatusOK, nil)
		})
	}
}

// HandleEngineManual stores the manual fields. Invalid values are kept so
// the form re-renders them next to their messages.
func HandleEngineManual(app *pocketbase.PocketBase, store *SessionStore, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("engine: HandleEngineManual: could not parse form: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		return withEngine(app, store, e, func(s *services.EngineSession) error {
			m := manualFromForm(e.Request, s.Selection().Manual)
			s.SetManual(m)
			if _, err := m.Parse(); err != nil {
				var manual *services.ManualInputError
				if errors.As(err, &manual) {
					return renderEngine(e, s, cfg, http.StatusUnprocessableEntity, manual.Fields)
				}
				return respondEngineError(e, err)
			}
			return renderEngine(e, s, cfg, http.StatusOK, nil)
		})
	}
}

// manualFromForm overlays the submitted manual fields on current. Fields
// absent from the form keep their value.
func manualFromForm(r *http.Request, current services.ManualInput) services.ManualInput {
	m := current
	targets := map[string]*string{
		"width":      &m.Width,
		"height":     &m.Height,
		"depth":      &m.Depth,
		"unit_price": &m.UnitPrice,
		"quantity":   &m.Quantity,
	}
	for _, key := range manualFields {
		if vals, ok := r.Form[key]; ok && len(vals) > 0 {
			*targets[key] = strings.TrimSpace(vals[0])
		}
	}
	return m
}

// hasManualFields reports whether the request carries any manual input.
func hasManualFields(r *http.Request) bool {
	for _, key := range manualFields {
		if _, ok := r.Form[key]; ok {
			return true
		}
	}
	return false
}
