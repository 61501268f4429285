package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/services"
	"catalogquote/templates"
)

func ruleFromRecord(r *core.Record) services.AdjustmentRule {
	return services.AdjustmentRule{
		ID:             r.Id,
		Name:           r.GetString("name"),
		StructureID:    r.GetString("structure"),
		TriggerOption:  r.GetString("trigger_option"),
		TargetColumn:   r.GetString("target_column"),
		AdjustmentType: r.GetString("adjustment_type"),
		Amount:         r.GetFloat("amount"),
		Priority:       r.GetInt("priority"),
		Active:         r.GetBool("active"),
	}
}

// loadMaterialRulesData lists the stored rules by priority and the
// structures they can be scoped to.
func loadMaterialRulesData(app core.App) (templates.MaterialRulesData, error) {
	var data templates.MaterialRulesData

	records, err := app.FindRecordsByFilter("material_adjustment_rules", "", "", 0, 0)
	if err != nil {
		return data, fmt.Errorf("query rules: %w", err)
	}
	for _, r := range records {
		data.Rules = append(data.Rules, ruleFromRecord(r))
	}
	services.SortAdjustmentRules(data.Rules)

	structures, err := app.FindRecordsByFilter("structures", "", "name", 0, 0)
	if err != nil {
		return data, fmt.Errorf("query structures: %w", err)
	}
	for _, s := range structures {
		data.Structures = append(data.Structures, templates.StructureLink{ID: s.Id, Name: s.GetString("name")})
	}

	data.Form = services.AdjustmentRule{AdjustmentType: services.AdjustmentFixed, Active: true}
	return data, nil
}

func renderMaterialRules(e *core.RequestEvent, data templates.MaterialRulesData, status int) error {
	if wantsJSON(e.Request) {
		body := map[string]any{"rules": data.Rules}
		if len(data.Errors) > 0 {
			body["errors"] = data.Errors
		}
		return e.JSON(status, body)
	}

	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.MaterialRulesContent(data)
	} else {
		component = templates.MaterialRulesPage(data)
	}
	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		e.Response.WriteHeader(status)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleMaterialRuleList renders the stored material adjustment rules.
func HandleMaterialRuleList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := loadMaterialRulesData(app)
		if err != nil {
			log.Printf("material_rules: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Internal error")
		}
		return renderMaterialRules(e, data, http.StatusOK)
	}
}

// HandleMaterialRuleSave validates and stores a new rule.
func HandleMaterialRuleSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("material_rules: could not parse form: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		rule := services.AdjustmentRule{
			Name:           strings.TrimSpace(e.Request.FormValue("name")),
			StructureID:    strings.TrimSpace(e.Request.FormValue("structure")),
			TriggerOption:  strings.TrimSpace(e.Request.FormValue("trigger_option")),
			TargetColumn:   strings.TrimSpace(e.Request.FormValue("target_column")),
			AdjustmentType: e.Request.FormValue("adjustment_type"),
			Active:         e.Request.FormValue("active") == "true",
		}
		errs := rule.Validate()

		if raw := strings.TrimSpace(e.Request.FormValue("amount")); raw != "" {
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs["amount"] = "Must be a number"
			} else {
				rule.Amount = amount
				if msg, ok := rule.Validate()["amount"]; ok {
					errs["amount"] = msg
				}
			}
		}
		if raw := strings.TrimSpace(e.Request.FormValue("priority")); raw != "" {
			priority, err := strconv.Atoi(raw)
			if err != nil {
				errs["priority"] = "Must be a whole number"
			} else {
				rule.Priority = priority
			}
		}
		if rule.StructureID != "" {
			if _, err := app.FindRecordById("structures", rule.StructureID); err != nil {
				errs["structure"] = "Structure not found"
			}
		}

		data, err := loadMaterialRulesData(app)
		if err != nil {
			log.Printf("material_rules: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Internal error")
		}
		if len(errs) > 0 {
			data.Form = rule
			data.Errors = errs
			return renderMaterialRules(e, data, http.StatusUnprocessableEntity)
		}

		col, err := app.FindCollectionByNameOrId("material_adjustment_rules")
		if err != nil {
			log.Printf("material_rules: could not find collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Internal error")
		}
		record := core.NewRecord(col)
		record.Set("name", rule.Name)
		record.Set("structure", rule.StructureID)
		record.Set("trigger_option", rule.TriggerOption)
		record.Set("target_column", rule.TargetColumn)
		record.Set("adjustment_type", rule.AdjustmentType)
		record.Set("amount", rule.Amount)
		record.Set("priority", rule.Priority)
		record.Set("active", rule.Active)
		if err := app.Save(record); err != nil {
			log.Printf("material_rules: could not save rule: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to save rule")
		}

		rule.ID = record.Id
		data.Rules = append(data.Rules, rule)
		services.SortAdjustmentRules(data.Rules)
		SetToast(e, "success", "Rule "+rule.Name+" saved")
		return renderMaterialRules(e, data, http.StatusOK)
	}
}
