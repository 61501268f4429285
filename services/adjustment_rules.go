package services

import (
	"sort"
	"strings"
)

// Adjustment types accepted on material adjustment rules.
const (
	AdjustmentFixed   = "fixed"
	AdjustmentPercent = "percent"
	AdjustmentPerArea = "per_area"
)

// AdjustmentTypes lists the valid adjustment types in display order.
var AdjustmentTypes = []string{AdjustmentFixed, AdjustmentPercent, AdjustmentPerArea}

// AdjustmentRule is a stored material adjustment rule. Rules are kept for
// the quote pricing stage; the engine does not evaluate them.
type AdjustmentRule struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	StructureID    string  `json:"structure_id,omitempty"`
	TriggerOption  string  `json:"trigger_option"`
	TargetColumn   string  `json:"target_column"`
	AdjustmentType string  `json:"adjustment_type"`
	Amount         float64 `json:"amount"`
	Priority       int     `json:"priority"`
	Active         bool    `json:"active"`
}

// Validate returns a field -> message map, empty when the rule is valid.
func (r AdjustmentRule) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(r.TriggerOption) == "" {
		errs["trigger_option"] = "Trigger option is required"
	}
	if strings.TrimSpace(r.TargetColumn) == "" {
		errs["target_column"] = "Target column is required"
	}
	valid := false
	for _, t := range AdjustmentTypes {
		if r.AdjustmentType == t {
			valid = true
			break
		}
	}
	if !valid {
		errs["adjustment_type"] = "Adjustment type must be one of " + strings.Join(AdjustmentTypes, ", ")
	}
	if r.AdjustmentType == AdjustmentPercent && (r.Amount < -100 || r.Amount > 100) {
		errs["amount"] = "Percent must be between -100 and 100"
	}
	return errs
}

// SortAdjustmentRules orders rules by priority, highest first, then by name.
func SortAdjustmentRules(rules []AdjustmentRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].Name < rules[j].Name
	})
}
