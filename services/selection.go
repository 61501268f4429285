package services

import (
	"sort"
	"strconv"
	"strings"
)

// SelectedOption is one column's pick in the active selection.
type SelectedOption struct {
	ColumnID   string  `json:"column_id"`
	ColumnName string  `json:"column_name"`
	OptionID   string  `json:"option_id"`
	OptionName string  `json:"option_name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

// ManualInput holds the free-form fields the user can edit next to the
// active selection. Values are kept as entered and parsed when a quote line
// is built.
type ManualInput struct {
	Width     string `json:"width"`
	Height    string `json:"height"`
	Depth     string `json:"depth"`
	UnitPrice string `json:"unit_price"`
	Quantity  string `json:"quantity"`
}

// ManualValues are parsed manual fields. Zero means not entered, except
// Quantity which defaults to 1.
type ManualValues struct {
	Dimensions Dimensions
	UnitPrice  float64
	HasPrice   bool
	Quantity   float64
}

// ManualInputError lists the manual fields that failed validation.
type ManualInputError struct {
	Fields map[string]string
}

func (e *ManualInputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid manual input: " + strings.Join(parts, "; ")
}

// Parse validates the manual fields. Empty fields are allowed; anything else
// must be a non-negative number, and quantity must be positive.
func (m ManualInput) Parse() (ManualValues, error) {
	errs := make(map[string]string)
	num := func(field, raw string) float64 {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs[field] = "Must be a number"
			return 0
		}
		if v < 0 {
			errs[field] = "Must be zero or greater"
			return 0
		}
		return v
	}

	vals := ManualValues{
		Dimensions: Dimensions{
			Width:  num("width", m.Width),
			Height: num("height", m.Height),
			Depth:  num("depth", m.Depth),
		},
		UnitPrice: num("unit_price", m.UnitPrice),
		HasPrice:  strings.TrimSpace(m.UnitPrice) != "",
		Quantity:  1,
	}
	if q := strings.TrimSpace(m.Quantity); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		switch {
		case err != nil:
			errs["quantity"] = "Must be a number"
		case v <= 0:
			errs["quantity"] = "Quantity must be greater than zero"
		default:
			vals.Quantity = v
		}
	}

	if len(errs) > 0 {
		return ManualValues{}, &ManualInputError{Fields: errs}
	}
	return vals, nil
}

// SelectionState tracks the active single pick and the checked set used for
// bulk add. The two modes are independent.
type SelectionState struct {
	ActiveCombinationID string                    `json:"active_combination_id,omitempty"`
	Active              map[string]SelectedOption `json:"active"`
	Checked             map[string]bool           `json:"checked"`
	Manual              ManualInput               `json:"manual"`

	// autoFill holds the manual values the last Select wrote.
	autoFill ManualInput
}

// NewSelectionState returns an empty selection.
func NewSelectionState() SelectionState {
	return SelectionState{
		Active:  make(map[string]SelectedOption),
		Checked: make(map[string]bool),
	}
}

// Select makes c the active selection. Its options replace the active picks,
// the manual dimension fields take the first dimensioned option's values and
// the manual unit price takes the effective unit price. Dimensions filled by
// an earlier selection are cleared when c has none; dimensions the user
// entered stay and serve as the area fallback. Selecting the active
// combination again changes nothing.
func (s *SelectionState) Select(c Combination, rs ResolvedStructure) {
	if s.ActiveCombinationID == c.ID {
		return
	}

	active := make(map[string]SelectedOption, len(c.Options))
	for colID, o := range c.Options {
		name := colID
		if col, ok := rs.Column(colID); ok {
			name = col.Label()
		}
		active[colID] = SelectedOption{
			ColumnID:   colID,
			ColumnName: name,
			OptionID:   o.ID,
			OptionName: o.Name,
			Quantity:   1,
			UnitPrice:  o.UnitPrice,
		}
	}
	s.ActiveCombinationID = c.ID
	s.Active = active
	s.clearAutoFill()

	var fallback *Dimensions
	if vals, err := s.Manual.Parse(); err == nil {
		fallback = &vals.Dimensions
	}
	d, fromOption := CombinationDimensions(c, rs.ColumnIDs(), nil)
	if fromOption {
		s.Manual.Width = formatField(d.Width)
		s.Manual.Height = formatField(d.Height)
		s.Manual.Depth = formatField(d.Depth)
		s.autoFill.Width = s.Manual.Width
		s.autoFill.Height = s.Manual.Height
		s.autoFill.Depth = s.Manual.Depth
	} else if fallback != nil {
		d = *fallback
	}
	s.Manual.UnitPrice = formatNumber(CalcEffectiveUnitPrice(c.TotalPrice, Area(d.Width, d.Height)))
	s.autoFill.UnitPrice = s.Manual.UnitPrice
}

// clearAutoFill empties manual fields that still hold the value the last
// Select wrote. Fields the user changed are kept.
func (s *SelectionState) clearAutoFill() {
	fields := []struct {
		cur  *string
		auto string
	}{
		{&s.Manual.Width, s.autoFill.Width},
		{&s.Manual.Height, s.autoFill.Height},
		{&s.Manual.Depth, s.autoFill.Depth},
		{&s.Manual.UnitPrice, s.autoFill.UnitPrice},
	}
	for _, f := range fields {
		if f.auto != "" && strings.TrimSpace(*f.cur) == f.auto {
			*f.cur = ""
		}
	}
	s.autoFill = ManualInput{}
}

// PriceAutoFilled reports whether the manual unit price is still the one
// Select derived, so it may be re-derived from the final area.
func (s SelectionState) PriceAutoFilled() bool {
	return s.autoFill.UnitPrice != "" && strings.TrimSpace(s.Manual.UnitPrice) == s.autoFill.UnitPrice
}

// ToggleChecked adds or removes a combination id from the checked set.
func (s *SelectionState) ToggleChecked(id string) {
	if s.Checked[id] {
		delete(s.Checked, id)
		return
	}
	s.Checked[id] = true
}

// CheckAll marks every given combination as checked.
func (s *SelectionState) CheckAll(combos []Combination) {
	for _, c := range combos {
		s.Checked[c.ID] = true
	}
}

// ClearChecked empties the checked set.
func (s *SelectionState) ClearChecked() {
	s.Checked = make(map[string]bool)
}

// ActiveTotal sums the unit prices of the active picks.
func (s *SelectionState) ActiveTotal() float64 {
	var sum float64
	for _, so := range s.Active {
		sum += so.UnitPrice * float64(max(so.Quantity, 1))
	}
	return sum
}

func formatField(v float64) string {
	if v <= 0 {
		return ""
	}
	return formatNumber(v)
}
