package services

const (
	maxPricedCandidates   = 2
	maxUnpricedCandidates = 1
)

// ColumnFilter restricts the options considered for each column. A missing
// or empty entry means the column is unrestricted.
type ColumnFilter map[string]map[string]bool

// Allowed returns the option set selected for a column, or nil.
func (f ColumnFilter) Allowed(columnID string) map[string]bool {
	if f == nil {
		return nil
	}
	return f[columnID]
}

// Toggle adds the option to the column's filter, or removes it if present.
func (f ColumnFilter) Toggle(columnID, optionID string) {
	set := f[columnID]
	if set == nil {
		set = make(map[string]bool)
		f[columnID] = set
	}
	if set[optionID] {
		delete(set, optionID)
	} else {
		set[optionID] = true
	}
	if len(set) == 0 {
		delete(f, columnID)
	}
}

// Clear removes any restriction on the column.
func (f ColumnFilter) Clear(columnID string) {
	delete(f, columnID)
}

// SelectCandidates narrows a column's options to at most two priced options
// followed by at most one unpriced option. A non-empty filter restricts the
// options first; when the filter matches none of them it is ignored so the
// column stays selectable.
func SelectCandidates(options []Option, allowed map[string]bool) []Option {
	pool := options
	if len(allowed) > 0 {
		filtered := make([]Option, 0, len(allowed))
		for _, o := range options {
			if allowed[o.ID] {
				filtered = append(filtered, o)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	var priced, unpriced []Option
	for _, o := range pool {
		if o.UnitPrice > 0 {
			if len(priced) < maxPricedCandidates {
				priced = append(priced, o)
			}
			continue
		}
		if len(unpriced) < maxUnpricedCandidates {
			unpriced = append(unpriced, o)
		}
	}

	out := make([]Option, 0, len(priced)+len(unpriced))
	out = append(out, priced...)
	return append(out, unpriced...)
}
