package services

// ColumnView describes one structure column for display.
type ColumnView struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Resolved bool         `json:"resolved"`
	Primary  bool         `json:"primary"`
	Options  []FilterView `json:"options,omitempty"`
}

// FilterView is one option of a column with its filter state.
type FilterView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Selected bool    `json:"selected"`
}

// CombinationRow is one line of the combination table.
type CombinationRow struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Cells      []string `json:"cells"`
	TotalPrice float64  `json:"total_price"`
	UnitPrice  float64  `json:"unit_price"`
	Dimensions string   `json:"dimensions,omitempty"`
	Checked    bool     `json:"checked"`
	Active     bool     `json:"active"`
}

// SessionView is a render-ready snapshot of an EngineSession.
type SessionView struct {
	Loading        bool             `json:"loading"`
	Error          string           `json:"error,omitempty"`
	StructureID    string           `json:"structure_id,omitempty"`
	StructureName  string           `json:"structure_name,omitempty"`
	CategoryName   string           `json:"category_name,omitempty"`
	Separator      string           `json:"separator"`
	Columns        []ColumnView     `json:"columns"`
	Unresolved     []string         `json:"unresolved,omitempty"`
	Rows           []CombinationRow `json:"rows"`
	NoCombinations bool             `json:"no_combinations"`
	CheckedCount   int              `json:"checked_count"`
	ActiveName     string           `json:"active_name,omitempty"`
	Manual         ManualInput      `json:"manual"`
}

// Loaded reports whether a catalog snapshot was ever applied.
func (s *EngineSession) Loaded() bool { return s.loaded }

// View builds the render snapshot. While a fetch is outstanding only the
// loading flag and structure header are filled.
func (s *EngineSession) View() SessionView {
	v := SessionView{
		Loading: s.loading,
		Manual:  s.selection.Manual,
	}
	if s.lastErr != nil {
		v.Error = s.lastErr.Error()
	}
	if s.structure == nil {
		return v
	}

	rs := *s.structure
	v.StructureID = rs.Structure.ID
	v.StructureName = rs.Structure.Name
	v.CategoryName = s.CategoryName()
	v.Separator = rs.Structure.Separator
	v.Unresolved = rs.Unresolved
	if s.loading {
		return v
	}

	for _, col := range rs.Columns {
		cv := ColumnView{
			ID:       col.ID,
			Label:    col.Label(),
			Resolved: col.Resolved,
			Primary:  col.ID == rs.Structure.PrimaryColumnID,
		}
		allowed := s.filter.Allowed(col.ID)
		for _, o := range s.optionsByColumn[col.ID] {
			cv.Options = append(cv.Options, FilterView{
				ID:       o.ID,
				Name:     o.Name,
				Price:    o.UnitPrice,
				Selected: allowed[o.ID],
			})
		}
		v.Columns = append(v.Columns, cv)
	}

	order := rs.ColumnIDs()
	for _, c := range s.combos {
		dims, _ := CombinationDimensions(c, order, nil)
		row := CombinationRow{
			ID:         c.ID,
			Name:       CombinationName(c.Options, order, rs.Structure.Separator),
			TotalPrice: c.TotalPrice,
			UnitPrice:  CalcEffectiveUnitPrice(c.TotalPrice, Area(dims.Width, dims.Height)),
			Dimensions: FormatDimensions(dims),
			Checked:    s.selection.Checked[c.ID],
			Active:     s.selection.ActiveCombinationID == c.ID,
		}
		for _, id := range order {
			row.Cells = append(row.Cells, c.Options[id].Name)
		}
		if row.Checked {
			v.CheckedCount++
		}
		v.Rows = append(v.Rows, row)
	}
	v.NoCombinations = len(v.Rows) == 0
	v.ActiveName = SelectionName(s.selection.Active, order, rs.Structure.Separator)
	return v
}
