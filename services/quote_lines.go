package services

// QuoteLine is the payload handed to the quote for each added product.
type QuoteLine struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Depth       float64 `json:"depth,omitempty"`
	Area        float64 `json:"area,omitempty"`
	Volume      float64 `json:"volume,omitempty"`
	Quantity    float64 `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`

	StructureID string `json:"structure_id,omitempty"`
	Signature   string `json:"signature,omitempty"`
}

// Dimensions returns the line's measurements.
func (l QuoteLine) Dimensions() Dimensions {
	return Dimensions{Width: l.Width, Height: l.Height, Depth: l.Depth}
}

// LineDescription embeds the structure and category names and, when
// dimensions are present, a WxH[xD]mm suffix.
func LineDescription(structureName, categoryName string, d Dimensions) string {
	desc := structureName
	if categoryName != "" {
		desc += " (" + categoryName + ")"
	}
	if dims := FormatDimensions(d); dims != "" {
		desc += ", " + dims
	}
	return desc
}

// BuildCombinationLine turns one combination into a quote line. Dimensions
// come from the first dimensioned option, then from manual.
func BuildCombinationLine(c Combination, rs ResolvedStructure, categoryName string, manual *Dimensions) QuoteLine {
	order := rs.ColumnIDs()
	dims, _ := CombinationDimensions(c, order, manual)
	m := Measure(dims)
	unit := CalcEffectiveUnitPrice(c.TotalPrice, m.Area)

	return QuoteLine{
		Name:        CombinationName(c.Options, order, rs.Structure.Separator),
		Description: LineDescription(rs.Structure.Name, categoryName, dims),
		UnitPrice:   unit,
		Width:       dims.Width,
		Height:      dims.Height,
		Depth:       dims.Depth,
		Area:        m.Area,
		Volume:      m.Volume,
		Quantity:    1,
		TotalPrice:  CalcLineTotal(unit, m.Area, 1),
		StructureID: rs.Structure.ID,
		Signature:   c.Signature,
	}
}

// BuildBulkLines builds one line per checked combination still present in
// combos, in list order. Checked ids that no longer resolve are skipped.
func BuildBulkLines(combos []Combination, sel SelectionState, rs ResolvedStructure, categoryName string) ([]QuoteLine, error) {
	if len(sel.Checked) == 0 {
		return nil, ErrNothingChecked
	}
	vals, err := sel.Manual.Parse()
	if err != nil {
		return nil, err
	}

	var lines []QuoteLine
	for _, c := range combos {
		if !sel.Checked[c.ID] {
			continue
		}
		lines = append(lines, BuildCombinationLine(c, rs, categoryName, &vals.Dimensions))
	}
	if len(lines) == 0 {
		return nil, ErrCheckedUnavailable
	}
	return lines, nil
}

// BuildManualLine builds a line from the active picks and the manual fields.
// An entered unit price wins over the price derived from the picks. A price
// left as Select filled it is derived again from the final area.
func BuildManualLine(sel SelectionState, rs ResolvedStructure, categoryName string) (QuoteLine, error) {
	order := rs.ColumnIDs()
	name := SelectionName(sel.Active, order, rs.Structure.Separator)
	if name == "" {
		return QuoteLine{}, ErrEmptyName
	}
	vals, err := sel.Manual.Parse()
	if err != nil {
		return QuoteLine{}, err
	}

	m := Measure(vals.Dimensions)
	unit := CalcEffectiveUnitPrice(sel.ActiveTotal(), m.Area)
	if vals.HasPrice && !sel.PriceAutoFilled() {
		unit = vals.UnitPrice
	}

	return QuoteLine{
		Name:        name,
		Description: LineDescription(rs.Structure.Name, categoryName, vals.Dimensions),
		UnitPrice:   unit,
		Width:       vals.Dimensions.Width,
		Height:      vals.Dimensions.Height,
		Depth:       vals.Dimensions.Depth,
		Area:        m.Area,
		Volume:      m.Volume,
		Quantity:    vals.Quantity,
		TotalPrice:  CalcLineTotal(unit, m.Area, vals.Quantity),
		StructureID: rs.Structure.ID,
	}, nil
}
