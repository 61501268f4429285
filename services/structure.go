package services

// ResolvedColumn is one entry of a structure's column_order. Resolved is
// false when the id matched no column of any loaded category.
type ResolvedColumn struct {
	Column
	Resolved bool
}

// Label returns the column name, or a readable placeholder for columns that
// could not be resolved.
func (c ResolvedColumn) Label() string {
	if !c.Resolved {
		return "Unknown column (" + c.ID + ")"
	}
	return c.Name
}

// ResolvedStructure is a Structure with its column ids resolved against the
// catalog, in column_order.
type ResolvedStructure struct {
	Structure  Structure
	Columns    []ResolvedColumn
	Unresolved []string
}

// ColumnIDs returns the ids of the resolved columns in structure order.
func (r ResolvedStructure) ColumnIDs() []string {
	ids := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		if c.Resolved {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Column returns the resolved column with the given id.
func (r ResolvedStructure) Column(id string) (ResolvedColumn, bool) {
	for _, c := range r.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return ResolvedColumn{}, false
}

// PrimaryColumn returns the structure's designated primary column when it is
// part of column_order and resolved.
func (r ResolvedStructure) PrimaryColumn() (ResolvedColumn, bool) {
	if r.Structure.PrimaryColumnID == "" {
		return ResolvedColumn{}, false
	}
	c, ok := r.Column(r.Structure.PrimaryColumnID)
	if !ok || !c.Resolved {
		return ResolvedColumn{}, false
	}
	return c, true
}

// ResolveStructure maps the structure's column_order onto column records.
// Columns of the structure's own category are checked first, then the
// columns of every other loaded category in catalog order. Ids that match
// nothing are kept in place as unresolved entries and listed in Unresolved.
func ResolveStructure(s Structure, categories []Category, columns []Column) ResolvedStructure {
	byCategory := make(map[string]map[string]Column, len(categories))
	for _, col := range columns {
		if byCategory[col.CategoryID] == nil {
			byCategory[col.CategoryID] = make(map[string]Column)
		}
		byCategory[col.CategoryID][col.ID] = col
	}

	lookup := func(id string) (Column, bool) {
		if col, ok := byCategory[s.CategoryID][id]; ok {
			return col, true
		}
		for _, cat := range categories {
			if cat.ID == s.CategoryID {
				continue
			}
			if col, ok := byCategory[cat.ID][id]; ok {
				return col, true
			}
		}
		return Column{}, false
	}

	out := ResolvedStructure{
		Structure: s,
		Columns:   make([]ResolvedColumn, 0, len(s.ColumnOrder)),
	}
	for _, id := range s.ColumnOrder {
		col, ok := lookup(id)
		if !ok {
			out.Columns = append(out.Columns, ResolvedColumn{Column: Column{ID: id}})
			out.Unresolved = append(out.Unresolved, id)
			continue
		}
		out.Columns = append(out.Columns, ResolvedColumn{Column: col, Resolved: true})
	}
	return out
}
