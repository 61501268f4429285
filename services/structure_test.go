package services

import "testing"

func TestResolveStructure(t *testing.T) {
	cat := windowCatalog()
	st := cat.Structures[0]
	st.ColumnOrder = []string{"col-handle", "col-ghost", "col-material"}
	st.PrimaryColumnID = "col-material"

	rs := ResolveStructure(st, cat.Categories, cat.Columns)

	if len(rs.Columns) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(rs.Columns))
	}
	if rs.Columns[0].ID != "col-handle" || !rs.Columns[0].Resolved {
		t.Errorf("expected cross-category column first, got %+v", rs.Columns[0])
	}
	if rs.Columns[1].Resolved {
		t.Error("expected col-ghost to be unresolved")
	}
	if got := rs.Columns[1].Label(); got != "Unknown column (col-ghost)" {
		t.Errorf("placeholder label = %q", got)
	}
	if len(rs.Unresolved) != 1 || rs.Unresolved[0] != "col-ghost" {
		t.Errorf("Unresolved = %v, want [col-ghost]", rs.Unresolved)
	}

	ids := rs.ColumnIDs()
	if !equalIDs(ids, []string{"col-handle", "col-material"}) {
		t.Errorf("ColumnIDs() = %v", ids)
	}
	if pc, ok := rs.PrimaryColumn(); !ok || pc.Name != "Material" {
		t.Errorf("PrimaryColumn() = %+v, %v", pc, ok)
	}
}

func TestResolveStructure_CategoryNotLoaded(t *testing.T) {
	cat := windowCatalog()
	// Only the structure's own category is loaded; accessories columns are
	// known but their category is not.
	rs := ResolveStructure(cat.Structures[0], cat.Categories[:1], cat.Columns)

	if !rs.Columns[0].Resolved {
		t.Error("own-category column should resolve")
	}
	if rs.Columns[1].Resolved {
		t.Error("column of an unloaded category should be unresolved")
	}
}

func TestCatalog_DefaultStructure(t *testing.T) {
	cat := windowCatalog()
	cat.Structures = append([]Structure{{ID: "st-other", CategoryID: "cat-alu", Name: "Door"}}, cat.Structures...)

	st, ok := cat.DefaultStructure("cat-alu")
	if !ok || st.ID != "st-window" {
		t.Errorf("DefaultStructure() = %s, want st-window", st.ID)
	}

	cat.Structures[1].IsDefault = false
	st, ok = cat.DefaultStructure("")
	if !ok || st.ID != "st-other" {
		t.Errorf("DefaultStructure() without default = %s, want first", st.ID)
	}

	if _, ok := cat.DefaultStructure("cat-none"); ok {
		t.Error("expected no structure for unknown category")
	}
}
