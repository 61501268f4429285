package collections_test

import (
	"testing"

	"catalogquote/collections"
	"catalogquote/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"categories",
	"columns",
	"options",
	"structures",
	"material_adjustment_rules",
	"quotes",
	"quote_lines",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_Fields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		collection string
		fields     []string
	}{
		{"categories", []string{"name", "is_primary", "sort_order"}},
		{"columns", []string{"category", "name", "is_primary", "sort_order"}},
		{"options", []string{"column", "name", "unit_price", "width", "height", "depth", "area", "volume", "has_dimensions", "sort_order"}},
		{"structures", []string{"category", "name", "column_order", "separator", "primary_column", "is_default"}},
		{"material_adjustment_rules", []string{"name", "structure", "trigger_option", "target_column", "adjustment_type", "amount", "priority", "active"}},
		{"quotes", []string{"title", "customer_name", "reference_number", "created", "updated"}},
		{"quote_lines", []string{"quote", "sort_order", "name", "description", "unit_price", "width", "height", "depth", "area", "volume", "quantity", "total_price", "structure", "combination_signature"}},
	}
	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			col, err := app.FindCollectionByNameOrId(tt.collection)
			if err != nil {
				t.Fatalf("collection not found: %v", err)
			}
			for _, f := range tt.fields {
				if col.Fields.GetByName(f) == nil {
					t.Errorf("%s: missing field %q", tt.collection, f)
				}
			}
		})
	}
}

func TestSetup_ColumnOrderIsJSON(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("structures")

	if _, ok := col.Fields.GetByName("column_order").(*core.JSONField); !ok {
		t.Error("structures.column_order is not a JSONField")
	}
}

func TestSetup_AdjustmentTypeValues(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("material_adjustment_rules")

	sf, ok := col.Fields.GetByName("adjustment_type").(*core.SelectField)
	if !ok {
		t.Fatal("adjustment_type field is not a SelectField")
	}
	expected := map[string]bool{"fixed": true, "percent": true, "per_area": true}
	for _, v := range sf.Values {
		if !expected[v] {
			t.Errorf("unexpected adjustment_type value: %q", v)
		}
		delete(expected, v)
	}
	for v := range expected {
		t.Errorf("missing adjustment_type value: %q", v)
	}
}

func TestSetup_RelationsCascade(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		collection string
		field      string
	}{
		{"columns", "category"},
		{"options", "column"},
		{"structures", "category"},
		{"quote_lines", "quote"},
	}
	for _, tt := range tests {
		col, _ := app.FindCollectionByNameOrId(tt.collection)
		rf, ok := col.Fields.GetByName(tt.field).(*core.RelationField)
		if !ok {
			t.Errorf("%s.%s is not a RelationField", tt.collection, tt.field)
			continue
		}
		if rf.MaxSelect != 1 {
			t.Errorf("%s.%s: expected MaxSelect=1, got %d", tt.collection, tt.field, rf.MaxSelect)
		}
		if !rf.CascadeDelete {
			t.Errorf("%s.%s: expected CascadeDelete=true", tt.collection, tt.field)
		}
	}
}

func TestSetup_CascadeDeleteCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cat := testhelpers.CreateTestCategory(t, app, "Aluminum")
	column := testhelpers.CreateTestColumn(t, app, cat.Id, "Profile", 1)
	option := testhelpers.CreateTestOption(t, app, column.Id, "Xingfa", 100000)
	st := testhelpers.CreateTestStructure(t, app, cat.Id, "Window", []string{column.Id}, " - ", true)

	if err := app.Delete(cat); err != nil {
		t.Fatalf("failed to delete category: %v", err)
	}

	for _, rec := range []*core.Record{column, option, st} {
		if _, err := app.FindRecordById(rec.Collection().Name, rec.Id); err == nil {
			t.Errorf("%s %s should have been cascade-deleted", rec.Collection().Name, rec.Id)
		}
	}
}

func TestSetup_CascadeDeleteQuoteLines(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	quote := testhelpers.CreateTestQuote(t, app, "Villa")
	line := testhelpers.CreateTestQuoteLine(t, app, quote.Id, 1, "Window", 500000)

	if err := app.Delete(quote); err != nil {
		t.Fatalf("failed to delete quote: %v", err)
	}
	if _, err := app.FindRecordById("quote_lines", line.Id); err == nil {
		t.Error("quote_line should have been cascade-deleted with quote")
	}
}
