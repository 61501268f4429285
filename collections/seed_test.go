package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase"

	"catalogquote/collections"
	"catalogquote/testhelpers"
)

func countRecords(t *testing.T, app *pocketbase.PocketBase, name string) int {
	t.Helper()
	col, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		t.Fatalf("collection %q not found: %v", name, err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		t.Fatalf("query %s error: %v", name, err)
	}
	return len(records)
}

func TestSeed_CreatesCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	want := map[string]int{
		"categories":                3,
		"columns":                   4,
		"options":                   13,
		"structures":                2,
		"material_adjustment_rules": 2,
	}
	for name, n := range want {
		if got := countRecords(t, app, name); got != n {
			t.Errorf("%s: expected %d records, got %d", name, n, got)
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	if got := countRecords(t, app, "categories"); got != 3 {
		t.Errorf("expected 3 categories after idempotent seed, got %d", got)
	}
	if got := countRecords(t, app, "options"); got != 13 {
		t.Errorf("expected 13 options after idempotent seed, got %d", got)
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCategory(t, app, "Existing")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if got := countRecords(t, app, "categories"); got != 1 {
		t.Errorf("expected seed to skip, got %d categories", got)
	}
	if got := countRecords(t, app, "structures"); got != 0 {
		t.Errorf("expected no structures, got %d", got)
	}
}

func TestSeed_DefaultStructureSpansCategories(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	structures, err := app.FindRecordsByFilter("structures", "is_default = true", "", 0, 0)
	if err != nil || len(structures) != 1 {
		t.Fatalf("expected one default structure, got %d (%v)", len(structures), err)
	}
	st := structures[0]
	if st.GetString("name") != "Sliding Window" {
		t.Errorf("default structure = %q", st.GetString("name"))
	}

	var order []string
	if err := st.UnmarshalJSONField("column_order", &order); err != nil {
		t.Fatalf("column_order: %v", err)
	}
	if len(order) != 4 {
		t.Fatalf("expected 4 columns, got %v", order)
	}

	categories := make(map[string]bool)
	for _, id := range order {
		col, err := app.FindRecordById("columns", id)
		if err != nil {
			t.Fatalf("column %s not found: %v", id, err)
		}
		categories[col.GetString("category")] = true
	}
	if len(categories) != 3 {
		t.Errorf("expected columns from 3 categories, got %d", len(categories))
	}
	if st.GetString("primary_column") != order[0] {
		t.Errorf("primary column = %q, want %q", st.GetString("primary_column"), order[0])
	}
}

func TestSeed_GlassMeasured(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	glass, err := app.FindFirstRecordByData("options", "name", "Tempered 8mm")
	if err != nil {
		t.Fatalf("Tempered 8mm not found: %v", err)
	}
	if !glass.GetBool("has_dimensions") || glass.GetFloat("area") != 1 {
		t.Errorf("glass area = %v, has_dimensions = %v", glass.GetFloat("area"), glass.GetBool("has_dimensions"))
	}
}
