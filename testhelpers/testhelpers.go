// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

func save(t *testing.T, app *pocketbase.PocketBase, collection string, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collection, err)
	}
	record := core.NewRecord(col)
	for k, v := range fields {
		record.Set(k, v)
	}
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test %s record: %v", collection, err)
	}
	return record
}

// CreateTestCategory creates a category record with the given name and returns it.
func CreateTestCategory(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()
	return save(t, app, "categories", map[string]any{"name": name})
}

// CreateTestColumn creates a column under a category.
func CreateTestColumn(t *testing.T, app *pocketbase.PocketBase, categoryID, name string, sortOrder int) *core.Record {
	t.Helper()
	return save(t, app, "columns", map[string]any{
		"category":   categoryID,
		"name":       name,
		"sort_order": sortOrder,
	})
}

// CreateTestOption creates an option without dimensions.
func CreateTestOption(t *testing.T, app *pocketbase.PocketBase, columnID, name string, unitPrice float64) *core.Record {
	t.Helper()
	return save(t, app, "options", map[string]any{
		"column":     columnID,
		"name":       name,
		"unit_price": unitPrice,
	})
}

// CreateTestDimensionedOption creates an option carrying width, height and
// depth in millimetres. Area and volume are left for the migration.
func CreateTestDimensionedOption(t *testing.T, app *pocketbase.PocketBase, columnID, name string, unitPrice, width, height, depth float64) *core.Record {
	t.Helper()
	return save(t, app, "options", map[string]any{
		"column":         columnID,
		"name":           name,
		"unit_price":     unitPrice,
		"width":          width,
		"height":         height,
		"depth":          depth,
		"has_dimensions": true,
	})
}

// CreateTestStructure creates a structure listing columnOrder.
func CreateTestStructure(t *testing.T, app *pocketbase.PocketBase, categoryID, name string, columnOrder []string, separator string, isDefault bool) *core.Record {
	t.Helper()
	return save(t, app, "structures", map[string]any{
		"category":     categoryID,
		"name":         name,
		"column_order": columnOrder,
		"separator":    separator,
		"is_default":   isDefault,
	})
}

// CreateTestQuote creates a quote record with the given title.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()
	return save(t, app, "quotes", map[string]any{
		"title":         title,
		"customer_name": "Test Customer",
	})
}

// CreateTestQuoteLine creates a quote line with quantity 1.
func CreateTestQuoteLine(t *testing.T, app *pocketbase.PocketBase, quoteID string, sortOrder int, name string, unitPrice float64) *core.Record {
	t.Helper()
	return save(t, app, "quote_lines", map[string]any{
		"quote":       quoteID,
		"sort_order":  sortOrder,
		"name":        name,
		"unit_price":  unitPrice,
		"quantity":    1,
		"total_price": unitPrice,
	})
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
