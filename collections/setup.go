package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the catalog collections
// (categories, columns, options, structures), the material adjustment rules
// and the quotes with their lines exist.
func Setup(app *pocketbase.PocketBase) {
	categories := ensureCollection(app, "categories", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_primary"})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
	})

	columns := ensureCollection(app, "columns", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "category",
			Required:      true,
			CollectionId:  categories.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_primary"})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
	})

	ensureCollection(app, "options", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "column",
			Required:      true,
			CollectionId:  columns.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price"})
		c.Fields.Add(&core.NumberField{Name: "width"})
		c.Fields.Add(&core.NumberField{Name: "height"})
		c.Fields.Add(&core.NumberField{Name: "depth"})
		c.Fields.Add(&core.NumberField{Name: "area"})
		c.Fields.Add(&core.NumberField{Name: "volume"})
		c.Fields.Add(&core.BoolField{Name: "has_dimensions"})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
	})

	structures := ensureCollection(app, "structures", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "category",
			Required:      true,
			CollectionId:  categories.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.JSONField{Name: "column_order"})
		c.Fields.Add(&core.TextField{Name: "separator"})
		c.Fields.Add(&core.TextField{Name: "primary_column"})
		c.Fields.Add(&core.BoolField{Name: "is_default"})
	})

	ensureCollection(app, "material_adjustment_rules", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:          "structure",
			Required:      false,
			CollectionId:  structures.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "trigger_option", Required: true})
		c.Fields.Add(&core.TextField{Name: "target_column", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "adjustment_type",
			Required:  true,
			Values:    []string{"fixed", "percent", "per_area"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "amount"})
		c.Fields.Add(&core.NumberField{Name: "priority"})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quotes := ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "customer_name"})
		c.Fields.Add(&core.TextField{Name: "reference_number"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quote_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quote",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.NumberField{Name: "unit_price"})
		c.Fields.Add(&core.NumberField{Name: "width"})
		c.Fields.Add(&core.NumberField{Name: "height"})
		c.Fields.Add(&core.NumberField{Name: "depth"})
		c.Fields.Add(&core.NumberField{Name: "area"})
		c.Fields.Add(&core.NumberField{Name: "volume"})
		c.Fields.Add(&core.NumberField{Name: "quantity"})
		c.Fields.Add(&core.NumberField{Name: "total_price"})
		c.Fields.Add(&core.TextField{Name: "structure"})
		c.Fields.Add(&core.TextField{Name: "combination_signature"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
