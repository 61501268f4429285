package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"catalogquote/services"
)

// RecordCatalog reads the engine's catalog snapshot from PocketBase records.
type RecordCatalog struct {
	App core.App
}

// LoadCatalog implements services.CatalogAccessor.
func (c RecordCatalog) LoadCatalog() (services.Catalog, error) {
	var cat services.Catalog

	categories, err := c.App.FindRecordsByFilter("categories", "", "sort_order,name", 0, 0)
	if err != nil {
		return cat, fmt.Errorf("query categories: %w", err)
	}
	for _, r := range categories {
		cat.Categories = append(cat.Categories, services.Category{
			ID:        r.Id,
			Name:      r.GetString("name"),
			IsPrimary: r.GetBool("is_primary"),
		})
	}

	columns, err := c.App.FindRecordsByFilter("columns", "", "sort_order,name", 0, 0)
	if err != nil {
		return cat, fmt.Errorf("query columns: %w", err)
	}
	for _, r := range columns {
		cat.Columns = append(cat.Columns, services.Column{
			ID:         r.Id,
			CategoryID: r.GetString("category"),
			Name:       r.GetString("name"),
			IsPrimary:  r.GetBool("is_primary"),
		})
	}

	options, err := c.App.FindRecordsByFilter("options", "", "sort_order,name", 0, 0)
	if err != nil {
		return cat, fmt.Errorf("query options: %w", err)
	}
	for _, r := range options {
		cat.Options = append(cat.Options, optionFromRecord(r))
	}

	structures, err := c.App.FindRecordsByFilter("structures", "", "name", 0, 0)
	if err != nil {
		return cat, fmt.Errorf("query structures: %w", err)
	}
	for _, r := range structures {
		s, err := structureFromRecord(r)
		if err != nil {
			return cat, err
		}
		cat.Structures = append(cat.Structures, s)
	}

	return cat, nil
}

func optionFromRecord(r *core.Record) services.Option {
	o := services.Option{
		ID:        r.Id,
		ColumnID:  r.GetString("column"),
		Name:      r.GetString("name"),
		UnitPrice: r.GetFloat("unit_price"),
		Area:      r.GetFloat("area"),
		Volume:    r.GetFloat("volume"),
	}
	if r.GetBool("has_dimensions") {
		o.Dimensions = &services.Dimensions{
			Width:  r.GetFloat("width"),
			Height: r.GetFloat("height"),
			Depth:  r.GetFloat("depth"),
		}
	}
	return o
}

func structureFromRecord(r *core.Record) (services.Structure, error) {
	var order []string
	if raw := r.GetString("column_order"); raw != "" && raw != "null" {
		if err := r.UnmarshalJSONField("column_order", &order); err != nil {
			return services.Structure{}, fmt.Errorf("structure %s: column_order: %w", r.Id, err)
		}
	}
	return services.Structure{
		ID:              r.Id,
		CategoryID:      r.GetString("category"),
		Name:            r.GetString("name"),
		ColumnOrder:     order,
		Separator:       r.GetString("separator"),
		PrimaryColumnID: r.GetString("primary_column"),
		IsDefault:       r.GetBool("is_default"),
	}, nil
}
