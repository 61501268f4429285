// Package services implements the combination and pricing engine behind the
// quoting screens, plus quote totals, formatting and export.
package services

// Category is a top-level grouping of product attributes.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrimary bool   `json:"is_primary"`
}

// Column is a single attribute axis within a Category.
type Column struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	IsPrimary  bool   `json:"is_primary"`
}

// Dimensions are physical measurements in millimeters. Depth is zero when
// the option is flat.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth,omitempty"`
}

// Option is one concrete choice for a Column.
type Option struct {
	ID        string  `json:"id"`
	ColumnID  string  `json:"column_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`

	// Dimensions is nil when the option carries no measurements.
	Dimensions *Dimensions `json:"dimensions,omitempty"`

	// Precomputed values from the catalog, m² and m³.
	Area   float64 `json:"area,omitempty"`
	Volume float64 `json:"volume,omitempty"`
}

// HasDimensions reports whether the option contributes measurements.
func (o Option) HasDimensions() bool {
	return o.Dimensions != nil
}

// Structure is a named, ordered selection of Columns used to enumerate and
// name product variants.
type Structure struct {
	ID              string   `json:"id"`
	CategoryID      string   `json:"category_id"`
	Name            string   `json:"name"`
	ColumnOrder     []string `json:"column_order"`
	Separator       string   `json:"separator"`
	PrimaryColumnID string   `json:"primary_column_id,omitempty"`
	IsDefault       bool     `json:"is_default"`
}

// Catalog is a snapshot of everything the engine reads from the store.
type Catalog struct {
	Categories []Category
	Columns    []Column
	Options    []Option
	Structures []Structure
}

// CatalogAccessor is the read contract of the catalog store.
type CatalogAccessor interface {
	LoadCatalog() (Catalog, error)
}

// Category looks up a category by id.
func (c Catalog) Category(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Structure looks up a structure by id.
func (c Catalog) Structure(id string) (Structure, bool) {
	for _, s := range c.Structures {
		if s.ID == id {
			return s, true
		}
	}
	return Structure{}, false
}

// DefaultStructure returns the structure flagged as default for the given
// category, falling back to the first structure of that category. An empty
// categoryID considers every structure.
func (c Catalog) DefaultStructure(categoryID string) (Structure, bool) {
	var first *Structure
	for i := range c.Structures {
		s := &c.Structures[i]
		if categoryID != "" && s.CategoryID != categoryID {
			continue
		}
		if s.IsDefault {
			return *s, true
		}
		if first == nil {
			first = s
		}
	}
	if first == nil {
		return Structure{}, false
	}
	return *first, true
}

// OptionsByColumn groups options by column id, keeping catalog order.
func (c Catalog) OptionsByColumn() map[string][]Option {
	out := make(map[string][]Option)
	for _, o := range c.Options {
		out[o.ColumnID] = append(out[o.ColumnID], o)
	}
	return out
}
