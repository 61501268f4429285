package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type optionDef struct {
	name      string
	unitPrice float64
	dims      *services.Dimensions
}

type columnDef struct {
	key       string
	name      string
	isPrimary bool
	options   []optionDef
}

type categoryDef struct {
	name      string
	isPrimary bool
	columns   []columnDef
}

type structureDef struct {
	category   string
	name       string
	columnKeys []string
	separator  string
	primary    string
	isDefault  bool
}

type ruleDef struct {
	name           string
	structure      string
	triggerOption  string
	targetColumn   string
	adjustmentType string
	amount         float64
	priority       int
}

func panel(w, h, d float64) *services.Dimensions {
	return &services.Dimensions{Width: w, Height: h, Depth: d}
}

// ── Demo catalog ─────────────────────────────────────────────────────────

var seedCategories = []categoryDef{
	{
		name:      "Aluminum Profiles",
		isPrimary: true,
		columns: []columnDef{
			{key: "profile", name: "Profile", isPrimary: true, options: []optionDef{
				{name: "Xingfa 55", unitPrice: 1200000},
				{name: "Viet Phap 450", unitPrice: 950000},
				{name: "Owin 93", unitPrice: 1350000},
				{name: "Customer supplied", unitPrice: 0},
			}},
			{key: "color", name: "Color", options: []optionDef{
				{name: "Matte Black", unitPrice: 80000},
				{name: "Wood Grain", unitPrice: 150000},
				{name: "Silver", unitPrice: 0},
			}},
		},
	},
	{
		name: "Glass",
		columns: []columnDef{
			{key: "glass", name: "Glass", options: []optionDef{
				{name: "Tempered 8mm", unitPrice: 650000, dims: panel(1000, 1000, 8)},
				{name: "Laminated 6.38mm", unitPrice: 720000, dims: panel(1000, 1000, 6.38)},
				{name: "Clear 5mm", unitPrice: 320000, dims: panel(1000, 1000, 5)},
			}},
		},
	},
	{
		name: "Accessories",
		columns: []columnDef{
			{key: "handle", name: "Handle", options: []optionDef{
				{name: "Kinlong Lever", unitPrice: 450000},
				{name: "Cmech Crescent Lock", unitPrice: 280000},
				{name: "No handle", unitPrice: 0},
			}},
		},
	},
}

var seedStructures = []structureDef{
	{
		category:   "Aluminum Profiles",
		name:       "Sliding Window",
		columnKeys: []string{"profile", "glass", "color", "handle"},
		separator:  " - ",
		primary:    "profile",
		isDefault:  true,
	},
	{
		category:   "Aluminum Profiles",
		name:       "Fixed Window",
		columnKeys: []string{"profile", "glass"},
		separator:  " / ",
		primary:    "profile",
	},
}

var seedRules = []ruleDef{
	{
		name:           "Wood grain coating surcharge",
		structure:      "Sliding Window",
		triggerOption:  "Wood Grain",
		targetColumn:   "profile",
		adjustmentType: services.AdjustmentPercent,
		amount:         12,
		priority:       10,
	},
	{
		name:           "Tempered glass handling",
		triggerOption:  "Tempered 8mm",
		targetColumn:   "glass",
		adjustmentType: services.AdjustmentPerArea,
		amount:         40000,
		priority:       5,
	},
}

// Seed populates the catalog with an aluminum window demo: three
// categories, four columns, two structures and a pair of material
// adjustment rules. It is safe to call on every startup because it returns
// early if any category records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if categories already exist ─────────────────
	categoriesCol, err := app.FindCollectionByNameOrId("categories")
	if err != nil {
		return fmt.Errorf("seed: could not find categories collection: %w", err)
	}
	existing, err := app.FindAllRecords(categoriesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query categories: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: categories collection is empty – inserting demo catalog …")

	// ── lookup helper collections ────────────────────────────────────
	columnsCol, err := app.FindCollectionByNameOrId("columns")
	if err != nil {
		return fmt.Errorf("seed: could not find columns collection: %w", err)
	}
	optionsCol, err := app.FindCollectionByNameOrId("options")
	if err != nil {
		return fmt.Errorf("seed: could not find options collection: %w", err)
	}
	structuresCol, err := app.FindCollectionByNameOrId("structures")
	if err != nil {
		return fmt.Errorf("seed: could not find structures collection: %w", err)
	}
	rulesCol, err := app.FindCollectionByNameOrId("material_adjustment_rules")
	if err != nil {
		return fmt.Errorf("seed: could not find material_adjustment_rules collection: %w", err)
	}

	// ── helper: create option ────────────────────────────────────────
	createOption := func(columnID string, sortOrder int, d optionDef) error {
		r := core.NewRecord(optionsCol)
		r.Set("column", columnID)
		r.Set("name", d.name)
		r.Set("unit_price", d.unitPrice)
		r.Set("sort_order", sortOrder)
		if d.dims != nil {
			m := services.Measure(*d.dims)
			r.Set("width", m.Width)
			r.Set("height", m.Height)
			r.Set("depth", m.Depth)
			r.Set("area", m.Area)
			r.Set("volume", m.Volume)
			r.Set("has_dimensions", true)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save option %q: %w", d.name, err)
		}
		return nil
	}

	// ── categories, columns, options ─────────────────────────────────
	categoryIDs := make(map[string]string)
	columnIDs := make(map[string]string)
	optionIDs := make(map[string]string)

	for ci, cat := range seedCategories {
		catRec := core.NewRecord(categoriesCol)
		catRec.Set("name", cat.name)
		catRec.Set("is_primary", cat.isPrimary)
		catRec.Set("sort_order", ci+1)
		if err := app.Save(catRec); err != nil {
			return fmt.Errorf("seed: save category %q: %w", cat.name, err)
		}
		categoryIDs[cat.name] = catRec.Id

		for coi, column := range cat.columns {
			colRec := core.NewRecord(columnsCol)
			colRec.Set("category", catRec.Id)
			colRec.Set("name", column.name)
			colRec.Set("is_primary", column.isPrimary)
			colRec.Set("sort_order", coi+1)
			if err := app.Save(colRec); err != nil {
				return fmt.Errorf("seed: save column %q: %w", column.name, err)
			}
			columnIDs[column.key] = colRec.Id

			for oi, o := range column.options {
				if err := createOption(colRec.Id, oi+1, o); err != nil {
					return err
				}
			}
		}
	}

	// Option ids are only needed for rule triggers.
	options, err := app.FindAllRecords(optionsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query options: %w", err)
	}
	for _, o := range options {
		optionIDs[o.GetString("name")] = o.Id
	}

	// ── structures ───────────────────────────────────────────────────
	structureIDs := make(map[string]string)
	for _, s := range seedStructures {
		order := make([]string, 0, len(s.columnKeys))
		for _, key := range s.columnKeys {
			order = append(order, columnIDs[key])
		}

		r := core.NewRecord(structuresCol)
		r.Set("category", categoryIDs[s.category])
		r.Set("name", s.name)
		r.Set("column_order", order)
		r.Set("separator", s.separator)
		r.Set("primary_column", columnIDs[s.primary])
		r.Set("is_default", s.isDefault)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save structure %q: %w", s.name, err)
		}
		structureIDs[s.name] = r.Id
	}

	// ── material adjustment rules ────────────────────────────────────
	for _, d := range seedRules {
		r := core.NewRecord(rulesCol)
		r.Set("name", d.name)
		if d.structure != "" {
			r.Set("structure", structureIDs[d.structure])
		}
		r.Set("trigger_option", optionIDs[d.triggerOption])
		r.Set("target_column", columnIDs[d.targetColumn])
		r.Set("adjustment_type", d.adjustmentType)
		r.Set("amount", d.amount)
		r.Set("priority", d.priority)
		r.Set("active", true)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save rule %q: %w", d.name, err)
		}
	}

	log.Printf("seed: inserted %d categories, %d columns, %d options, %d structures\n",
		len(categoryIDs), len(columnIDs), len(options), len(structureIDs))
	return nil
}
