package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"catalogquote/services"
)

// MigrateOptionMeasurements backfills area, volume and has_dimensions on
// options that carry width and height but no precomputed area. Safe to call
// on every startup -- returns early if nothing to migrate.
func MigrateOptionMeasurements(app *pocketbase.PocketBase) error {
	optionsCol, err := app.FindCollectionByNameOrId("options")
	if err != nil {
		return fmt.Errorf("migrate: could not find options collection: %w", err)
	}

	pending, err := app.FindRecordsByFilter(
		optionsCol,
		"width > 0 && height > 0 && (area = 0 || has_dimensions = false)",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query unmeasured options: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	log.Printf("migrate: found %d option(s) without measurements -- backfilling...\n", len(pending))

	updated := 0
	for _, rec := range pending {
		m := services.Measure(services.Dimensions{
			Width:  rec.GetFloat("width"),
			Height: rec.GetFloat("height"),
			Depth:  rec.GetFloat("depth"),
		})
		rec.Set("area", m.Area)
		rec.Set("volume", m.Volume)
		rec.Set("has_dimensions", true)

		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to update option %q (%s): %v\n", rec.GetString("name"), rec.Id, err)
			continue
		}
		updated++
	}

	log.Printf("migrate: option measurement backfill complete (%d updated).\n", updated)
	return nil
}
