package services

import (
	"errors"
	"math"
	"testing"
)

func TestBuildCombinationLine_WithArea(t *testing.T) {
	rs, combo := dimensionedStructure()
	line := BuildCombinationLine(combo, rs, "Doors", nil)

	if line.Name != "Oak / Glass 2000x1500" {
		t.Errorf("Name = %q", line.Name)
	}
	if line.Description != "Swing Door (Doors), 2000x1500mm" {
		t.Errorf("Description = %q", line.Description)
	}
	if math.Abs(line.Area-3) > 1e-9 {
		t.Errorf("Area = %v, want 3", line.Area)
	}
	if math.Abs(line.UnitPrice-300000) > 0.001 {
		t.Errorf("UnitPrice = %v, want 300000", line.UnitPrice)
	}
	if math.Abs(line.TotalPrice-900000) > 0.001 {
		t.Errorf("TotalPrice = %v, want 900000", line.TotalPrice)
	}
	if line.Quantity != 1 || line.Signature != "f1|p1" || line.StructureID != "st" {
		t.Errorf("unexpected line %+v", line)
	}
}

func TestBuildCombinationLine_WithoutArea(t *testing.T) {
	rs, combo := dimensionedStructure()
	combo.Options["panel"] = opt("p2", "panel", "Solid", 500000)

	line := BuildCombinationLine(combo, rs, "Doors", nil)
	if line.UnitPrice != 900000 || line.TotalPrice != 900000 || line.Area != 0 {
		t.Errorf("expected per-piece pricing, got unit=%v total=%v area=%v", line.UnitPrice, line.TotalPrice, line.Area)
	}
	if line.Description != "Swing Door (Doors)" {
		t.Errorf("Description = %q", line.Description)
	}

	line = BuildCombinationLine(combo, rs, "", &Dimensions{Width: 1000, Height: 2000, Depth: 40})
	if line.Width != 1000 || math.Abs(line.Area-2) > 1e-9 || math.Abs(line.Volume-0.08) > 1e-9 {
		t.Errorf("expected manual dimensions fallback, got %+v", line)
	}
	if line.Description != "Swing Door, 1000x2000x40mm" {
		t.Errorf("Description = %q", line.Description)
	}
}

func TestBuildBulkLines(t *testing.T) {
	rs, combo := dimensionedStructure()
	other := Combination{ID: "combo-2", Options: map[string]Option{"frame": opt("f2", "frame", "Pine", 100)}, TotalPrice: 100}
	combos := []Combination{other, combo}

	sel := NewSelectionState()
	if _, err := BuildBulkLines(combos, sel, rs, "Doors"); !errors.Is(err, ErrNothingChecked) {
		t.Errorf("expected ErrNothingChecked, got %v", err)
	}

	sel.ToggleChecked("combo-1")
	sel.ToggleChecked("stale-id")
	lines, err := BuildBulkLines(combos, sel, rs, "Doors")
	if err != nil {
		t.Fatalf("BuildBulkLines() error = %v", err)
	}
	if len(lines) != 1 || lines[0].Signature != "f1|p1" {
		t.Errorf("expected only the resolvable checked combination, got %+v", lines)
	}

	stale := NewSelectionState()
	stale.ToggleChecked("stale-id")
	if _, err := BuildBulkLines(combos, stale, rs, "Doors"); !errors.Is(err, ErrCheckedUnavailable) {
		t.Errorf("expected ErrCheckedUnavailable, got %v", err)
	}
}

func TestBuildManualLine(t *testing.T) {
	rs, combo := dimensionedStructure()

	if _, err := BuildManualLine(NewSelectionState(), rs, "Doors"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}

	sel := NewSelectionState()
	sel.Select(combo, rs)
	line, err := BuildManualLine(sel, rs, "Doors")
	if err != nil {
		t.Fatalf("BuildManualLine() error = %v", err)
	}
	if line.Name != "Oak / Glass 2000x1500" || math.Abs(line.TotalPrice-900000) > 0.001 {
		t.Errorf("unexpected manual line %+v", line)
	}

	sel.Manual = ManualInput{Width: "1000", Height: "1000", UnitPrice: "250000", Quantity: "2"}
	line, err = BuildManualLine(sel, rs, "Doors")
	if err != nil {
		t.Fatalf("BuildManualLine() error = %v", err)
	}
	if line.UnitPrice != 250000 || line.Quantity != 2 || math.Abs(line.TotalPrice-500000) > 0.001 {
		t.Errorf("edited fields not used: %+v", line)
	}

	sel.Manual.Width = "abc"
	var mie *ManualInputError
	if _, err := BuildManualLine(sel, rs, "Doors"); !errors.As(err, &mie) {
		t.Errorf("expected ManualInputError, got %v", err)
	}
}
