package services

import (
	"errors"
	"testing"
)

type fakeAccessor struct {
	catalog Catalog
	err     error
}

func (f *fakeAccessor) LoadCatalog() (Catalog, error) {
	return f.catalog, f.err
}

func newWindowSession(t *testing.T) *EngineSession {
	t.Helper()
	s := NewEngineSession()
	if err := s.Load(&fakeAccessor{catalog: windowCatalog()}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := s.SetStructure("st-window"); err != nil {
		t.Fatalf("SetStructure() error = %v", err)
	}
	return s
}

func findByName(t *testing.T, s *EngineSession, name string) Combination {
	t.Helper()
	rs, _ := s.Structure()
	for _, c := range s.Combinations() {
		if CombinationName(c.Options, rs.ColumnIDs(), rs.Structure.Separator) == name {
			return c
		}
	}
	t.Fatalf("combination %q not found", name)
	return Combination{}
}

func TestEngineSession_EndToEnd(t *testing.T) {
	s := newWindowSession(t)
	combos := s.Combinations()
	if len(combos) == 0 || len(combos) > 5 {
		t.Fatalf("got %d combinations", len(combos))
	}

	view := s.View()
	if view.Rows[0].Name != "Generic - None" || view.Rows[0].TotalPrice != 0 {
		t.Errorf("cheapest = %q (%v), want Generic - None at 0", view.Rows[0].Name, view.Rows[0].TotalPrice)
	}
	baseline := findByName(t, s, "Xingfa - Lever")
	if baseline.TotalPrice != 150000 {
		t.Errorf("baseline total = %v, want 150000", baseline.TotalPrice)
	}

	if err := s.ToggleChecked(baseline.ID); err != nil {
		t.Fatalf("ToggleChecked() error = %v", err)
	}
	var got []QuoteLine
	n, err := s.AddToQuote(func(l QuoteLine) error {
		got = append(got, l)
		return nil
	})
	if err != nil {
		t.Fatalf("AddToQuote() error = %v", err)
	}
	if n != 1 || len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", n)
	}
	if got[0].Name != "Xingfa - Lever" || got[0].Description != "Sliding Window (Aluminum)" || got[0].TotalPrice != 150000 {
		t.Errorf("unexpected line %+v", got[0])
	}
	if len(s.Selection().Checked) != 0 {
		t.Error("bulk add should clear the checked set")
	}
}

func TestEngineSession_BulkRejectsEmpty(t *testing.T) {
	s := newWindowSession(t)
	called := false
	_, err := s.AddChecked(func(QuoteLine) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrNothingChecked) {
		t.Errorf("expected ErrNothingChecked, got %v", err)
	}
	if called {
		t.Error("no line should be emitted")
	}
}

func TestEngineSession_ManualPath(t *testing.T) {
	s := newWindowSession(t)
	if _, err := s.AddToQuote(func(QuoteLine) error { return nil }); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName without a selection, got %v", err)
	}

	c := findByName(t, s, "Viet Phap - Lever")
	if err := s.Select(c.ID); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	s.SetManual(ManualInput{UnitPrice: "1000", Quantity: "3"})

	var line QuoteLine
	if _, err := s.AddToQuote(func(l QuoteLine) error { line = l; return nil }); err != nil {
		t.Fatalf("AddToQuote() error = %v", err)
	}
	if line.Name != "Viet Phap - Lever" || line.TotalPrice != 3000 {
		t.Errorf("unexpected manual line %+v", line)
	}
}

func TestEngineSession_FilterRecomputes(t *testing.T) {
	s := newWindowSession(t)
	before := s.Combinations()
	checked := before[0].ID
	if err := s.ToggleChecked(checked); err != nil {
		t.Fatal(err)
	}

	s.ToggleFilter("col-material", "m1")
	after := s.Combinations()
	for _, c := range after {
		if c.Options["col-material"].ID != "m1" {
			t.Errorf("filter not applied: %s", c.Options["col-material"].ID)
		}
		if c.ID == checked {
			t.Error("recomputed list reused an old id")
		}
	}

	_, err := s.AddChecked(func(QuoteLine) error { return nil })
	if !errors.Is(err, ErrCheckedUnavailable) {
		t.Errorf("stale checked ids should be skipped, got %v", err)
	}

	s.ToggleFilter("col-material", "ghost")
	s.ToggleFilter("col-material", "m1")
	if len(s.Combinations()) != len(before) {
		t.Errorf("stale filter should fall back to all options: got %d want %d", len(s.Combinations()), len(before))
	}
	s.ClearFilter("col-material")
	if len(s.Filter()) != 0 {
		t.Error("ClearFilter left a restriction")
	}
}

func TestEngineSession_SelectUnknown(t *testing.T) {
	s := newWindowSession(t)
	if err := s.Select("missing"); !errors.Is(err, ErrUnknownCombination) {
		t.Errorf("expected ErrUnknownCombination, got %v", err)
	}
	if err := s.ToggleChecked("missing"); !errors.Is(err, ErrUnknownCombination) {
		t.Errorf("expected ErrUnknownCombination, got %v", err)
	}
	if err := s.SetStructure("missing"); !errors.Is(err, ErrUnknownStructure) {
		t.Errorf("expected ErrUnknownStructure, got %v", err)
	}
}

func TestEngineSession_LoadingAndFailure(t *testing.T) {
	s := newWindowSession(t)
	want := len(s.Combinations())

	s.BeginLoad()
	if s.Combinations() != nil {
		t.Error("combinations must be hidden while loading")
	}
	if v := s.View(); !v.Loading || len(v.Rows) != 0 {
		t.Errorf("view while loading = %+v", v)
	}
	if _, err := s.AddToQuote(func(QuoteLine) error { return nil }); !errors.Is(err, ErrCatalogLoading) {
		t.Errorf("expected ErrCatalogLoading, got %v", err)
	}

	fetchErr := errors.New("network down")
	if err := s.Load(&fakeAccessor{err: fetchErr}); !errors.Is(err, fetchErr) {
		t.Fatalf("Load() error = %v, want wrapped fetch error", err)
	}
	if s.Loading() {
		t.Error("failure should end loading")
	}
	if len(s.Combinations()) != want {
		t.Errorf("failure cleared state: got %d combinations, want %d", len(s.Combinations()), want)
	}
	if s.View().Error == "" {
		t.Error("failure should be visible in the view")
	}
}

func TestEngineSession_StructureSwitchResets(t *testing.T) {
	cat := windowCatalog()
	cat.Structures = append(cat.Structures, Structure{
		ID:          "st-handle",
		CategoryID:  "cat-acc",
		Name:        "Handle Only",
		ColumnOrder: []string{"col-handle"},
		Separator:   "/",
	})
	s := NewEngineSession()
	s.ApplyCatalog(cat)
	if err := s.SetStructure(""); err != nil {
		t.Fatalf("SetStructure(default) error = %v", err)
	}
	if rs, _ := s.Structure(); rs.Structure.ID != "st-window" {
		t.Errorf("default structure = %s", rs.Structure.ID)
	}
	s.ToggleFilter("col-handle", "h0")
	s.CheckAll()

	if err := s.SetStructure("st-handle"); err != nil {
		t.Fatal(err)
	}
	if len(s.Filter()) != 0 || len(s.Selection().Checked) != 0 {
		t.Error("switching structure should start with fresh filters and selection")
	}
	if len(s.Combinations()) != 2 {
		t.Errorf("handle-only structure: got %d combinations, want 2", len(s.Combinations()))
	}

	cat.Structures = cat.Structures[:1]
	s.ApplyCatalog(cat)
	if _, ok := s.Structure(); ok {
		t.Error("structure removed from catalog should be dropped")
	}
}

func TestEngineSession_NoCombinations(t *testing.T) {
	cat := windowCatalog()
	cat.Options = cat.Options[:3] // handle column has no options
	s := NewEngineSession()
	s.ApplyCatalog(cat)
	if err := s.SetStructure("st-window"); err != nil {
		t.Fatal(err)
	}
	v := s.View()
	if !v.NoCombinations || len(v.Rows) != 0 {
		t.Errorf("expected no combinations, got %+v", v.Rows)
	}
}

func TestEngineSession_ManualDimensionsMatchBulk(t *testing.T) {
	manual := ManualInput{Width: "2000", Height: "1500"}

	bulk := newWindowSession(t)
	bulk.SetManual(manual)
	if err := bulk.ToggleChecked(findByName(t, bulk, "Xingfa - Lever").ID); err != nil {
		t.Fatal(err)
	}
	var want QuoteLine
	if _, err := bulk.AddToQuote(func(l QuoteLine) error { want = l; return nil }); err != nil {
		t.Fatalf("bulk AddToQuote() error = %v", err)
	}
	if want.UnitPrice != 50000 || want.Area != 3 || want.TotalPrice != 150000 {
		t.Fatalf("bulk line unit = %v area = %v total = %v", want.UnitPrice, want.Area, want.TotalPrice)
	}

	tests := []struct {
		name        string
		manualFirst bool
	}{
		{"dimensions entered before selecting", true},
		{"dimensions entered after selecting", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newWindowSession(t)
			if tt.manualFirst {
				s.SetManual(manual)
			}
			if err := s.Select(findByName(t, s, "Xingfa - Lever").ID); err != nil {
				t.Fatal(err)
			}
			if !tt.manualFirst {
				m := s.Selection().Manual
				m.Width, m.Height = manual.Width, manual.Height
				s.SetManual(m)
			}

			var got QuoteLine
			if _, err := s.AddToQuote(func(l QuoteLine) error { got = l; return nil }); err != nil {
				t.Fatalf("AddToQuote() error = %v", err)
			}
			if got.UnitPrice != want.UnitPrice || got.Area != want.Area || got.TotalPrice != want.TotalPrice {
				t.Errorf("manual line unit = %v area = %v total = %v, want %v/%v/%v",
					got.UnitPrice, got.Area, got.TotalPrice, want.UnitPrice, want.Area, want.TotalPrice)
			}
		})
	}
}

func TestEngineSession_FailedEmitKeepsChecked(t *testing.T) {
	s := newWindowSession(t)
	s.CheckAll()

	emitted := 0
	_, err := s.AddToQuote(func(QuoteLine) error {
		emitted++
		if emitted == 2 {
			return errors.New("disk full")
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected the emit error")
	}
	if got := s.View().CheckedCount; got != len(s.Combinations()) {
		t.Errorf("checked = %d after a failed add, want %d", got, len(s.Combinations()))
	}
}

func TestEngineSession_PrepareAndCommit(t *testing.T) {
	s := newWindowSession(t)
	s.CheckAll()

	p, err := s.PrepareAdd()
	if err != nil {
		t.Fatalf("PrepareAdd() error = %v", err)
	}
	if !p.Bulk || len(p.Lines) != len(s.Combinations()) {
		t.Fatalf("pending = bulk %v with %d lines", p.Bulk, len(p.Lines))
	}
	if s.View().CheckedCount == 0 {
		t.Fatal("PrepareAdd must not clear the checked set")
	}

	s.CommitAdd(p)
	if s.View().CheckedCount != 0 {
		t.Error("CommitAdd should clear the checked set after a bulk add")
	}

	if err := s.Select(findByName(t, s, "Xingfa - Lever").ID); err != nil {
		t.Fatal(err)
	}
	p, err = s.PrepareAdd()
	if err != nil {
		t.Fatalf("PrepareAdd() error = %v", err)
	}
	if p.Bulk || len(p.Lines) != 1 {
		t.Errorf("manual pending = bulk %v with %d lines", p.Bulk, len(p.Lines))
	}
}
