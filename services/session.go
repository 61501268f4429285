package services

import "fmt"

// EngineSession holds the state of one quoting view: the catalog snapshot,
// the active structure, column filters, the current combination list and
// the selection. Every operation recomputes what it invalidates; nothing is
// updated incrementally. A session is not safe for concurrent use.
type EngineSession struct {
	catalog         Catalog
	optionsByColumn map[string][]Option
	loaded          bool
	loading         bool
	lastErr         error

	structure *ResolvedStructure
	filter    ColumnFilter
	combos    []Combination
	selection SelectionState
	synth     Synthesizer
}

// NewEngineSession returns an empty session with no catalog loaded.
func NewEngineSession() *EngineSession {
	return &EngineSession{
		filter:    make(ColumnFilter),
		selection: NewSelectionState(),
	}
}

// BeginLoad marks a catalog fetch as outstanding. Combinations are hidden
// until ApplyCatalog or FailLoad.
func (s *EngineSession) BeginLoad() {
	s.loading = true
}

// ApplyCatalog installs a fresh catalog snapshot. The active structure is
// re-resolved and combinations are recomputed; if the structure vanished
// from the catalog the session drops it.
func (s *EngineSession) ApplyCatalog(c Catalog) {
	s.catalog = c
	s.optionsByColumn = c.OptionsByColumn()
	s.loaded = true
	s.loading = false
	s.lastErr = nil

	if s.structure == nil {
		return
	}
	st, ok := c.Structure(s.structure.Structure.ID)
	if !ok {
		s.reset()
		return
	}
	rs := ResolveStructure(st, c.Categories, c.Columns)
	s.structure = &rs
	s.recompute()
}

// FailLoad ends an outstanding fetch without touching the previous state.
func (s *EngineSession) FailLoad(err error) {
	s.loading = false
	s.lastErr = err
}

// Load fetches a snapshot through acc and applies it.
func (s *EngineSession) Load(acc CatalogAccessor) error {
	s.BeginLoad()
	c, err := acc.LoadCatalog()
	if err != nil {
		err = fmt.Errorf("load catalog: %w", err)
		s.FailLoad(err)
		return err
	}
	s.ApplyCatalog(c)
	return nil
}

// Loading reports whether a catalog fetch is outstanding.
func (s *EngineSession) Loading() bool { return s.loading }

// LastError returns the error of the most recent failed fetch, if any.
func (s *EngineSession) LastError() error { return s.lastErr }

// Catalog returns the current snapshot.
func (s *EngineSession) Catalog() Catalog { return s.catalog }

// SetStructure activates a structure. An empty id picks the default
// structure of the catalog. Switching to a different structure starts with
// fresh filters and selection; setting the active one again only recomputes.
func (s *EngineSession) SetStructure(id string) error {
	if s.loading {
		return ErrCatalogLoading
	}

	var (
		st Structure
		ok bool
	)
	if id == "" {
		st, ok = s.catalog.DefaultStructure("")
	} else {
		st, ok = s.catalog.Structure(id)
	}
	if !ok {
		return ErrUnknownStructure
	}

	if s.structure == nil || s.structure.Structure.ID != st.ID {
		s.reset()
	}
	rs := ResolveStructure(st, s.catalog.Categories, s.catalog.Columns)
	s.structure = &rs
	s.recompute()
	return nil
}

// Structure returns the active resolved structure.
func (s *EngineSession) Structure() (ResolvedStructure, bool) {
	if s.structure == nil {
		return ResolvedStructure{}, false
	}
	return *s.structure, true
}

// CategoryName returns the name of the active structure's category.
func (s *EngineSession) CategoryName() string {
	if s.structure == nil {
		return ""
	}
	cat, _ := s.catalog.Category(s.structure.Structure.CategoryID)
	return cat.Name
}

// OptionsFor returns every catalog option of a column, unfiltered.
func (s *EngineSession) OptionsFor(columnID string) []Option {
	return s.optionsByColumn[columnID]
}

// Filter returns the active column filters.
func (s *EngineSession) Filter() ColumnFilter { return s.filter }

// ToggleFilter adds or removes an option from a column's filter and
// recomputes the combinations.
func (s *EngineSession) ToggleFilter(columnID, optionID string) {
	s.filter.Toggle(columnID, optionID)
	s.recompute()
}

// ClearFilter removes a column's filter and recomputes the combinations.
func (s *EngineSession) ClearFilter(columnID string) {
	s.filter.Clear(columnID)
	s.recompute()
}

// Combinations returns the current list, or nil while loading.
func (s *EngineSession) Combinations() []Combination {
	if s.loading {
		return nil
	}
	return s.combos
}

// Combination looks up a combination of the current list.
func (s *EngineSession) Combination(id string) (Combination, bool) {
	for _, c := range s.Combinations() {
		if c.ID == id {
			return c, true
		}
	}
	return Combination{}, false
}

// Selection returns the selection state.
func (s *EngineSession) Selection() SelectionState { return s.selection }

// Select makes a combination of the current list the active selection.
func (s *EngineSession) Select(id string) error {
	c, ok := s.Combination(id)
	if !ok {
		return ErrUnknownCombination
	}
	s.selection.Select(c, *s.structure)
	return nil
}

// ToggleChecked flips a combination's checked state.
func (s *EngineSession) ToggleChecked(id string) error {
	if _, ok := s.Combination(id); !ok {
		return ErrUnknownCombination
	}
	s.selection.ToggleChecked(id)
	return nil
}

// CheckAll checks every combination of the current list.
func (s *EngineSession) CheckAll() {
	s.selection.CheckAll(s.Combinations())
}

// ClearChecked empties the checked set.
func (s *EngineSession) ClearChecked() {
	s.selection.ClearChecked()
}

// SetManual replaces the manual fields.
func (s *EngineSession) SetManual(m ManualInput) {
	s.selection.Manual = m
}

// PendingAdd is a built set of quote lines awaiting storage. Bulk is set
// when the lines came from the checked set.
type PendingAdd struct {
	Lines []QuoteLine
	Bulk  bool
}

// PrepareAdd builds the lines of the next add without changing the session:
// one per checked combination when anything is checked, otherwise a single
// manual line. CommitAdd must follow once the lines are stored.
func (s *EngineSession) PrepareAdd() (PendingAdd, error) {
	rs, err := s.ready()
	if err != nil {
		return PendingAdd{}, err
	}
	if len(s.selection.Checked) > 0 {
		lines, err := BuildBulkLines(s.combos, s.selection, rs, s.CategoryName())
		if err != nil {
			return PendingAdd{}, err
		}
		return PendingAdd{Lines: lines, Bulk: true}, nil
	}
	line, err := BuildManualLine(s.selection, rs, s.CategoryName())
	if err != nil {
		return PendingAdd{}, err
	}
	return PendingAdd{Lines: []QuoteLine{line}}, nil
}

// CommitAdd records that p was stored. A bulk add clears the checked set.
func (s *EngineSession) CommitAdd(p PendingAdd) {
	if p.Bulk {
		s.selection.ClearChecked()
	}
}

// AddChecked emits one line per checked combination and clears the checked
// set once every line was accepted.
func (s *EngineSession) AddChecked(emit func(QuoteLine) error) (int, error) {
	if len(s.selection.Checked) == 0 {
		if _, err := s.ready(); err != nil {
			return 0, err
		}
		return 0, ErrNothingChecked
	}
	return s.AddToQuote(emit)
}

// AddToQuote takes the bulk path when anything is checked and the manual
// path otherwise. Nothing in the session changes unless every line was
// accepted.
func (s *EngineSession) AddToQuote(emit func(QuoteLine) error) (int, error) {
	p, err := s.PrepareAdd()
	if err != nil {
		return 0, err
	}
	for i, l := range p.Lines {
		if err := emit(l); err != nil {
			return i, fmt.Errorf("emit quote line %d: %w", i+1, err)
		}
	}
	s.CommitAdd(p)
	return len(p.Lines), nil
}

func (s *EngineSession) ready() (ResolvedStructure, error) {
	if s.loading {
		return ResolvedStructure{}, ErrCatalogLoading
	}
	if s.structure == nil {
		return ResolvedStructure{}, ErrNoStructure
	}
	return *s.structure, nil
}

func (s *EngineSession) reset() {
	s.structure = nil
	s.filter = make(ColumnFilter)
	s.combos = nil
	s.selection = NewSelectionState()
}

func (s *EngineSession) recompute() {
	if s.structure == nil {
		s.combos = nil
		return
	}
	s.combos = s.synth.Synthesize(CandidatesFor(*s.structure, s.optionsByColumn, s.filter))
}
