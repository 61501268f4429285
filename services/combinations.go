package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

const (
	maxSampledCombinations = 5
	maxListedCombinations  = 20
)

// ColumnCandidates is one structure column with its candidate options.
type ColumnCandidates struct {
	ColumnID   string
	Candidates []Option
}

// Combination is one fully assigned pick of options, one per column.
type Combination struct {
	ID         string            `json:"id"`
	Options    map[string]Option `json:"options"`
	TotalPrice float64           `json:"total_price"`
	Signature  string            `json:"signature"`
}

// OptionIDs returns the chosen option ids, sorted.
func (c Combination) OptionIDs() []string {
	ids := make([]string, 0, len(c.Options))
	for _, o := range c.Options {
		ids = append(ids, o.ID)
	}
	sort.Strings(ids)
	return ids
}

// Synthesizer produces bounded, de-duplicated samples of combinations. Each
// call to Synthesize starts a new generation, so ids never repeat across
// calls even when the same option set is produced again.
type Synthesizer struct {
	generation uint64
}

// Generation returns the number of synthesis passes run so far.
func (s *Synthesizer) Generation() uint64 {
	return s.generation
}

// Synthesize samples combinations from per-column candidates:
//
//	S1 index 0 everywhere
//	S2 indexes 1 and 2 of the first column, 0 elsewhere
//	S3 index 1 of the second column, 0 elsewhere
//	S4 index (position mod 2) per column, when there are more than two columns
//	S5 the last candidate of every column
//
// At most five distinct option sets are kept. The result is sorted by total
// price ascending and capped at twenty. No combinations are produced when
// there are no columns or any column has no candidates.
func (s *Synthesizer) Synthesize(columns []ColumnCandidates) []Combination {
	s.generation++

	if len(columns) == 0 {
		return nil
	}
	for _, col := range columns {
		if len(col.Candidates) == 0 {
			return nil
		}
	}

	p := &samplePass{
		columns:    columns,
		generation: s.generation,
		seen:       make(map[string]bool),
	}

	// S1
	p.try(func(int) int { return 0 })

	// S2
	first := len(columns[0].Candidates)
	for i := 1; i <= min(2, first-1); i++ {
		if p.full() {
			break
		}
		idx := i
		p.try(func(pos int) int {
			if pos == 0 {
				return idx
			}
			return 0
		})
	}

	// S3
	if len(columns) > 1 && len(columns[1].Candidates) > 1 {
		p.try(func(pos int) int {
			if pos == 1 {
				return 1
			}
			return 0
		})
	}

	// S4
	if len(columns) > 2 {
		p.try(func(pos int) int { return pos % 2 })
	}

	// S5
	p.try(func(pos int) int { return len(columns[pos].Candidates) - 1 })

	out := p.emitted
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPrice < out[j].TotalPrice
	})
	if len(out) > maxListedCombinations {
		out = out[:maxListedCombinations]
	}
	return out
}

type samplePass struct {
	columns    []ColumnCandidates
	generation uint64
	seen       map[string]bool
	emitted    []Combination
}

func (p *samplePass) full() bool {
	return len(p.emitted) >= maxSampledCombinations
}

// try builds the combination picked by index(position), clamping each index
// to the column's candidate count, and keeps it if its signature is new.
func (p *samplePass) try(index func(pos int) int) {
	if p.full() {
		return
	}

	opts := make(map[string]Option, len(p.columns))
	ids := make([]string, 0, len(p.columns))
	for pos, col := range p.columns {
		i := index(pos)
		if i >= len(col.Candidates) {
			i = len(col.Candidates) - 1
		}
		if i < 0 {
			i = 0
		}
		o := col.Candidates[i]
		opts[col.ColumnID] = o
		ids = append(ids, o.ID)
	}

	sort.Strings(ids)
	sig := strings.Join(ids, "|")
	if p.seen[sig] {
		return
	}
	p.seen[sig] = true

	p.emitted = append(p.emitted, Combination{
		ID:         combinationID(sig, p.generation),
		Options:    opts,
		TotalPrice: CalcCombinationTotal(opts),
		Signature:  sig,
	})
}

// combinationID is a content hash of the signature plus the generation.
// Signatures are unique within a pass, generations are unique across passes.
func combinationID(signature string, generation uint64) string {
	sum := sha256.Sum256([]byte(signature))
	return fmt.Sprintf("%s-g%d", hex.EncodeToString(sum[:6]), generation)
}

// CandidatesFor builds the synthesizer input for a resolved structure:
// resolved columns in structure order, each narrowed by SelectCandidates.
// Unresolved columns are skipped.
func CandidatesFor(rs ResolvedStructure, optionsByColumn map[string][]Option, filter ColumnFilter) []ColumnCandidates {
	out := make([]ColumnCandidates, 0, len(rs.Columns))
	for _, col := range rs.Columns {
		if !col.Resolved {
			continue
		}
		out = append(out, ColumnCandidates{
			ColumnID:   col.ID,
			Candidates: SelectCandidates(optionsByColumn[col.ID], filter.Allowed(col.ID)),
		})
	}
	return out
}
