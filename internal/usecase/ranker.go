package usecase

import (
	"sort"

	"github.com/nutritool/backend/internal/domain"
)

const (
	// MinTopN and DefaultMaxTopN bound the number of foods a ranking returns
	MinTopN        = 1
	DefaultMaxTopN = 10
)

// Ranker orders foods by a single nutrient or PDV column
type Ranker struct {
	maxN int
}

// NewRanker creates a ranker accepting counts in [1, maxN]; maxN < 1 means DefaultMaxTopN
func NewRanker(maxN int) *Ranker {
	if maxN < MinTopN {
		maxN = DefaultMaxTopN
	}
	return &Ranker{maxN: maxN}
}

// MaxN returns the largest count TopN accepts
func (r *Ranker) MaxN() int {
	return r.maxN
}

// Validate checks a ranking request against the table without ranking
func (r *Ranker) Validate(table *domain.FoodTable, column string, n int) error {
	if !table.HasColumn(column) {
		return &domain.UnknownColumnError{Column: column}
	}
	if n < MinTopN || n > r.maxN {
		return &domain.RangeError{N: n, Min: MinTopN, Max: r.maxN}
	}
	return nil
}

// TopN returns the min(n, len(records)) foods with the largest value in column,
// descending. Equal values keep their table order and foods without a value come last.
// The table is only read.
func (r *Ranker) TopN(table *domain.FoodTable, column string, n int) ([]domain.RankedFood, error) {
	if err := r.Validate(table, column, n); err != nil {
		return nil, err
	}

	type entry struct {
		index   int
		value   float64
		present bool
	}

	entries := make([]entry, len(table.Records))
	for i := range table.Records {
		v, ok := table.Records[i].Value(column)
		entries[i] = entry{index: i, value: v, present: ok}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.present != b.present {
			return a.present
		}
		return a.present && a.value > b.value
	})

	if n > len(entries) {
		n = len(entries)
	}

	result := make([]domain.RankedFood, n)
	for i := 0; i < n; i++ {
		e := entries[i]
		ranked := domain.RankedFood{
			Rank:   i + 1,
			Record: &table.Records[e.index],
		}
		if e.present {
			v := e.value
			ranked.Value = &v
		}
		result[i] = ranked
	}
	return result, nil
}
