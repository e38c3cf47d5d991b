package usecase

import (
	"github.com/nutritool/backend/internal/domain"
)

// Enricher derives percent daily value columns from nutrient amounts
type Enricher struct {
	dailyValues []domain.DailyValue
}

// NewEnricher creates an enricher for the given Daily Value table.
// A nil table means domain.DailyValues.
func NewEnricher(dailyValues []domain.DailyValue) *Enricher {
	if dailyValues == nil {
		dailyValues = domain.DailyValues
	}
	return &Enricher{dailyValues: dailyValues}
}

// Enrich sets PDV on every record in place and returns the same slice.
// A nutrient without an amount gets no PDV entry, so it stays distinguishable from 0%.
func (e *Enricher) Enrich(records []domain.FoodRecord) []domain.FoodRecord {
	for i := range records {
		pdv := make(map[string]float64, len(e.dailyValues))
		for _, dv := range e.dailyValues {
			amount, ok := records[i].Nutrients[dv.Column]
			if !ok {
				continue
			}
			pdv[dv.PDVColumn()] = PercentDailyValue(amount, dv.Amount)
		}
		records[i].PDV = pdv
	}
	return records
}

// PercentDailyValue is amount as a percentage of the reference intake, unrounded
func PercentDailyValue(amount, dailyValue float64) float64 {
	return amount / dailyValue * 100
}
