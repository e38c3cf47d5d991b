package domain

// Column names of the FNDDS nutrient values table that are identifiers, not nutrient amounts.
const (
	ColumnFoodCode            = "Food code"
	ColumnMainDescription     = "Main food description"
	ColumnCategoryNumber      = "WWEIA Category number"
	ColumnCategoryDescription = "WWEIA Category description"
)

// IsIdentifierColumn reports whether the column is one of the four identifier columns
func IsIdentifierColumn(name string) bool {
	switch name {
	case ColumnFoodCode, ColumnMainDescription, ColumnCategoryNumber, ColumnCategoryDescription:
		return true
	}
	return false
}

// FoodRecord is one row of the FNDDS nutrient values table.
// A nutrient with no value in the source has no key in Nutrients, and
// likewise a PDV that cannot be computed has no key in PDV.
type FoodRecord struct {
	FoodCode            int                `json:"foodCode"`
	MainDescription     string             `json:"mainDescription"`
	CategoryNumber      string             `json:"categoryNumber,omitempty"`
	CategoryDescription string             `json:"categoryDescription"`
	Nutrients           map[string]float64 `json:"nutrients"` // per 100g, keyed by column name
	PDV                 map[string]float64 `json:"pdv,omitempty"`
}

// Value returns the amount or PDV stored under column
func (r *FoodRecord) Value(column string) (float64, bool) {
	if v, ok := r.Nutrients[column]; ok {
		return v, true
	}
	v, ok := r.PDV[column]
	return v, ok
}

// FoodTable is the loaded dataset plus the nutrient columns it carries, in source order.
type FoodTable struct {
	Source          string       `json:"source"`
	NutrientColumns []string     `json:"nutrientColumns"`
	Records         []FoodRecord `json:"records"`
}

// RankableColumns lists every column a ranking may be keyed on:
// the nutrient amount columns followed by the PDV columns.
func (t *FoodTable) RankableColumns() []string {
	cols := make([]string, 0, len(t.NutrientColumns)+len(DailyValues))
	cols = append(cols, t.NutrientColumns...)
	for _, dv := range DailyValues {
		cols = append(cols, dv.PDVColumn())
	}
	return cols
}

// HasColumn reports whether column is rankable
func (t *FoodTable) HasColumn(column string) bool {
	for _, c := range t.NutrientColumns {
		if c == column {
			return true
		}
	}
	_, ok := DailyValueByPDVColumn(column)
	return ok
}

// RankedFood is one entry of a top-N result
type RankedFood struct {
	Rank   int         `json:"rank"`
	Value  *float64    `json:"value"` // nil when the record has no value for the ranked column
	Record *FoodRecord `json:"record"`
}
