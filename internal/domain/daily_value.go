package domain

// DailyValue is the FDA reference daily intake for one nutrient.
type DailyValue struct {
	Label  string  // e.g. "Vitamin A, RAE"
	Column string  // amount column in the source table
	Amount float64 // reference intake, in the unit of Column
	Unit   string
}

// PDVColumn is the name of the derived percent-daily-value column
func (d DailyValue) PDVColumn() string {
	return d.Label + " PDV"
}

// DailyValues is the fixed Daily Value table, in the order the PDV columns are emitted.
var DailyValues = []DailyValue{
	{Label: "Protein", Column: "Protein (g)", Amount: 50, Unit: "g"},
	{Label: "Carbohydrate", Column: "Carbohydrate (g)", Amount: 275, Unit: "g"},
	{Label: "Total Fat", Column: "Total Fat (g)", Amount: 78, Unit: "g"},
	{Label: "Cholesterol", Column: "Cholesterol (mg)", Amount: 300, Unit: "mg"},
	{Label: "Vitamin A, RAE", Column: "Vitamin A, RAE (mcg_RAE)", Amount: 900, Unit: "mcg"},
	{Label: "Thiamin", Column: "Thiamin (mg)", Amount: 1.2, Unit: "mg"},
	{Label: "Riboflavin", Column: "Riboflavin (mg)", Amount: 1.3, Unit: "mg"},
	{Label: "Vitamin B-6", Column: "Vitamin B-6 (mg)", Amount: 1.7, Unit: "mg"},
	{Label: "Folate, DFE", Column: "Folate, DFE (mcg_DFE)", Amount: 400, Unit: "mcg"},
	{Label: "Choline, total", Column: "Choline, total (mg)", Amount: 550, Unit: "mg"},
	{Label: "Vitamin B-12", Column: "Vitamin B-12 (mcg)", Amount: 2.4, Unit: "mcg"},
	{Label: "Vitamin C", Column: "Vitamin C (mg)", Amount: 90, Unit: "mg"},
	{Label: "Vitamin D (D2 + D3)", Column: "Vitamin D (D2 + D3) (mcg)", Amount: 20, Unit: "mcg"},
	{Label: "Vitamin E (alpha-tocopherol)", Column: "Vitamin E (alpha-tocopherol) (mg)", Amount: 15, Unit: "mg"},
	{Label: "Vitamin K (phylloquinone)", Column: "Vitamin K (phylloquinone) (mcg)", Amount: 120, Unit: "mcg"},
	{Label: "Calcium", Column: "Calcium (mg)", Amount: 1300, Unit: "mg"},
	{Label: "Phosphorus", Column: "Phosphorus (mg)", Amount: 1250, Unit: "mg"},
	{Label: "Magnesium", Column: "Magnesium (mg)", Amount: 420, Unit: "mg"},
	{Label: "Iron", Column: "Iron (mg)", Amount: 18, Unit: "mg"},
	{Label: "Zinc", Column: "Zinc (mg)", Amount: 11, Unit: "mg"},
	{Label: "Copper", Column: "Copper (mg)", Amount: 0.9, Unit: "mg"},
	{Label: "Selenium", Column: "Selenium (mcg)", Amount: 55, Unit: "mcg"},
	{Label: "Potassium", Column: "Potassium (mg)", Amount: 4700, Unit: "mg"},
	{Label: "Sodium", Column: "Sodium (mg)", Amount: 2300, Unit: "mg"},
}

// DailyValueByPDVColumn looks up a Daily Value by its derived column name
func DailyValueByPDVColumn(column string) (DailyValue, bool) {
	for _, dv := range DailyValues {
		if dv.PDVColumn() == column {
			return dv, true
		}
	}
	return DailyValue{}, false
}
