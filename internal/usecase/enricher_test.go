package usecase

import (
	"testing"

	"github.com/nutritool/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentDailyValue(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		dailyValue float64
		want       float64
	}{
		{"selenium in brazil nuts", 1917, 55, 3485.4545454545455},
		{"exactly the daily value", 90, 90, 100},
		{"zero amount", 0, 1300, 0},
		{"fractional daily value", 0.45, 0.9, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentDailyValue(tt.amount, tt.dailyValue), 1e-9)
		})
	}
}

func TestEnricher_Enrich(t *testing.T) {
	t.Run("adds a PDV entry for every available amount", func(t *testing.T) {
		records := []domain.FoodRecord{{
			FoodCode:        42100100,
			MainDescription: "Brazil nuts",
			Nutrients: map[string]float64{
				"Selenium (mcg)":           1917,
				"Protein (g)":              14.32,
				"Vitamin A, RAE (mcg_RAE)": 0,
				"Energy (kcal)":            659,
			},
		}}

		out := NewEnricher(nil).Enrich(records)

		require.Len(t, out, 1)
		pdv := out[0].PDV
		assert.Len(t, pdv, 3)
		assert.InDelta(t, 3485.45, pdv["Selenium PDV"], 0.01)
		assert.InDelta(t, 14.32/50*100, pdv["Protein PDV"], 1e-9)
		assert.Equal(t, 0.0, pdv["Vitamin A, RAE PDV"])
		assert.Equal(t, 659.0, out[0].Nutrients["Energy (kcal)"], "amounts are untouched")
	})

	t.Run("missing amount yields no PDV key", func(t *testing.T) {
		records := []domain.FoodRecord{{FoodCode: 63101000, Nutrients: map[string]float64{"Iron (mg)": 0.12}}}

		NewEnricher(nil).Enrich(records)

		_, ok := records[0].PDV["Selenium PDV"]
		assert.False(t, ok)
		assert.InDelta(t, 0.12/18*100, records[0].PDV["Iron PDV"], 1e-9)
	})

	t.Run("every daily value matches its formula", func(t *testing.T) {
		nutrients := make(map[string]float64, len(domain.DailyValues))
		for i, dv := range domain.DailyValues {
			nutrients[dv.Column] = float64(i+1) * 1.5
		}
		records := []domain.FoodRecord{{FoodCode: 1, Nutrients: nutrients}}

		NewEnricher(nil).Enrich(records)

		require.Len(t, records[0].PDV, len(domain.DailyValues))
		for _, dv := range domain.DailyValues {
			assert.InDelta(t, nutrients[dv.Column]/dv.Amount*100, records[0].PDV[dv.PDVColumn()], 1e-9, dv.Label)
		}
	})

	t.Run("custom daily value table", func(t *testing.T) {
		custom := []domain.DailyValue{{Label: "Fiber", Column: "Fiber, total dietary (g)", Amount: 28, Unit: "g"}}
		records := []domain.FoodRecord{{Nutrients: map[string]float64{"Fiber, total dietary (g)": 7, "Selenium (mcg)": 55}}}

		NewEnricher(custom).Enrich(records)

		assert.Equal(t, map[string]float64{"Fiber PDV": 25}, records[0].PDV)
	})

	t.Run("record count is preserved", func(t *testing.T) {
		records := make([]domain.FoodRecord, 5)
		assert.Len(t, NewEnricher(nil).Enrich(records), 5)
	})
}

func TestDailyValues(t *testing.T) {
	require.Len(t, domain.DailyValues, 24)

	seen := make(map[string]bool)
	for _, dv := range domain.DailyValues {
		assert.Greater(t, dv.Amount, 0.0, dv.Label)
		assert.False(t, seen[dv.PDVColumn()], "duplicate %s", dv.PDVColumn())
		seen[dv.PDVColumn()] = true

		found, ok := domain.DailyValueByPDVColumn(dv.PDVColumn())
		assert.True(t, ok)
		assert.Equal(t, dv, found)
	}

	_, ok := domain.DailyValueByPDVColumn("Energy PDV")
	assert.False(t, ok)
}
