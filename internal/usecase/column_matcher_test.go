package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var matcherColumns = []string{
	"Energy (kcal)",
	"Protein (g)",
	"Selenium (mcg)",
	"Vitamin A, RAE (mcg_RAE)",
	"Vitamin B-12 (mcg)",
	"Protein PDV",
	"Selenium PDV",
	"Vitamin B-12 PDV",
}

func TestNewColumnMatcher(t *testing.T) {
	m := NewColumnMatcher(MatchConfig{})

	assert.Equal(t, 50.0, m.minScore)
	assert.Equal(t, 3, m.maxSuggestions)
	assert.Equal(t, 1, m.fuzzyThreshold)
}

func TestColumnMatcher_Suggest(t *testing.T) {
	m := NewColumnMatcher(MatchConfig{})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "wrong case finds the column",
			query: "selenium (mcg)",
			want:  []string{"Selenium (mcg)"},
		},
		{
			name:  "bare nutrient name finds amount and PDV",
			query: "selenium",
			want:  []string{"Selenium (mcg)", "Selenium PDV"},
		},
		{
			name:  "typo within one edit",
			query: "Selenum",
			want:  []string{"Selenium (mcg)", "Selenium PDV"},
		},
		{
			name:  "multi-word query",
			query: "vitamin b-12",
			want:  []string{"Vitamin B-12 (mcg)", "Vitamin B-12 PDV"},
		},
		{
			name:  "nothing similar",
			query: "Unobtainium",
			want:  []string{},
		},
		{
			name:  "empty query",
			query: "  ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Suggest(tt.query, matcherColumns))
		})
	}

	t.Run("limits the number of suggestions", func(t *testing.T) {
		limited := NewColumnMatcher(MatchConfig{MaxSuggestions: 1})
		assert.Equal(t, []string{"Selenium (mcg)"}, limited.Suggest("selenium", matcherColumns))
	})
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Vitamin A, RAE (mcg_RAE)", []string{"vitamin", "rae", "mcg", "rae"}},
		{"Vitamin D (D2 + D3) (mcg)", []string{"vitamin", "d2", "d3", "mcg"}},
		{"Selenium PDV", []string{"selenium", "pdv"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.input))
		})
	}

	assert.Empty(t, tokenize(""))
	assert.Empty(t, tokenize("( + )"))
}

func TestFuzzyTokenMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"selenium", "selenium", true},
		{"selenum", "selenium", true},
		{"protien", "protein", false},
		{"mg", "mcg", false},
		{"zinc", "iron", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fuzzyTokenMatch(tt.a, tt.b, 1), "%s vs %s", tt.a, tt.b)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"selenium", "selenum", 1},
		{"protein", "protien", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshteinDistance(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
