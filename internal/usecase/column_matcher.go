package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Scoring weights
const (
	coverageWeight   = 70.0
	prefixBonus      = 30.0
	fuzzyMinTokenLen = 4
)

// MatchConfig holds configuration for the column matcher
type MatchConfig struct {
	MinScore       float64 // suggestions scoring below this are dropped (0-100)
	MaxSuggestions int
	FuzzyThreshold int // max edit distance for two tokens to count as the same word
}

// ColumnMatcher suggests rankable columns for a column name that was not found.
// Lookups stay exact and case-sensitive; the matcher only feeds error messages.
type ColumnMatcher struct {
	minScore       float64
	maxSuggestions int
	fuzzyThreshold int
}

// NewColumnMatcher creates a column matcher with the given configuration
func NewColumnMatcher(config MatchConfig) *ColumnMatcher {
	minScore := config.MinScore
	if minScore == 0 {
		minScore = 50.0
	}
	maxSuggestions := config.MaxSuggestions
	if maxSuggestions == 0 {
		maxSuggestions = 3
	}
	fuzzyThreshold := config.FuzzyThreshold
	if fuzzyThreshold == 0 {
		fuzzyThreshold = 1
	}
	return &ColumnMatcher{
		minScore:       minScore,
		maxSuggestions: maxSuggestions,
		fuzzyThreshold: fuzzyThreshold,
	}
}

// Suggest returns up to MaxSuggestions columns resembling query, best first.
// Columns with equal scores keep the order of columns.
func (m *ColumnMatcher) Suggest(query string, columns []string) []string {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	type candidate struct {
		column string
		score  float64
	}

	var candidates []candidate
	for _, column := range columns {
		score := m.score(query, queryTokens, column)
		if score >= m.minScore {
			candidates = append(candidates, candidate{column: column, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > m.maxSuggestions {
		candidates = candidates[:m.maxSuggestions]
	}

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.column
	}
	return suggestions
}

// score rates column against query from 0 to 100: the share of query tokens found
// in the column, plus a bonus when the column starts with the query ignoring case.
func (m *ColumnMatcher) score(query string, queryTokens []string, column string) float64 {
	if strings.EqualFold(strings.TrimSpace(query), column) {
		return 100
	}

	columnTokens := tokenize(column)
	matched := 0
	for _, qt := range queryTokens {
		for _, ct := range columnTokens {
			if fuzzyTokenMatch(qt, ct, m.fuzzyThreshold) {
				matched++
				break
			}
		}
	}

	score := coverageWeight * float64(matched) / float64(len(queryTokens))
	if strings.HasPrefix(strings.ToLower(column), strings.ToLower(strings.TrimSpace(query))) {
		score += prefixBonus
	}
	return score
}

// tokenize splits a string into lowercase words, dropping single characters
func tokenize(s string) []string {
	words := strings.Fields(punctuationRegex.ReplaceAllString(strings.ToLower(s), " "))

	tokens := words[:0]
	for _, word := range words {
		if len(word) <= 1 {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// Only apply fuzzy matching to longer tokens to avoid "mg" matching "mcg"
	if len(token1) < fuzzyMinTokenLen || len(token2) < fuzzyMinTokenLen {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rows instead of the full matrix
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
