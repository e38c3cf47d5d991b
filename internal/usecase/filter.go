package usecase

import (
	"log"
	"strconv"
	"strings"

	"github.com/nutritool/backend/internal/domain"
)

// Rule names, also used as keys of FilterStats.DroppedByRule
const (
	RuleCategoryCode        = "category_code"
	RuleCategoryDescription = "category_description"
	RuleMainDescription     = "main_description"
)

// ExclusionRule drops every record it matches. Reason names what matched, for logging.
type ExclusionRule struct {
	Name  string
	Match func(rec *domain.FoodRecord) (reason string, matched bool)
}

// CategoryCodeRule matches records whose food code starts with one of the given two-digit codes
func CategoryCodeRule(codes map[int]string) ExclusionRule {
	return ExclusionRule{
		Name: RuleCategoryCode,
		Match: func(rec *domain.FoodRecord) (string, bool) {
			prefix, ok := categoryPrefix(rec.FoodCode)
			if !ok {
				return "", false
			}
			if name, excluded := codes[prefix]; excluded {
				return strconv.Itoa(prefix) + " " + name, true
			}
			return "", false
		},
	}
}

// SubstringRule matches records where field contains any token, case-sensitively
func SubstringRule(name string, field func(rec *domain.FoodRecord) string, tokens []string) ExclusionRule {
	return ExclusionRule{
		Name: name,
		Match: func(rec *domain.FoodRecord) (string, bool) {
			value := field(rec)
			for _, token := range tokens {
				if strings.Contains(value, token) {
					return token, true
				}
			}
			return "", false
		},
	}
}

// DefaultExclusionRules is the rule chain that produces the reference cleaned dataset
func DefaultExclusionRules() []ExclusionRule {
	return []ExclusionRule{
		CategoryCodeRule(ExcludedCategoryCodes),
		SubstringRule(RuleCategoryDescription,
			func(rec *domain.FoodRecord) string { return rec.CategoryDescription },
			CategoryDescriptionTokens),
		SubstringRule(RuleMainDescription,
			func(rec *domain.FoodRecord) string { return rec.MainDescription },
			MainDescriptionTokens),
	}
}

// categoryPrefix reads the first two decimal digits of a food code
func categoryPrefix(code int) (int, bool) {
	s := strconv.Itoa(code)
	if len(s) > 2 {
		s = s[:2]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FilterStats counts what a Filter run kept and dropped
type FilterStats struct {
	Input         int
	Kept          int
	DroppedByRule map[string]int
}

// Filter removes unwanted foods using an ordered chain of exclusion rules.
// The first matching rule decides; a record survives only if no rule matches.
type Filter struct {
	rules              []ExclusionRule
	enableDebugLogging bool
}

// NewFilter creates a filter. A nil rules slice means DefaultExclusionRules.
func NewFilter(rules []ExclusionRule, enableDebugLogging bool) *Filter {
	if rules == nil {
		rules = DefaultExclusionRules()
	}
	return &Filter{
		rules:              rules,
		enableDebugLogging: enableDebugLogging,
	}
}

// Apply returns the surviving records in source order. The input is not modified.
func (f *Filter) Apply(records []domain.FoodRecord) ([]domain.FoodRecord, FilterStats) {
	stats := FilterStats{
		Input:         len(records),
		DroppedByRule: make(map[string]int, len(f.rules)),
	}
	kept := make([]domain.FoodRecord, 0, len(records))

	for i := range records {
		rule, reason, excluded := f.match(&records[i])
		if excluded {
			stats.DroppedByRule[rule]++
			if f.enableDebugLogging {
				log.Printf("[FILTER] drop %d %q: %s matched %q", records[i].FoodCode, records[i].MainDescription, rule, reason)
			}
			continue
		}
		kept = append(kept, records[i])
	}

	stats.Kept = len(kept)
	log.Printf("[FILTER] Filtered %d -> %d records (dropped %d)", stats.Input, stats.Kept, stats.Input-stats.Kept)
	return kept, stats
}

// Excluded reports whether any rule drops the record
func (f *Filter) Excluded(rec *domain.FoodRecord) bool {
	_, _, excluded := f.match(rec)
	return excluded
}

func (f *Filter) match(rec *domain.FoodRecord) (rule, reason string, excluded bool) {
	for _, r := range f.rules {
		if why, ok := r.Match(rec); ok {
			return r.Name, why, true
		}
	}
	return "", "", false
}
