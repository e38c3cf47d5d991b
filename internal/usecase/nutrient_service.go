package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nutritool/backend/internal/domain"
)

// NutrientServiceConfig holds configuration for the nutrient service
type NutrientServiceConfig struct {
	CacheTTL           time.Duration
	MaxTopN            int
	DefaultTopN        int
	EnableDebugLogging bool
}

// NutrientService answers ranking queries against one cleaned, enriched table.
// The table is never modified, so concurrent queries need no locking.
type NutrientService struct {
	cache              domain.CacheRepository
	table              *domain.FoodTable
	report             *domain.RunReport
	ranker             *Ranker
	matcher            *ColumnMatcher
	cacheTTL           time.Duration
	defaultN           int
	enableDebugLogging bool
}

// NewNutrientService creates a nutrient service over a finished pipeline run
func NewNutrientService(
	cache domain.CacheRepository,
	table *domain.FoodTable,
	report *domain.RunReport,
	config NutrientServiceConfig,
) *NutrientService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	ranker := NewRanker(config.MaxTopN)

	defaultN := config.DefaultTopN
	if defaultN < MinTopN || defaultN > ranker.MaxN() {
		defaultN = 5
		if defaultN > ranker.MaxN() {
			defaultN = ranker.MaxN()
		}
	}

	return &NutrientService{
		cache:              cache,
		table:              table,
		report:             report,
		ranker:             ranker,
		matcher:            NewColumnMatcher(MatchConfig{}),
		cacheTTL:           cacheTTL,
		defaultN:           defaultN,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Columns lists the columns TopFoods accepts
func (s *NutrientService) Columns() []string {
	return s.table.RankableColumns()
}

// Foods returns the cleaned, enriched records. Callers must not modify them.
func (s *NutrientService) Foods() []domain.FoodRecord {
	return s.table.Records
}

// Report returns the run that produced the table
func (s *NutrientService) Report() *domain.RunReport {
	return s.report
}

// DefaultN is the count used when a caller does not choose one
func (s *NutrientService) DefaultN() int {
	return s.defaultN
}

// MaxN is the largest accepted count
func (s *NutrientService) MaxN() int {
	return s.ranker.MaxN()
}

// TopFoods returns the n foods highest in column.
// Each call gets its own slice and values; Record still points into the shared table.
// Flow: validate -> check cache -> rank -> cache -> return
func (s *NutrientService) TopFoods(ctx context.Context, column string, n int) ([]domain.RankedFood, error) {
	if err := s.ranker.Validate(s.table, column, n); err != nil {
		var unknown *domain.UnknownColumnError
		if errors.As(err, &unknown) {
			unknown.Suggestions = s.matcher.Suggest(column, s.Columns())
		}
		return nil, err
	}

	cacheKey := generateCacheKey(column, n)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		if s.enableDebugLogging {
			log.Printf("[RANK] cache hit %s", cacheKey)
		}
		return cloneRanked(cached), nil
	}

	ranked, err := s.ranker.TopN(s.table, column, n)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, ranked, s.cacheTTL); err != nil {
		log.Printf("[RANK] failed to cache %s: %v", cacheKey, err)
	}

	return cloneRanked(ranked), nil
}

func cloneRanked(ranked []domain.RankedFood) []domain.RankedFood {
	out := make([]domain.RankedFood, len(ranked))
	for i, r := range ranked {
		if r.Value != nil {
			v := *r.Value
			r.Value = &v
		}
		out[i] = r
	}
	return out
}

// generateCacheKey builds "top:{column}:{n}". Column names are case-sensitive and kept verbatim.
func generateCacheKey(column string, n int) string {
	return fmt.Sprintf("top:%s:%d", column, n)
}

func (s *NutrientService) getFromCache(ctx context.Context, key string) ([]domain.RankedFood, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	ranked, ok := value.([]domain.RankedFood)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return ranked, nil
}
