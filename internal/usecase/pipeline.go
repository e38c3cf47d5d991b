package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nutritool/backend/internal/domain"
)

// Pipeline runs Load -> Filter -> Enrich once and hands back an immutable table
type Pipeline struct {
	loader   domain.DatasetLoader
	filter   *Filter
	enricher *Enricher
}

// NewPipeline wires the stages together
func NewPipeline(loader domain.DatasetLoader, filter *Filter, enricher *Enricher) *Pipeline {
	if filter == nil {
		filter = NewFilter(nil, false)
	}
	if enricher == nil {
		enricher = NewEnricher(nil)
	}
	return &Pipeline{
		loader:   loader,
		filter:   filter,
		enricher: enricher,
	}
}

// Run builds the cleaned, enriched table. Any load failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*domain.FoodTable, *domain.RunReport, error) {
	started := time.Now()

	raw, err := p.loader.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: %w", err)
	}

	kept, stats := p.filter.Apply(raw.Records)
	kept = p.enricher.Enrich(kept)

	table := &domain.FoodTable{
		Source:          raw.Source,
		NutrientColumns: raw.NutrientColumns,
		Records:         kept,
	}

	report := &domain.RunReport{
		RunID:         uuid.New().String(),
		Source:        raw.Source,
		Loaded:        stats.Input,
		Kept:          stats.Kept,
		DroppedByRule: stats.DroppedByRule,
		StartedAt:     started,
		Duration:      time.Since(started),
	}

	log.Printf("[PIPELINE] Run %s: %d loaded, %d kept in %s", report.RunID, report.Loaded, report.Kept, report.Duration)
	return table, report, nil
}
