package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DatasetLoader reads the raw nutrient table
type DatasetLoader interface {
	Load(ctx context.Context) (*FoodTable, error)
}

// SnapshotWriter persists the result of a pipeline run
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, report *RunReport, table *FoodTable) error
	Close() error
}
