package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nutritool/backend/config"
	httpDelivery "github.com/nutritool/backend/internal/delivery/http"
	"github.com/nutritool/backend/internal/domain"
	"github.com/nutritool/backend/internal/infrastructure/cache"
	"github.com/nutritool/backend/internal/infrastructure/fndds"
	"github.com/nutritool/backend/internal/infrastructure/storage"
	"github.com/nutritool/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting NutriTool Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Dataset: %s (skip %d rows)", cfg.Dataset.Path, cfg.Dataset.SkipRows)

	ctx := context.Background()

	// Build the cleaned table once; every request reads it afterwards
	loader := fndds.NewLoader(fndds.LoaderConfig{
		Path:      cfg.Dataset.Path,
		SkipRows:  cfg.Dataset.SkipRows,
		Delimiter: cfg.Dataset.DelimiterRune(),
	})
	pipeline := usecase.NewPipeline(
		loader,
		usecase.NewFilter(nil, cfg.Logging.Debug),
		usecase.NewEnricher(nil),
	)

	table, report, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatalf("Failed to build nutrient table: %v", err)
	}

	if err := writeSnapshot(ctx, cfg, report, table); err != nil {
		log.Printf("WARNING: snapshot not written: %v", err)
	}

	memoryCache := cache.NewMemoryCache(0)
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	nutrientService := usecase.NewNutrientService(
		memoryCache,
		table,
		report,
		usecase.NutrientServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			MaxTopN:            cfg.Ranking.MaxN,
			DefaultTopN:        cfg.Ranking.DefaultN,
			EnableDebugLogging: cfg.Logging.Debug,
		},
	)

	log.Printf("Ranking: %d columns, n in [1, %d], default %d",
		len(nutrientService.Columns()), nutrientService.MaxN(), nutrientService.DefaultN())

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(nutrientService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// writeSnapshot exports the run to the configured sink, if any
func writeSnapshot(ctx context.Context, cfg *config.Config, report *domain.RunReport, table *domain.FoodTable) error {
	writer, err := storage.NewSnapshotWriter(ctx, cfg.Storage.Sink, cfg.Storage.Target())
	if err != nil {
		return err
	}
	if writer == nil {
		return nil
	}
	defer writer.Close()

	if err := writer.WriteSnapshot(ctx, report, table); err != nil {
		return err
	}
	log.Printf("[SNAPSHOT] Run %s written to %s sink", report.RunID, cfg.Storage.Sink)
	return nil
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
