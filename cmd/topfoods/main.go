// Command topfoods builds the cleaned nutrient table once and prints the foods
// richest in one nutrient or percent daily value column.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/nutritool/backend/config"
	"github.com/nutritool/backend/internal/domain"
	"github.com/nutritool/backend/internal/infrastructure/cache"
	"github.com/nutritool/backend/internal/infrastructure/fndds"
	"github.com/nutritool/backend/internal/usecase"
)

// Exit codes
const (
	exitOK        = 0
	exitLoadError = 1
	exitUsage     = 2
)

const (
	barWidth        = 30
	descriptionWide = 40
)

func main() {
	log.SetFlags(log.Ltime)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line
type options struct {
	dataPath string
	skipRows int
	nutrient string
	n        int
	maxN     int
	list     bool
	debug    bool
}

// parseFlags reads args on top of the configured defaults
func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("topfoods", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.dataPath, "data", cfg.Dataset.Path, "Path to the FNDDS nutrient values file")
	fs.IntVar(&opts.skipRows, "skip-rows", cfg.Dataset.SkipRows, "Banner rows above the header")
	fs.StringVar(&opts.nutrient, "nutrient", "", "Column to rank by, e.g. \"Selenium (mcg)\" or \"Selenium PDV\"")
	fs.IntVar(&opts.n, "n", cfg.Ranking.DefaultN, "Number of foods to show")
	fs.IntVar(&opts.maxN, "max-n", cfg.Ranking.MaxN, "Largest accepted -n")
	fs.BoolVar(&opts.list, "list", false, "List the rankable columns and exit")
	fs.BoolVar(&opts.debug, "debug", cfg.Logging.Debug, "Log why each food was dropped")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Top foods by nutrient\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  topfoods -nutrient <column> [-n N] [-data PATH]\n")
		fmt.Fprintf(stderr, "  topfoods -list [-data PATH]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.skipRows < 0 {
		return opts, fmt.Errorf("skip-rows must be non-negative, got: %d", opts.skipRows)
	}
	if !opts.list && opts.nutrient == "" {
		return opts, errors.New("-nutrient is required unless -list is given")
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	opts, err := parseFlags(args, cfg, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	loader := fndds.NewLoader(fndds.LoaderConfig{
		Path:      opts.dataPath,
		SkipRows:  opts.skipRows,
		Delimiter: cfg.Dataset.DelimiterRune(),
	})
	pipeline := usecase.NewPipeline(loader, usecase.NewFilter(nil, opts.debug), usecase.NewEnricher(nil))

	ctx := context.Background()
	table, report, err := pipeline.Run(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitLoadError
	}

	memoryCache := cache.NewMemoryCache(0)
	defer memoryCache.Close()

	service := usecase.NewNutrientService(memoryCache, table, report, usecase.NutrientServiceConfig{
		CacheTTL:           cfg.Cache.TTL,
		MaxTopN:            opts.maxN,
		DefaultTopN:        opts.n,
		EnableDebugLogging: opts.debug,
	})

	if opts.list {
		for _, column := range service.Columns() {
			fmt.Fprintln(stdout, column)
		}
		return exitOK
	}

	ranked, err := service.TopFoods(ctx, opts.nutrient, opts.n)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var unknown *domain.UnknownColumnError
		if errors.As(err, &unknown) && len(unknown.Suggestions) > 0 {
			fmt.Fprintf(stderr, "Did you mean: %s?\n", strings.Join(quoteAll(unknown.Suggestions), ", "))
		}
		return exitUsage
	}

	printRanking(stdout, opts.nutrient, report, ranked)
	return exitOK
}

// printRanking writes a ranked table with a bar proportional to the largest value
func printRanking(w io.Writer, column string, report *domain.RunReport, ranked []domain.RankedFood) {
	sep := strings.Repeat("═", descriptionWide+barWidth+22)

	fmt.Fprintf(w, "Top %d foods by %s (%d of %d foods kept)\n", len(ranked), column, report.Kept, report.Loaded)
	fmt.Fprintln(w, sep)

	top := 0.0
	for _, r := range ranked {
		if r.Value != nil && *r.Value > top {
			top = *r.Value
		}
	}

	for _, r := range ranked {
		value := "-"
		bar := ""
		if r.Value != nil {
			value = formatValue(*r.Value)
			bar = strings.Repeat("█", barLength(*r.Value, top))
		}
		fmt.Fprintf(w, "%3d. %-*s %14s  %s\n",
			r.Rank, descriptionWide, truncate(r.Record.MainDescription, descriptionWide), value, bar)
	}
}

// barLength scales value to barWidth; any positive value gets at least one block
func barLength(value, top float64) int {
	if value <= 0 || top <= 0 {
		return 0
	}
	n := int(math.Round(value / top * barWidth))
	if n < 1 {
		n = 1
	}
	return n
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e12 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
