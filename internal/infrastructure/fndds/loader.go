package fndds

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/nutritool/backend/internal/domain"
)

const utf8BOM = "\ufeff"

// LoaderConfig describes the layout of the delimited source
type LoaderConfig struct {
	Path      string
	SkipRows  int  // banner rows above the real header
	Delimiter rune // defaults to ','
}

// Loader reads the FNDDS nutrient values table from a delimited file
type Loader struct {
	config LoaderConfig
}

// NewLoader creates a loader for the given source
func NewLoader(config LoaderConfig) *Loader {
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	return &Loader{config: config}
}

// Load opens the configured file and parses it into a FoodTable
func (l *Loader) Load(ctx context.Context) (*domain.FoodTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.LoadError{Source: l.config.Path, Err: err}
	}

	f, err := os.Open(l.config.Path)
	if err != nil {
		return nil, &domain.LoadError{Source: l.config.Path, Err: err}
	}
	defer f.Close()

	return Parse(f, l.config.Path, l.config.SkipRows, l.config.Delimiter)
}

// Parse reads a table whose first skipRows rows are discarded, whose next row is the
// header and whose remaining rows are food records. Header cells spanning several
// lines are collapsed to one line joined by single spaces.
func Parse(r io.Reader, source string, skipRows int, delimiter rune) (*domain.FoodTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var (
		header   []string
		dataRows [][]string
		lines    []int
	)
	for n := 0; ; n++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.LoadError{Source: source, Err: err}
		}
		switch {
		case n < skipRows:
			continue
		case n == skipRows:
			header = normalizeHeader(row)
		default:
			line, _ := reader.FieldPos(0)
			dataRows = append(dataRows, row)
			lines = append(lines, line)
		}
	}

	if header == nil {
		return nil, &domain.LoadError{Source: source, Err: fmt.Errorf("%w: header row not found", domain.ErrEmptyDataset)}
	}
	if len(dataRows) == 0 {
		return nil, &domain.LoadError{Source: source, Err: domain.ErrEmptyDataset}
	}

	idx := makeHeaderIndex(header)
	codeIdx, ok := idx[domain.ColumnFoodCode]
	if !ok {
		return nil, &domain.LoadError{Source: source, Err: fmt.Errorf("%w: %q", domain.ErrMissingColumn, domain.ColumnFoodCode)}
	}

	nutrientIdx := make([]int, 0, len(header))
	nutrientCols := make([]string, 0, len(header))
	for i, name := range header {
		if domain.IsIdentifierColumn(name) {
			continue
		}
		if idx[name] != i {
			log.Printf("[LOADER] %s: duplicate column %q at position %d ignored", source, name, i+1)
			continue
		}
		nutrientIdx = append(nutrientIdx, i)
		nutrientCols = append(nutrientCols, name)
	}

	table := &domain.FoodTable{
		Source:          source,
		NutrientColumns: nutrientCols,
		Records:         make([]domain.FoodRecord, 0, len(dataRows)),
	}

	skippedCells := 0
	for i, row := range dataRows {
		line := lines[i]

		code, err := strconv.Atoi(strings.TrimSpace(cell(row, codeIdx)))
		if err != nil {
			return nil, &domain.LoadError{
				Source: source,
				Line:   line,
				Err:    fmt.Errorf("%w: %q", domain.ErrInvalidFoodCode, cell(row, codeIdx)),
			}
		}

		rec := domain.FoodRecord{
			FoodCode:            code,
			MainDescription:     lookup(row, idx, domain.ColumnMainDescription),
			CategoryNumber:      strings.TrimSpace(lookup(row, idx, domain.ColumnCategoryNumber)),
			CategoryDescription: lookup(row, idx, domain.ColumnCategoryDescription),
			Nutrients:           make(map[string]float64, len(nutrientCols)),
		}

		for j, col := range nutrientIdx {
			raw := strings.TrimSpace(cell(row, col))
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				skippedCells++
				continue
			}
			rec.Nutrients[nutrientCols[j]] = v
		}

		table.Records = append(table.Records, rec)
	}

	if skippedCells > 0 {
		log.Printf("[LOADER] %s: %d non-numeric or non-finite nutrient cells treated as missing", source, skippedCells)
	}
	log.Printf("[LOADER] Loaded %d records with %d nutrient columns from %s", len(table.Records), len(nutrientCols), source)

	return table, nil
}

// normalizeHeader collapses multi-line header cells ("Vitamin A,\nRAE (mcg_RAE)")
// into single-line labels ("Vitamin A, RAE (mcg_RAE)").
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		out[i] = strings.Join(strings.Split(name, "\n"), " ")
	}
	return out
}

// makeHeaderIndex maps column name to position; the first occurrence wins
func makeHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func lookup(row []string, idx map[string]int, column string) string {
	i, ok := idx[column]
	if !ok {
		return ""
	}
	return cell(row, i)
}

// IsLoadError reports whether err came from the loader
func IsLoadError(err error) bool {
	var le *domain.LoadError
	return errors.As(err, &le)
}
