package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/nutritool/backend/internal/domain"
)

// CSVWriter exports the cleaned, enriched table to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	return &CSVWriter{file: f, writer: csv.NewWriter(f)}, nil
}

// WriteSnapshot writes the header and one row per record. Missing values are empty cells.
func (c *CSVWriter) WriteSnapshot(ctx context.Context, report *domain.RunReport, table *domain.FoodTable) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	header := []string{
		domain.ColumnFoodCode,
		domain.ColumnMainDescription,
		domain.ColumnCategoryNumber,
		domain.ColumnCategoryDescription,
	}
	header = append(header, table.RankableColumns()...)
	if err := c.writer.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	valueCols := header[4:]
	for i := range table.Records {
		rec := &table.Records[i]
		row := make([]string, 0, len(header))
		row = append(row,
			strconv.Itoa(rec.FoodCode),
			rec.MainDescription,
			rec.CategoryNumber,
			rec.CategoryDescription,
		)
		for _, col := range valueCols {
			if v, ok := rec.Value(col); ok {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
