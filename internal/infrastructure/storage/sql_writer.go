package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/nutritool/backend/internal/domain"
)

const insertBatchSize = 50

// dialect captures the differences between the supported SQL backends
type dialect struct {
	driver        string
	timestampType string
	placeholder   func(n int) string
}

var dialects = map[string]dialect{
	"sqlite": {
		driver:        "sqlite",
		timestampType: "TIMESTAMP",
		placeholder:   func(int) string { return "?" },
	},
	"postgres": {
		driver:        "postgres",
		timestampType: "TIMESTAMPTZ",
		placeholder:   func(n int) string { return fmt.Sprintf("$%d", n) },
	},
}

// SQLWriter persists pipeline runs and their kept foods to SQLite or PostgreSQL.
type SQLWriter struct {
	db      *sql.DB
	dialect dialect
}

// NewSQLWriter opens a connection for the named dialect ("sqlite" or "postgres"),
// runs schema migrations, and returns a ready-to-use SQLWriter.
func NewSQLWriter(ctx context.Context, dialectName, dsn string) (*SQLWriter, error) {
	d, ok := dialects[dialectName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSink, dialectName)
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", dialectName, err)
	}
	if d.driver == "sqlite" {
		// one connection keeps ":memory:" databases and SQLite write locking simple
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", dialectName, err)
	}

	w := &SQLWriter{db: db, dialect: d}
	if err := w.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: migrate: %w", dialectName, err)
	}

	return w, nil
}

func (w *SQLWriter) migrate(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS pipeline_runs (
			run_id          TEXT PRIMARY KEY,
			source          TEXT    NOT NULL,
			loaded          INTEGER NOT NULL,
			kept            INTEGER NOT NULL,
			dropped_by_rule TEXT    NOT NULL DEFAULT '{}',
			duration_ms     BIGINT  NOT NULL DEFAULT 0,
			started_at      %s NOT NULL
		)`, w.dialect.timestampType),
		`CREATE TABLE IF NOT EXISTS foods (
			run_id               TEXT    NOT NULL,
			position             INTEGER NOT NULL,
			food_code            INTEGER NOT NULL,
			main_description     TEXT    NOT NULL DEFAULT '',
			category_number      TEXT    NOT NULL DEFAULT '',
			category_description TEXT    NOT NULL DEFAULT '',
			nutrients            TEXT    NOT NULL DEFAULT '{}',
			pdv                  TEXT    NOT NULL DEFAULT '{}',
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_foods_food_code ON foods(food_code)`,
	}

	for _, stmt := range stmts {
		if _, err := w.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshot stores the run and all its records in one transaction.
func (w *SQLWriter) WriteSnapshot(ctx context.Context, report *domain.RunReport, table *domain.FoodTable) error {
	dropped, err := json.Marshal(report.DroppedByRule)
	if err != nil {
		return fmt.Errorf("snapshot: encode drop counts: %w", err)
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot: begin: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	p := w.dialect.placeholder
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO pipeline_runs (run_id, source, loaded, kept, dropped_by_rule, duration_ms, started_at)
			VALUES (%s, %s, %s, %s, %s, %s, %s)`, p(1), p(2), p(3), p(4), p(5), p(6), p(7)),
		report.RunID, report.Source, report.Loaded, report.Kept, string(dropped),
		report.Duration.Milliseconds(), report.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("snapshot: insert run: %w", err)
	}

	for start := 0; start < len(table.Records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(table.Records) {
			end = len(table.Records)
		}
		if err := w.insertBatch(ctx, tx, report.RunID, start, table.Records[start:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("snapshot: commit: %w", err)
	}
	return nil
}

func (w *SQLWriter) insertBatch(ctx context.Context, tx *sql.Tx, runID string, offset int, batch []domain.FoodRecord) error {
	const cols = 8
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for i := range batch {
		rec := &batch[i]
		nutrients, err := json.Marshal(rec.Nutrients)
		if err != nil {
			return fmt.Errorf("snapshot: encode nutrients for %d: %w", rec.FoodCode, err)
		}
		pdv, err := json.Marshal(rec.PDV)
		if err != nil {
			return fmt.Errorf("snapshot: encode pdv for %d: %w", rec.FoodCode, err)
		}

		marks := make([]string, cols)
		for j := range marks {
			marks[j] = w.dialect.placeholder(i*cols + j + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(marks, ",")+")")
		valueArgs = append(valueArgs,
			runID, offset+i, rec.FoodCode, rec.MainDescription, rec.CategoryNumber,
			rec.CategoryDescription, string(nutrients), string(pdv))
	}

	query := fmt.Sprintf(`INSERT INTO foods
		(run_id, position, food_code, main_description, category_number, category_description, nutrients, pdv)
		VALUES %s`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("snapshot: insert foods: %w", err)
	}
	return nil
}

// Close closes the database handle
func (w *SQLWriter) Close() error {
	return w.db.Close()
}
