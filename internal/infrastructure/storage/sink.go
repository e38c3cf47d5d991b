package storage

import (
	"context"
	"fmt"

	"github.com/nutritool/backend/internal/domain"
)

// Sink names accepted by NewSnapshotWriter
const (
	SinkNone     = "none"
	SinkCSV      = "csv"
	SinkSQLite   = "sqlite"
	SinkPostgres = "postgres"
)

// NewSnapshotWriter builds the writer for sink. It returns nil, nil for SinkNone.
// target is a file path for csv and sqlite, a connection string for postgres.
func NewSnapshotWriter(ctx context.Context, sink, target string) (domain.SnapshotWriter, error) {
	switch sink {
	case SinkNone, "":
		return nil, nil
	case SinkCSV:
		w, err := NewCSVWriter(target)
		if err != nil {
			return nil, err
		}
		return w, nil
	case SinkSQLite, SinkPostgres:
		w, err := NewSQLWriter(ctx, sink, target)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSink, sink)
	}
}
