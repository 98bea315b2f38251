// Package postgres exports catalog snapshots to PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"hotel_catalog/internal/domain"
	"hotel_catalog/internal/storage"
)

const batchSize = 50

// Writer replaces the hotels table with each exported catalog.
type Writer struct {
	db *sql.DB
}

// Open connects with the lib/pq driver and pings once.
func Open(ctx context.Context, dsn string) (*Writer, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Writer{db: db}, nil
}

func New(db *sql.DB) *Writer { return &Writer{db: db} }

func (w *Writer) Migrate(ctx context.Context) error {
	_, err := w.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS hotels (
			position           INTEGER          NOT NULL,
			id                 TEXT             PRIMARY KEY,
			run_id             UUID             NOT NULL,
			destination_id     INTEGER          NOT NULL,
			name               TEXT             NOT NULL,
			lat                DOUBLE PRECISION NOT NULL DEFAULT 0,
			lng                DOUBLE PRECISION NOT NULL DEFAULT 0,
			address            TEXT             NOT NULL DEFAULT '',
			city               TEXT             NOT NULL DEFAULT '',
			country            TEXT             NOT NULL DEFAULT '',
			description        TEXT             NOT NULL DEFAULT '',
			amenities          JSONB            NOT NULL,
			images             JSONB            NOT NULL,
			booking_conditions JSONB            NOT NULL,
			exported_at        TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_hotels_destination ON hotels(destination_id);
	`)
	if err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

// ReplaceCatalog clears the table and batch-inserts hotels, all in one transaction.
func (w *Writer) ReplaceCatalog(ctx context.Context, runID string, hotels []domain.Hotel) error {
	rows, err := storage.Rows(runID, hotels)
	if err != nil {
		return err
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM hotels"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		q, args := insertBatch(rows[i:end])
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// CountRun reports how many rows the given run exported.
func (w *Writer) CountRun(ctx context.Context, runID string) (int, error) {
	var n int
	err := w.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels WHERE run_id = $1`, runID).Scan(&n)
	return n, err
}

func (w *Writer) Close() error {
	return w.db.Close()
}

func insertBatch(batch []storage.Row) (string, []any) {
	cols := len(storage.Columns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*cols)

	for idx, r := range batch {
		ph := make([]string, cols)
		for c := range ph {
			ph[c] = fmt.Sprintf("$%d", idx*cols+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs, r.Args()...)
	}

	query := fmt.Sprintf(`
		INSERT INTO hotels (%s)
		VALUES %s
	`, strings.Join(storage.Columns, ", "), strings.Join(valueStrings, ","))
	return query, valueArgs
}
