package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hotel_catalog/internal/domain"
	"hotel_catalog/internal/storage"
)

// rows per INSERT statement
const batchSize = 100

// Repo exports catalog snapshots into a MySQL hotels table.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createHotelsSQL)
	return err
}

// ReplaceCatalog swaps the table contents for hotels in one transaction.
func (r *Repo) ReplaceCatalog(ctx context.Context, runID string, hotels []domain.Hotel) error {
	rows, err := storage.Rows(runID, hotels)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mysql: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteHotelsSQL); err != nil {
		return fmt.Errorf("mysql: clear: %w", err)
	}
	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		q, args := buildInsert(rows[i:end])
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("mysql: insert batch at %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mysql: commit: %w", err)
	}
	return nil
}

// CountRun reports how many rows the given run exported.
func (r *Repo) CountRun(ctx context.Context, runID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countHotelsSQL, runID).Scan(&n)
	return n, err
}

func buildInsert(rows []storage.Row) (string, []any) {
	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*len(storage.Columns))
	for _, row := range rows {
		values = append(values, insertHotelsRow)
		args = append(args, row.Args()...)
	}
	return insertHotelsPrefix + strings.Join(values, ","), args
}
