// ABOUTME: Wage snapshot write and metadata operations
// ABOUTME: Replaces the whole snapshot in one transaction, preserving row order
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/harper/wage-explorer/internal/models"
)

// SnapshotMeta describes the last import
type SnapshotMeta struct {
	Source     string    `json:"source"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}

// WageStore handles snapshot persistence
type WageStore struct {
	db *DB
}

// NewWageStore creates a new WageStore
func NewWageStore(db *DB) *WageStore {
	return &WageStore{db: db}
}

// ReplaceRecords deletes the current snapshot and writes records in order.
// row_id preserves storage order so first-match lookups stay stable.
func (s *WageStore) ReplaceRecords(ctx context.Context, source string, records []models.WageRecord) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM wages`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO wages (
			row_id, OCC_TITLE, PRIM_STATE, AREA_TITLE,
			H_PCT10, H_PCT25, H_MEDIAN, H_PCT75, H_PCT90,
			A_PCT10, A_PCT25, A_MEDIAN, A_PCT75, A_PCT90,
			TOT_EMP, JOBS_1000, LOC_QUOTIENT
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		args := []any{i + 1, r.OccupationTitle, nullString(r.StateCode), r.AreaTitle}
		for _, v := range r.Hourly {
			args = append(args, nullFloat(v))
		}
		for _, v := range r.Annual {
			args = append(args, nullFloat(v))
		}
		args = append(args,
			nullFloat(r.TotalEmployment),
			nullFloat(r.JobsPerThousand),
			nullFloat(r.LocationQuotient))

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (id, source, row_count, imported_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			row_count = excluded.row_count,
			imported_at = excluded.imported_at
	`, source, len(records), time.Now().UTC()); err != nil {
		return fmt.Errorf("write snapshot metadata: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of snapshot rows
func (s *WageStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM wages`).Scan(&n)
	return n, err
}

// Meta returns the last import metadata, or nil if nothing was imported
func (s *WageStore) Meta(ctx context.Context) (*SnapshotMeta, error) {
	var meta SnapshotMeta
	err := s.db.conn.QueryRowContext(ctx, `
		SELECT source, row_count, imported_at FROM snapshot_meta WHERE id = 1
	`).Scan(&meta.Source, &meta.RowCount, &meta.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
