// Package storage keeps an imported copy of the day table in SQLite so the
// report can be served without the CSV file.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// storedColumns is the header of the matrix rebuilt by Load.
var storedColumns = []string{
	dataset.ColDate,
	dataset.ColSeason,
	dataset.ColYear,
	dataset.ColHoliday,
	dataset.ColCasual,
	dataset.ColRegistered,
	dataset.ColCount,
}

// Store is a dataset.Source backed by a SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

var (
	_ dataset.Source = (*Store)(nil)
	_ dataset.Pinger = (*Store)(nil)
)

// NewStore opens (creating if needed) the database at dbPath and applies
// migrations.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Import replaces every stored row with the records of t in one transaction.
func (s *Store) Import(ctx context.Context, t *dataset.Table) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_records`); err != nil {
		return 0, fmt.Errorf("clear daily records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO daily_records
		(dteday, season, yr, holiday, casual, registered, cnt)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range t.Records {
		if _, err := stmt.ExecContext(ctx,
			r.Date.Format(dateLayout), int(r.Season), r.Year, r.Holiday,
			r.Casual, r.Registered, r.Count); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Dataset imported to SQLite",
		"path", s.path,
		"rows", len(t.Records))
	return len(t.Records), nil
}

// Load reads every stored row in import order and parses it like a CSV.
func (s *Store) Load(ctx context.Context) (*dataset.Table, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT dteday, season, yr, holiday, casual, registered, cnt
		FROM daily_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query daily records: %w: %v", core.ErrInputUnavailable, err)
	}
	defer rows.Close()

	matrix := [][]string{storedColumns}
	for rows.Next() {
		var (
			date string
			vals [6]int64
		)
		if err := rows.Scan(&date, &vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5]); err != nil {
			return nil, fmt.Errorf("scan daily record: %w: %v", core.ErrInputUnavailable, err)
		}
		row := make([]string, 0, len(storedColumns))
		row = append(row, date)
		for _, v := range vals {
			row = append(row, strconv.FormatInt(v, 10))
		}
		matrix = append(matrix, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily records: %w: %v", core.ErrInputUnavailable, err)
	}

	tbl, err := dataset.FromMatrix(matrix)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	slog.DebugContext(ctx, "Dataset loaded from SQLite",
		"path", s.path,
		"rows", tbl.Len())
	return tbl, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w: %v", s.path, core.ErrInputUnavailable, err)
	}
	return nil
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count daily records: %w", err)
	}
	return n, nil
}
