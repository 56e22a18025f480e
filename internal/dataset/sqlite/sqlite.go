// Package sqlite backs the dashboard with a local SQLite copy of the
// transaction dataset, written once by the import tool and read on render.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"txdash/internal/core"
	"txdash/internal/storage"

	_ "modernc.org/sqlite"
)

// importColumns is the documented dataset header the store persists. CSV
// columns outside this set are not carried into SQLite.
var importColumns = []string{
	core.ColAmount,
	core.ColCurrency,
	core.ColMCC,
	core.ColTimestamp,
	core.ColBalances,
}

type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the dataset store and runs migrations.
func Open(dbPath string) (*Store, error) {
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
	if err := storage.RunMigrations(dbPath); err != nil {
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

// Load reads the whole transactions table into a Dataset. Column names come
// straight from the result set, so presence guards behave exactly as they
// do for CSV input. Columns the importer never wrote come back all NULL and
// are treated as absent.
func (s *Store) Load(ctx context.Context) (*core.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT * FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}

	var data [][]sql.NullString
	for rows.Next() {
		cells := make([]sql.NullString, len(names))
		scan := make([]any, len(names))
		for i := range cells {
			scan[i] = &cells[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	// Keep only columns holding at least one value; drop the internal id.
	var keep []int
	var header []string
	for i, name := range names {
		if name == "id" {
			continue
		}
		present := false
		for _, row := range data {
			if row[i].Valid {
				present = true
				break
			}
		}
		if present {
			keep = append(keep, i)
			header = append(header, name)
		}
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("transactions table %s holds no data", s.path)
	}

	out := make([][]string, len(data))
	for r, row := range data {
		cells := make([]string, len(keep))
		for c, i := range keep {
			if row[i].Valid {
				cells[c] = row[i].String
			}
		}
		out[r] = cells
	}
	return core.NewDataset(header, out)
}

// ReplaceAll swaps the stored dataset for the given one inside a single
// transaction and returns the number of rows written. Only the documented
// columns are persisted.
func (s *Store) ReplaceAll(ctx context.Context, d *core.Dataset) (int, error) {
	var cols []string
	for _, name := range importColumns {
		if d.HasColumn(name) {
			cols = append(cols, name)
		}
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("dataset has none of the documented columns")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return 0, fmt.Errorf("clear transactions: %w", err)
	}

	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO transactions (%s) VALUES (%s)`,
		strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for r := 0; r < d.RowCount(); r++ {
		args := make([]any, len(cols))
		for i, c := range cols {
			cell := d.Cell(r, c)
			if cell == "" {
				args[i] = nil
			} else {
				args[i] = cell
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", r, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	slog.InfoContext(ctx, "Dataset imported into SQLite",
		"path", s.path, "rows", d.RowCount(), "columns", len(cols))
	return d.RowCount(), nil
}

// Fingerprint identifies the database file by path, size and mtime.
func (s *Store) Fingerprint(_ context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("stat database: %w", err)
	}
	return s.path + ":" + strconv.FormatInt(info.Size(), 10) + ":" +
		strconv.FormatInt(info.ModTime().UnixNano(), 10), nil
}
