package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Canonical column names of the transaction dataset. The set is documented,
// not enforced: every consumer guards on literal presence and degrades when
// a column is missing.
const (
	ColAmount       = "TRANSACTION_AMOUNT"
	ColCurrency     = "CURRENCY_CODE"
	ColMCC          = "MCC"
	ColTimestamp    = "TIMESTAMP"
	ColBalances     = "POST_TRANSACTION_ACCOUNT_BALANCES"
	ColTotalBalance = "total_balance"
)

var (
	ErrNoColumns     = errors.New("dataset has no columns")
	ErrColumnMissing = errors.New("column not found")
	ErrColumnExists  = errors.New("column already present")
)

// Dataset is an immutable in-memory table of string cells. Columns keep
// their source order; lookup is by literal name. Transformations return new
// Dataset values so panels never observe each other's side effects.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewDataset builds a dataset from a header and rows. Every row must be as
// wide as the header; tolerant loaders are expected to have dropped
// malformed rows before this point.
func NewDataset(columns []string, rows [][]string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i, len(row), len(columns))
		}
	}
	cols := make([]string, len(columns))
	for i, name := range columns {
		cols[i] = strings.TrimSpace(name)
	}
	return &Dataset{columns: cols, index: index, rows: rows}, nil
}

// Columns returns the column names in source order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int { return len(d.rows) }

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.columns) }

// HasColumn reports whether a column with the literal name exists. This is
// the presence guard every panel runs before doing any work.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns a copy of the named column's cells.
func (d *Dataset) Column(name string) ([]string, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(d.rows))
	for r, row := range d.rows {
		out[r] = row[i]
	}
	return out, true
}

// Cell returns the value at (row, column name). Empty string when the
// column is absent or the row is out of range.
func (d *Dataset) Cell(row int, name string) string {
	i, ok := d.index[name]
	if !ok || row < 0 || row >= len(d.rows) {
		return ""
	}
	return d.rows[row][i]
}

// Head returns the first n rows (fewer if the dataset is shorter).
func (d *Dataset) Head(n int) [][]string {
	if n > len(d.rows) {
		n = len(d.rows)
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		out[i] = append([]string(nil), d.rows[i]...)
	}
	return out
}

// WithColumn returns a new dataset extended by one derived column. The
// receiver is left untouched.
func (d *Dataset) WithColumn(name string, values []string) (*Dataset, error) {
	if d.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", ErrColumnExists, name)
	}
	if len(values) != len(d.rows) {
		return nil, fmt.Errorf("column %s has %d values, dataset has %d rows", name, len(values), len(d.rows))
	}
	rows := make([][]string, len(d.rows))
	for i, row := range d.rows {
		next := make([]string, len(row)+1)
		copy(next, row)
		next[len(row)] = values[i]
		rows[i] = next
	}
	return NewDataset(append(d.Columns(), name), rows)
}

// NumericColumn parses the named column as float64, dropping cells that are
// empty or do not parse. The second result is false when the column is
// absent entirely.
func (d *Dataset) NumericColumn(name string) ([]float64, bool) {
	cells, ok := d.Column(name)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(cells))
	for _, cell := range cells {
		if v, ok := parseFloat(cell); ok {
			out = append(out, v)
		}
	}
	return out, true
}

func parseFloat(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
