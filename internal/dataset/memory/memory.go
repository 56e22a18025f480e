// Package memory provides a fixed in-memory dataset source for tests and
// local development.
package memory

import (
	"context"
	"errors"
	"sync"

	"txdash/internal/core"
)

type Store struct {
	mu      sync.Mutex
	columns []string
	rows    [][]string
	loadErr error
}

// New builds a source that always serves the given table.
func New(columns []string, rows [][]string) *Store {
	return &Store{columns: columns, rows: rows}
}

// NewSample returns a source seeded with a handful of plausible rows
// covering every documented column.
func NewSample() *Store {
	return New(
		[]string{core.ColAmount, core.ColCurrency, core.ColMCC, core.ColTimestamp, core.ColBalances},
		[][]string{
			{"12.40", "EUR", "5411", "2024-03-01 09:15:00", `{"total_balance": 730.10}`},
			{"3.20", "EUR", "5499", "2024-03-01 13:02:00", `{"total_balance": 726.90}`},
			{"55.00", "USD", "5812", "2024-03-02 20:41:00", `{"total_balance": 671.90}`},
			{"9.99", "EUR", "5411", "2024-03-03 08:30:00", `{"total_balance": 661.91}`},
			{"120.00", "GBP", "4511", "2024-03-04 06:12:00", `{"total_balance": 541.91}`},
		},
	)
}

// Failing returns a source whose Load always errors, for exercising the
// load-failure page.
func Failing(msg string) *Store {
	return &Store{loadErr: errors.New(msg)}
}

func (s *Store) Load(_ context.Context) (*core.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	rows := make([][]string, len(s.rows))
	for i, row := range s.rows {
		rows[i] = append([]string(nil), row...)
	}
	return core.NewDataset(append([]string(nil), s.columns...), rows)
}
