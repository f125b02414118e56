// Package memory is an in-process sheets.ValuesReader over a fixed grid,
// standing in for a spreadsheet in tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bikeshare/internal/sheets"
)

// ErrUnavailable is returned by ReadValues after Fail is called.
var ErrUnavailable = errors.New("sheet unavailable")

// Store serves the same grid for every range of its tab.
type Store struct {
	mu     sync.Mutex
	sheet  string
	values [][]any
	reads  int
	failed bool
}

var _ sheets.ValuesReader = (*Store)(nil)

// New returns a Store for the tab named sheet holding rows.
func New(sheet string, rows [][]string) *Store {
	s := &Store{sheet: sheet}
	s.Set(rows)
	return s
}

// Set replaces the grid.
func (s *Store) Set(rows [][]string) {
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(row))
		for j, v := range row {
			values[i][j] = v
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = values
	s.failed = false
}

// Fail makes subsequent reads return ErrUnavailable until Set is called.
func (s *Store) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = true
}

// Reads returns how many ReadValues calls were served.
func (s *Store) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// ReadValues returns a copy of the grid. The range must address this
// Store's tab; A1 bounds are ignored except for a single header row.
func (s *Store) ReadValues(_ context.Context, rng string) ([][]any, error) {
	tab, cells, ok := strings.Cut(rng, "!")
	if !ok || tab != s.sheet {
		return nil, fmt.Errorf("unknown range %q", rng)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed {
		return nil, ErrUnavailable
	}
	s.reads++

	values := s.values
	if strings.HasSuffix(cells, "1") && len(values) > 0 {
		values = values[:1]
	}
	out := make([][]any, len(values))
	for i, row := range values {
		out[i] = append([]any(nil), row...)
	}
	return out, nil
}
