// Package csvfile reads the day table from a local CSV file.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
)

// DefaultPath is the dataset file name relative to the working directory.
const DefaultPath = "day.csv"

// Source loads the table from Path on every call.
type Source struct {
	Path string
}

var (
	_ dataset.Source = (*Source)(nil)
	_ dataset.Pinger = (*Source)(nil)
)

// New returns a Source for path, falling back to DefaultPath.
func New(path string) *Source {
	if path == "" {
		path = DefaultPath
	}
	return &Source{Path: path}
}

// Load reads and parses the whole file.
func (s *Source) Load(ctx context.Context) (*dataset.Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", s.Path, core.ErrInputUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	matrix, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", s.Path, core.ErrInputUnavailable, err)
	}

	tbl, err := dataset.FromMatrix(matrix)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	slog.DebugContext(ctx, "Dataset loaded from CSV",
		"path", s.Path,
		"rows", tbl.Len(),
		"columns", tbl.Frame.Ncol())
	return tbl, nil
}

// Ping checks that the file exists and is readable.
func (s *Source) Ping(_ context.Context) error {
	f, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w: %v", s.Path, core.ErrInputUnavailable, err)
	}
	return f.Close()
}
