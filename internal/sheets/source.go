// Package sheets loads the day table from a spreadsheet tab.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
)

// DefaultSheetName is the tab holding the day table.
const DefaultSheetName = "day"

// Source is a dataset.Source reading one tab through a ValuesReader.
type Source struct {
	reader ValuesReader
	sheet  string
}

var (
	_ dataset.Source = (*Source)(nil)
	_ dataset.Pinger = (*Source)(nil)
)

// NewSource reads the tab named sheet, falling back to DefaultSheetName.
func NewSource(reader ValuesReader, sheet string) *Source {
	sheet = strings.TrimSpace(sheet)
	if sheet == "" {
		sheet = DefaultSheetName
	}
	return &Source{reader: reader, sheet: sheet}
}

// Load reads columns A:Z of the tab; the first row is the header.
func (s *Source) Load(ctx context.Context) (*dataset.Table, error) {
	rng := fmt.Sprintf("%s!A:Z", s.sheet)
	values, err := s.reader.ReadValues(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", rng, core.ErrInputUnavailable, err)
	}

	tbl, err := dataset.FromMatrix(ToMatrix(values))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rng, err)
	}

	slog.DebugContext(ctx, "Dataset loaded from sheet",
		"range", rng,
		"rows", tbl.Len())
	return tbl, nil
}

// Ping reads the header row only.
func (s *Source) Ping(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A1:Z1", s.sheet)
	if _, err := s.reader.ReadValues(ctx, rng); err != nil {
		return fmt.Errorf("read %s: %w: %v", rng, core.ErrInputUnavailable, err)
	}
	return nil
}

// ToMatrix converts sheet cells to strings, padding short rows to the header
// width and dropping fully blank rows.
func ToMatrix(values [][]any) [][]string {
	if len(values) == 0 {
		return nil
	}
	width := len(values[0])
	out := make([][]string, 0, len(values))
	for i, row := range values {
		cells := make([]string, max(width, len(row)))
		blank := true
		for j, v := range row {
			cells[j] = cellString(v)
			if cells[j] != "" {
				blank = false
			}
		}
		if blank && i > 0 {
			continue
		}
		out = append(out, cells)
	}
	return out
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
