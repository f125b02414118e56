// Package dataset turns a raw day table (header row plus data rows) into
// typed records and a dataframe used for the descriptive sections of the
// report.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/go-playground/validator/v10"

	"bikeshare/internal/core"
)

// Column names of the day table.
const (
	ColDate       = "dteday"
	ColSeason     = "season"
	ColYear       = "yr"
	ColHoliday    = "holiday"
	ColCasual     = "casual"
	ColRegistered = "registered"
	ColCount      = "cnt"
	ColMonth      = "month" // derived
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{ColDate, ColSeason, ColYear, ColHoliday, ColCasual, ColRegistered, ColCount}

var dateLayouts = []string{"2006-01-02", "2006/01/02", time.DateTime, time.RFC3339}

var validate = validator.New()

// Table is the loaded day table.
type Table struct {
	Records []core.DailyRecord
	Frame   dataframe.DataFrame

	// Inconsistent counts rows where cnt != casual + registered.
	Inconsistent int
}

// ColumnInfo summarises one frame column.
type ColumnInfo struct {
	Name    string
	NonNull int
	Type    string
}

// FromMatrix parses a header row followed by data rows.
func FromMatrix(matrix [][]string) (*Table, error) {
	if len(matrix) == 0 {
		return nil, fmt.Errorf("%w: %w: no header row", core.ErrInputUnavailable, core.ErrMissingColumns)
	}
	header := make([]string, len(matrix[0]))
	for i, h := range matrix[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w: %s", core.ErrInputUnavailable, core.ErrMissingColumns, strings.Join(missing, ", "))
	}

	rows := matrix[1:]
	if len(rows) == 0 {
		return nil, core.ErrEmptyDataset
	}

	t := &Table{Records: make([]core.DailyRecord, 0, len(rows))}
	months := make([]int, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d: %w: %d fields, header has %d", i+1, core.ErrInvalidRecord, len(row), len(header))
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if !rec.Consistent() {
			t.Inconsistent++
		}
		t.Records = append(t.Records, rec)
		months = append(months, rec.Month)
	}

	normalized := make([][]string, 0, len(matrix))
	normalized = append(normalized, header)
	normalized = append(normalized, rows...)
	df := dataframe.LoadRecords(normalized,
		dataframe.WithTypes(map[string]series.Type{ColDate: series.String}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: build frame: %v", core.ErrInvalidRecord, df.Err)
	}
	df = df.Mutate(series.New(months, series.Int, ColMonth))
	if df.Err != nil {
		return nil, fmt.Errorf("derive month: %w", df.Err)
	}
	t.Frame = df

	return t, nil
}

func parseRow(row []string, idx map[string]int) (core.DailyRecord, error) {
	cell := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("%w: column %s missing", core.ErrInvalidRecord, col)
		}
		return strings.TrimSpace(row[i]), nil
	}
	integer := func(col string) (int, error) {
		v, err := cell(col)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q is not an integer", core.ErrInvalidRecord, col, v)
		}
		return n, nil
	}

	raw, err := cell(ColDate)
	if err != nil {
		return core.DailyRecord{}, err
	}
	date, err := parseDate(raw)
	if err != nil {
		return core.DailyRecord{}, err
	}

	var vals [6]int
	for i, col := range []string{ColSeason, ColYear, ColHoliday, ColCasual, ColRegistered, ColCount} {
		if vals[i], err = integer(col); err != nil {
			return core.DailyRecord{}, err
		}
	}

	rec := core.NewRecord(date, core.Season(vals[0]), vals[1], vals[2], vals[3], vals[4], vals[5])
	if err := validate.Struct(rec); err != nil {
		return core.DailyRecord{}, fmt.Errorf("%w: %v", core.ErrInvalidRecord, err)
	}
	return rec, nil
}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s=%q is not a date", core.ErrInvalidRecord, ColDate, v)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Records)
}

// Info describes every frame column, like a dataframe info() listing.
func (t *Table) Info() []ColumnInfo {
	names := t.Frame.Names()
	types := t.Frame.Types()
	out := make([]ColumnInfo, 0, len(names))
	for i, name := range names {
		nonNull := 0
		for _, nan := range t.Frame.Col(name).IsNaN() {
			if !nan {
				nonNull++
			}
		}
		out = append(out, ColumnInfo{Name: name, NonNull: nonNull, Type: string(types[i])})
	}
	return out
}

// Describe returns summary statistics per column as a header row plus one
// row per statistic.
func (t *Table) Describe() [][]string {
	return t.Frame.Describe().Records()
}

// Head returns the header plus the first n rows.
func (t *Table) Head(n int) [][]string {
	if n > t.Frame.Nrow() {
		n = t.Frame.Nrow()
	}
	if n <= 0 {
		return [][]string{t.Frame.Names()}
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.Frame.Subset(idx).Records()
}
