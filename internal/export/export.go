// Package export writes the report aggregates to an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bikeshare/internal/analysis"
)

// Sheet names of the workbook.
const (
	SheetMonthly = "Bulanan-Libur"
	SheetSeason  = "Musim-Tahun"
)

var (
	monthlyHeader = []any{"month", "holiday", "casual", "registered", "cnt"}
	seasonHeader  = []any{"yr", "season", "season_name", "cnt"}
)

// Workbook builds the two-sheet workbook from res.
func Workbook(res *analysis.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetMonthly); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSeason); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet %s: %w", SheetSeason, err)
	}

	monthly := make([][]any, 0, len(res.Monthly))
	for _, a := range res.Monthly {
		monthly = append(monthly, []any{a.Month, a.Holiday, a.Casual, a.Registered, a.Count})
	}
	season := make([][]any, 0, len(res.SeasonYear))
	for _, a := range res.SeasonYear {
		name, err := a.Season.Name()
		if err != nil {
			f.Close()
			return nil, err
		}
		season = append(season, []any{a.Year, int(a.Season), name, a.Count})
	}

	if err := writeSheet(f, SheetMonthly, monthlyHeader, monthly); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSheet(f, SheetSeason, seasonHeader, season); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Write streams the workbook for res to w.
func Write(w io.Writer, res *analysis.Result) error {
	f, err := Workbook(res)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	last, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(sheet, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", last, 14); err != nil {
		return fmt.Errorf("%s column width: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
