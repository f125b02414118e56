package analysis

import (
	"fmt"

	"bikeshare/internal/core"
)

// Result bundles every aggregate the report needs.
type Result struct {
	Monthly        []core.MonthlyHolidayAggregate
	Holiday        core.HolidayExtremes
	SeasonYear     []core.SeasonYearAggregate
	Season         core.SeasonExtremes
	SeasonTotals   []SeasonTotal
	Rows           int
	HolidayRows    int
	NonHolidayRows int
}

// Analyze runs both research questions over records.
func Analyze(records []core.DailyRecord) (*Result, error) {
	if len(records) == 0 {
		return nil, core.ErrEmptyDataset
	}

	res := &Result{Rows: len(records)}
	for _, r := range records {
		if r.Holiday == 1 {
			res.HolidayRows++
		} else {
			res.NonHolidayRows++
		}
	}

	res.Monthly = MonthlyHoliday(records)
	res.Holiday = HolidayExtremes(res.Monthly)

	res.SeasonYear = SeasonYear(records)
	season, err := SeasonExtremes(res.SeasonYear)
	if err != nil {
		return nil, fmt.Errorf("season extremes: %w", err)
	}
	res.Season = season

	if res.SeasonTotals, err = SeasonTotals(res.SeasonYear); err != nil {
		return nil, fmt.Errorf("season totals: %w", err)
	}
	return res, nil
}
