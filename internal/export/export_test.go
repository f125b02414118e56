package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bikeshare/internal/analysis"
	"bikeshare/internal/core"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		Monthly: []core.MonthlyHolidayAggregate{
			{Month: 1, Holiday: 0, Casual: 5, Registered: 10, Count: 15},
			{Month: 1, Holiday: 1, Casual: 2, Registered: 3, Count: 5},
		},
		SeasonYear: []core.SeasonYearAggregate{
			{Year: 0, Season: core.Fall, Count: 300},
			{Year: 1, Season: core.Winter, Count: 40},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetMonthly, SheetSeason}, f.GetSheetList())

	monthly, err := f.GetRows(SheetMonthly)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"month", "holiday", "casual", "registered", "cnt"},
		{"1", "0", "5", "10", "15"},
		{"1", "1", "2", "3", "5"},
	}, monthly)

	season, err := f.GetRows(SheetSeason)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"yr", "season", "season_name", "cnt"},
		{"0", "3", "Fall", "300"},
		{"1", "4", "Winter", "40"},
	}, season)
}

func TestWorkbookUnknownSeason(t *testing.T) {
	res := sampleResult()
	res.SeasonYear = append(res.SeasonYear, core.SeasonYearAggregate{Year: 1, Season: 9, Count: 1})
	_, err := Workbook(res)
	assert.ErrorIs(t, err, core.ErrUnknownSeason)
}
