package analysis

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
)

func day(t *testing.T, date string, season core.Season, year, holiday, casual, registered int) core.DailyRecord {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return core.NewRecord(d, season, year, holiday, casual, registered, casual+registered)
}

func TestMonthlyHolidayTwoRows(t *testing.T) {
	records := []core.DailyRecord{
		day(t, "2011-01-01", core.Spring, 0, 0, 5, 10),
		day(t, "2011-01-17", core.Spring, 0, 1, 2, 3),
	}

	aggs := MonthlyHoliday(records)
	require.Len(t, aggs, 2)
	assert.Equal(t, core.MonthlyHolidayAggregate{Month: 1, Holiday: 0, Casual: 5, Registered: 10, Count: 15}, aggs[0])
	assert.Equal(t, core.MonthlyHolidayAggregate{Month: 1, Holiday: 1, Casual: 2, Registered: 3, Count: 5}, aggs[1])

	ext := HolidayExtremes(aggs)
	assert.Equal(t, core.CountRange{Max: 15, Min: 15, Valid: true}, ext.NonHoliday)
	assert.Equal(t, core.CountRange{Max: 5, Min: 5, Valid: true}, ext.Holiday)
}

func TestMonthlyHolidayOrdering(t *testing.T) {
	records := []core.DailyRecord{
		day(t, "2011-12-25", core.Winter, 0, 1, 1, 1),
		day(t, "2011-03-01", core.Spring, 0, 0, 1, 1),
		day(t, "2012-03-02", core.Spring, 1, 0, 1, 1),
		day(t, "2011-01-01", core.Spring, 0, 0, 1, 1),
	}
	aggs := MonthlyHoliday(records)
	require.Len(t, aggs, 3)
	assert.Equal(t, 1, aggs[0].Month)
	assert.Equal(t, 3, aggs[1].Month)
	assert.Equal(t, 4, aggs[1].Count, "both years fold into one month group")
	assert.Equal(t, 12, aggs[2].Month)
}

func TestHolidayExtremesWithoutHolidays(t *testing.T) {
	aggs := MonthlyHoliday([]core.DailyRecord{
		day(t, "2011-01-01", core.Spring, 0, 0, 5, 10),
		day(t, "2011-02-01", core.Spring, 0, 0, 1, 1),
	})
	ext := HolidayExtremes(aggs)
	assert.False(t, ext.Holiday.Valid)
	assert.True(t, ext.NonHoliday.Valid)
	assert.Equal(t, 15, ext.NonHoliday.Max)
	assert.Equal(t, 2, ext.NonHoliday.Min)
}

func TestSeasonExtremesNamesFall(t *testing.T) {
	records := []core.DailyRecord{
		day(t, "2011-04-01", core.Spring, 0, 0, 10, 10),
		day(t, "2011-07-01", core.Fall, 0, 0, 500, 500),
		day(t, "2011-12-30", core.Winter, 0, 0, 1, 2),
		day(t, "2012-07-01", core.Fall, 1, 0, 100, 100),
	}
	ext, err := SeasonExtremes(SeasonYear(records))
	require.NoError(t, err)
	assert.Equal(t, 1000, ext.Max)
	assert.Equal(t, core.Fall, ext.MaxSeason)
	assert.Equal(t, "Fall", ext.MaxSeasonName)
	assert.Equal(t, 3, ext.Min)
	assert.Equal(t, "Winter", ext.MinSeasonName)
}

func TestSeasonExtremesFirstOccurrenceWins(t *testing.T) {
	aggs := []core.SeasonYearAggregate{
		{Year: 0, Season: core.Spring, Count: 10},
		{Year: 0, Season: core.Summer, Count: 30},
		{Year: 1, Season: core.Spring, Count: 10},
		{Year: 1, Season: core.Winter, Count: 30},
	}
	ext, err := SeasonExtremes(aggs)
	require.NoError(t, err)
	assert.Equal(t, "Summer", ext.MaxSeasonName)
	assert.Equal(t, "Spring", ext.MinSeasonName)
}

func TestSeasonExtremesUnknownSeason(t *testing.T) {
	records := []core.DailyRecord{
		day(t, "2011-01-01", core.Spring, 0, 0, 1, 1),
		day(t, "2011-06-01", core.Season(7), 0, 0, 100, 100),
	}
	_, err := SeasonExtremes(SeasonYear(records))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownSeason)
	assert.Equal(t, core.KindLookupFailure, core.Kind(err))

	var unknown *core.UnknownSeasonError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 7, unknown.Code)

	_, err = Analyze(records)
	assert.ErrorIs(t, err, core.ErrUnknownSeason)
}

func TestSeasonTotals(t *testing.T) {
	totals, err := SeasonTotals([]core.SeasonYearAggregate{
		{Year: 0, Season: core.Summer, Count: 5},
		{Year: 0, Season: core.Spring, Count: 1},
		{Year: 1, Season: core.Summer, Count: 7},
	})
	require.NoError(t, err)
	assert.Equal(t, []SeasonTotal{
		{Season: core.Spring, Name: "Spring", Count: 1},
		{Season: core.Summer, Name: "Summer", Count: 12},
	}, totals)
}

func TestAnalyzeEmpty(t *testing.T) {
	_, err := Analyze(nil)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
	_, err = SeasonExtremes(nil)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func randomRecords(t *testing.T, n int, seed int64) []core.DailyRecord {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]core.DailyRecord, n)
	for i := range out {
		d := start.AddDate(0, 0, i%731)
		out[i] = core.NewRecord(d,
			core.Seasons[rng.Intn(len(core.Seasons))],
			d.Year()-2011,
			rng.Intn(2),
			rng.Intn(3000), rng.Intn(7000), 0)
		out[i].Count = out[i].Casual + out[i].Registered
	}
	return out
}

func TestAggregateInvariants(t *testing.T) {
	records := randomRecords(t, 731, 42)

	var total int
	for _, r := range records {
		total += r.Count
	}

	monthly := MonthlyHoliday(records)
	var monthlySum int
	for _, a := range monthly {
		monthlySum += a.Count
		assert.Equal(t, a.Casual+a.Registered, a.Count)
	}
	assert.Equal(t, total, monthlySum)

	seasonYear := SeasonYear(records)
	var seasonSum int
	for _, a := range seasonYear {
		seasonSum += a.Count
	}
	assert.Equal(t, total, seasonSum)

	ext := HolidayExtremes(monthly)
	for _, r := range []core.CountRange{ext.Holiday, ext.NonHoliday} {
		require.True(t, r.Valid)
		assert.GreaterOrEqual(t, r.Max, r.Min)
	}

	season, err := SeasonExtremes(seasonYear)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, season.Max, season.Min)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	records := randomRecords(t, 400, 7)
	first, err := Analyze(records)
	require.NoError(t, err)

	shuffled := append([]core.DailyRecord(nil), records...)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	second, err := Analyze(shuffled)
	require.NoError(t, err)

	assert.Equal(t, first.Monthly, second.Monthly)
	assert.Equal(t, first.SeasonYear, second.SeasonYear)
	assert.Equal(t, first.Holiday, second.Holiday)
	assert.Equal(t, first.Season, second.Season)
	assert.Equal(t, first.Rows, first.HolidayRows+first.NonHolidayRows)
}
