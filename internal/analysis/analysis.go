// Package analysis groups the day records and extracts the extremes shown in
// the report.
package analysis

import (
	"fmt"
	"sort"

	"bikeshare/internal/core"
)

type monthHolidayKey struct {
	month, holiday int
}

type yearSeasonKey struct {
	year   int
	season core.Season
}

// MonthlyHoliday sums casual, registered and cnt per (month, holiday).
// Groups are ordered by month, then holiday.
func MonthlyHoliday(records []core.DailyRecord) []core.MonthlyHolidayAggregate {
	groups := make(map[monthHolidayKey]*core.MonthlyHolidayAggregate)
	for _, r := range records {
		k := monthHolidayKey{r.Month, r.Holiday}
		g, ok := groups[k]
		if !ok {
			g = &core.MonthlyHolidayAggregate{Month: r.Month, Holiday: r.Holiday}
			groups[k] = g
		}
		g.Casual += r.Casual
		g.Registered += r.Registered
		g.Count += r.Count
	}

	out := make([]core.MonthlyHolidayAggregate, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Holiday < out[j].Holiday
	})
	return out
}

// HolidayExtremes takes the max and min summed cnt over the holiday=1 and
// holiday=0 groups separately. A side with no groups is left invalid.
func HolidayExtremes(aggs []core.MonthlyHolidayAggregate) core.HolidayExtremes {
	var ext core.HolidayExtremes
	for _, a := range aggs {
		side := &ext.NonHoliday
		if a.Holiday == 1 {
			side = &ext.Holiday
		}
		side.Observe(a.Count)
	}
	return ext
}

// SeasonYear sums cnt per (year, season), ordered by year then season.
func SeasonYear(records []core.DailyRecord) []core.SeasonYearAggregate {
	groups := make(map[yearSeasonKey]int)
	for _, r := range records {
		groups[yearSeasonKey{r.Year, r.Season}] += r.Count
	}

	out := make([]core.SeasonYearAggregate, 0, len(groups))
	for k, cnt := range groups {
		out = append(out, core.SeasonYearAggregate{Year: k.year, Season: k.season, Count: cnt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Season < out[j].Season
	})
	return out
}

// SeasonExtremes finds the global max and min over the season-year sums and
// names the season of the first group holding each value. An unknown season
// code on either extreme is returned as an error wrapping
// core.ErrUnknownSeason.
func SeasonExtremes(aggs []core.SeasonYearAggregate) (core.SeasonExtremes, error) {
	if len(aggs) == 0 {
		return core.SeasonExtremes{}, core.ErrEmptyDataset
	}

	maxIdx, minIdx := 0, 0
	for i, a := range aggs {
		if a.Count > aggs[maxIdx].Count {
			maxIdx = i
		}
		if a.Count < aggs[minIdx].Count {
			minIdx = i
		}
	}

	ext := core.SeasonExtremes{
		Max:       aggs[maxIdx].Count,
		Min:       aggs[minIdx].Count,
		MaxSeason: aggs[maxIdx].Season,
		MinSeason: aggs[minIdx].Season,
	}
	var err error
	if ext.MaxSeasonName, err = ext.MaxSeason.Name(); err != nil {
		return core.SeasonExtremes{}, fmt.Errorf("max season-year group (year %d): %w", aggs[maxIdx].Year, err)
	}
	if ext.MinSeasonName, err = ext.MinSeason.Name(); err != nil {
		return core.SeasonExtremes{}, fmt.Errorf("min season-year group (year %d): %w", aggs[minIdx].Year, err)
	}
	return ext, nil
}

// SeasonTotal is the cnt sum for one season across all years.
type SeasonTotal struct {
	Season core.Season
	Name   string
	Count  int
}

// SeasonTotals collapses the season-year sums across years, in season code
// order. It is what the season chart plots.
func SeasonTotals(aggs []core.SeasonYearAggregate) ([]SeasonTotal, error) {
	sums := make(map[core.Season]int)
	for _, a := range aggs {
		sums[a.Season] += a.Count
	}

	out := make([]SeasonTotal, 0, len(sums))
	for s, cnt := range sums {
		name, err := s.Name()
		if err != nil {
			return nil, err
		}
		out = append(out, SeasonTotal{Season: s, Name: name, Count: cnt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out, nil
}
