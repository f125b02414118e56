package core

// MonthlyHolidayAggregate sums one (month, holiday) group.
type MonthlyHolidayAggregate struct {
	Month      int // 1-12
	Holiday    int
	Casual     int
	Registered int
	Count      int
}

// SeasonYearAggregate sums cnt for one (year, season) group.
type SeasonYearAggregate struct {
	Year   int
	Season Season
	Count  int
}

// CountRange is the max/min of summed cnt over a subset of groups.
// Valid is false when the subset had no groups.
type CountRange struct {
	Max   int
	Min   int
	Valid bool
}

// HolidayExtremes holds the extremes of monthly sums split by holiday flag.
type HolidayExtremes struct {
	Holiday    CountRange
	NonHoliday CountRange
}

// SeasonExtremes holds the global extremes of the season-year sums and the
// season that produced each.
type SeasonExtremes struct {
	Max           int
	Min           int
	MaxSeason     Season
	MinSeason     Season
	MaxSeasonName string
	MinSeasonName string
}

// Observe folds v into the range.
func (r *CountRange) Observe(v int) {
	if !r.Valid {
		r.Max, r.Min, r.Valid = v, v, true
		return
	}
	if v > r.Max {
		r.Max = v
	}
	if v < r.Min {
		r.Min = v
	}
}
