package core

import (
	"errors"
	"fmt"
	"time"
)

// Season codes as they appear in the dataset.
const (
	Spring Season = 1
	Summer Season = 2
	Fall   Season = 3
	Winter Season = 4
)

type (
	// Season is the categorical season code (1-4).
	Season int

	// DailyRecord is one calendar day of rentals.
	DailyRecord struct {
		Date       time.Time
		Month      int `validate:"min=1,max=12"` // derived from Date
		Season     Season
		Year       int `validate:"oneof=0 1"`
		Holiday    int `validate:"oneof=0 1"`
		Casual     int `validate:"gte=0"`
		Registered int `validate:"gte=0"`
		Count      int `validate:"gte=0"` // cnt
	}
)

var seasonNames = map[Season]string{
	Spring: "Spring",
	Summer: "Summer",
	Fall:   "Fall",
	Winter: "Winter",
}

// Seasons lists the known season codes in display order.
var Seasons = []Season{Spring, Summer, Fall, Winter}

// Name maps the season code to its display name. Codes outside 1-4 are an
// error, never a default.
func (s Season) Name() (string, error) {
	name, ok := seasonNames[s]
	if !ok {
		return "", &UnknownSeasonError{Code: int(s)}
	}
	return name, nil
}

// UnknownSeasonError reports a season code without a name.
type UnknownSeasonError struct {
	Code int
}

func (e *UnknownSeasonError) Error() string {
	return fmt.Sprintf("unknown season code %d (want 1-4)", e.Code)
}

// Is lets errors.Is match ErrUnknownSeason.
func (e *UnknownSeasonError) Is(target error) bool {
	return target == ErrUnknownSeason
}

// Consistent reports whether cnt equals casual + registered.
func (r DailyRecord) Consistent() bool {
	return r.Casual+r.Registered == r.Count
}

// NewRecord builds a record and derives the month from the date.
func NewRecord(date time.Time, season Season, year, holiday, casual, registered, count int) DailyRecord {
	return DailyRecord{
		Date:       date,
		Month:      int(date.Month()),
		Season:     season,
		Year:       year,
		Holiday:    holiday,
		Casual:     casual,
		Registered: registered,
		Count:      count,
	}
}

var (
	// InputUnavailable kind.
	ErrInputUnavailable = errors.New("input unavailable")
	ErrMissingColumns   = errors.New("missing required columns")
	ErrEmptyDataset     = errors.New("dataset has no rows")
	ErrInvalidRecord    = errors.New("invalid record")

	// LookupFailure kind.
	ErrUnknownSeason = errors.New("unknown season")
)

// Error kinds used for logs and metrics labels.
const (
	KindInputUnavailable = "input_unavailable"
	KindLookupFailure    = "lookup_failure"
	KindInternal         = "internal"
)

// Kind classifies err into one of the report error kinds.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownSeason):
		return KindLookupFailure
	case errors.Is(err, ErrInputUnavailable),
		errors.Is(err, ErrMissingColumns),
		errors.Is(err, ErrEmptyDataset),
		errors.Is(err, ErrInvalidRecord):
		return KindInputUnavailable
	default:
		return KindInternal
	}
}
