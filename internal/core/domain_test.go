package core

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonName(t *testing.T) {
	cases := []struct {
		code Season
		want string
	}{
		{Spring, "Spring"},
		{Summer, "Summer"},
		{Fall, "Fall"},
		{Winter, "Winter"},
	}
	for _, tc := range cases {
		got, err := tc.code.Name()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestSeasonNameRejectsUnknownCodes(t *testing.T) {
	for _, code := range []Season{0, 5, -1, 42} {
		name, err := code.Name()
		require.Error(t, err, "code %d", code)
		assert.Empty(t, name)
		assert.ErrorIs(t, err, ErrUnknownSeason)

		var unknown *UnknownSeasonError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, int(code), unknown.Code)
	}
}

func TestNewRecordDerivesMonth(t *testing.T) {
	r := NewRecord(time.Date(2012, time.August, 14, 0, 0, 0, 0, time.UTC), Fall, 1, 0, 10, 20, 30)
	assert.Equal(t, 8, r.Month)
	assert.True(t, r.Consistent())

	r.Count = 31
	assert.False(t, r.Consistent())
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("open day.csv: %w", ErrInputUnavailable), KindInputUnavailable},
		{fmt.Errorf("header: %w", ErrMissingColumns), KindInputUnavailable},
		{ErrEmptyDataset, KindInputUnavailable},
		{fmt.Errorf("row 3: %w", ErrInvalidRecord), KindInputUnavailable},
		{fmt.Errorf("season extremes: %w", &UnknownSeasonError{Code: 7}), KindLookupFailure},
		{errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Kind(tc.err), "err=%v", tc.err)
	}
}
