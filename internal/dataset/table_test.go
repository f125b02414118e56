package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
)

var dayHeader = []string{"instant", "dteday", "season", "yr", "mnth", "holiday", "weekday", "workingday", "weathersit", "temp", "casual", "registered", "cnt"}

func dayMatrix(rows ...[]string) [][]string {
	return append([][]string{dayHeader}, rows...)
}

func TestFromMatrixParsesRecords(t *testing.T) {
	tbl, err := FromMatrix(dayMatrix(
		[]string{"1", "2011-01-01", "1", "0", "1", "0", "6", "0", "2", "0.344167", "331", "654", "985"},
		[]string{"2", "2011-01-02", "1", "0", "1", "0", "0", "0", "2", "0.363478", "131", "670", "801"},
		[]string{"3", "2011-02-03", "1", "0", "2", "1", "1", "1", "1", "0.196364", "120", "1229", "1349"},
	))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	first := tbl.Records[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, core.Spring, first.Season)
	assert.Equal(t, 0, first.Year)
	assert.Equal(t, 331, first.Casual)
	assert.Equal(t, 654, first.Registered)
	assert.Equal(t, 985, first.Count)
	assert.Equal(t, 2, tbl.Records[2].Month)
	assert.Equal(t, 1, tbl.Records[2].Holiday)
	assert.Zero(t, tbl.Inconsistent)

	assert.Equal(t, 3, tbl.Frame.Nrow())
	assert.Contains(t, tbl.Frame.Names(), ColMonth)
	assert.Equal(t, len(dayHeader)+1, tbl.Frame.Ncol())
}

func TestFromMatrixAcceptsBOMAndSlashDates(t *testing.T) {
	m := [][]string{
		{"\ufeffdteday", "season", "yr", "holiday", "casual", "registered", "cnt"},
		{"2012/12/31", "1", "1", "0", "439", "2290", "2729"},
	}
	tbl, err := FromMatrix(m)
	require.NoError(t, err)
	assert.Equal(t, 12, tbl.Records[0].Month)
}

func TestFromMatrixAcceptsDateTimes(t *testing.T) {
	tbl, err := FromMatrix([][]string{
		{"dteday", "season", "yr", "holiday", "casual", "registered", "cnt"},
		{"2011-03-01 00:00:00", "1", "0", "0", "5", "10", "15"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Records[0].Month)
}

func TestFromMatrixMissingColumns(t *testing.T) {
	_, err := FromMatrix([][]string{
		{"dteday", "season", "yr", "casual", "registered"},
		{"2011-01-01", "1", "0", "5", "10"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingColumns)
	assert.ErrorIs(t, err, core.ErrInputUnavailable)
	assert.Contains(t, err.Error(), "holiday")
	assert.Contains(t, err.Error(), "cnt")
	assert.Equal(t, core.KindInputUnavailable, core.Kind(err))

	_, err = FromMatrix(nil)
	assert.ErrorIs(t, err, core.ErrMissingColumns)
	assert.ErrorIs(t, err, core.ErrInputUnavailable)
}

func TestFromMatrixEmpty(t *testing.T) {
	_, err := FromMatrix(dayMatrix())
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestFromMatrixInvalidRows(t *testing.T) {
	header := []string{"dteday", "season", "yr", "holiday", "casual", "registered", "cnt"}
	cases := []struct {
		name string
		row  []string
	}{
		{"bad date", []string{"01-01-2011", "1", "0", "0", "5", "10", "15"}},
		{"non integer count", []string{"2011-01-01", "1", "0", "0", "five", "10", "15"}},
		{"holiday flag out of range", []string{"2011-01-01", "1", "0", "2", "5", "10", "15"}},
		{"year flag out of range", []string{"2011-01-01", "1", "3", "0", "5", "10", "15"}},
		{"negative casual", []string{"2011-01-01", "1", "0", "0", "-5", "10", "5"}},
		{"short row", []string{"2011-01-01", "1", "0"}},
		{"extra field", []string{"2011-01-01", "1", "0", "0", "5", "10", "15", "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromMatrix([][]string{header, tc.row})
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidRecord)
			assert.Contains(t, err.Error(), "row 1")
		})
	}
}

func TestFromMatrixRejectsRowMissingTrailingColumn(t *testing.T) {
	var err error
	require.NotPanics(t, func() {
		_, err = FromMatrix([][]string{
			{"dteday", "season", "yr", "holiday", "casual", "registered", "cnt", "temp"},
			{"2011-01-01", "1", "0", "0", "5", "10", "15", "0.34"},
			{"2011-01-02", "1", "0", "0", "5", "10", "15"},
		})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRecord)
	assert.Contains(t, err.Error(), "row 2")
}

func TestFromMatrixKeepsUnknownSeasonForLookup(t *testing.T) {
	tbl, err := FromMatrix([][]string{
		{"dteday", "season", "yr", "holiday", "casual", "registered", "cnt"},
		{"2011-01-01", "9", "0", "0", "5", "10", "15"},
	})
	require.NoError(t, err)
	assert.Equal(t, core.Season(9), tbl.Records[0].Season)
}

func TestFromMatrixCountsInconsistentRows(t *testing.T) {
	tbl, err := FromMatrix([][]string{
		{"dteday", "season", "yr", "holiday", "casual", "registered", "cnt"},
		{"2011-01-01", "1", "0", "0", "5", "10", "15"},
		{"2011-01-02", "1", "0", "0", "5", "10", "16"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Inconsistent)
}

func TestTableInfoHeadDescribe(t *testing.T) {
	tbl, err := FromMatrix([][]string{
		{"dteday", "season", "yr", "holiday", "casual", "registered", "cnt"},
		{"2011-01-01", "1", "0", "0", "5", "10", "15"},
		{"2011-01-02", "1", "0", "1", "2", "3", "5"},
		{"2011-01-03", "1", "0", "0", "1", "1", "2"},
	})
	require.NoError(t, err)

	info := tbl.Info()
	require.Len(t, info, 8)
	assert.Equal(t, "dteday", info[0].Name)
	assert.Equal(t, "string", info[0].Type)
	assert.Equal(t, 3, info[0].NonNull)
	assert.Equal(t, ColMonth, info[7].Name)
	assert.Equal(t, "int", info[7].Type)

	head := tbl.Head(2)
	require.Len(t, head, 3)
	assert.Equal(t, "dteday", head[0][0])
	assert.Equal(t, "2011-01-02", head[2][0])

	assert.Len(t, tbl.Head(10), 4)
	assert.Len(t, tbl.Head(0), 1)

	desc := tbl.Describe()
	require.NotEmpty(t, desc)
	assert.Contains(t, desc[0], "cnt")
	assert.Greater(t, len(desc), 1)
}
