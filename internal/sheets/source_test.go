package sheets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
	"bikeshare/internal/sheets"
	"bikeshare/internal/sheets/memory"
)

var grid = [][]string{
	{"instant", "dteday", "season", "yr", "mnth", "holiday", "casual", "registered", "cnt"},
	{"1", "2011-01-01", "1", "0", "1", "0", "331", "654", "985"},
	{"2", "2011-01-17", "1", "0", "1", "1", "1000", "1000", "2000"},
}

func TestSourceLoad(t *testing.T) {
	store := memory.New("day", grid)
	src := sheets.NewSource(store, "")

	tbl, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 2000, tbl.Records[1].Count)
	assert.Equal(t, 1, tbl.Records[1].Holiday)

	require.NoError(t, src.Ping(context.Background()))
	assert.Equal(t, 2, store.Reads())
}

func TestSourceLoadUnavailable(t *testing.T) {
	store := memory.New("day", grid)
	store.Fail()
	src := sheets.NewSource(store, "day")

	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrInputUnavailable)
	assert.ErrorIs(t, src.Ping(context.Background()), core.ErrInputUnavailable)
}

func TestSourceLoadWrongTab(t *testing.T) {
	src := sheets.NewSource(memory.New("day", grid), "hour")
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrInputUnavailable)
}

func TestSourceLoadHeaderOnly(t *testing.T) {
	src := sheets.NewSource(memory.New("day", grid[:1]), "day")
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestToMatrix(t *testing.T) {
	values := [][]any{
		{"dteday", "season", "cnt", "note"},
		{"2011-01-01", float64(1), 985.0},
		{},
		{"", nil},
		{" 2011-01-02 ", int64(2), 801, true},
	}
	got := sheets.ToMatrix(values)
	assert.Equal(t, [][]string{
		{"dteday", "season", "cnt", "note"},
		{"2011-01-01", "1", "985", ""},
		{"2011-01-02", "2", "801", "true"},
	}, got)

	assert.Nil(t, sheets.ToMatrix(nil))
}
