// Package report assembles the bike rental analysis page from a loaded
// table: descriptive sections, the two research-question narratives and
// their charts, and the conclusions.
package report

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"

	"golang.org/x/sync/errgroup"

	"bikeshare/internal/analysis"
	"bikeshare/internal/chart"
	"bikeshare/internal/dataset"
)

// DefaultHeadRows is how many leading rows the page shows.
const DefaultHeadRows = 5

// Options tune Build.
type Options struct {
	HeadRows int
}

// Grid is a header plus rows of preformatted cells.
type Grid struct {
	Header []string
	Rows   [][]string
}

// Section is a heading with lines of narrative and an optional chart.
type Section struct {
	Heading string
	Lines   []string
	Chart   template.URL
	Alt     string
}

// Page is everything the report template renders, in display order.
type Page struct {
	Title     string
	Questions []string

	InfoHeading     string
	DescribeHeading string
	HeadHeading     string

	Rows         int
	Info         []dataset.ColumnInfo
	Describe     Grid
	Head         Grid
	Inconsistent int

	Holiday Section
	Season  Section

	ConclusionHeading string
	Conclusions       []string

	Result *analysis.Result
}

// Build runs the analysis over t and renders both charts concurrently.
// It fails as a whole: no Page is returned alongside an error. The same
// table always yields the same Page.
func Build(ctx context.Context, t *dataset.Table, opts Options) (*Page, error) {
	if opts.HeadRows <= 0 {
		opts.HeadRows = DefaultHeadRows
	}

	res, err := analysis.Analyze(t.Records)
	if err != nil {
		return nil, err
	}

	var monthlyPNG, seasonPNG []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := chart.MonthlyHoliday(res.Monthly)
		if err != nil {
			return fmt.Errorf("monthly chart: %w", err)
		}
		monthlyPNG = b
		return gctx.Err()
	})
	g.Go(func() error {
		b, err := chart.Seasons(res.SeasonTotals)
		if err != nil {
			return fmt.Errorf("season chart: %w", err)
		}
		seasonPNG = b
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page := &Page{
		Title:        Title,
		Questions:    []string{Question1, Question2},

		InfoHeading:     InfoHeading,
		DescribeHeading: DescribeHeading,
		HeadHeading:     HeadHeading,

		Rows:         t.Len(),
		Info:         t.Info(),
		Describe:     toGrid(t.Describe()),
		Head:         toGrid(t.Head(opts.HeadRows)),
		Inconsistent: t.Inconsistent,
		Holiday: Section{
			Heading: HolidayHeading,
			Lines:   holidayLines(res),
			Chart:   dataURI(monthlyPNG),
			Alt:     chart.LabelNonHoliday + " / " + chart.LabelHoliday,
		},
		Season: Section{
			Heading: SeasonHeading,
			Lines:   seasonLines(res),
			Chart:   dataURI(seasonPNG),
			Alt:     SeasonHeading,
		},
		ConclusionHeading: ConclusionHeading,
		Conclusions:       []string{Conclusion1, Conclusion2},
		Result:            res,
	}
	return page, nil
}

func toGrid(records [][]string) Grid {
	if len(records) == 0 {
		return Grid{}
	}
	return Grid{Header: records[0], Rows: records[1:]}
}

// dataURI is trusted: the bytes come from our own PNG encoder.
func dataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
