// Package chart renders the report's bar charts as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"bikeshare/internal/analysis"
	"bikeshare/internal/core"
)

// Legend and axis labels.
const (
	LabelNonHoliday = "Non-Libur"
	LabelHoliday    = "Libur"

	monthlyTitle = "Jumlah Penyewaan Sepeda Tiap Bulan Berdasarkan Hari Libur"
	seasonTitle  = "Jumlah Penyewaan Sepeda Berdasarkan Musim Sepanjang Tahun"
	countLabel   = "Jumlah Penyewaan Sepeda"
)

// MonthLabels are the x-axis ticks of the monthly chart, Jan to Dec.
var MonthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// coolwarm endpoints and the two interior stops used for four seasons.
var (
	coolBlue = color.RGBA{R: 59, G: 76, B: 192, A: 255}
	warmRed  = color.RGBA{R: 180, G: 4, B: 38, A: 255}

	seasonPalette = []color.Color{
		coolBlue,
		color.RGBA{R: 170, G: 199, B: 253, A: 255},
		color.RGBA{R: 247, G: 168, B: 137, A: 255},
		warmRed,
	}
)

var errNoData = errors.New("chart: no data")

// Size of rendered images.
var (
	Width  = 10 * vg.Inch
	Height = 5 * vg.Inch
)

// MonthlyHoliday draws grouped bars of summed cnt per month, one bar for
// non-holiday and one for holiday days. Months without a group draw as zero.
func MonthlyHoliday(aggs []core.MonthlyHolidayAggregate) ([]byte, error) {
	if len(aggs) == 0 {
		return nil, errNoData
	}

	nonHoliday := make(plotter.Values, len(MonthLabels))
	holiday := make(plotter.Values, len(MonthLabels))
	for _, a := range aggs {
		if a.Month < 1 || a.Month > len(MonthLabels) {
			return nil, fmt.Errorf("chart: month %d out of range", a.Month)
		}
		if a.Holiday == 1 {
			holiday[a.Month-1] += float64(a.Count)
		} else {
			nonHoliday[a.Month-1] += float64(a.Count)
		}
	}

	p := plot.New()
	p.Title.Text = monthlyTitle
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Bulan"
	p.Y.Label.Text = countLabel

	w := vg.Points(14)
	nonBars, err := plotter.NewBarChart(nonHoliday, w)
	if err != nil {
		return nil, fmt.Errorf("chart: non-holiday bars: %w", err)
	}
	nonBars.Color = coolBlue
	nonBars.LineStyle.Width = vg.Length(0)
	nonBars.Offset = -w / 2

	holBars, err := plotter.NewBarChart(holiday, w)
	if err != nil {
		return nil, fmt.Errorf("chart: holiday bars: %w", err)
	}
	holBars.Color = warmRed
	holBars.LineStyle.Width = vg.Length(0)
	holBars.Offset = w / 2

	p.Add(plotter.NewGrid())
	p.Add(nonBars, holBars)
	p.Legend.Add(LabelNonHoliday, nonBars)
	p.Legend.Add(LabelHoliday, holBars)
	p.Legend.Top = true
	p.NominalX(MonthLabels...)

	return encode(p)
}

// Seasons draws one bar per season in code order, labelled with the season
// name.
func Seasons(totals []analysis.SeasonTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, errNoData
	}

	p := plot.New()
	p.Title.Text = seasonTitle
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Musim"
	p.Y.Label.Text = countLabel
	p.Add(plotter.NewGrid())

	names := make([]string, len(totals))
	for i, t := range totals {
		names[i] = t.Name
		bars, err := plotter.NewBarChart(plotter.Values{float64(t.Count)}, vg.Points(40))
		if err != nil {
			return nil, fmt.Errorf("chart: %s bar: %w", t.Name, err)
		}
		bars.XMin = float64(i)
		bars.Color = seasonPalette[int(t.Season-1)%len(seasonPalette)]
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.Legend.Add(t.Name, bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)
	p.X.Tick.Label.XAlign = draw.XCenter

	return encode(p)
}

func encode(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return nil, fmt.Errorf("chart: png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
