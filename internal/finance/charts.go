package finance

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vicanso/go-charts/v2"
)

// seriesValues flattens a YearSeries into per-month percent values for
// months 1..through (capped at the series' own last month). Gaps are
// forward-filled so a missing interior bar does not shift later months.
func seriesValues(s YearSeries, through int) []float64 {
	last := 0
	for m := range s {
		if m > last {
			last = m
		}
	}
	if last > through {
		last = through
	}
	if last == 0 {
		return nil
	}
	// leading gap: start flat from the first available value
	prev := 0.0
	found := false
	for m := 1; m <= last; m++ {
		if v, ok := s[m]; ok {
			prev = v * 100
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	out := make([]float64, 0, last)
	for m := 1; m <= last; m++ {
		if v, ok := s[m]; ok {
			prev = v * 100
		}
		out = append(out, prev)
	}
	return out
}

func paddedRange(values [][]float64) (*float64, *float64) {
	var mn, mx float64
	seen := false
	for _, vs := range values {
		for _, v := range vs {
			if !seen {
				mn, mx = v, v
				seen = true
				continue
			}
			if v < mn {
				mn = v
			}
			if v > mx {
				mx = v
			}
		}
	}
	if !seen {
		return nil, nil
	}
	pad := (mx - mn) * 0.08
	if pad == 0 {
		pad = 1
	}
	mn -= pad
	mx += pad
	return &mn, &mx
}

// MakeHistoryChart renders the multi-year YTD line chart for one ticker:
// every historical year as its own line, the highlighted year last so it
// tops the legend, with best/worst/average called out in the subtitle.
func MakeHistoryChart(r *HistoryReport) ([]byte, error) {
	if len(r.ByYear) == 0 {
		return nil, errors.New("no series to plot")
	}

	years := make([]int, 0, len(r.ByYear))
	for y := range r.ByYear {
		if y != r.HighlightYear {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	years = append(years, r.HighlightYear)

	values := make([][]float64, 0, len(years))
	names := make([]string, 0, len(years))
	for _, y := range years {
		through := 12
		if y == r.HighlightYear {
			through = r.LastMonth
		}
		vs := seriesValues(r.ByYear[y], through)
		if len(vs) == 0 {
			continue
		}
		values = append(values, vs)
		names = append(names, fmt.Sprintf("%d", y))
	}
	if len(values) == 0 {
		return nil, errors.New("no series to plot")
	}

	subtitle := historySubtitle(r.Summary)
	yMin, yMax := paddedRange(values)

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(strings.ToUpper(r.Ticker)+" • YTD by year (%)", subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: monthLabels, BoundaryGap: charts.FalseFlag()}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: yMin, Max: yMax, DivideCount: 6}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

func historySubtitle(s Summary) string {
	parts := []string{fmt.Sprintf("%d-%d", s.StartYear, s.HighlightYear)}
	if s.BestYear != nil {
		parts = append(parts, fmt.Sprintf("best %d %+.1f%%", *s.BestYear, *s.BestReturn*100))
	}
	if s.WorstYear != nil {
		parts = append(parts, fmt.Sprintf("worst %d %+.1f%%", *s.WorstYear, *s.WorstReturn*100))
	}
	if s.HistAvg != nil {
		parts = append(parts, fmt.Sprintf("avg %+.1f%% over %d yrs", *s.HistAvg*100, s.CompleteYears))
	}
	return strings.Join(parts, " • ")
}

// MakeComparisonChart renders the two-period comparison: one line per
// (ticker, period), truncated to the window's last month. Prior-period
// lines carry their year in the name so the legend disambiguates.
func MakeComparisonChart(r *ComparisonReport) ([]byte, error) {
	tickers := make([]string, 0, len(r.PerTicker))
	for t := range r.PerTicker {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	var values [][]float64
	var names []string
	for _, t := range tickers {
		ps := r.PerTicker[t]
		if vs := seriesValues(ps.Current, r.Window.LastMonth); len(vs) > 0 {
			values = append(values, vs)
			names = append(names, fmt.Sprintf("%s %d", t, r.Window.ComparisonYear))
		}
		if vs := seriesValues(ps.Prior, r.Window.LastMonth); len(vs) > 0 {
			values = append(values, vs)
			names = append(names, fmt.Sprintf("%s %d", t, r.Window.BaselineYear))
		}
	}
	if len(values) == 0 {
		return nil, errors.New("no series to plot")
	}

	yMin, yMax := paddedRange(values)
	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("YTD comparison (%)", r.Window.Describe()),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: monthLabels[:r.Window.LastMonth], BoundaryGap: charts.FalseFlag()}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: yMin, Max: yMax, DivideCount: 6}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
