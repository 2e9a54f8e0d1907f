package finance

import "sort"

// seriesThrough extracts one year's YTD series from an observation table,
// keeping only months <= lastMonth. Truncation, not padding: months beyond
// lastMonth are absent from the result. Returns nil when nothing survives.
func seriesThrough(obs []Observation, year, lastMonth int) YearSeries {
	var s YearSeries
	for _, o := range obs {
		if o.Year != year || o.Month > lastMonth {
			continue
		}
		if s == nil {
			s = make(YearSeries)
		}
		s[o.Month] = o.Return
	}
	return s
}

// PrepareComparison aligns each ticker's comparison-year and baseline-year
// series, both truncated to months <= lastMonth. A ticker with neither
// period is left out entirely; the caller reports such exclusions.
func PrepareComparison(tables map[string][]Observation, comparisonYear, baselineYear, lastMonth int) map[string]PeriodSeries {
	out := make(map[string]PeriodSeries, len(tables))
	for ticker, obs := range tables {
		cur := seriesThrough(obs, comparisonYear, lastMonth)
		prior := seriesThrough(obs, baselineYear, lastMonth)
		if cur == nil && prior == nil {
			continue
		}
		out[ticker] = PeriodSeries{Current: cur, Prior: prior}
	}
	return out
}

// LastValue returns the series value at its highest month, or nil for an
// empty series.
func (s YearSeries) LastValue() *float64 {
	last := 0
	for m := range s {
		if m > last {
			last = m
		}
	}
	if last == 0 {
		return nil
	}
	v := s[last]
	return &v
}

// ComparisonRows builds one row per ticker from the prepared period series,
// sorted by current return descending with nil values last. Ties and nils
// keep ascending ticker order, so the result is deterministic.
func ComparisonRows(data map[string]PeriodSeries) []ComparisonRow {
	tickers := make([]string, 0, len(data))
	for t := range data {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	rows := make([]ComparisonRow, 0, len(tickers))
	for _, t := range tickers {
		ps := data[t]
		row := ComparisonRow{
			Ticker:  t,
			Current: ps.Current.LastValue(),
			Prior:   ps.Prior.LastValue(),
		}
		if row.Current != nil && row.Prior != nil {
			d := *row.Current - *row.Prior
			row.Difference = &d
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Current, rows[j].Current
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	return rows
}
