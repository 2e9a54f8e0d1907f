package finance

import (
	"sort"
	"time"
)

// HistoryReport is everything the single-ticker historical view needs:
// the per-year series, the highlighted year, and its summary statistics.
// All truncation and alignment is already applied; renderers do no date
// arithmetic of their own.
type HistoryReport struct {
	Ticker        string
	Observations  []Observation
	ByYear        map[int]YearSeries
	HighlightYear int
	LastMonth     int
	Summary       Summary
}

// AnalyzeHistory runs the full single-ticker pipeline: fetch monthly bars
// from startYear, compute YTD observations, organize per-year series and
// summarize. Returns ErrNoData (possibly wrapped) when the ticker has no
// usable bars or no computable observation.
func AnalyzeHistory(src BarSource, ticker string, startYear int, asOf time.Time) (*HistoryReport, error) {
	bars, err := src.MonthlyBars(ticker, startYear)
	if err != nil {
		return nil, err
	}
	obs, err := YTDReturns(bars, startYear, asOf.Year(), asOf)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, ErrNoData
	}
	byYear, highlight, lastMonth := OrganizeYears(obs, asOf.Year())
	return &HistoryReport{
		Ticker:        ticker,
		Observations:  obs,
		ByYear:        byYear,
		HighlightYear: highlight,
		LastMonth:     lastMonth,
		Summary:       Summarize(byYear, highlight, lastMonth),
	}, nil
}

// ComparisonReport carries the aligned two-period series and the ranked
// row table for the multi-ticker view, plus the tickers that produced no
// usable data so the caller can report them.
type ComparisonReport struct {
	Window    Window
	PerTicker map[string]PeriodSeries
	Rows      []ComparisonRow
	Failed    []string
}

// AnalyzeComparison fetches and computes YTD tables for each ticker, then
// aligns them into the comparison window for asOf. Tickers that fail to
// load or yield no observations land in Failed instead of aborting the
// batch. Whether the surviving set is big enough to be worth showing is
// the caller's decision.
func AnalyzeComparison(src BarSource, tickers []string, asOf time.Time) *ComparisonReport {
	w := ResolveWindow(asOf)
	// baseline year needs its own prior December, so fetch one year earlier
	startYear := w.BaselineYear - 1

	tables := make(map[string][]Observation, len(tickers))
	var failed []string
	for _, t := range tickers {
		bars, err := src.MonthlyBars(t, startYear)
		if err != nil {
			failed = append(failed, t)
			continue
		}
		obs, err := YTDReturns(bars, startYear, w.ComparisonYear, asOf)
		if err != nil || len(obs) == 0 {
			failed = append(failed, t)
			continue
		}
		tables[t] = obs
	}

	perTicker := PrepareComparison(tables, w.ComparisonYear, w.BaselineYear, w.LastMonth)
	for t := range tables {
		if _, ok := perTicker[t]; !ok {
			failed = append(failed, t)
		}
	}
	sort.Strings(failed)
	return &ComparisonReport{
		Window:    w,
		PerTicker: perTicker,
		Rows:      ComparisonRows(perTicker),
		Failed:    failed,
	}
}
