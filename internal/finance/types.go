package finance

import "time"

// PriceBar is one month-end close for a ticker: the adjusted close on the
// last trading day of a calendar month. Bars are ordered ascending with at
// most one bar per (year, month).
type PriceBar struct {
	Date  time.Time
	Close float64
}

// Observation is a single computed YTD data point. Return is always
// computable: rows whose prior-December baseline is missing are never
// emitted in the first place.
type Observation struct {
	Year   int
	Month  int // 1-12
	Close  float64
	Return float64 // close / priorDecemberClose - 1
}

// YearSeries maps month (1-12) to YTD return for one (ticker, year).
type YearSeries map[int]float64

// Summary holds per-ticker descriptive statistics relative to a highlighted
// year. Pointer fields are nil when the underlying value does not exist;
// a nil is never interchangeable with a real 0.0 return.
type Summary struct {
	StartYear     int
	HighlightYear int
	LastMonth     int // last completed month of the highlighted year

	HistAvg       *float64 // mean of December YTD across complete years
	HistStdev     *float64 // sample stdev (ddof=1), needs >= 2 complete years
	CompleteYears int

	BestYear    *int
	BestReturn  *float64
	WorstYear   *int
	WorstReturn *float64

	CurrentYTD *float64 // latest available return in the highlighted year
}

// PeriodSeries pairs the truncated current and prior YTD series for one
// ticker in a two-period comparison. A nil series means the ticker has no
// data for that period.
type PeriodSeries struct {
	Current YearSeries
	Prior   YearSeries
}

// ComparisonRow is one line of the multi-ticker comparison table.
// Difference is nil whenever either operand is nil.
type ComparisonRow struct {
	Ticker     string
	Current    *float64
	Prior      *float64
	Difference *float64
}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthLabel returns the short English name for month 1-12.
func MonthLabel(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthLabels[month-1]
}
