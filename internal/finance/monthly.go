package finance

import "time"

// easternTime returns America/New_York, falling back to fixed EST if tzdata
// is missing. Month-end boundaries follow the exchange calendar, not UTC.
func easternTime() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*3600)
	}
	return loc
}

// resampleMonthly collapses ascending daily closes to one bar per calendar
// month, keeping the last trading day's close. Zero or negative closes are
// skipped (Yahoo emits zeros for holiday rows).
func resampleMonthly(ts []int64, closes []float64) []PriceBar {
	et := easternTime()
	var bars []PriceBar
	for i, t := range ts {
		if i >= len(closes) || closes[i] <= 0 {
			continue
		}
		day := time.Unix(t, 0).In(et)
		if n := len(bars); n > 0 &&
			bars[n-1].Date.Year() == day.Year() && bars[n-1].Date.Month() == day.Month() {
			bars[n-1] = PriceBar{Date: day, Close: closes[i]}
			continue
		}
		bars = append(bars, PriceBar{Date: day, Close: closes[i]})
	}
	return bars
}
