package finance

import (
	"errors"
	"time"
)

// ErrNoData is returned when the price source produced no bars, or none of
// the bars fall inside the requested year range. Callers must treat it as
// "no data available", never as a zero return.
var ErrNoData = errors.New("no price data in requested range")

// YTDReturns converts monthly price bars for one ticker into YTD return
// observations for every (year, month) in [startYear, endYear].
//
//	YTD = close(year, month) / close(year-1, December) - 1
//
// Months of asOf's own year at or past asOf's month are dropped: the
// running month has no true month-end close yet. Months whose prior
// December close is absent are dropped too, so every emitted observation
// carries a computable return. asOf is the caller's clock; the function
// itself never reads time.Now.
func YTDReturns(bars []PriceBar, startYear, endYear int, asOf time.Time) ([]Observation, error) {
	nowYear := asOf.Year()
	nowMonth := int(asOf.Month())

	kept := make([]PriceBar, 0, len(bars))
	for _, b := range bars {
		y, m := b.Date.Year(), int(b.Date.Month())
		if y < startYear || y > endYear {
			continue
		}
		if endYear == nowYear && y == nowYear && m >= nowMonth {
			continue
		}
		kept = append(kept, b)
	}
	if len(kept) == 0 {
		return nil, ErrNoData
	}

	// December closes keyed by year, for the following year's baseline.
	decClose := make(map[int]float64)
	for _, b := range kept {
		if b.Date.Month() == time.December {
			decClose[b.Date.Year()] = b.Close
		}
	}

	obs := make([]Observation, 0, len(kept))
	for _, b := range kept {
		y, m := b.Date.Year(), int(b.Date.Month())
		base, ok := decClose[y-1]
		if !ok {
			continue // no baseline, partial result beats failing the ticker
		}
		obs = append(obs, Observation{
			Year:   y,
			Month:  m,
			Close:  b.Close,
			Return: b.Close/base - 1,
		})
	}
	return obs, nil
}
