package finance

import (
	"math"
	"sort"
)

// OrganizeYears groups observations by calendar year and picks the year to
// highlight: the current calendar year when it has data, otherwise the most
// recent year present. The third result is the last month available for the
// highlighted year.
func OrganizeYears(obs []Observation, currentYear int) (map[int]YearSeries, int, int) {
	byYear := make(map[int]YearSeries)
	for _, o := range obs {
		s, ok := byYear[o.Year]
		if !ok {
			s = make(YearSeries)
			byYear[o.Year] = s
		}
		s[o.Month] = o.Return
	}
	if len(byYear) == 0 {
		return byYear, 0, 0
	}

	highlight := currentYear
	if _, ok := byYear[currentYear]; !ok {
		highlight = maxYear(byYear)
	}
	lastMonth := 0
	for m := range byYear[highlight] {
		if m > lastMonth {
			lastMonth = m
		}
	}
	return byYear, highlight, lastMonth
}

func maxYear(byYear map[int]YearSeries) int {
	max := math.MinInt
	for y := range byYear {
		if y > max {
			max = y
		}
	}
	return max
}

// Summarize derives descriptive statistics for one ticker relative to the
// highlighted year. The historical average and stdev pool December returns
// of the other complete years; the highlighted year itself stays out so the
// figure it is compared against is independent of it. Best/worst scan
// December returns across all years that have one; on a tie the lower year
// wins.
func Summarize(byYear map[int]YearSeries, highlightYear, lastMonth int) Summary {
	sum := Summary{HighlightYear: highlightYear, LastMonth: lastMonth}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	if len(years) > 0 {
		sum.StartYear = years[0]
	}

	var decPool []float64 // December returns feeding avg/stdev
	for _, y := range years {
		dec, ok := byYear[y][12]
		if !ok {
			continue
		}
		if dec > bestOrInit(sum.BestReturn) {
			yy, rr := y, dec
			sum.BestYear, sum.BestReturn = &yy, &rr
		}
		if dec < worstOrInit(sum.WorstReturn) {
			yy, rr := y, dec
			sum.WorstYear, sum.WorstReturn = &yy, &rr
		}
		if y == highlightYear {
			continue
		}
		decPool = append(decPool, dec)
	}

	sum.CompleteYears = len(decPool)
	if len(decPool) > 0 {
		avg := mean(decPool)
		sum.HistAvg = &avg
		if len(decPool) > 1 {
			sd := sampleStdev(decPool, avg)
			sum.HistStdev = &sd
		}
	}

	if s, ok := byYear[highlightYear]; ok {
		last := 0
		for m := range s {
			if m > last {
				last = m
			}
		}
		if last > 0 {
			cur := s[last]
			sum.CurrentYTD = &cur
		}
	}
	return sum
}

func bestOrInit(cur *float64) float64 {
	if cur == nil {
		return math.Inf(-1)
	}
	return *cur
}

func worstOrInit(cur *float64) float64 {
	if cur == nil {
		return math.Inf(1)
	}
	return *cur
}

func mean(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals))
}

// sampleStdev uses N-1 degrees of freedom for an unbiased estimator.
func sampleStdev(vals []float64, avg float64) float64 {
	variance := 0.0
	for _, v := range vals {
		d := v - avg
		variance += d * d
	}
	variance /= float64(len(vals) - 1)
	return math.Sqrt(variance)
}
