package finance

import (
	"fmt"
	"time"
)

// Window describes which pair of years can be compared apples-to-apples as
// of a given date, and through which month. In January the only complete
// window is the previous full year, so the just-finished year is compared
// against the year before it through December. In any other month the
// current year is compared against the prior year through the most recently
// completed month; the running month never has a month-end close and is
// always excluded.
type Window struct {
	DisplayYear    int
	ComparisonYear int
	BaselineYear   int
	LastMonth      int // 1-12
	JanuaryMode    bool
}

// ResolveWindow computes the comparison window for an explicit as-of time.
// Pure function: the caller supplies the clock.
func ResolveWindow(asOf time.Time) Window {
	year := asOf.Year()
	month := int(asOf.Month())

	if month == 1 {
		return Window{
			DisplayYear:    year,
			ComparisonYear: year - 1,
			BaselineYear:   year - 2,
			LastMonth:      12,
			JanuaryMode:    true,
		}
	}
	return Window{
		DisplayYear:    year,
		ComparisonYear: year,
		BaselineYear:   year - 1,
		LastMonth:      month - 1,
		JanuaryMode:    false,
	}
}

// Describe renders the two compared periods for captions, e.g.
// "Full 2025 vs Full 2024" or "YTD 2026 vs YTD 2025 (through Feb)".
func (w Window) Describe() string {
	if w.JanuaryMode {
		return fmt.Sprintf("Full %d vs Full %d", w.ComparisonYear, w.BaselineYear)
	}
	return fmt.Sprintf("YTD %d vs YTD %d (through %s)",
		w.ComparisonYear, w.BaselineYear, MonthLabel(w.LastMonth))
}
