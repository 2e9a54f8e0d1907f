package finance

import (
	"testing"
	"time"
)

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		name           string
		year           int
		month          time.Month
		comparisonYear int
		baselineYear   int
		lastMonth      int
		januaryMode    bool
	}{
		{"january falls back to full prior year", 2026, time.January, 2025, 2024, 12, true},
		{"march compares through february", 2026, time.March, 2026, 2025, 2, false},
		{"february compares through january", 2026, time.February, 2026, 2025, 1, false},
		{"december compares through november", 2025, time.December, 2025, 2024, 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asOf := time.Date(tt.year, tt.month, 15, 10, 0, 0, 0, time.UTC)
			w := ResolveWindow(asOf)
			if w.DisplayYear != tt.year {
				t.Errorf("display year: expected %d, got %d", tt.year, w.DisplayYear)
			}
			if w.ComparisonYear != tt.comparisonYear {
				t.Errorf("comparison year: expected %d, got %d", tt.comparisonYear, w.ComparisonYear)
			}
			if w.BaselineYear != tt.baselineYear {
				t.Errorf("baseline year: expected %d, got %d", tt.baselineYear, w.BaselineYear)
			}
			if w.LastMonth != tt.lastMonth {
				t.Errorf("last month: expected %d, got %d", tt.lastMonth, w.LastMonth)
			}
			if w.JanuaryMode != tt.januaryMode {
				t.Errorf("january mode: expected %v, got %v", tt.januaryMode, w.JanuaryMode)
			}
		})
	}
}

func TestWindowDescribe(t *testing.T) {
	jan := ResolveWindow(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	if got := jan.Describe(); got != "Full 2025 vs Full 2024" {
		t.Errorf("unexpected january description: %q", got)
	}
	mar := ResolveWindow(time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))
	if got := mar.Describe(); got != "YTD 2026 vs YTD 2025 (through Feb)" {
		t.Errorf("unexpected march description: %q", got)
	}
}
