package finance

import (
	"testing"
)

func TestOrganizeYears_HighlightSelection(t *testing.T) {
	obs := []Observation{
		{Year: 2024, Month: 1, Return: 0.10},
		{Year: 2024, Month: 2, Return: -0.01},
		{Year: 2024, Month: 12, Return: 0.20},
		{Year: 2025, Month: 1, Return: 0.02},
		{Year: 2025, Month: 2, Return: 0.04},
	}

	byYear, highlight, lastMonth := OrganizeYears(obs, 2025)
	if highlight != 2025 {
		t.Errorf("expected current year highlighted, got %d", highlight)
	}
	if lastMonth != 2 {
		t.Errorf("expected last month 2, got %d", lastMonth)
	}
	if len(byYear) != 2 || len(byYear[2024]) != 3 || len(byYear[2025]) != 2 {
		t.Errorf("unexpected grouping: %+v", byYear)
	}

	// current year absent from data: latest year present wins
	_, highlight, lastMonth = OrganizeYears(obs[:3], 2026)
	if highlight != 2024 {
		t.Errorf("expected fallback to latest data year, got %d", highlight)
	}
	if lastMonth != 12 {
		t.Errorf("expected last month 12, got %d", lastMonth)
	}
}

func TestSummarize_SingleCompleteYear(t *testing.T) {
	byYear := map[int]YearSeries{
		2024: {1: 0.10, 2: -0.01, 12: 0.20},
	}
	s := Summarize(byYear, 2024, 12)

	if s.BestYear == nil || *s.BestYear != 2024 || !approx(*s.BestReturn, 0.20) {
		t.Errorf("expected best year 2024 at 0.20, got %+v", s)
	}
	if s.WorstYear == nil || *s.WorstYear != 2024 || !approx(*s.WorstReturn, 0.20) {
		t.Errorf("expected worst year 2024 at 0.20, got %+v", s)
	}
	// the only complete year is the highlighted year itself, so the
	// historical pool is empty: null average, not 0%
	if s.CompleteYears != 0 || s.HistAvg != nil || s.HistStdev != nil {
		t.Errorf("expected empty historical pool, got %+v", s)
	}
	if s.CurrentYTD == nil || !approx(*s.CurrentYTD, 0.20) {
		t.Errorf("expected current YTD 0.20, got %+v", s.CurrentYTD)
	}
}

func TestSummarize_IncompleteHighlightExcluded(t *testing.T) {
	byYear := map[int]YearSeries{
		2022: {12: 0.10},
		2023: {12: -0.30},
		2024: {12: 0.30},
		2025: {1: 0.05, 2: 0.07},
	}
	s := Summarize(byYear, 2025, 2)

	if s.StartYear != 2022 {
		t.Errorf("expected start year 2022, got %d", s.StartYear)
	}
	if s.CompleteYears != 3 {
		t.Fatalf("expected 3 complete years, got %d", s.CompleteYears)
	}
	wantAvg := (0.10 - 0.30 + 0.30) / 3
	if s.HistAvg == nil || !approx(*s.HistAvg, wantAvg) {
		t.Errorf("expected avg %.6f, got %+v", wantAvg, s.HistAvg)
	}
	if s.HistStdev == nil {
		t.Fatal("expected stdev with 3 complete years")
	}
	// sample stdev of {0.10, -0.30, 0.30}
	if !approx(*s.HistStdev, 0.3055050463303893) {
		t.Errorf("unexpected sample stdev %.16f", *s.HistStdev)
	}
	if *s.BestYear != 2024 || *s.WorstYear != 2023 {
		t.Errorf("expected best 2024 / worst 2023, got %d / %d", *s.BestYear, *s.WorstYear)
	}
	if s.CurrentYTD == nil || !approx(*s.CurrentYTD, 0.07) {
		t.Errorf("expected current YTD from month 2, got %+v", s.CurrentYTD)
	}
}

func TestSummarize_TiesPickLowerYear(t *testing.T) {
	byYear := map[int]YearSeries{
		2021: {12: 0.15},
		2022: {12: 0.15},
		2023: {12: -0.05},
		2024: {12: -0.05},
	}
	s := Summarize(byYear, 2024, 12)
	if s.BestYear == nil || *s.BestYear != 2021 {
		t.Errorf("expected best-year tie to resolve to 2021, got %+v", s.BestYear)
	}
	if s.WorstYear == nil || *s.WorstYear != 2023 {
		t.Errorf("expected worst-year tie to resolve to 2023, got %+v", s.WorstYear)
	}
}

func TestSummarize_NoCompleteYears(t *testing.T) {
	byYear := map[int]YearSeries{
		2025: {1: 0.02, 2: 0.03},
	}
	s := Summarize(byYear, 2025, 2)
	if s.BestYear != nil || s.WorstYear != nil || s.BestReturn != nil || s.WorstReturn != nil {
		t.Errorf("expected nil best/worst without any December value, got %+v", s)
	}
	if s.HistAvg != nil || s.HistStdev != nil || s.CompleteYears != 0 {
		t.Errorf("expected empty historical pool, got %+v", s)
	}
	// a missing average is not a 0% average
	if s.CurrentYTD == nil || !approx(*s.CurrentYTD, 0.03) {
		t.Errorf("expected current YTD 0.03, got %+v", s.CurrentYTD)
	}
}
