package finance

import (
	"errors"
	"math"
	"testing"
	"time"
)

func monthEnd(year, month int, close float64) PriceBar {
	// last calendar day is close enough to the last trading day for tests
	d := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return PriceBar{Date: d, Close: close}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestYTDReturns_BaselineScenario(t *testing.T) {
	bars := []PriceBar{
		monthEnd(2023, 12, 100),
		monthEnd(2024, 1, 110),
		monthEnd(2024, 2, 99),
		monthEnd(2024, 12, 120),
	}
	asOf := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	obs, err := YTDReturns(bars, 2023, 2024, asOf)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Observation{
		{Year: 2024, Month: 1, Close: 110, Return: 0.10},
		{Year: 2024, Month: 2, Close: 99, Return: -0.01},
		{Year: 2024, Month: 12, Close: 120, Return: 0.20},
	}
	if len(obs) != len(expected) {
		t.Fatalf("expected %d observations, got %d: %+v", len(expected), len(obs), obs)
	}
	for i, want := range expected {
		got := obs[i]
		if got.Year != want.Year || got.Month != want.Month {
			t.Errorf("obs %d: expected (%d,%d), got (%d,%d)", i, want.Year, want.Month, got.Year, got.Month)
		}
		if !approx(got.Return, want.Return) {
			t.Errorf("obs %d: expected return %.6f, got %.6f", i, want.Return, got.Return)
		}
	}
}

func TestYTDReturns_MissingBaselineDropsYear(t *testing.T) {
	// history starts mid-2023 with no December 2022 close: 2023 yields
	// nothing, 2024 becomes computable once December 2023 exists
	bars := []PriceBar{
		monthEnd(2023, 6, 90),
		monthEnd(2023, 12, 100),
		monthEnd(2024, 1, 105),
	}
	asOf := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	obs, err := YTDReturns(bars, 2023, 2024, asOf)
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range obs {
		if o.Year == 2023 {
			t.Errorf("unexpected observation for baseline-less year: %+v", o)
		}
	}
	if len(obs) != 1 || obs[0].Month != 1 || !approx(obs[0].Return, 0.05) {
		t.Fatalf("expected single (2024,1,0.05) observation, got %+v", obs)
	}
}

func TestYTDReturns_DropsInProgressMonth(t *testing.T) {
	bars := []PriceBar{
		monthEnd(2025, 12, 100),
		monthEnd(2026, 1, 104),
		monthEnd(2026, 2, 108),
		monthEnd(2026, 3, 111), // running month, no true month-end close yet
	}
	asOf := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	obs, err := YTDReturns(bars, 2025, 2026, asOf)
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range obs {
		if o.Year == 2026 && o.Month >= 3 {
			t.Errorf("in-progress month leaked into output: %+v", o)
		}
	}
	if len(obs) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs))
	}
}

func TestYTDReturns_KeepsPastYearsComplete(t *testing.T) {
	// the in-progress cutoff applies only while endYear is the real
	// current year
	bars := []PriceBar{
		monthEnd(2023, 12, 100),
		monthEnd(2024, 11, 115),
		monthEnd(2024, 12, 120),
	}
	asOf := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	obs, err := YTDReturns(bars, 2023, 2024, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 2 {
		t.Fatalf("expected both 2024 observations, got %+v", obs)
	}
}

func TestYTDReturns_EmptyInput(t *testing.T) {
	asOf := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if _, err := YTDReturns(nil, 2020, 2026, asOf); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData for empty input, got %v", err)
	}

	// bars entirely outside the requested range count as no data too
	bars := []PriceBar{monthEnd(2015, 6, 50)}
	if _, err := YTDReturns(bars, 2020, 2026, asOf); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData for out-of-range bars, got %v", err)
	}
}

func TestYTDReturns_NoDecemberAnywhere(t *testing.T) {
	// zero observations but not an error: partial results are valid
	bars := []PriceBar{
		monthEnd(2024, 3, 100),
		monthEnd(2024, 6, 105),
	}
	asOf := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	obs, err := YTDReturns(bars, 2024, 2024, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 0 {
		t.Errorf("expected no observations without any baseline, got %+v", obs)
	}
}

func TestYTDReturns_Deterministic(t *testing.T) {
	bars := []PriceBar{
		monthEnd(2023, 12, 100),
		monthEnd(2024, 1, 101),
		monthEnd(2024, 2, 102),
	}
	asOf := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	first, err := YTDReturns(bars, 2023, 2024, asOf)
	if err != nil {
		t.Fatal(err)
	}
	second, err := YTDReturns(bars, 2023, 2024, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("observation %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
