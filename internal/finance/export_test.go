package finance

import (
	"strings"
	"testing"
)

func TestObservationsCSV(t *testing.T) {
	obs := []Observation{
		{Year: 2024, Month: 1, Close: 110, Return: 0.10},
		{Year: 2024, Month: 2, Close: 99, Return: -0.01},
	}
	out, err := ObservationsCSV(obs)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Year,Month,Adj Close,YTD" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2024,1,110,0.1" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestComparisonCSV_MissingValuesStayEmpty(t *testing.T) {
	cur := 0.05
	rows := []ComparisonRow{
		{Ticker: "SPY", Current: &cur}, // no prior, no difference
	}
	out, err := ComparisonCSV(rows)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if lines[1] != "SPY,0.05,," {
		t.Errorf("missing values must render empty, not zero: %q", lines[1])
	}
}
