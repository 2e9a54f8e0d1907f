package finance

import (
	"testing"
	"time"
)

func TestResampleMonthly(t *testing.T) {
	et := easternTime()
	day := func(y int, m time.Month, d int) int64 {
		return time.Date(y, m, d, 16, 0, 0, 0, et).Unix()
	}

	ts := []int64{
		day(2024, time.January, 2),
		day(2024, time.January, 17),
		day(2024, time.January, 31),
		day(2024, time.February, 1),
		day(2024, time.February, 29),
		day(2024, time.April, 30), // march missing entirely
	}
	closes := []float64{100, 101, 102, 103, 0, 105} // zero close = holiday row

	bars := resampleMonthly(ts, closes)
	if len(bars) != 3 {
		t.Fatalf("expected 3 monthly bars, got %d: %+v", len(bars), bars)
	}
	if bars[0].Close != 102 {
		t.Errorf("january bar should keep the last trading day close, got %.0f", bars[0].Close)
	}
	if bars[1].Close != 103 {
		t.Errorf("february bar should skip the zero close, got %.0f", bars[1].Close)
	}
	if bars[2].Date.Month() != time.April || bars[2].Close != 105 {
		t.Errorf("expected april bar after a gap month, got %+v", bars[2])
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Date.Before(bars[i].Date) {
			t.Errorf("bar dates must be strictly increasing: %v then %v", bars[i-1].Date, bars[i].Date)
		}
	}
}

func TestResampleMonthly_Empty(t *testing.T) {
	if bars := resampleMonthly(nil, nil); len(bars) != 0 {
		t.Errorf("expected no bars for empty input, got %+v", bars)
	}
}
