package finance

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// ObservationsCSV writes YTD observation rows verbatim: year, month,
// adjusted close, and the raw (unrounded) YTD return.
func ObservationsCSV(obs []Observation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Year", "Month", "Adj Close", "YTD"}); err != nil {
		return nil, err
	}
	for _, o := range obs {
		rec := []string{
			strconv.Itoa(o.Year),
			strconv.Itoa(o.Month),
			strconv.FormatFloat(o.Close, 'f', -1, 64),
			strconv.FormatFloat(o.Return, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ComparisonCSV writes comparison rows verbatim; missing values stay empty
// rather than rendering as 0.
func ComparisonCSV(rows []ComparisonRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Ticker", "Current Return", "Prior Return", "Difference"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{r.Ticker, floatField(r.Current), floatField(r.Prior), floatField(r.Difference)}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
