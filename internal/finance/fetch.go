package finance

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// yahooChartResp mirrors Yahoo v8 chart response (trimmed to needed fields)
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

var yahooHosts = []string{"query1.finance.yahoo.com", "query2.finance.yahoo.com"}

var fetchBackoffs = []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second}

// fetchDailyCloses fetches daily timestamps and split-adjusted closes for a symbol
// over the given Yahoo range parameter, rotating hosts with backoff retries.
func fetchDailyCloses(symbol, rangeParam string) ([]int64, []float64, error) {
	var yc yahooChartResp
	var lastErr error
	for attempt := 0; attempt < len(fetchBackoffs)+1; attempt++ {
		for _, host := range yahooHosts {
			url := fmt.Sprintf("https://%s/v8/finance/chart/%s?range=%s&interval=1d&events=div,splits", host, symbol, rangeParam)
			body, err := yahooGet(url, symbol)
			if err != nil {
				lastErr = err
				continue
			}
			if err := json.Unmarshal(body, &yc); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo json: %v; body: %s", err, preview(body))
				continue
			}
			lastErr = nil
			break
		}
		if lastErr == nil {
			break
		}
		if attempt < len(fetchBackoffs) {
			time.Sleep(fetchBackoffs[attempt])
		}
	}
	if lastErr != nil {
		return nil, nil, lastErr
	}
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil, errors.New("no data")
	}
	ts := yc.Chart.Result[0].Timestamp
	cl := yc.Chart.Result[0].Indicators.Quote[0].Close
	if len(cl) < len(ts) {
		ts = ts[:len(cl)]
	}
	return ts, cl, nil
}

// yahooGet performs one request with browser-like headers and rejects
// throttled or non-JSON responses.
func yahooGet(url, symbol string) ([]byte, error) {
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", fmt.Sprintf("https://finance.yahoo.com/quote/%s/chart", strings.ToUpper(symbol)))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read yahoo response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests") {
		return nil, fmt.Errorf("yahoo returned 429: Edge: Too Many Requests")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned %d: %s", resp.StatusCode, preview(body))
	}
	if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
		return nil, fmt.Errorf("yahoo returned non-json body: %s", preview(body))
	}
	return body, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}

// yahooRange maps a start year to the smallest Yahoo range parameter whose
// lookback still reaches January of that year.
func yahooRange(startYear int, asOf time.Time) string {
	yearsBack := asOf.Year() - startYear + 1
	switch {
	case yearsBack <= 2:
		return "2y"
	case yearsBack <= 5:
		return "5y"
	case yearsBack <= 10:
		return "10y"
	default:
		return "max"
	}
}
