package finance

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"ytdPerfBot/internal/storage"
)

// BarSource supplies month-end bars for a ticker from January of startYear
// onward. The YTD calculator is the consumer; it never cares where the bars
// came from or whether they were cached.
type BarSource interface {
	MonthlyBars(symbol string, startYear int) ([]PriceBar, error)
}

// YahooSource fetches daily closes from Yahoo Finance and resamples them to
// month-end bars.
type YahooSource struct {
	Clock func() time.Time
}

func NewYahooSource() *YahooSource {
	return &YahooSource{Clock: time.Now}
}

func (y *YahooSource) MonthlyBars(symbol string, startYear int) ([]PriceBar, error) {
	ts, closes, err := fetchDailyCloses(symbol, yahooRange(startYear, y.Clock()))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", symbol, err)
	}
	bars := resampleMonthly(ts, closes)
	// trim lookback overshoot: Yahoo ranges count back from today
	kept := bars[:0]
	for _, b := range bars {
		if b.Date.Year() >= startYear {
			kept = append(kept, b)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoData
	}
	return kept, nil
}

const barCacheTTL = time.Hour

type barCacheEntry struct {
	fetchedAt time.Time
	bars      []PriceBar
}

// CachedSource layers a TTL cache over another BarSource: an in-memory map
// first, then the sqlite store, then the upstream fetch. Keys are
// (ticker, startYear). Safe for concurrent use.
type CachedSource struct {
	upstream BarSource
	store    *storage.Store

	mu  sync.Mutex
	mem map[string]barCacheEntry
}

// NewCachedSource wraps upstream. store may be nil, leaving only the
// in-memory layer.
func NewCachedSource(upstream BarSource, store *storage.Store) *CachedSource {
	return &CachedSource{upstream: upstream, store: store, mem: map[string]barCacheEntry{}}
}

func (c *CachedSource) MonthlyBars(symbol string, startYear int) ([]PriceBar, error) {
	ticker := strings.ToUpper(symbol)
	key := fmt.Sprintf("%s|%d", ticker, startYear)
	now := time.Now()

	c.mu.Lock()
	if e, ok := c.mem[key]; ok && now.Before(e.fetchedAt.Add(barCacheTTL)) {
		bars := make([]PriceBar, len(e.bars))
		copy(bars, e.bars)
		c.mu.Unlock()
		return bars, nil
	}
	c.mu.Unlock()

	if c.store != nil {
		stored, fetchedAt, err := c.store.LoadBars(ticker, startYear)
		if err != nil {
			log.Printf("db: bar cache read failed for %s: %v", key, err)
		} else if len(stored) > 0 && now.Before(fetchedAt.Add(barCacheTTL)) {
			bars := make([]PriceBar, len(stored))
			for i, b := range stored {
				bars[i] = PriceBar{Date: b.Date, Close: b.Close}
			}
			c.memoize(key, bars, fetchedAt)
			return bars, nil
		}
	}

	bars, err := c.upstream.MonthlyBars(symbol, startYear)
	if err != nil {
		return nil, err
	}
	c.memoize(key, bars, now)
	if c.store != nil {
		stored := make([]storage.MonthlyBar, len(bars))
		for i, b := range bars {
			stored[i] = storage.MonthlyBar{Date: b.Date, Close: b.Close}
		}
		if err := c.store.SaveBars(ticker, startYear, stored, now); err != nil {
			log.Printf("db: bar cache write failed for %s: %v", key, err)
		}
	}
	return bars, nil
}

func (c *CachedSource) memoize(key string, bars []PriceBar, fetchedAt time.Time) {
	c.mu.Lock()
	c.mem[key] = barCacheEntry{fetchedAt: fetchedAt, bars: bars}
	c.mu.Unlock()
}
