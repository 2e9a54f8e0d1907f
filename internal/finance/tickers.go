package finance

import (
	"sort"
	"strings"
)

// PopularTickers groups common symbols by category for the /tickers listing.
var PopularTickers = map[string]map[string]string{
	"Equity ETFs": {
		"SPY": "SPDR S&P 500 ETF",
		"QQQ": "Invesco QQQ (Nasdaq-100)",
		"DIA": "SPDR Dow Jones Industrial Average ETF",
		"IWM": "iShares Russell 2000 ETF",
		"VTI": "Vanguard Total Stock Market ETF",
		"VOO": "Vanguard S&P 500 ETF",
	},
	"Bond ETFs": {
		"TLT": "iShares 20+ Year Treasury Bond ETF",
		"AGG": "iShares Core U.S. Aggregate Bond ETF",
		"BND": "Vanguard Total Bond Market ETF",
		"LQD": "iShares iBoxx Investment Grade Corporate Bond ETF",
	},
	"Commodity ETFs": {
		"GLD": "SPDR Gold Shares",
		"SLV": "iShares Silver Trust",
		"USO": "United States Oil Fund",
		"DBA": "Invesco DB Agriculture Fund",
	},
	"Sector ETFs": {
		"XLF": "Financial Select Sector SPDR Fund",
		"XLE": "Energy Select Sector SPDR Fund",
		"XLK": "Technology Select Sector SPDR Fund",
		"XLV": "Health Care Select Sector SPDR Fund",
	},
}

// TickerDescription looks a symbol up in the catalog; unknown symbols
// describe as themselves.
func TickerDescription(symbol string) string {
	sym := strings.ToUpper(symbol)
	for _, category := range PopularTickers {
		if desc, ok := category[sym]; ok {
			return desc
		}
	}
	return sym
}

// TickerCatalog renders the catalog as display text, categories and
// symbols in stable alphabetical order.
func TickerCatalog() string {
	categories := make([]string, 0, len(PopularTickers))
	for c := range PopularTickers {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var b strings.Builder
	for _, c := range categories {
		b.WriteString(c + "\n")
		symbols := make([]string, 0, len(PopularTickers[c]))
		for s := range PopularTickers[c] {
			symbols = append(symbols, s)
		}
		sort.Strings(symbols)
		for _, s := range symbols {
			b.WriteString("  " + s + " - " + PopularTickers[c][s] + "\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
