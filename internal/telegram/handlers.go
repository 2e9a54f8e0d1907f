package telegram

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytdPerfBot/internal/finance"
	"ytdPerfBot/internal/openai"
	"ytdPerfBot/internal/storage"
)

var (
	// /ytd SYMBOL [startYear]
	reYTD = regexp.MustCompile(`^/ytd(?:@[\w_]+)?\s+([A-Za-z0-9\.^_=+-]+)(?:\s+(\d{4}))?$`)
	// /compare S1 S2 ...
	reCompare = regexp.MustCompile(`^/compare(?:@[\w_]+)?\s+([A-Za-z0-9\.^_=+\-\s]+)$`)
	// /csv SYMBOL [startYear]
	reCSV = regexp.MustCompile(`^/csv(?:@[\w_]+)?\s+([A-Za-z0-9\.^_=+-]+)(?:\s+(\d{4}))?$`)
	// /insight S1 S2 ...
	reInsight = regexp.MustCompile(`^/insight(?:@[\w_]+)?\s+([A-Za-z0-9\.^_=+\-\s]+)$`)
	// /usage [days]
	reUsage = regexp.MustCompile(`^/usage(?:@[\w_]+)?(?:\s+(\d+))?$`)
	// /tickers
	reTickers = regexp.MustCompile(`^/tickers(?:@[\w_]+)?$`)
	// /help
	reHelp = regexp.MustCompile(`^/(help|start)(?:@[\w_]+)?$`)
)

const maxCompareTickers = 5

type Handlers struct {
	api       *tgbotapi.BotAPI
	store     *storage.Store
	comment   *openai.Commentator
	bars      finance.BarSource
	startYear int
	clock     func() time.Time
}

func NewHandlers(api *tgbotapi.BotAPI, store *storage.Store, openAIKey string, bars finance.BarSource, startYear int) *Handlers {
	return &Handlers{
		api:       api,
		store:     store,
		comment:   openai.NewCommentator(openAIKey),
		bars:      bars,
		startYear: startYear,
		clock:     time.Now,
	}
}

func (h *Handlers) HandleMessage(m *tgbotapi.Message) {
	txt := strings.TrimSpace(m.Text)
	switch {
	case reYTD.MatchString(txt):
		g := reYTD.FindStringSubmatch(txt)
		h.logCommand(m.Chat.ID, "/ytd", g[1])
		h.handleYTD(m.Chat.ID, g[1], h.parseStartYear(g[2]))

	case reCSV.MatchString(txt):
		g := reCSV.FindStringSubmatch(txt)
		h.logCommand(m.Chat.ID, "/csv", g[1])
		h.handleCSV(m.Chat.ID, g[1], h.parseStartYear(g[2]))

	case reCompare.MatchString(txt):
		g := reCompare.FindStringSubmatch(txt)
		syms := splitSymbols(g[1])
		h.logCommand(m.Chat.ID, "/compare", strings.Join(syms, " "))
		if len(syms) < 2 {
			h.reply(m.Chat.ID, "Please provide at least two symbols, e.g. /compare SPY QQQ GLD")
			return
		}
		if len(syms) > maxCompareTickers {
			h.reply(m.Chat.ID, fmt.Sprintf("Maximum %d tickers per comparison.", maxCompareTickers))
			return
		}
		h.handleCompare(m.Chat.ID, syms)

	case reInsight.MatchString(txt):
		g := reInsight.FindStringSubmatch(txt)
		syms := splitSymbols(g[1])
		h.logCommand(m.Chat.ID, "/insight", strings.Join(syms, " "))
		if len(syms) < 2 {
			h.reply(m.Chat.ID, "Please provide at least two symbols, e.g. /insight SPY QQQ")
			return
		}
		h.handleInsight(m.Chat.ID, syms)

	case reUsage.MatchString(txt):
		days := 7
		if g := reUsage.FindStringSubmatch(txt); g[1] != "" {
			fmt.Sscanf(g[1], "%d", &days)
			if days < 1 {
				days = 1
			}
			if days > 90 {
				days = 90
			}
		}
		h.logCommand(m.Chat.ID, "/usage", "")
		h.handleUsage(m.Chat.ID, days)

	case reTickers.MatchString(txt):
		h.logCommand(m.Chat.ID, "/tickers", "")
		h.reply(m.Chat.ID, finance.TickerCatalog())

	case reHelp.MatchString(txt):
		h.handleHelp(m.Chat.ID)
	}
}

func (h *Handlers) parseStartYear(field string) int {
	if field == "" {
		return h.startYear
	}
	y, err := strconv.Atoi(field)
	if err != nil || y < 1990 || y >= h.clock().Year() {
		return h.startYear
	}
	return y
}

// splitSymbols normalizes a whitespace-separated symbol list: uppercased,
// deduped, original order kept.
func splitSymbols(field string) []string {
	raw := strings.Fields(field)
	seen := map[string]struct{}{}
	syms := make([]string, 0, len(raw))
	for _, s := range raw {
		su := strings.ToUpper(strings.TrimSpace(s))
		if su == "" {
			continue
		}
		if _, ok := seen[su]; ok {
			continue
		}
		seen[su] = struct{}{}
		syms = append(syms, su)
	}
	return syms
}

func (h *Handlers) handleYTD(chatID int64, sym string, startYear int) {
	report, err := finance.AnalyzeHistory(h.bars, sym, startYear, h.clock())
	if err != nil {
		if errors.Is(err, finance.ErrNoData) {
			h.reply(chatID, fmt.Sprintf("No data available for %s from %d.", strings.ToUpper(sym), startYear))
			return
		}
		h.reply(chatID, fmt.Sprintf("Couldn’t analyze %s: %v", sym, err))
		return
	}
	img, err := finance.MakeHistoryChart(report)
	if err != nil {
		h.reply(chatID, "Chart failed: "+err.Error())
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: strings.ToUpper(sym) + "_ytd.png", Bytes: img})
	photo.Caption = finance.TickerDescription(sym) + "\n" + summaryCaption(report.Summary)
	h.api.Send(photo)
}

func summaryCaption(s finance.Summary) string {
	lines := []string{
		fmt.Sprintf("%d YTD through %s: %s", s.HighlightYear, finance.MonthLabel(s.LastMonth), pct(s.CurrentYTD)),
	}
	if s.BestYear != nil {
		lines = append(lines, fmt.Sprintf("Best year: %d (%s)", *s.BestYear, pct(s.BestReturn)))
	}
	if s.WorstYear != nil {
		lines = append(lines, fmt.Sprintf("Worst year: %d (%s)", *s.WorstYear, pct(s.WorstReturn)))
	}
	if s.HistAvg != nil {
		line := fmt.Sprintf("Historical avg: %s over %d complete years", pct(s.HistAvg), s.CompleteYears)
		if s.HistStdev != nil {
			line += fmt.Sprintf(" (σ %s)", pct(s.HistStdev))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func pct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%+.1f%%", *v*100)
}

func (h *Handlers) handleCompare(chatID int64, syms []string) {
	report := finance.AnalyzeComparison(h.bars, syms, h.clock())
	if len(report.Failed) > 0 {
		h.reply(chatID, "Could not load data for: "+strings.Join(report.Failed, ", "))
	}
	if len(report.Rows) < 2 {
		h.reply(chatID, "Need at least 2 tickers with valid data to compare.")
		return
	}
	img, err := finance.MakeComparisonChart(report)
	if err != nil {
		h.reply(chatID, "Chart failed: "+err.Error())
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: strings.Join(syms, "_") + "_compare.png", Bytes: img})
	photo.Caption = report.Window.Describe()
	h.api.Send(photo)
	h.reply(chatID, comparisonTable(report))
}

// comparisonTable renders the ranked rows as a monospace-friendly block.
func comparisonTable(r *finance.ComparisonReport) string {
	var b strings.Builder
	b.WriteString(r.Window.Describe() + "\n\n")
	fmt.Fprintf(&b, "%-7s %9s %9s %9s\n", "Ticker", "Current", "Prior", "Diff")
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "%-7s %9s %9s %9s\n", row.Ticker, pct(row.Current), pct(row.Prior), pct(row.Difference))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (h *Handlers) handleCSV(chatID int64, sym string, startYear int) {
	report, err := finance.AnalyzeHistory(h.bars, sym, startYear, h.clock())
	if err != nil {
		if errors.Is(err, finance.ErrNoData) {
			h.reply(chatID, fmt.Sprintf("No data available for %s from %d.", strings.ToUpper(sym), startYear))
			return
		}
		h.reply(chatID, fmt.Sprintf("Couldn’t analyze %s: %v", sym, err))
		return
	}
	data, err := finance.ObservationsCSV(report.Observations)
	if err != nil {
		h.reply(chatID, "CSV export failed: "+err.Error())
		return
	}
	name := fmt.Sprintf("%s_ytd_%s.csv", strings.ToUpper(sym), h.clock().Format("20060102"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = fmt.Sprintf("%s YTD observations, %d-%d", strings.ToUpper(sym), report.Summary.StartYear, report.HighlightYear)
	h.api.Send(doc)
}

func (h *Handlers) handleInsight(chatID int64, syms []string) {
	report := finance.AnalyzeComparison(h.bars, syms, h.clock())
	if len(report.Rows) < 2 {
		h.reply(chatID, "Need at least 2 tickers with valid data for commentary.")
		return
	}
	csvTable, err := finance.ComparisonCSV(report.Rows)
	if err != nil {
		h.reply(chatID, "Insight failed: "+err.Error())
		return
	}
	h.reply(chatID, "Analyzing "+strings.Join(syms, ", ")+"…")
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	out, err := h.comment.Comment(ctx, report.Window.Describe(), string(csvTable))
	if err != nil {
		h.reply(chatID, "Insight failed: "+err.Error())
		return
	}
	msg := tgbotapi.NewMessage(chatID, out)
	msg.ParseMode = "Markdown"
	h.api.Send(msg)
}

func (h *Handlers) handleUsage(chatID int64, days int) {
	since := h.clock().AddDate(0, 0, -days).Unix()
	stats, err := h.store.CommandUsage(since)
	if err != nil {
		h.reply(chatID, "Usage stats failed: "+err.Error())
		return
	}
	img, err := finance.MakeUsageChart(stats, days)
	if err != nil {
		h.reply(chatID, "Usage stats failed: "+err.Error())
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "usage.png", Bytes: img})
	h.api.Send(photo)
}

func (h *Handlers) handleHelp(chatID int64) {
	help := "Commands\n\n" +
		"- /ytd SYMBOL [startYear] - Multi-year YTD chart with summary stats\n" +
		"- /compare S1 S2 ... - Current vs prior period YTD for 2-5 tickers\n" +
		"- /csv SYMBOL [startYear] - Download the YTD observations as CSV\n" +
		"- /insight S1 S2 ... - AI commentary on the comparison table\n" +
		"- /tickers - Popular ticker catalog\n" +
		"- /usage [days] - Command usage chart (default: 7, max: 90)\n" +
		"\nYTD = month-end adjusted close / prior December close - 1. " +
		"Price return only (splits yes, dividends no). " +
		"In January the comparison falls back to full prior year vs the year before."
	h.reply(chatID, help)
}

func (h *Handlers) logCommand(chatID int64, command, args string) {
	// usage stats are best effort
	_ = h.store.LogCommand(chatID, command, args, h.clock().Unix())
}

func (h *Handlers) reply(chatID int64, text string) {
	h.api.Send(tgbotapi.NewMessage(chatID, text))
}
