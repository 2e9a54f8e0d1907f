package finance

import (
	"fmt"
	"sort"

	"github.com/vicanso/go-charts/v2"

	"ytdPerfBot/internal/storage"
)

// MakeUsageChart renders a pie chart of command usage over the last N days.
func MakeUsageChart(stats map[string]*storage.UsageStats, days int) ([]byte, error) {
	if len(stats) == 0 {
		return nil, fmt.Errorf("no usage data available")
	}

	commands := make([]string, 0, len(stats))
	for cmd := range stats {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)

	total := 0
	values := make([]float64, 0, len(commands))
	for _, cmd := range commands {
		values = append(values, float64(stats[cmd].Count))
		total += stats[cmd].Count
	}

	labels := make([]string, 0, len(commands))
	for i, cmd := range commands {
		labels = append(labels, fmt.Sprintf("%s (%.1f%%)", cmd, values[i]/float64(total)*100))
	}

	painter, err := charts.PieRender(
		values,
		charts.TitleTextOptionFunc(fmt.Sprintf("Command usage (%d days)", days)),
		charts.LegendOptionFunc(charts.LegendOption{Data: labels, Top: charts.PositionTop}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
