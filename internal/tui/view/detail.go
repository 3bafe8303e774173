package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/coinboard/internal/market"
)

func DetailLines(item market.Item, chart market.ChartConfig, width int) []string {
	title := fmt.Sprintf("%s (%s)", strings.TrimSpace(item.Name), strings.ToUpper(item.Symbol))
	lines := make([]string, 0, 24)
	lines = append(lines, WrapText(title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len(title)))))
	lines = append(lines, "")

	rank := "-"
	if item.Rank > 0 {
		rank = fmt.Sprintf("#%d", item.Rank)
	}
	ath := FormatPrice(item.ATH)
	if item.ATHChangePercentage != nil {
		ath += " (" + FormatPercent(item.ATHChangePercentage) + ")"
	}

	lines = append(lines,
		"Rank: "+rank,
		"Price: "+FormatPrice(item.CurrentPrice),
		"Market cap: "+FormatCompactUSD(item.MarketCap),
		"Volume 24h: "+FormatCompactUSD(item.TotalVolume),
		"Change 24h: "+FormatPercent(item.Change24h),
		"Change 7d: "+FormatPercent(item.Change7d),
		"Change 30d: "+FormatPercent(item.Change30d),
		"Change 1y: "+FormatPercent(item.Change1y),
		"All-time high: "+ath,
		"Circulating supply: "+FormatSupply(item.CirculatingSupply),
		"Total supply: "+FormatOptionalSupply(item.TotalSupply),
		"Max supply: "+FormatOptionalSupply(item.MaxSupply),
		"",
	)

	scale := "linear"
	if chart.LogScale {
		scale = "log"
	}
	lines = append(lines, fmt.Sprintf("Chart: BINANCE:%s | %s | %s", chart.Symbol, market.IntervalLabel(chart.Interval), scale))
	lines = append(lines, WrapText("URL: "+chart.URL(), width)...)
	return lines
}

// RenderDetailLines shows maxLines lines starting at top.
func RenderDetailLines(lines []string, top, maxLines int) string {
	if top < 0 {
		top = 0
	}
	if top > len(lines) {
		top = len(lines)
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}
