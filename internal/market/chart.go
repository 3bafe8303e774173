package market

import (
	"net/url"
	"strings"
)

var ChartIntervals = []string{"60", "240", "D", "W"}

// ChartConfig is handed to the external chart as-is; nothing here renders.
type ChartConfig struct {
	Symbol   string
	Interval string
	LogScale bool
}

func ChartSymbol(item Item, quote string) string {
	if quote == "" {
		quote = "USDT"
	}
	return strings.ToUpper(strings.TrimSpace(item.Symbol)) + strings.ToUpper(quote)
}

func NewChartConfig(item Item, quote, interval string, logScale bool) ChartConfig {
	if interval == "" {
		interval = "D"
	}
	return ChartConfig{
		Symbol:   ChartSymbol(item, quote),
		Interval: interval,
		LogScale: logScale,
	}
}

// URL points at the hosted chart for the pair on Binance.
func (c ChartConfig) URL() string {
	q := make(url.Values)
	q.Set("symbol", "BINANCE:"+c.Symbol)
	q.Set("interval", c.Interval)
	if c.LogScale {
		q.Set("log", "1")
	}
	return "https://www.tradingview.com/chart/?" + q.Encode()
}

// NextInterval cycles through ChartIntervals.
func NextInterval(current string) string {
	for i, iv := range ChartIntervals {
		if iv == current {
			return ChartIntervals[(i+1)%len(ChartIntervals)]
		}
	}
	return ChartIntervals[0]
}

func IntervalLabel(interval string) string {
	switch interval {
	case "60":
		return "1h"
	case "240":
		return "4h"
	case "D":
		return "1D"
	case "W":
		return "1W"
	default:
		return interval
	}
}
