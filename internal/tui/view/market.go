package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/glabrego/coinboard/internal/market"
	tuitheme "github.com/glabrego/coinboard/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const (
	colMarker = 3
	colRank   = 5
	colSymbol = 7
	colPrice  = 14
	colChange = 9
	colCap    = 10

	minNameWidth = 8
)

type MarketLineParams struct {
	Item    market.Item
	Active  bool
	Compact bool
	Width   int
}

func nameWidth(width int, compact bool) int {
	fixed := colMarker + colRank + colSymbol + colPrice + colChange
	if !compact {
		fixed += colChange + colCap
	}
	if w := width - fixed; w > minNameWidth {
		return w
	}
	return minNameWidth
}

func RenderMarketHeader(width int, compact bool, th tuitheme.Theme) string {
	line := strings.Repeat(" ", colMarker) +
		padLeft("#", colRank-1) + " " +
		padRight("Symbol", colSymbol) +
		padRight("Name", nameWidth(width, compact)) +
		padLeft("Price", colPrice) +
		padLeft("24h", colChange)
	if !compact {
		line += padLeft("7d", colChange) + padLeft("Mkt Cap", colCap)
	}
	return th.Header.Render(line)
}

func RenderMarketLine(p MarketLineParams, th tuitheme.Theme) string {
	marker := "   "
	if p.Active {
		marker = " > "
	}
	rank := "-"
	if p.Item.Rank > 0 {
		rank = fmt.Sprintf("%d", p.Item.Rank)
	}
	nw := nameWidth(p.Width, p.Compact)
	name := truncateRunes(strings.TrimSpace(p.Item.Name), nw-1)
	symbol := truncateRunes(strings.ToUpper(strings.TrimSpace(p.Item.Symbol)), colSymbol-1)

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(padLeft(rank, colRank-1))
	b.WriteString(" ")
	b.WriteString(padRight(symbol, colSymbol))
	b.WriteString(padRight(name, nw))
	b.WriteString(padLeft(FormatPrice(p.Item.CurrentPrice), colPrice))
	b.WriteString(th.StyleChange(p.Item.Change24h, padLeft(FormatPercent(p.Item.Change24h), colChange)))
	if !p.Compact {
		b.WriteString(th.StyleChange(p.Item.Change7d, padLeft(FormatPercent(p.Item.Change7d), colChange)))
		b.WriteString(padLeft(FormatCompactUSD(p.Item.MarketCap), colCap))
	}
	return th.RenderActiveLine(p.Active, b.String())
}

func padLeft(s string, width int) string {
	if n := visibleLen(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func padRight(s string, width int) string {
	if n := visibleLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
