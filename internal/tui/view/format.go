package view

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatPrice renders a USD price with thousands separators above $1 and
// four significant digits below it.
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	if v == 0 {
		return "$0.00"
	}
	if math.Abs(v) >= 1 {
		return "$" + humanize.FormatFloat("#,###.##", v)
	}
	places := int32(3 - math.Floor(math.Log10(math.Abs(v))))
	if places > 12 {
		places = 12
	}
	return "$" + decimal.NewFromFloat(v).Round(places).String()
}

// FormatPercent renders a signed percentage with two decimals, or "-" when
// the endpoint had no value.
func FormatPercent(pct *float64) string {
	if pct == nil || math.IsNaN(*pct) {
		return "-"
	}
	d := decimal.NewFromFloat(*pct).Round(2)
	s := d.StringFixed(2)
	if d.IsPositive() {
		s = "+" + s
	}
	return s + "%"
}

// FormatCompactUSD renders large amounts as $1.23K/M/B/T.
func FormatCompactUSD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	value, prefix := humanize.ComputeSI(v)
	switch prefix {
	case "k":
		prefix = "K"
	case "G":
		prefix = "B"
	}
	return "$" + decimal.NewFromFloat(value).StringFixed(2) + prefix
}

func FormatSupply(v float64) string {
	if v <= 0 || math.IsNaN(v) {
		return "-"
	}
	return humanize.Comma(int64(math.Round(v)))
}

func FormatOptionalSupply(v *float64) string {
	if v == nil {
		return "-"
	}
	return FormatSupply(*v)
}

// WrapText breaks text into lines of at most width runes, splitting words
// that do not fit on their own.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 4)
	var current []rune
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, string(current))
			current = current[:0]
		}
	}
	for _, word := range words {
		w := []rune(word)
		for len(w) > width {
			flush()
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = append(current, w...)
		case len(current)+1+len(w) <= width:
			current = append(current, ' ')
			current = append(current, w...)
		default:
			flush()
			current = append(current, w...)
		}
	}
	flush()
	return lines
}
