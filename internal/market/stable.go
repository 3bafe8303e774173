package market

import "strings"

// Price-pegged assets are hidden regardless of user preferences. Both the
// endpoint id and the ticker symbol are checked because wrapped and bridged
// variants reuse the symbol under a different id.
var stableIDs = map[string]struct{}{
	"tether":            {},
	"usd-coin":          {},
	"dai":               {},
	"binance-usd":       {},
	"true-usd":          {},
	"first-digital-usd": {},
	"ethena-usde":       {},
	"paypal-usd":        {},
	"usdd":              {},
	"frax":              {},
	"pax-dollar":        {},
	"gemini-dollar":     {},
	"paxos-standard":    {},
	"tether-gold":       {},
	"pax-gold":          {},
	"usds":              {},
	"stasis-eurs":       {},
}

var stableSymbols = map[string]struct{}{
	"usdt":  {},
	"usdc":  {},
	"dai":   {},
	"busd":  {},
	"tusd":  {},
	"fdusd": {},
	"usde":  {},
	"pyusd": {},
	"usdd":  {},
	"frax":  {},
	"usdp":  {},
	"gusd":  {},
	"xaut":  {},
	"paxg":  {},
	"usds":  {},
	"eurs":  {},
}

func IsStable(item Item) bool {
	if _, ok := stableIDs[strings.ToLower(item.ID)]; ok {
		return true
	}
	_, ok := stableSymbols[strings.ToLower(item.Symbol)]
	return ok
}

// FilterStable drops denylisted assets, keeping the server's rank order.
func FilterStable(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if IsStable(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}
