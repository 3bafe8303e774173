package market

import "strings"

// Item is the subset of the markets endpoint fields the dashboard shows.
// Percentage and supply fields are pointers because the endpoint returns null
// for coins without enough history or without a supply cap.
type Item struct {
	ID                  string   `json:"id"`
	Symbol              string   `json:"symbol"`
	Name                string   `json:"name"`
	Image               string   `json:"image"`
	Rank                int      `json:"market_cap_rank"`
	CurrentPrice        float64  `json:"current_price"`
	MarketCap           float64  `json:"market_cap"`
	TotalVolume         float64  `json:"total_volume"`
	Change24h           *float64 `json:"price_change_percentage_24h_in_currency"`
	Change7d            *float64 `json:"price_change_percentage_7d_in_currency"`
	Change30d           *float64 `json:"price_change_percentage_30d_in_currency"`
	Change1y            *float64 `json:"price_change_percentage_1y_in_currency"`
	ATH                 float64  `json:"ath"`
	ATHChangePercentage *float64 `json:"ath_change_percentage"`
	CirculatingSupply   float64  `json:"circulating_supply"`
	TotalSupply         *float64 `json:"total_supply"`
	MaxSupply           *float64 `json:"max_supply"`
}

// AverageMarketCap is the arithmetic mean of MarketCap across items, or 0
// for an empty slice.
func AverageMarketCap(items []Item) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, item := range items {
		sum += item.MarketCap
	}
	return sum / float64(len(items))
}

// Without returns items whose ID is not excluded, truncated to limit
// (limit <= 0 means no truncation). Order is preserved.
func Without(items []Item, excluded func(id string) bool, limit int) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if excluded != nil && excluded(item.ID) {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func IndexByID(items []Item, id string) int {
	for i, item := range items {
		if strings.EqualFold(item.ID, id) {
			return i
		}
	}
	return -1
}
