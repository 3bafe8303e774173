package market

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fetcher is the retrying GET the client is built on.
type Fetcher interface {
	Fetch(ctx context.Context, url string, maxAttempts int, baseDelay time.Duration, out any) error
}

type Client struct {
	baseURL   string
	fetcher   Fetcher
	baseDelay time.Duration
}

func NewClient(baseURL string, fetcher Fetcher, baseDelay time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		fetcher:   fetcher,
		baseDelay: baseDelay,
	}
}

// MarketsURL builds the ranked markets query for one page.
func (c *Client) MarketsURL(page, perPage int) string {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}
	q := make(url.Values)
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	q.Set("price_change_percentage", "24h,7d,30d,1y")
	return c.baseURL + "/coins/markets?" + q.Encode()
}

// ListMarkets fetches one ranked page and drops stable assets. The returned
// error is whatever the fetcher produced, wrapped, so callers can still
// classify it with errors.Is / errors.As.
func (c *Client) ListMarkets(ctx context.Context, page, perPage, maxAttempts int) ([]Item, error) {
	var items []Item
	if err := c.fetcher.Fetch(ctx, c.MarketsURL(page, perPage), maxAttempts, c.baseDelay, &items); err != nil {
		return nil, fmt.Errorf("list markets page %d: %w", page, err)
	}
	return FilterStable(items), nil
}
