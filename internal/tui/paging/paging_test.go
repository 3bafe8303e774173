package paging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glabrego/coinboard/internal/fetch"
	"github.com/glabrego/coinboard/internal/market"
)

func items(ids ...string) []market.Item {
	out := make([]market.Item, 0, len(ids))
	for i, id := range ids {
		out = append(out, market.Item{ID: id, Symbol: id[:3], Rank: i + 1, MarketCap: float64(100 * (i + 1))})
	}
	return out
}

func ids(items []market.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.ID)
	}
	return strings.Join(parts, ",")
}

func TestController_BeginResolveReady(t *testing.T) {
	c := New(50)
	if c.Status() != Idle {
		t.Fatalf("expected idle, got %s", c.Status())
	}

	req := c.Begin(context.Background(), 1)
	if !c.Loading() || req.Page != 1 {
		t.Fatalf("expected loading page 1, got %s page %d", c.Status(), req.Page)
	}
	if !c.Resolve(req.Gen, items("bitcoin", "ethereum"), nil) {
		t.Fatal("expected current result to apply")
	}
	if c.Status() != Ready || ids(c.Buffer()) != "bitcoin,ethereum" {
		t.Fatalf("unexpected state: %s %s", c.Status(), ids(c.Buffer()))
	}
	if req.Ctx.Err() == nil {
		t.Fatal("expected request context to be released after resolve")
	}
}

func TestController_NewPageSupersedesInFlight(t *testing.T) {
	c := New(50)
	first := c.Begin(context.Background(), 1)
	second := c.Begin(context.Background(), 2)

	if first.Ctx.Err() == nil {
		t.Fatal("expected first request to be cancelled")
	}
	if second.Ctx.Err() != nil {
		t.Fatal("second request must stay live")
	}

	if c.Resolve(first.Gen, items("bitcoin"), nil) {
		t.Fatal("stale success must not apply")
	}
	if c.Resolve(first.Gen, nil, errors.New("boom")) {
		t.Fatal("stale failure must not apply")
	}
	if !c.Loading() || c.Page() != 2 {
		t.Fatalf("expected loading page 2, got %s page %d", c.Status(), c.Page())
	}

	if !c.Resolve(second.Gen, items("solana"), nil) {
		t.Fatal("expected current result to apply")
	}
	if ids(c.Buffer()) != "solana" {
		t.Fatalf("unexpected buffer: %s", ids(c.Buffer()))
	}
}

func TestController_CancelledResultNeverMutates(t *testing.T) {
	c := New(50)
	req := c.Begin(context.Background(), 1)
	_ = c.Resolve(req.Gen, items("bitcoin"), nil)

	req = c.Begin(context.Background(), 1)
	cancelled := fmt.Errorf("list markets page 1: %w", fetch.ErrCancelled)
	if c.Resolve(req.Gen, nil, cancelled) {
		t.Fatal("cancellation must not change state")
	}
	if !c.Loading() || c.Err() != nil {
		t.Fatalf("expected untouched loading state, got %s err=%v", c.Status(), c.Err())
	}
	if ids(c.Buffer()) != "bitcoin" {
		t.Fatalf("same-page retry should keep buffer, got %s", ids(c.Buffer()))
	}
}

func TestController_FailureAndRetry(t *testing.T) {
	c := New(50)
	req := c.Begin(context.Background(), 3)
	failure := &fetch.HTTPError{Status: 503, Attempts: 4}
	if !c.Resolve(req.Gen, nil, failure) {
		t.Fatal("expected failure to apply")
	}
	if c.Status() != Failed || !errors.Is(c.Err(), failure) {
		t.Fatalf("expected failed state, got %s err=%v", c.Status(), c.Err())
	}

	retry := c.Retry(context.Background())
	if retry.Page != 3 || !c.Loading() || c.Err() != nil {
		t.Fatalf("retry must reload page 3 with error cleared, got page %d %s err=%v", retry.Page, c.Status(), c.Err())
	}
	if retry.Gen == req.Gen {
		t.Fatal("retry must bump the generation")
	}
}

func TestController_ResolveAppliesStableFilter(t *testing.T) {
	c := New(50)
	req := c.Begin(context.Background(), 1)
	batch := []market.Item{
		{ID: "bitcoin", Symbol: "btc"},
		{ID: "tether", Symbol: "usdt"},
		{ID: "some-bridged-usd", Symbol: "usdc"},
		{ID: "ethereum", Symbol: "eth"},
	}
	_ = c.Resolve(req.Gen, batch, nil)
	if ids(c.Buffer()) != "bitcoin,ethereum" {
		t.Fatalf("denylisted assets leaked into buffer: %s", ids(c.Buffer()))
	}
}

func TestController_VisibleFiltersAndTruncates(t *testing.T) {
	c := New(2)
	req := c.Begin(context.Background(), 1)
	_ = c.Resolve(req.Gen, items("bitcoin", "ethereum", "ripple", "solana"), nil)

	excluded := func(id string) bool { return id == "ethereum" }
	if got := ids(c.Visible(excluded)); got != "bitcoin,ripple" {
		t.Fatalf("unexpected visible list: %s", got)
	}
	if got := ids(c.Visible(nil)); got != "bitcoin,ethereum" {
		t.Fatalf("unexpected visible list without exclusions: %s", got)
	}
}

func TestController_PageChangeClearsBuffer(t *testing.T) {
	c := New(50)
	req := c.Begin(context.Background(), 1)
	_ = c.Resolve(req.Gen, items("bitcoin"), nil)

	c.Begin(context.Background(), 2)
	if len(c.Buffer()) != 0 {
		t.Fatalf("expected empty buffer while page 2 loads, got %s", ids(c.Buffer()))
	}
}

func TestController_ShutdownCancels(t *testing.T) {
	c := New(50)
	req := c.Begin(context.Background(), 1)
	c.Shutdown()
	if req.Ctx.Err() == nil {
		t.Fatal("expected shutdown to cancel in-flight request")
	}
}

func TestUserMessage(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"client":  {err: &fetch.ClientError{Status: 404}, want: "HTTP 404 Not Found"},
		"limited": {err: &fetch.HTTPError{Status: 429, Attempts: 4}, want: "Rate limited"},
		"server":  {err: &fetch.HTTPError{Status: 502, Attempts: 4}, want: "HTTP 502"},
		"network": {err: fmt.Errorf("wrapped: %w", &fetch.NetworkError{Err: errors.New("dial")}), want: "Could not reach"},
		"decode":  {err: &fetch.DecodeError{Err: errors.New("eof")}, want: "unexpected response"},
		"other":   {err: errors.New("boom"), want: "boom"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := UserMessage(tc.err)
			if !strings.Contains(got, tc.want) || !strings.Contains(got, "r to retry") {
				t.Fatalf("unexpected message: %q", got)
			}
		})
	}
	if UserMessage(nil) != "" {
		t.Fatal("expected empty message for nil error")
	}
}
