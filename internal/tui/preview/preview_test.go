package preview

import (
	"context"
	"fmt"
	"testing"

	"github.com/glabrego/coinboard/internal/fetch"
	"github.com/glabrego/coinboard/internal/market"
)

func caps(values ...float64) []market.Item {
	out := make([]market.Item, 0, len(values))
	for i, v := range values {
		out = append(out, market.Item{ID: fmt.Sprintf("coin-%d", i), Symbol: fmt.Sprintf("c%d", i), MarketCap: v})
	}
	return out
}

func TestController_CurrentPageResolvesWithoutFetch(t *testing.T) {
	c := New()
	action := c.Enter(1, 1, false, caps(100, 200, 300))

	if action.Kind != ActionResolved {
		t.Fatalf("expected immediate resolution, got %v", action.Kind)
	}
	if c.Value() == nil || *c.Value() != 200 {
		t.Fatalf("expected aggregate 200, got %v", c.Value())
	}
	if _, ok := c.Elapsed(context.Background(), action.Gen, false); ok {
		t.Fatal("current-page preview must never issue a fetch")
	}
}

func TestController_SwitchingTargetBeforeDebounceNeverFetchesFirst(t *testing.T) {
	c := New()
	a := c.Enter(2, 1, false, nil)
	b := c.Enter(3, 1, false, nil)

	if a.Kind != ActionDebounce || b.Kind != ActionDebounce {
		t.Fatalf("expected both hovers to debounce, got %v %v", a.Kind, b.Kind)
	}
	if _, ok := c.Elapsed(context.Background(), a.Gen, false); ok {
		t.Fatal("elapsed timer for the first target must not fetch")
	}

	req, ok := c.Elapsed(context.Background(), b.Gen, false)
	if !ok || req.Page != 3 {
		t.Fatalf("expected fetch for page 3, got %+v ok=%v", req, ok)
	}
	if !c.Loading() {
		t.Fatal("expected computing state")
	}
}

func TestController_LeaveBeforeDebounceAborts(t *testing.T) {
	c := New()
	a := c.Enter(2, 1, false, nil)
	c.Leave()

	if _, ok := c.Elapsed(context.Background(), a.Gen, false); ok {
		t.Fatal("leave must abort the pending debounce")
	}
	if c.Target() != 0 || c.Value() != nil || c.Status() != Idle {
		t.Fatalf("expected cleared state, got target=%d value=%v status=%s", c.Target(), c.Value(), c.Status())
	}
}

func TestController_ResolveComputesFilteredMean(t *testing.T) {
	c := New()
	a := c.Enter(2, 1, false, nil)
	req, _ := c.Elapsed(context.Background(), a.Gen, false)

	batch := []market.Item{
		{ID: "bitcoin", Symbol: "btc", MarketCap: 300},
		{ID: "tether", Symbol: "usdt", MarketCap: 900},
		{ID: "ethereum", Symbol: "eth", MarketCap: 100},
	}
	if !c.Resolve(req.Gen, batch, nil) {
		t.Fatal("expected result to apply")
	}
	if c.Value() == nil || *c.Value() != 200 {
		t.Fatalf("expected mean of non-stable caps = 200, got %v", c.Value())
	}
	if req.Ctx.Err() == nil {
		t.Fatal("expected request context to be released")
	}
}

func TestController_EmptyBatchResolvesToZero(t *testing.T) {
	c := New()
	a := c.Enter(5, 1, false, nil)
	req, _ := c.Elapsed(context.Background(), a.Gen, false)
	_ = c.Resolve(req.Gen, []market.Item{{ID: "tether", Symbol: "usdt", MarketCap: 1}}, nil)

	if c.Value() == nil || *c.Value() != 0 {
		t.Fatalf("expected 0 for an empty filtered batch, got %v", c.Value())
	}
}

func TestController_FailureResolvesUnknown(t *testing.T) {
	c := New()
	a := c.Enter(2, 1, false, nil)
	req, _ := c.Elapsed(context.Background(), a.Gen, false)

	if !c.Resolve(req.Gen, nil, &fetch.HTTPError{Status: 429, Attempts: 1}) {
		t.Fatal("expected failure to resolve")
	}
	if c.Status() != Resolved || c.Value() != nil {
		t.Fatalf("expected unknown value, got status=%s value=%v", c.Status(), c.Value())
	}
}

func TestController_CancelledAndStaleResultsIgnored(t *testing.T) {
	c := New()
	a := c.Enter(2, 1, false, nil)
	reqA, _ := c.Elapsed(context.Background(), a.Gen, false)

	b := c.Enter(3, 1, false, nil)
	if reqA.Ctx.Err() == nil {
		t.Fatal("changing target must cancel the in-flight fetch")
	}
	if c.Resolve(reqA.Gen, caps(500), nil) {
		t.Fatal("stale result must be discarded")
	}
	if c.Target() != 3 || c.Value() != nil {
		t.Fatalf("stale result overwrote state: target=%d value=%v", c.Target(), c.Value())
	}

	reqB, _ := c.Elapsed(context.Background(), b.Gen, false)
	if c.Resolve(reqB.Gen, nil, fmt.Errorf("fetch preview: %w", fetch.ErrCancelled)) {
		t.Fatal("cancellation must not resolve")
	}
	if c.Status() != Computing {
		t.Fatalf("expected still computing, got %s", c.Status())
	}
}

func TestController_WaitsWhilePageLoading(t *testing.T) {
	c := New()
	action := c.Enter(2, 1, true, nil)
	if action.Kind != ActionNone || c.Status() != Waiting {
		t.Fatalf("expected waiting without fetch, got %v %s", action.Kind, c.Status())
	}
	if _, ok := c.Elapsed(context.Background(), action.Gen, false); ok {
		t.Fatal("no fetch while the page is loading")
	}

	if again := c.Enter(2, 1, true, nil); again.Kind != ActionNone {
		t.Fatalf("re-hover while loading must stay pending, got %v", again.Kind)
	}
	resumed := c.Enter(2, 1, false, nil)
	if resumed.Kind != ActionDebounce {
		t.Fatalf("re-hover after loading should debounce, got %v", resumed.Kind)
	}
}

func TestController_RehoverSameTargetKeepsDebounce(t *testing.T) {
	c := New()
	first := c.Enter(2, 1, false, nil)
	second := c.Enter(2, 1, false, nil)
	if second.Kind != ActionNone {
		t.Fatalf("re-hovering the same target must not restart, got %v", second.Kind)
	}
	if _, ok := c.Elapsed(context.Background(), first.Gen, false); !ok {
		t.Fatal("original debounce should still fire")
	}
}

func TestController_SyncCurrentPage(t *testing.T) {
	c := New()
	c.Enter(1, 1, true, nil)
	if !c.SyncCurrentPage(1, caps(10, 30)) {
		t.Fatal("expected sync for hovered current page")
	}
	if c.Value() == nil || *c.Value() != 20 {
		t.Fatalf("expected 20, got %v", c.Value())
	}
	if c.SyncCurrentPage(2, caps(1)) {
		t.Fatal("sync for another page must be ignored")
	}
}

func TestController_IgnoresInvalidPage(t *testing.T) {
	c := New()
	if action := c.Enter(0, 1, false, nil); action.Kind != ActionNone || c.Target() != 0 {
		t.Fatal("page 0 must be ignored")
	}
}

func TestController_DebounceElapsingDuringPageLoadWaits(t *testing.T) {
	c := New()
	a := c.Enter(3, 1, false, nil)
	if a.Kind != ActionDebounce {
		t.Fatalf("expected debounce, got %v", a.Kind)
	}
	if _, ok := c.Elapsed(context.Background(), a.Gen, true); ok {
		t.Fatal("no fetch while the page is loading")
	}
	if c.Status() != Waiting || c.Target() != 3 {
		t.Fatalf("expected waiting on page 3, got status=%s target=%d", c.Status(), c.Target())
	}

	resumed := c.Enter(3, 2, false, nil)
	if resumed.Kind != ActionDebounce {
		t.Fatalf("expected a fresh debounce once the page settles, got %v", resumed.Kind)
	}
	req, ok := c.Elapsed(context.Background(), resumed.Gen, false)
	if !ok || req.Page != 3 {
		t.Fatalf("expected fetch for page 3, got %+v ok=%v", req, ok)
	}
}
