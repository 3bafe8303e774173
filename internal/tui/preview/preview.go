package preview

import (
	"context"
	"time"

	"github.com/glabrego/coinboard/internal/fetch"
	"github.com/glabrego/coinboard/internal/market"
)

// DebounceDelay is how long a page must stay hovered before its preview is
// fetched.
const DebounceDelay = 700 * time.Millisecond

type Status int

const (
	Idle Status = iota
	// Waiting holds a target while the page controller is loading.
	Waiting
	Debouncing
	Computing
	Resolved
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Debouncing:
		return "debouncing"
	case Computing:
		return "computing"
	case Resolved:
		return "resolved"
	default:
		return "idle"
	}
}

type ActionKind int

const (
	// ActionNone means nothing needs scheduling.
	ActionNone ActionKind = iota
	// ActionResolved means the value is already available.
	ActionResolved
	// ActionDebounce asks the caller to report back through Elapsed(Gen)
	// after DebounceDelay.
	ActionDebounce
)

type Action struct {
	Kind ActionKind
	Gen  uint64
}

// Request is a preview fetch the caller should run and hand back to Resolve.
type Request struct {
	Gen  uint64
	Page int
	Ctx  context.Context
}

// Controller tracks the preview for the hovered page. Every change of target
// bumps the generation, so late timers and fetch results for an earlier
// target are dropped.
type Controller struct {
	target int
	value  *float64
	status Status
	gen    uint64
	cancel context.CancelFunc
}

func New() *Controller {
	return &Controller{}
}

// Enter records page as the hovered target.
func (c *Controller) Enter(page, currentPage int, pageLoading bool, visible []market.Item) Action {
	if page < 1 {
		return Action{Kind: ActionNone}
	}
	if page == c.target && c.status != Idle && !(c.status == Waiting && !pageLoading) {
		return Action{Kind: ActionNone}
	}

	c.stop()
	c.gen++
	c.target = page
	c.value = nil

	switch {
	case page == currentPage && !pageLoading:
		c.resolveWith(market.AverageMarketCap(visible))
		return Action{Kind: ActionResolved, Gen: c.gen}
	case pageLoading:
		c.status = Waiting
		return Action{Kind: ActionNone, Gen: c.gen}
	default:
		c.status = Debouncing
		return Action{Kind: ActionDebounce, Gen: c.gen}
	}
}

// Elapsed reports the debounce for gen has fired. It returns a fetch request
// only when gen still belongs to the hovered target. A debounce that fires
// while the main page is loading parks the target as Waiting instead.
func (c *Controller) Elapsed(parent context.Context, gen uint64, pageLoading bool) (Request, bool) {
	if gen != c.gen || c.status != Debouncing {
		return Request{}, false
	}
	if pageLoading {
		c.status = Waiting
		return Request{}, false
	}
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.status = Computing
	return Request{Gen: gen, Page: c.target, Ctx: ctx}, true
}

// Resolve applies a preview fetch result. Failures other than cancellation
// resolve to an unknown value.
func (c *Controller) Resolve(gen uint64, items []market.Item, err error) bool {
	if gen != c.gen || c.status != Computing {
		return false
	}
	if fetch.IsCancelled(err) {
		return false
	}
	c.stop()

	if err != nil {
		c.value = nil
		c.status = Resolved
		return true
	}
	c.resolveWith(market.AverageMarketCap(market.FilterStable(items)))
	return true
}

// SyncCurrentPage recomputes a preview that targets the displayed page from
// its visible list, e.g. after the page finished loading or the exclusion
// set changed. No fetch is issued.
func (c *Controller) SyncCurrentPage(currentPage int, visible []market.Item) bool {
	if c.target == 0 || c.target != currentPage {
		return false
	}
	c.stop()
	c.gen++
	c.resolveWith(market.AverageMarketCap(visible))
	return true
}

// Leave cancels any pending work and clears the target.
func (c *Controller) Leave() {
	c.stop()
	c.gen++
	c.target = 0
	c.value = nil
	c.status = Idle
}

func (c *Controller) resolveWith(v float64) {
	c.value = &v
	c.status = Resolved
}

func (c *Controller) stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Target returns the hovered page, or 0 when nothing is hovered.
func (c *Controller) Target() int { return c.target }

// Value is the aggregate for the target, nil while pending or when unknown.
func (c *Controller) Value() *float64 { return c.value }

func (c *Controller) Status() Status { return c.status }

func (c *Controller) Loading() bool {
	return c.status == Debouncing || c.status == Computing
}

func (c *Controller) Gen() uint64 { return c.gen }
