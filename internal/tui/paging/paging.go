package paging

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/glabrego/coinboard/internal/fetch"
	"github.com/glabrego/coinboard/internal/market"
)

type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Request describes one page fetch. Ctx is cancelled as soon as a newer
// request begins; Gen must be handed back to Resolve with the result.
type Request struct {
	Gen  uint64
	Page int
	Ctx  context.Context
}

// Controller owns the authoritative page state. Only the most recently
// begun request may change it.
type Controller struct {
	displayCount int
	page         int
	status       Status
	buffer       []market.Item
	err          error
	gen          uint64
	cancel       context.CancelFunc
}

func New(displayCount int) *Controller {
	if displayCount < 1 {
		displayCount = 1
	}
	return &Controller{displayCount: displayCount, page: 1}
}

// Begin supersedes any in-flight fetch and enters Loading for page.
func (c *Controller) Begin(parent context.Context, page int) Request {
	if page < 1 {
		page = 1
	}
	c.stop()
	if page != c.page {
		c.buffer = nil
	}

	ctx, cancel := context.WithCancel(parent)
	c.gen++
	c.cancel = cancel
	c.page = page
	c.status = Loading
	c.err = nil
	return Request{Gen: c.gen, Page: page, Ctx: ctx}
}

// Retry re-begins the current page.
func (c *Controller) Retry(parent context.Context) Request {
	return c.Begin(parent, c.page)
}

// Resolve applies a fetch result. Results from superseded requests and
// cancellations leave state untouched and report false.
func (c *Controller) Resolve(gen uint64, items []market.Item, err error) bool {
	if gen != c.gen || c.status != Loading {
		return false
	}
	if fetch.IsCancelled(err) {
		return false
	}
	c.stop()

	if err != nil {
		c.status = Failed
		c.err = err
		return true
	}
	c.status = Ready
	c.err = nil
	c.buffer = market.FilterStable(items)
	return true
}

// Shutdown cancels any in-flight fetch.
func (c *Controller) Shutdown() {
	c.stop()
}

func (c *Controller) stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) Page() int { return c.page }
func (c *Controller) Status() Status { return c.status }
func (c *Controller) Loading() bool { return c.status == Loading }
func (c *Controller) Err() error { return c.err }
func (c *Controller) Gen() uint64 { return c.gen }
func (c *Controller) DisplayCount() int { return c.displayCount }

// Buffer returns the fetched batch for the current page in rank order.
func (c *Controller) Buffer() []market.Item {
	return c.buffer
}

// Visible is the buffer minus excluded ids, truncated to the display count.
func (c *Controller) Visible(excluded func(id string) bool) []market.Item {
	return market.Without(c.buffer, excluded, c.displayCount)
}

// UserMessage turns a page fetch failure into the line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var clientErr *fetch.ClientError
	var httpErr *fetch.HTTPError
	var netErr *fetch.NetworkError
	var decodeErr *fetch.DecodeError
	switch {
	case errors.As(err, &clientErr):
		return fmt.Sprintf("Market data request rejected (HTTP %d %s). Press r to retry.", clientErr.Status, http.StatusText(clientErr.Status))
	case errors.As(err, &httpErr) && httpErr.Status == http.StatusTooManyRequests:
		return fmt.Sprintf("Rate limited by market data provider after %d attempt(s). Press r to retry.", httpErr.Attempts)
	case errors.As(err, &httpErr):
		return fmt.Sprintf("Market data provider failed (HTTP %d) after %d attempt(s). Press r to retry.", httpErr.Status, httpErr.Attempts)
	case errors.As(err, &netErr):
		return "Could not reach market data provider. Check your connection and press r to retry."
	case errors.As(err, &decodeErr):
		return "Market data provider sent an unexpected response. Press r to retry."
	default:
		return fmt.Sprintf("Could not load market data: %v. Press r to retry.", err)
	}
}
