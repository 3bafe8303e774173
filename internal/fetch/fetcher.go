package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultMaxDelay = 30 * time.Second
	maxBodyBytes    = 8 * 1024 * 1024
)

// SleepFunc waits for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Option func(*Fetcher)

func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Set(key, value)
	}
}

func WithMaxDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.maxDelay = d
		}
	}
}

func WithSleep(fn SleepFunc) Option {
	return func(f *Fetcher) {
		if fn != nil {
			f.sleep = fn
		}
	}
}

func WithLogger(logger *logrus.Entry) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Fetcher issues GET requests with bounded retries and exponential backoff.
type Fetcher struct {
	http     *http.Client
	header   http.Header
	maxDelay time.Duration
	sleep    SleepFunc
	logger   *logrus.Entry
}

func New(httpClient *http.Client, opts ...Option) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	f := &Fetcher{
		http:     httpClient,
		header:   make(http.Header),
		maxDelay: defaultMaxDelay,
		sleep:    contextSleep,
		logger:   logrus.NewEntry(logrus.StandardLogger()).WithField("component", "fetch"),
	}
	f.header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs url and decodes the JSON body into out (which may be nil).
//
// Attempts are numbered from 0. A 429 waits baseDelay*2^(attempt+1), a 5xx or
// transport failure waits baseDelay*2^attempt, and any other 4xx fails
// immediately. Cancellation of ctx wins over every other outcome, including a
// response that already arrived.
func (f *Fetcher) Fetch(ctx context.Context, url string, maxAttempts int, baseDelay time.Duration, out any) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	// A request that cannot be built is never sent, so it is not retried.
	req, err := f.newRequest(ctx, url)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ErrCancelled
		}
		last := attempt == maxAttempts-1

		status, body, err := f.do(req.Clone(ctx))
		if ctx.Err() != nil {
			return ErrCancelled
		}

		var delay time.Duration
		switch {
		case err != nil:
			if last {
				return &NetworkError{Err: err}
			}
			delay = f.backoff(baseDelay, attempt)
			f.logger.WithError(err).WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"delay":   delay,
			}).Debug("network failure, retrying")
		case status >= 200 && status < 300:
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(body, out); err != nil {
				return &DecodeError{Err: err}
			}
			return nil
		case status == http.StatusTooManyRequests:
			if last {
				return &HTTPError{Status: status, Attempts: attempt + 1}
			}
			delay = f.backoff(baseDelay, attempt+1)
			f.logger.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"delay":   delay,
			}).Debug("rate limited, backing off")
		case status >= 500:
			if last {
				return &HTTPError{Status: status, Attempts: attempt + 1}
			}
			delay = f.backoff(baseDelay, attempt)
			f.logger.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"status":  status,
				"delay":   delay,
			}).Debug("server error, retrying")
		case status >= 400:
			return &ClientError{Status: status, Body: strings.TrimSpace(string(truncate(body, 512)))}
		default:
			return &HTTPError{Status: status, Attempts: attempt + 1}
		}

		if err := f.sleep(ctx, delay); err != nil || ctx.Err() != nil {
			return ErrCancelled
		}
	}

	// Unreachable: the last attempt always returns from the switch.
	return fmt.Errorf("fetch %s: attempts exhausted", url)
}

func (f *Fetcher) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range f.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}

func (f *Fetcher) do(req *http.Request) (int, []byte, error) {
	resp, err := f.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (f *Fetcher) backoff(base time.Duration, exp int) time.Duration {
	if base <= 0 {
		return 0
	}
	if exp > 30 {
		return f.maxDelay
	}
	d := base << uint(exp)
	if d <= 0 || d > f.maxDelay {
		return f.maxDelay
	}
	return d
}

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
