package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}

type payload struct {
	Name string `json:"name"`
}

func TestFetch_RetriesRateLimitWithIncreasingDelay(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"bitcoin"}`))
	}))
	defer ts.Close()

	rec := &sleepRecorder{}
	f := New(ts.Client(), WithSleep(rec.sleep))

	var out payload
	if err := f.Fetch(context.Background(), ts.URL, 4, 100*time.Millisecond, &out); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if out.Name != "bitcoin" {
		t.Fatalf("unexpected payload: %+v", out)
	}
	want := []time.Duration{200 * time.Millisecond, 400 * time.Millisecond}
	if !reflect.DeepEqual(rec.delays, want) {
		t.Fatalf("unexpected delays: got=%v want=%v", rec.delays, want)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 requests, got %d", got)
	}
}

func TestFetch_ServerErrorBackoffAndExhaustion(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	rec := &sleepRecorder{}
	f := New(ts.Client(), WithSleep(rec.sleep))

	err := f.Fetch(context.Background(), ts.URL, 3, 10*time.Millisecond, nil)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusBadGateway || httpErr.Attempts != 3 {
		t.Fatalf("unexpected HTTPError: %+v", httpErr)
	}
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}
	if !reflect.DeepEqual(rec.delays, want) {
		t.Fatalf("unexpected delays: got=%v want=%v", rec.delays, want)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 requests, got %d", got)
	}
}

func TestFetch_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "coin not found", http.StatusNotFound)
	}))
	defer ts.Close()

	rec := &sleepRecorder{}
	f := New(ts.Client(), WithSleep(rec.sleep))

	err := f.Fetch(context.Background(), ts.URL, 5, time.Millisecond, nil)
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected ClientError, got %v", err)
	}
	if clientErr.Status != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", clientErr.Status)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single request, got %d", got)
	}
	if len(rec.delays) != 0 {
		t.Fatalf("expected no waits, got %v", rec.delays)
	}
}

func TestFetch_NetworkErrorAfterLastAttempt(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	rec := &sleepRecorder{}
	f := New(&http.Client{Timeout: time.Second}, WithSleep(rec.sleep))

	err := f.Fetch(context.Background(), url, 3, 5*time.Millisecond, nil)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	want := []time.Duration{5 * time.Millisecond, 10 * time.Millisecond}
	if !reflect.DeepEqual(rec.delays, want) {
		t.Fatalf("unexpected delays: got=%v want=%v", rec.delays, want)
	}
}

func TestFetch_DecodeErrorIsTerminal(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer ts.Close()

	f := New(ts.Client(), WithSleep((&sleepRecorder{}).sleep))
	var out payload
	err := f.Fetch(context.Background(), ts.URL, 4, time.Millisecond, &out)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single request, got %d", got)
	}
}

func TestFetch_CancelledBeforeFirstAttemptIssuesNoRequest(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(ts.Client()).Fetch(ctx, ts.URL, 3, time.Millisecond, nil)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("expected no requests, got %d", got)
	}
}

func TestFetch_CancelDuringBackoffReturnsPromptly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := New(ts.Client()).Fetch(ctx, ts.URL, 4, 10*time.Second, nil)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancellation observed too late: %v", elapsed)
	}
}

func TestFetch_ResponseAfterCancellationIsDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
		_, _ = w.Write([]byte(`{"name":"late"}`))
	}))
	defer ts.Close()

	var out payload
	err := New(ts.Client()).Fetch(ctx, ts.URL, 1, time.Millisecond, &out)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if out.Name != "" {
		t.Fatalf("cancelled fetch must not populate output, got %+v", out)
	}
}

func TestFetch_SendsConfiguredHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-cg-demo-api-key"); got != "secret" {
			t.Errorf("unexpected api key header: %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("unexpected accept header: %q", got)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	f := New(ts.Client(), WithHeader("x-cg-demo-api-key", "secret"))
	if err := f.Fetch(context.Background(), ts.URL, 1, 0, nil); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
}

func TestBackoff_IsCapped(t *testing.T) {
	f := New(nil, WithMaxDelay(time.Second))
	cases := []struct {
		exp  int
		want time.Duration
	}{
		{exp: 0, want: 300 * time.Millisecond},
		{exp: 1, want: 600 * time.Millisecond},
		{exp: 2, want: time.Second},
		{exp: 40, want: time.Second},
	}
	for _, tc := range cases {
		if got := f.backoff(300*time.Millisecond, tc.exp); got != tc.want {
			t.Fatalf("backoff(exp=%d) = %v, want %v", tc.exp, got, tc.want)
		}
	}
}

func TestFetch_MalformedURLFailsWithoutRetry(t *testing.T) {
	rec := &sleepRecorder{}
	f := New(http.DefaultClient, WithSleep(rec.sleep))

	err := f.Fetch(context.Background(), "http://[::1", 3, 100*time.Millisecond, nil)
	if err == nil {
		t.Fatal("expected an error for a malformed URL")
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		t.Fatalf("request build failure must not be a network error: %v", err)
	}
	if len(rec.delays) != 0 {
		t.Fatalf("expected no retries, got delays %v", rec.delays)
	}
}
