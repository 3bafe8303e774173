package fetch

import (
	"errors"
	"fmt"
)

// ErrCancelled reports that the caller's context was cancelled before the
// fetch produced a result. A cancelled fetch never returns data.
var ErrCancelled = errors.New("request cancelled")

// ClientError is a non-retryable 4xx response (anything but 429).
type ClientError struct {
	Status int
	Body   string
}

func (e *ClientError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// HTTPError is a retryable status (429 or 5xx) that persisted through every
// attempt, or a status outside the ranges the fetcher knows how to handle.
type HTTPError struct {
	Status   int
	Attempts int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status %d after %d attempt(s)", e.Status, e.Attempts)
}

// NetworkError wraps a transport failure where no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError wraps a 2xx response whose body could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
