package feed

import (
	"fmt"
	"time"
)

// FetchError reports a network or HTTP failure downloading the feed.
// It is fatal for the run; no update is ever dispatched after one.
type FetchError struct {
	// Status is the HTTP status code, or zero when the request never got
	// a response.
	Status int

	Err error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("feed fetch: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("feed fetch: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Transient reports whether the fetch is worth retrying. Network-level
// failures, rate limiting, and server errors are; client errors are not.
func (e *FetchError) Transient() (bool, time.Duration) {
	if e.Status == 0 || e.Status == 429 || e.Status >= 500 {
		return true, 0
	}
	return false, 0
}

// ParseError reports a malformed feed document. Fatal for the run.
type ParseError struct {
	// Reason is "malformed-xml" or "missing-field".
	Reason string

	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed parse (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("feed parse (%s)", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
