package shopify

import (
	"fmt"
	"net/http"
	"time"
)

// APIError reports a non-2xx response from the platform API.
type APIError struct {
	// Status is the HTTP status code.
	Status int

	// RetryAfter is the server-supplied wait hint, when present.
	RetryAfter time.Duration

	// Body is a snippet of the response body for diagnostics.
	Body string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("platform api: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("platform api: status %d", e.Status)
}

// Transient reports whether the request is worth retrying. Rate limiting
// and server errors are transient; other client errors are permanent.
func (e *APIError) Transient() (bool, time.Duration) {
	if e.Status == http.StatusTooManyRequests {
		return true, e.RetryAfter
	}
	if e.Status >= 500 {
		return true, 0
	}
	return false, 0
}

// IndexError marks a catalog indexing failure. Fatal for the run: a partial
// index is never used for reconciliation.
type IndexError struct {
	Err error
}

func (e *IndexError) Error() string { return fmt.Sprintf("catalog index: %v", e.Err) }

func (e *IndexError) Unwrap() error { return e.Err }
