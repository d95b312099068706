package retry

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"
)

// TransientError is implemented by errors that know their own retryability
// and can carry a server-supplied wait hint.
type TransientError interface {
	error
	Transient() (retryable bool, retryAfter time.Duration)
}

// ClassifyNetwork is the default classifier for remote HTTP calls. Errors
// implementing TransientError decide for themselves; otherwise any
// network-level failure (timeout, refused connection) is transient and
// caller context expiry is permanent.
func ClassifyNetwork(err error) (bool, time.Duration) {
	var te TransientError
	if errors.As(err, &te) {
		return te.Transient()
	}

	// An http.Client per-request timeout also matches context.DeadlineExceeded,
	// so the timeout check has to come before the context sentinels.
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true, 0
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false, 0
	}

	if errors.As(err, &ne) {
		return true, 0
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		return true, 0
	}

	return false, 0
}
