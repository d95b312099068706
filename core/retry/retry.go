package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Classifier reports whether an error is worth retrying and, when the server
// supplied a retry-after hint, how long to wait before the next attempt.
// A zero retryAfter means no hint; the backoff schedule decides.
type Classifier func(err error) (retryable bool, retryAfter time.Duration)

// Policy bundles the attempt ceiling, the backoff schedule, and the
// retryable-classifier shared by all remote calls.
type Policy struct {
	// MaxAttempts is the total attempt ceiling, including the first try.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// InitialInterval is the first backoff wait. Zero keeps the library default.
	InitialInterval time.Duration

	// MaxInterval caps the backoff wait. Zero keeps the library default.
	MaxInterval time.Duration

	// Classify decides retryability. A nil classifier retries nothing.
	Classify Classifier
}

// Do runs op until it succeeds, is classified permanent, exhausts the
// attempt budget, or ctx is done. It returns the number of attempts made
// and the last error.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) (attempts int, err error) {
	eb := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		eb.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		eb.MaxInterval = p.MaxInterval
	}
	// The attempt ceiling is the only budget; the schedule never stops early.
	eb.MaxElapsedTime = 0
	eb.Reset()

	ceiling := p.MaxAttempts
	if ceiling < 1 {
		ceiling = 1
	}

	for attempt := 1; ; attempt++ {
		err = op(ctx)
		if err == nil {
			return attempt, nil
		}

		var retryable bool
		var hint time.Duration
		if p.Classify != nil {
			retryable, hint = p.Classify(err)
		}
		if !retryable || attempt >= ceiling {
			return attempt, err
		}

		wait := eb.NextBackOff()
		if wait == backoff.Stop {
			return attempt, err
		}
		// A server-supplied hint extends, never shortens, the wait.
		if hint > wait {
			wait = hint
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, ctx.Err()
		case <-timer.C:
		}
	}
}
