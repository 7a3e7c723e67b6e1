package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Retrier runs gateway calls with exponential backoff. Only transport
// failures and transient statuses are retried; application and
// normalize errors end the attempt sequence immediately.
type Retrier struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a Retrier. maxAttempts counts the first call, so
// 3 means at most two retries. The schedule is capped so retries add
// roughly a second of latency at most.
func NewRetrier(maxAttempts int, logger zerolog.Logger) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retrier{
		maxAttempts:     maxAttempts,
		initialInterval: 100 * time.Millisecond,
		maxInterval:     500 * time.Millisecond,
		maxElapsedTime:  0, // bounded by attempts, not wall clock
		logger:          logger,
	}
}

// Do executes op with the retry policy. The error returned after
// exhaustion is the last one observed.
func (r *Retrier) Do(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		attempt++

		err := op()
		if err == nil {
			return nil
		}

		if !Retryable(err) {
			return backoff.Permanent(err)
		}

		if attempt >= r.maxAttempts {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", r.maxAttempts).
			Msg("transient gateway failure, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

// Retryable reports whether an error belongs to the transient class:
// transport failures and the retryable status subset.
func Retryable(err error) bool {
	var transport *TransportError
	if errors.As(err, &transport) {
		return true
	}

	var status *StatusError
	if errors.As(err, &status) {
		return status.Transient()
	}

	return false
}
