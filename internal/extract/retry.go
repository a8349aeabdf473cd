package extract

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"

	"github.com/dvloznov/mail-processors/internal/logger"
)

// Retry schedule for transient transport failures: wait 4s, 8s, 16s, 32s
// between attempts, capped at 60s, for 5 attempts total. Anything that is
// not a transport failure is permanent.
const maxTransportRetries = 4

// Intervals are variables so tests can shrink the schedule.
var (
	initialInterval = 4 * time.Second
	maxInterval     = 60 * time.Second
)

// retryTransport runs operation, retrying it while it fails with a transient
// transport error. The final error is a *TransportError when retries were
// exhausted, or the operation's own error when it was not retryable.
func retryTransport(ctx context.Context, operation func() error) error {
	log := logger.FromContext(ctx)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialInterval
	b.Multiplier = 2
	b.MaxInterval = maxInterval
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isTransient(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > maxTransportRetries {
			return backoff.Permanent(&TransportError{Err: err})
		}

		log.Warn().
			Err(err).
			Int("attempt", retryCount).
			Msg("transient model transport error, retrying")

		return &TransportError{Err: err}
	}, backoff.WithContext(b, ctx))
}

// isTransient reports whether err looks like a transient transport failure:
// a timeout, a dropped connection, or a retryable API status.
func isTransient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 408, apiErr.Code == 429:
			return true
		case apiErr.Code >= 500:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	return false
}
