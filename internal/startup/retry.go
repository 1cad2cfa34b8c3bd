package startup

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/marquee/marquee/internal/catalog/tmdb"
	"github.com/marquee/marquee/internal/uistate"
)

// RetryConfig configures the exponential backoff retry behavior.
type RetryConfig struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	MaxAttempts  int
	Multiplier   float64

	// Clock paces the backoff. Nil uses the real clock.
	Clock clockwork.Clock
}

// DefaultRetryConfig returns the backoff used for the startup TMDB check.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		InitialDelay: 5 * time.Second,
		MaxDelay:     5 * time.Minute,
		MaxAttempts:  5,
		Multiplier:   2.0,
	}
}

// IsRetryable reports whether err is worth another attempt: transport
// failures, TMDB throttling and TMDB server errors. Configuration, decode
// and client-side rejections fail immediately.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	switch uistate.KindOf(err) {
	case uistate.KindTransport:
		return true
	case uistate.KindRemote:
		var reqErr *tmdb.RequestError
		if errors.As(err, &reqErr) {
			return reqErr.Status == http.StatusTooManyRequests || reqErr.Status >= http.StatusInternalServerError
		}
		return false
	case uistate.KindUnknown:
		var netErr net.Error
		return errors.As(err, &netErr)
	default:
		return false
	}
}

// WithRetry executes fn with exponential backoff while its errors are
// retryable. Other errors are returned after the first attempt.
func WithRetry(ctx context.Context, name string, cfg RetryConfig, fn func(ctx context.Context) error, logger *zerolog.Logger) error {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				logger.Info().Str("operation", name).Int("attempt", attempt).Msg("operation succeeded after retry")
			}
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			logger.Error().Err(err).Str("operation", name).Str("kind", string(uistate.KindOf(err))).
				Msg("non-retryable error, not retrying")
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		logger.Warn().
			Err(err).
			Str("operation", name).
			Str("kind", string(uistate.KindOf(err))).
			Int("attempt", attempt).
			Int("maxAttempts", cfg.MaxAttempts).
			Dur("nextRetryIn", delay).
			Msg("retryable error, will retry")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(delay):
		}

		delay = min(time.Duration(float64(delay)*cfg.Multiplier), cfg.MaxDelay)
	}

	logger.Error().Err(lastErr).Str("operation", name).Int("attempts", cfg.MaxAttempts).
		Msg("operation failed after all retries")
	return lastErr
}
