package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lazarus-tools/eq-gear-compare-go/src/http"
)

// Config holds retry configuration
type Config struct {
	MaxAttempts   int
	BackoffFactor time.Duration
	MaxDelay      time.Duration
}

// DefaultConfig matches the transport policy: three attempts, exponential
// backoff with a 0.5s factor, retrying only transient server errors.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   3,
		BackoffFactor: 500 * time.Millisecond,
		MaxDelay:      8 * time.Second,
	}
}

// retryableStatuses are the only statuses worth another attempt.
var retryableStatuses = map[int]bool{
	500: true,
	502: true,
	503: true,
	504: true,
}

// shouldRetry determines if we should retry based on the response or error
func shouldRetry(resp *http.Response, err error) bool {
	// Network errors: retry
	if err != nil {
		return true
	}

	return retryableStatuses[resp.StatusCode]
}

// getRetryDelay calculates the delay for the next retry:
// factor * 2^(attempt-1), capped at MaxDelay.
func getRetryDelay(attempt int, config Config) time.Duration {
	delay := config.BackoffFactor
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay > config.MaxDelay {
			return config.MaxDelay
		}
	}
	return delay
}

// WithRetry wraps an HTTP GET call with retry logic and exponential backoff
func WithRetry(ctx context.Context, client http.HTTPClient, url string, config Config) (*http.Response, error) {
	var lastErr error
	var lastResp *http.Response

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if attempt > 1 {
			slog.Warn("retrying request", "url", url, "attempt", attempt, "max_attempts", config.MaxAttempts)
		}

		resp, err := client.Get(ctx, url)

		// Success case
		if err == nil && resp.StatusCode == 200 {
			return resp, nil
		}

		lastResp = resp
		lastErr = err

		if !shouldRetry(resp, err) {
			// Non-retryable statuses are returned to the caller as-is.
			if err == nil {
				return resp, nil
			}
			return nil, err
		}

		// If this was the last attempt, don't sleep
		if attempt == config.MaxAttempts {
			break
		}

		delay := getRetryDelay(attempt, config)
		slog.Info("backing off before retry", "url", url, "delay", delay, "reason", getRetryReason(resp, err))

		select {
		case <-time.After(delay):
			// Continue to next attempt
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// All attempts exhausted
	if lastErr != nil {
		return nil, fmt.Errorf("request failed after %d attempts: %w", config.MaxAttempts, lastErr)
	}

	// Return the last response (non-200 status)
	return lastResp, nil
}

// getRetryReason returns a human-readable reason for the retry
func getRetryReason(resp *http.Response, err error) string {
	if err != nil {
		return "network_error"
	}
	if retryableStatuses[resp.StatusCode] {
		return "server_error"
	}
	return "unknown"
}
