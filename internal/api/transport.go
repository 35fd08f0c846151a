package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"
)

// loggingTransport records every HTTP exchange with the question bank.
type loggingTransport struct {
	inner  http.RoundTripper
	logger *slog.Logger
}

// WithLogging wraps rt so each round trip is logged.
func WithLogging(rt http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	return &loggingTransport{inner: rt, logger: logger}
}

func (l *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.inner.RoundTrip(req)
	latency := time.Since(start)

	attrs := []any{
		"method", req.Method,
		"path", req.URL.Path,
		"latency_ms", latency.Milliseconds(),
	}
	if err != nil {
		l.logger.Warn("api request failed", append(attrs, "error", err)...)
		return nil, err
	}

	attrs = append(attrs, "status", resp.StatusCode)
	if resp.StatusCode >= 400 {
		l.logger.Warn("api request returned error status", attrs...)
	} else {
		l.logger.Debug("api request", attrs...)
	}
	return resp, nil
}

// retryTransport retries idempotent requests on transient failures with
// exponential backoff and jitter.
type retryTransport struct {
	inner  http.RoundTripper
	config RetryConfig
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps rt with retry logic. Only idempotent methods are
// retried, and only on network errors, 429 and 5xx.
func WithRetry(rt http.RoundTripper, cfg RetryConfig) http.RoundTripper {
	return &retryTransport{inner: rt, config: cfg, sleep: sleepCtx}
}

func (r *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	replayable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
	if !idempotent(req.Method) || !replayable || r.config.MaxAttempts <= 1 {
		return r.inner.RoundTrip(req)
	}

	var resp *http.Response
	var err error
	for attempt := range r.config.MaxAttempts {
		if attempt > 0 {
			if rerr := rewind(req); rerr != nil {
				return nil, rerr
			}
		}

		resp, err = r.inner.RoundTrip(req)
		if !r.shouldRetry(req.Context(), resp, err) {
			return resp, err
		}

		// Last attempt, hand back whatever we got.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, resp)
		if resp != nil {
			drain(resp)
		}
		if serr := r.sleep(req.Context(), wait); serr != nil {
			return nil, serr
		}
	}
	return resp, err
}

// shouldRetry determines if the outcome of one attempt is retryable.
func (r *retryTransport) shouldRetry(ctx context.Context, resp *http.Response, err error) bool {
	// Context errors are never retried.
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
}

// backoff computes the wait duration for the given attempt.
func (r *retryTransport) backoff(attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if d, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
			return min(d, r.config.MaxWait)
		}
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(v string) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

func rewind(req *http.Request) error {
	if req.Body == nil || req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return err
	}
	req.Body = body
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
