package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// AuthenticatedRateLimit is the REST quota for token requests (5000/hour).
	AuthenticatedRateLimit = 5000

	// AnonymousRateLimit is the REST quota for requests without a token (60/hour).
	AnonymousRateLimit = 60

	// ProactiveRate is the proactive throttle rate (~1.2 req/sec = 4320/hr).
	ProactiveRate = 1.2

	// MinBuffer is the minimum remaining requests before waiting for reset.
	MinBuffer = 100

	// AnonymousMinBuffer is MinBuffer for the anonymous quota.
	AnonymousMinBuffer = 5

	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset" // Unix seconds
	HeaderRetryAfter    = "Retry-After"       // seconds
)

// RateLimitStatus is a snapshot of the quota reported by GitHub.
type RateLimitStatus struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// RateLimiter implements dual-strategy rate limiting for the REST API.
// The token bucket throttles every request; the header state makes Wait
// hold back until the reset once fewer than minBuffer requests remain.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
	minBuffer int
}

// NewRateLimiter creates a rate limiter sized for the given quota.
func NewRateLimiter(authenticated bool) *RateLimiter {
	limit, buffer := AuthenticatedRateLimit, MinBuffer
	if !authenticated {
		limit, buffer = AnonymousRateLimit, AnonymousMinBuffer
	}
	return &RateLimiter{
		remaining: limit,
		limit:     limit,
		bucket:    rate.NewLimiter(rate.Limit(ProactiveRate), 1),
		minBuffer: buffer,
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining < r.minBuffer && time.Now().Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime)):
		}
	}
	return nil
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateRemaining)); err == nil {
		r.remaining = v
	}
	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateLimit)); err == nil {
		r.limit = v
	}
	if v, err := strconv.ParseInt(resp.Header.Get(HeaderRateReset), 10, 64); err == nil {
		r.resetTime = time.Unix(v, 0)
	}
}

// CheckRateLimit checks if the response indicates rate limiting.
// Returns a RateLimitError if rate limited, nil otherwise.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil {
		return nil
	}

	r.UpdateFromResponse(resp)

	status := r.Status()
	if resp.StatusCode != http.StatusTooManyRequests &&
		(resp.StatusCode != http.StatusForbidden || status.Remaining != 0) {
		return nil
	}

	if seconds, err := strconv.Atoi(resp.Header.Get(HeaderRetryAfter)); err == nil {
		status.ResetAt = time.Now().Add(time.Duration(seconds) * time.Second)
	}
	return &RateLimitError{
		ResetAt:   status.ResetAt,
		Remaining: status.Remaining,
		Limit:     status.Limit,
	}
}

// Status returns the last known quota.
func (r *RateLimiter) Status() RateLimitStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RateLimitStatus{
		Limit:     r.limit,
		Remaining: r.remaining,
		ResetAt:   r.resetTime,
	}
}

// SetRate changes the proactive throttle rate.
func (r *RateLimiter) SetRate(perSecond rate.Limit) {
	r.bucket.SetLimit(perSecond)
}
