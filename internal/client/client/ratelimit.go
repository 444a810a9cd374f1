package client

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedTransport delays requests to stay under a token-bucket limit.
type RateLimitedTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

// NewRateLimitedTransport allows perSecond requests with the given burst.
// A non-positive perSecond disables limiting.
func NewRateLimitedTransport(next http.RoundTripper, perSecond float64, burst int) *RateLimitedTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedTransport{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}
