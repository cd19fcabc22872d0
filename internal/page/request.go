package page

import (
	"time"

	"github.com/google/uuid"
)

// Default request values.
const (
	// DefaultTimeout is the per-attempt fetch timeout.
	DefaultTimeout = 20 * time.Second
	// DefaultUserAgent is sent when the caller does not override it.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Request describes one fetch attempt. It is constructed per attempt and
// not mutated afterwards.
type Request struct {
	// ID correlates log lines across strategies for one attempt.
	ID string
	// URL is the target, already cleaned by the caller.
	URL string
	// Headers are extra headers merged over the strategy's fixed set.
	Headers map[string]string
	// UserAgent overrides DefaultUserAgent when non-empty.
	UserAgent string
	// Timeout bounds the whole attempt. Browser strategies add their own
	// startup allowance on top.
	Timeout time.Duration
	// Ping requests a headers-only fetch; the body is never downloaded.
	Ping bool
	// SSLVerify controls TLS certificate verification.
	SSLVerify bool
}

// NewRequest creates a Request for the given URL with default settings.
func NewRequest(url string) *Request {
	return &Request{
		ID:        uuid.NewString(),
		URL:       url,
		Timeout:   DefaultTimeout,
		SSLVerify: true,
	}
}

// EffectiveUserAgent returns the user agent to send.
func (r *Request) EffectiveUserAgent() string {
	if r.UserAgent != "" {
		return r.UserAgent
	}

	return DefaultUserAgent
}

// EffectiveTimeout returns the timeout to apply, falling back to the
// default when unset.
func (r *Request) EffectiveTimeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}

	return r.Timeout
}
