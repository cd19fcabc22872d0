// Package fetch obtains page responses through an ordered chain of
// fetch strategies, escalating from a plain HTTP request to delegated
// crawlers and real browsers.
package fetch

import (
	"context"
	"fmt"

	"github.com/jonesrussell/webscout/internal/page"
)

// Strategy is one way of turning a request into a response.
//
// A nil response means the strategy could not produce anything and the
// chain moves on; per-page failures are encoded as synthetic status
// codes on the response, never as errors. The error return is reserved
// for ErrServer conditions: the backing crawler server itself is
// misbehaving, which must abort the chain and propagate so upstream
// retry logic can react.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// Fetch executes one attempt.
	Fetch(ctx context.Context, req *page.Request) (*page.Response, error)
}

// ServerError signals that a delegated crawler server is misbehaving.
// Unlike page-level failures it propagates to the orchestrator's
// caller.
type ServerError struct {
	Strategy string
	Err      error
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("crawler server error in %s strategy: %v", e.Strategy, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ServerError) Unwrap() error { return e.Err }
