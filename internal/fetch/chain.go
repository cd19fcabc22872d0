package fetch

import (
	"context"

	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/internal/page"
)

// Chain runs strategies in order until one produces a response.
type Chain struct {
	log        logger.Interface
	strategies []Strategy
	// promote keeps trying heavier strategies past a response with an
	// unusable status instead of returning it immediately.
	promote bool
}

// NewChain creates a strategy chain.
func NewChain(log logger.Interface, promote bool, strategies ...Strategy) *Chain {
	return &Chain{
		log:        log.WithComponent("fetch.chain"),
		strategies: strategies,
		promote:    promote,
	}
}

// Fetch walks the chain. Without promotion the first non-nil response
// wins and later strategies are never attempted. With promotion a
// response with an unusable status is held while heavier strategies get
// a try; the held response is returned when nothing better appears.
// Failed attempts are silent, a ServerError aborts the walk.
func (c *Chain) Fetch(ctx context.Context, req *page.Request) (*page.Response, error) {
	var held *page.Response

	for _, strategy := range c.strategies {
		resp, err := strategy.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			c.log.Debug("strategy produced nothing", "url", req.URL, "strategy", strategy.Name())
			continue
		}

		if resp.IsValid() || !c.promote {
			return resp, nil
		}

		c.log.Debug("promoting past unusable response", "url", req.URL,
			"strategy", strategy.Name(), "status", resp.StatusCode)
		held = resp
	}

	return held, nil
}
