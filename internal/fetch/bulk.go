package fetch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jonesrussell/webscout/internal/page"
	"github.com/jonesrussell/webscout/internal/urlx"
)

// DefaultPageSize is the bulk-fetch batch size.
const DefaultPageSize = 10

// domainRate throttles fetches per domain during a bulk run.
var domainRate = rate.Limit(2)

// BulkFetcher fetches URL lists in fixed-size pages. Within a page each
// URL gets its own goroutine; the whole page is joined before the next
// one starts. Backpressure by batch, not a continuously refilled pool.
type BulkFetcher struct {
	client   *Client
	pageSize int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewBulkFetcher creates a bulk fetcher over the client.
func NewBulkFetcher(client *Client) *BulkFetcher {
	return &BulkFetcher{
		client:   client,
		pageSize: DefaultPageSize,
		limiters: make(map[string]*rate.Limiter),
	}
}

// WithPageSize overrides the batch size.
func (b *BulkFetcher) WithPageSize(size int) *BulkFetcher {
	if size > 0 {
		b.pageSize = size
	}

	return b
}

// FetchAll fetches every URL, returning responses aligned with the
// input by index. A URL whose strategies all fail yields a nil entry.
// The first ServerError aborts the remaining pages.
func (b *BulkFetcher) FetchAll(ctx context.Context, urls []string, opts *page.Options) ([]*page.Response, error) {
	responses := make([]*page.Response, len(urls))

	for start := 0; start < len(urls); start += b.pageSize {
		end := min(start+b.pageSize, len(urls))

		g, groupCtx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := b.limiter(urls[i]).Wait(groupCtx); err != nil {
					return err
				}

				resp, err := b.client.Fetch(groupCtx, urls[i], opts)
				if err != nil {
					return err
				}

				responses[i] = resp
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return responses, err
		}
	}

	return responses, nil
}

// limiter returns the rate limiter for a URL's domain, creating it on
// first use.
func (b *BulkFetcher) limiter(rawURL string) *rate.Limiter {
	domain := urlx.GetDomain(rawURL)

	b.mu.Lock()
	defer b.mu.Unlock()

	limiter, ok := b.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(domainRate, 1)
		b.limiters[domain] = limiter
	}

	return limiter
}
