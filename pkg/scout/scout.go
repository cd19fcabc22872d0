// Package scout is the public call surface of the engine: fetch a URL
// through the strategy chain, extract structured properties, harvest
// links and answer robots.txt questions.
package scout

import (
	"context"

	"github.com/jonesrussell/webscout/internal/config"
	"github.com/jonesrussell/webscout/internal/content"
	"github.com/jonesrussell/webscout/internal/domains"
	"github.com/jonesrussell/webscout/internal/fetch"
	"github.com/jonesrussell/webscout/internal/links"
	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/internal/page"
	"github.com/jonesrussell/webscout/internal/urlx"
)

// Scout wires the fetch client, the domain cache and the extraction
// layer behind one facade.
type Scout struct {
	log     logger.Interface
	client  *fetch.Client
	bulk    *fetch.BulkFetcher
	domains *domains.Cache
	// promote is the configured default for strategy promotion, applied
	// when the caller passes no options.
	promote bool
}

// New composes a Scout from configuration. This is the only place the
// engine's collaborators are wired together; everything below receives
// its dependencies explicitly.
func New(cfg *config.Config, log logger.Interface) *Scout {
	if cfg == nil {
		cfg = &config.Config{}
	}

	client := fetch.NewClient(log, &fetch.Config{
		UserAgent:      cfg.Fetch.UserAgent,
		Timeout:        cfg.Fetch.RequestTimeout,
		SSLVerify:      cfg.Fetch.SSLVerify,
		HeadlessScript: cfg.Fetch.HeadlessScript,
		FullScript:     cfg.Fetch.FullScript,
		ServerPort:     cfg.Fetch.ServerPort,
		ChromePath:     cfg.Fetch.ChromePath,
	})

	cache := domains.NewCache(
		&robotsFetcher{client: client},
		log,
		domains.WithCapacity(cfg.Robots.DomainCacheSize),
		domains.WithRespectRobots(cfg.Robots.RespectRobotsTxt),
	)

	return &Scout{
		log:     log.WithComponent("scout"),
		client:  client,
		bulk:    fetch.NewBulkFetcher(client),
		domains: cache,
		promote: cfg.Fetch.UseBrowserPromotion,
	}
}

// defaultOptions builds the per-fetch options from configuration.
func (s *Scout) defaultOptions() *page.Options {
	opts := page.DefaultOptions()
	opts.UseBrowserPromotion = s.promote

	return opts
}

// Fetch obtains a response for the URL. Nil response with nil error
// means every strategy failed; the error return is reserved for
// crawler-server failures.
func (s *Scout) Fetch(ctx context.Context, rawURL string, opts *page.Options) (*page.Response, error) {
	if opts == nil {
		opts = s.defaultOptions()
	}

	return s.client.Fetch(ctx, rawURL, opts)
}

// GetProperties fetches and extracts in one call. Nil when the fetch
// ultimately fails.
func (s *Scout) GetProperties(ctx context.Context, rawURL string, opts *page.Options) (content.Properties, error) {
	if opts == nil {
		opts = s.defaultOptions()
	}

	return s.client.GetProperties(ctx, rawURL, opts)
}

// FetchAll fetches a URL list in bounded batches.
func (s *Scout) FetchAll(ctx context.Context, urls []string, opts *page.Options) ([]*page.Response, error) {
	if opts == nil {
		opts = s.defaultOptions()
	}

	return s.bulk.FetchAll(ctx, urls, opts)
}

// GetLinks extracts the outbound links from contents, resolved against
// the base URL. Pure, no network.
func (s *Scout) GetLinks(contents, baseURL string) []string {
	return links.NewExtractor(baseURL).Extract(contents)
}

// CleanLink canonicalizes a URL. Pure, no network.
func (s *Scout) CleanLink(rawURL string) string {
	return urlx.CleanLink(rawURL)
}

// IsAllowed answers the robots.txt question for a URL. May fetch
// robots.txt on a cache miss.
func (s *Scout) IsAllowed(rawURL string) bool {
	return s.domains.IsAllowed(rawURL)
}

// SitemapURLs lists the sitemap declarations in the domain's
// robots.txt.
func (s *Scout) SitemapURLs(rawURL string) []string {
	return s.domains.SitemapURLs(rawURL)
}

// robotsFetcher adapts the fetch client to the domain cache's narrow
// fetcher contract. ServerError conditions degrade to a missing
// robots.txt rather than aborting a robots check.
type robotsFetcher struct {
	client *fetch.Client
}

func (f *robotsFetcher) Fetch(rawURL string, opts *page.Options) *page.Response {
	resp, err := f.client.Fetch(context.Background(), rawURL, opts)
	if err != nil {
		return nil
	}

	return resp
}
