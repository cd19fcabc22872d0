package fetch

import (
	"context"
	"time"

	"github.com/jonesrussell/webscout/internal/content"
	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/internal/page"
	"github.com/jonesrussell/webscout/internal/urlx"
)

// Strategy names for the delegated variants.
const (
	nameServerBasic = "server-basic"
	nameServerFull  = "server-full"
	nameScriptBasic = "script-basic"
	nameScriptFull  = "script-full"
)

// Config carries the fetch-layer settings resolved by the caller.
type Config struct {
	// UserAgent overrides the default user agent when non-empty.
	UserAgent string
	// Timeout overrides the default per-attempt timeout when positive.
	Timeout time.Duration
	// SSLVerify controls TLS verification on direct requests.
	SSLVerify bool
	// HeadlessScript is the path of the headless crawler script; empty
	// disables the script-basic strategy.
	HeadlessScript string
	// FullScript is the path of the full-browser crawler script; empty
	// disables the script-full strategy.
	FullScript string
	// ServerPort is the delegated crawler server port; 0 disables the
	// server strategies.
	ServerPort int
	// ChromePath locates the browser binary for the in-process browser
	// strategies; empty lets the driver find it.
	ChromePath string
}

// DefaultConfig returns the settings used when the caller passes none.
func DefaultConfig() *Config {
	return &Config{SSLVerify: true}
}

// Client is the fetch orchestrator: it normalizes the URL, picks a
// strategy order from the options, runs the chain and hands the
// response to the content layer.
type Client struct {
	log logger.Interface
	cfg *Config

	direct      Strategy
	serverBasic Strategy
	scriptBasic Strategy
	headless    Strategy
	serverFull  Strategy
	scriptFull  Strategy
	full        Strategy
}

// NewClient creates a fetch client with the full strategy set.
func NewClient(log logger.Interface, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Client{
		log:         log.WithComponent("fetch"),
		cfg:         cfg,
		direct:      NewDirectStrategy(log),
		serverBasic: NewServerStrategy(log, nameServerBasic, cfg.ServerPort, false),
		scriptBasic: NewScriptStrategy(log, nameScriptBasic, cfg.HeadlessScript),
		headless:    NewHeadlessStrategy(log, cfg.ChromePath),
		serverFull:  NewServerStrategy(log, nameServerFull, cfg.ServerPort, true),
		scriptFull:  NewScriptStrategy(log, nameScriptFull, cfg.FullScript),
		full:        NewFullBrowserStrategy(log, cfg.ChromePath),
	}
}

// Fetch obtains a response for the URL. The error return is non-nil
// only for ServerError conditions; every per-page failure is encoded on
// the response, and a nil response with a nil error means every
// strategy came up empty.
func (c *Client) Fetch(ctx context.Context, rawURL string, opts *page.Options) (*page.Response, error) {
	if opts == nil {
		opts = page.DefaultOptions()
	} else {
		// The link-service upgrade below must not leak into the caller's
		// options.
		local := *opts
		opts = &local
	}

	cleaned := urlx.CleanLink(rawURL)
	if cleaned == "" || !urlx.IsWebLink(cleaned) {
		c.log.Debug("refusing non-web link", "url", rawURL)
		return nil, nil
	}

	// Client-side redirects on shortener domains only resolve in a real
	// browser.
	if urlx.IsLinkService(cleaned) {
		opts.UseFullBrowser = true
	}

	if feedURL := c.channelFeedURL(ctx, cleaned); feedURL != "" {
		c.log.Debug("channel page resolves to feed", "url", cleaned, "feed_url", feedURL)
		cleaned = feedURL
	}

	req := c.newRequest(cleaned, opts)
	chain := NewChain(c.log, opts.UseBrowserPromotion, c.order(opts)...)

	resp, err := chain.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		c.log.Info("all fetch strategies failed", "url", cleaned)
	}

	return resp, nil
}

// GetProperties fetches the URL and extracts the structured properties.
// Returns nil when the fetch ultimately fails after strategy
// exhaustion; parse rejections never surface as errors.
func (c *Client) GetProperties(ctx context.Context, rawURL string, opts *page.Options) (content.Properties, error) {
	resp, err := c.Fetch(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}
	if resp == nil || !resp.HasBody() {
		return nil, nil
	}

	return content.Detect(resp).Properties(), nil
}

// newRequest builds the per-attempt request from options and config.
func (c *Client) newRequest(url string, opts *page.Options) *page.Request {
	req := page.NewRequest(url)
	req.UserAgent = c.cfg.UserAgent
	if c.cfg.Timeout > 0 {
		req.Timeout = c.cfg.Timeout
	}
	req.Ping = opts.Ping
	req.SSLVerify = opts.SSLVerify && c.cfg.SSLVerify

	return req
}

// order returns the strategy order for the given options. The basic
// chain runs cheapest first; the headless and full orders front-load
// the browser-capable strategies for domains known to need them.
func (c *Client) order(opts *page.Options) []Strategy {
	switch {
	case opts.UseFullBrowser:
		return []Strategy{
			c.full, c.serverFull, c.scriptFull,
			c.headless, c.serverBasic, c.scriptBasic, c.direct,
		}
	case opts.UseHeadlessBrowser:
		return []Strategy{
			c.headless, c.serverBasic, c.scriptBasic,
			c.serverFull, c.scriptFull, c.full, c.direct,
		}
	default:
		return []Strategy{
			c.direct, c.serverBasic, c.scriptBasic,
			c.headless, c.serverFull, c.scriptFull, c.full,
		}
	}
}
