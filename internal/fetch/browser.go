package fetch

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/internal/page"
)

// Browser startup allowances added on top of the request timeout: the
// page-load clock should not be charged for process launch.
const (
	headlessStartupAllowance = 10 * time.Second
	fullStartupAllowance     = 20 * time.Second
)

// BrowserStrategy fetches by driving a Chrome instance. Each fetch owns
// its own browser process for the duration of one navigation; there is
// no pooling across fetches.
type BrowserStrategy struct {
	log        logger.Interface
	headless   bool
	chromePath string
}

// NewHeadlessStrategy creates a headless-browser strategy.
func NewHeadlessStrategy(log logger.Interface, chromePath string) *BrowserStrategy {
	return &BrowserStrategy{
		log:        log.WithComponent("fetch.headless"),
		headless:   true,
		chromePath: chromePath,
	}
}

// NewFullBrowserStrategy creates a full-browser strategy. It renders
// with a visible window profile so anti-bot checks and client-side
// redirects behave as they do for a real user.
func NewFullBrowserStrategy(log logger.Interface, chromePath string) *BrowserStrategy {
	return &BrowserStrategy{
		log:        log.WithComponent("fetch.fullbrowser"),
		headless:   false,
		chromePath: chromePath,
	}
}

// Name identifies the strategy.
func (s *BrowserStrategy) Name() string {
	if s.headless {
		return "headless-browser"
	}

	return "full-browser"
}

// allowance returns the startup allowance for this browser mode.
func (s *BrowserStrategy) allowance() time.Duration {
	if s.headless {
		return headlessStartupAllowance
	}

	return fullStartupAllowance
}

// Fetch navigates to the URL and captures the rendered document. A
// timeout yields a response with the timeout status so promotion
// decisions can see it; any other browser failure yields nil and the
// chain moves on.
func (s *BrowserStrategy) Fetch(ctx context.Context, req *page.Request) (*page.Response, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.Flag("ignore-certificate-errors", !req.SSLVerify),
		chromedp.UserAgent(req.EffectiveUserAgent()),
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, req.EffectiveTimeout()+s.allowance())
	defer cancelRun()

	var html, finalURL string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(req.URL),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html),
	)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			resp := page.NewResponse(req.URL)
			resp.StatusCode = page.StatusTimeout
			resp.AddError("browser page load timed out")
			s.log.Info("page load timed out", "url", req.URL, "strategy", s.Name())
			return resp, nil
		}

		s.log.Debug("browser fetch failed", "url", req.URL, "strategy", s.Name(), "error", err)
		return nil, nil
	}

	resp := page.NewResponse(req.URL)
	// The rendered document arrives without a transport status; a
	// successfully navigated page counts as OK.
	resp.StatusCode = http.StatusOK
	resp.SetText(html)
	if finalURL != "" {
		resp.URL = finalURL
	}

	return resp, nil
}
