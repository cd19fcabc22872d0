package page

// Options controls fetch strategy selection for one logical fetch. It is
// constructed once per fetch, not per strategy attempt.
type Options struct {
	// UseHeadlessBrowser orders headless-capable strategies first.
	UseHeadlessBrowser bool
	// UseFullBrowser orders full-browser strategies first. Set
	// automatically for link-service URLs so client-side redirects
	// resolve.
	UseFullBrowser bool
	// SSLVerify controls TLS certificate verification.
	SSLVerify bool
	// Ping requests a headers-only fetch.
	Ping bool
	// UseBrowserPromotion allows escalating to heavier strategies after
	// the lightweight ones fail.
	UseBrowserPromotion bool
}

// DefaultOptions returns the options used when the caller passes none.
func DefaultOptions() *Options {
	return &Options{
		SSLVerify:           true,
		UseBrowserPromotion: true,
	}
}
