package urlx

import "strings"

// linkServiceDomains is the allow-list of known URL-shortener domains.
// Links on these domains must be resolved to their target before being
// treated as content.
var linkServiceDomains = []string{
	"bit.ly",
	"buff.ly",
	"cutt.ly",
	"dlvr.it",
	"goo.gl",
	"ift.tt",
	"is.gd",
	"lnkd.in",
	"ow.ly",
	"rb.gy",
	"rebrand.ly",
	"shorturl.at",
	"t.co",
	"tiny.cc",
	"tinyurl.com",
	"trib.al",
}

// analyticsDomains is the allow-list of tracking/ad domains excluded
// from crawling.
var analyticsDomains = []string{
	"amazon-adsystem.com",
	"adservice.google.com",
	"criteo.com",
	"doubleclick.net",
	"google-analytics.com",
	"googlesyndication.com",
	"googletagmanager.com",
	"hotjar.com",
	"mixpanel.com",
	"outbrain.com",
	"quantserve.com",
	"scorecardresearch.com",
	"segment.io",
	"taboola.com",
}

// IsLinkService reports whether the URL belongs to a known URL-shortener
// domain (suffix match on the host).
func IsLinkService(rawURL string) bool {
	return hostMatchesAny(rawURL, linkServiceDomains)
}

// IsAnalytics reports whether the URL belongs to a known tracking or ad
// domain.
func IsAnalytics(rawURL string) bool {
	return hostMatchesAny(rawURL, analyticsDomains)
}

// hostMatchesAny reports whether the URL's host equals or is a subdomain
// of any domain in the list.
func hostMatchesAny(rawURL string, domains []string) bool {
	p, ok := Parse(rawURL)
	if !ok {
		return false
	}

	host := strings.ToLower(p.Host)
	for _, domain := range domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}

	return false
}
