package links

import (
	"strings"

	"github.com/jonesrussell/webscout/internal/urlx"
)

// Pure set filters over extracted link slices. Order is preserved and
// the input is never mutated.

// KeepByDomain returns the links whose domain contains the substring.
func KeepByDomain(links []string, substring string) []string {
	return filter(links, func(link string) bool {
		return strings.Contains(urlx.GetDomain(link), substring)
	})
}

// DropByDomain returns the links whose domain does not contain the
// substring.
func DropByDomain(links []string, substring string) []string {
	return filter(links, func(link string) bool {
		return !strings.Contains(urlx.GetDomain(link), substring)
	})
}

// KeepByURL returns the links containing the substring anywhere.
func KeepByURL(links []string, substring string) []string {
	return filter(links, func(link string) bool {
		return strings.Contains(link, substring)
	})
}

// DropByURL returns the links not containing the substring.
func DropByURL(links []string, substring string) []string {
	return filter(links, func(link string) bool {
		return !strings.Contains(link, substring)
	})
}

// UniqueDomains reduces the links to their distinct domains.
func UniqueDomains(links []string) []string {
	seen := make(map[string]struct{})
	var domains []string

	for _, link := range links {
		domain := urlx.GetDomain(link)
		if domain == "" {
			continue
		}
		if _, dup := seen[domain]; dup {
			continue
		}
		seen[domain] = struct{}{}
		domains = append(domains, domain)
	}

	return domains
}

// PageLinksOnly restricts the set to valid page links, excluding media
// assets and non-web links.
func PageLinksOnly(links []string) []string {
	return filter(links, urlx.IsLink)
}

// NonAnalytics drops known tracking and ad domains.
func NonAnalytics(links []string) []string {
	return filter(links, func(link string) bool {
		return !urlx.IsAnalytics(link)
	})
}

// filter returns the links satisfying keep.
func filter(links []string, keep func(string) bool) []string {
	var kept []string

	for _, link := range links {
		if keep(link) {
			kept = append(kept, link)
		}
	}

	return kept
}
