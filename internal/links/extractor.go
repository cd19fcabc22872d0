// Package links harvests outbound links from arbitrary text or HTML.
package links

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonesrussell/webscout/internal/urlx"
)

// Delimiters that terminate a bare URL token in raw text.
const urlTokenPattern = `https?://[^\s"'<>\\)\]}]+`

// Scan patterns. The escaped pattern catches URLs whose slashes were
// HTML-entity encoded (&#x2F;) by the publisher.
var (
	rawURLPattern     = regexp.MustCompile(urlTokenPattern)
	escapedURLPattern = regexp.MustCompile(`https?:&#x2F;&#x2F;[^\s"'<>]+`)
	hrefPattern       = regexp.MustCompile(`(?i)href\s*=\s*["']([^"']*)["']`)
)

// Extractor harvests links from page contents, resolving relative forms
// against the page's own URL.
type Extractor struct {
	pageURL string
	domain  string
}

// NewExtractor creates an extractor for content served at pageURL.
func NewExtractor(pageURL string) *Extractor {
	return &Extractor{
		pageURL: urlx.CleanLink(pageURL),
		domain:  urlx.GetDomain(pageURL),
	}
}

// Extract returns the de-duplicated set of outbound links found in the
// contents: the union of the raw token scan, the entity-escaped scan and
// the href attribute scan, filtered down to valid web links. Equality is
// judged only after cleaning.
func (e *Extractor) Extract(contents string) []string {
	seen := make(map[string]struct{})
	var found []string

	add := func(link string) {
		link = urlx.CleanLink(strings.TrimSpace(link))
		if link == "" || link == "http" || link == "https" {
			return
		}
		if !urlx.IsWebLink(link) {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		found = append(found, link)
	}

	for _, match := range rawURLPattern.FindAllString(contents, -1) {
		add(strings.TrimRight(match, "."))
	}

	for _, match := range escapedURLPattern.FindAllString(contents, -1) {
		add(strings.TrimRight(html.UnescapeString(match), "."))
	}

	for _, match := range hrefPattern.FindAllStringSubmatch(contents, -1) {
		if resolved := e.resolveHref(match[1]); resolved != "" {
			add(resolved)
		}
	}

	return found
}

// resolveHref classifies one href attribute value and resolves it to an
// absolute URL, or "" when it cannot be a page link.
func (e *Extractor) resolveHref(href string) string {
	href = strings.TrimSpace(html.UnescapeString(href))
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	switch {
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		if e.domain == "" {
			return ""
		}
		return e.domain + href
	}

	// Scheme-prefixed non-http forms (mailto:, tel:): strip the scheme
	// and re-evaluate the remainder.
	if scheme, rest, found := strings.Cut(href, ":"); found && !strings.Contains(scheme, "/") && !strings.Contains(scheme, ".") {
		return e.resolveHref(rest)
	}

	// A dotted, unprefixed value is treated as a bare domain.
	if host, _, _ := strings.Cut(href, "/"); strings.Contains(host, ".") {
		return "https://" + href
	}

	// Bare relative path, joined to the page URL.
	if e.pageURL == "" {
		return ""
	}

	return strings.TrimRight(e.pageURL, "/") + "/" + href
}
