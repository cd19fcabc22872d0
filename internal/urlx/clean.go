package urlx

import (
	"net/url"
	"strings"
)

// Redirect-wrapper markers. Google wraps outbound results as
// /url?...q=<target>&... and YouTube wraps external links as
// /redirect?...q=<escaped target>.
const (
	googleWrapPath  = "/url"
	youtubeWrapPath = "/redirect"
	httpMarker      = "http"
)

// CleanLink returns the canonical form of a URL: known redirect wrappers
// unwrapped (recursively), scheme and host lowercased, trailing '/' and
// '.' stripped. Path and query case is never touched.
// Cleaning is idempotent: CleanLink(CleanLink(u)) == CleanLink(u).
func CleanLink(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	if unwrapped, ok := unwrapRedirect(rawURL); ok {
		return CleanLink(unwrapped)
	}

	p, ok := Parse(rawURL)
	if !ok {
		return strings.TrimRight(rawURL, "/.")
	}

	cleaned := strings.ToLower(p.Scheme) + p.Separator + strings.ToLower(p.Host) + p.Path
	if p.Query != "" {
		cleaned += "?" + p.Query
	}

	return strings.TrimRight(cleaned, "/.")
}

// unwrapRedirect extracts the target URL from known redirect-wrapper
// domains. ok is false when the URL is not wrapped.
func unwrapRedirect(rawURL string) (string, bool) {
	p, parsed := Parse(rawURL)
	if !parsed {
		return "", false
	}

	host := strings.ToLower(p.Host)

	if strings.Contains(host, "google.") && strings.HasPrefix(p.Path, googleWrapPath) {
		return unwrapGoogle(rawURL)
	}

	if strings.Contains(host, "youtube.") && strings.HasPrefix(p.Path, youtubeWrapPath) {
		return unwrapYouTube(p.Query)
	}

	return "", false
}

// unwrapGoogle extracts the first http... token after the /url? wrapper
// prefix and trims it at the next '&'.
func unwrapGoogle(rawURL string) (string, bool) {
	marker := googleWrapPath + "?"

	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return "", false
	}

	tail := rawURL[idx+len(marker):]

	start := strings.Index(tail, httpMarker)
	if start < 0 {
		return "", false
	}

	target := tail[start:]
	if amp := strings.Index(target, "&"); amp >= 0 {
		target = target[:amp]
	}

	if decoded, err := url.QueryUnescape(target); err == nil {
		target = decoded
	}

	return target, target != ""
}

// unwrapYouTube extracts and percent-decodes the q= parameter of a
// /redirect wrapper query string.
func unwrapYouTube(query string) (string, bool) {
	for _, pair := range strings.Split(query, "&") {
		key, value, found := strings.Cut(pair, "=")
		if !found || key != "q" {
			continue
		}

		decoded, err := url.QueryUnescape(value)
		if err != nil {
			decoded = value
		}

		if strings.HasPrefix(decoded, httpMarker) {
			return decoded, true
		}
	}

	return "", false
}
