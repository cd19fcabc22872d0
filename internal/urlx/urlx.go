// Package urlx normalizes and classifies heterogeneous URL strings.
//
// Inputs include smb://, ftp:// and bare UNC \\host\share paths that the
// standard library URL parser mishandles, so tokenization is done by
// scanning for the separator rather than through net/url.
package urlx

import "strings"

// Separator styles recognized by the scanner.
const (
	SeparatorScheme   = "://"
	SeparatorRelative = "//"
	SeparatorUNC      = `\\`
)

// Parts holds the scanned components of a URL.
type Parts struct {
	// Scheme is the protocol name without the separator ("https", "smb", ...).
	// Empty for protocol-relative and UNC inputs.
	Scheme string
	// Separator is the token that separated scheme from host.
	Separator string
	// Host is the network location, verbatim (case preserved).
	Host string
	// Path is everything after the host up to the query, including the
	// leading path separator when present.
	Path string
	// Query is the query string without the leading '?'.
	Query string
	// Fragment is the fragment without the leading '#'.
	Fragment string
}

// HasQuery reports whether a query string was present.
func (p Parts) HasQuery() bool {
	return p.Query != ""
}

// Parse tokenizes a URL by scanning for "://", "//" or a UNC prefix.
// The query and fragment are split off the path independent of whether
// the path uses forward or back slashes. ok is false when no separator
// can be found.
func Parse(raw string) (p Parts, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Parts{}, false
	}

	var rest string

	// Prefix forms win over a "://" occurring later in the string, so a
	// protocol-relative URL with an absolute URL in its query keeps an
	// empty scheme.
	switch {
	case strings.HasPrefix(raw, SeparatorUNC):
		p.Separator = SeparatorUNC
		rest = raw[len(SeparatorUNC):]
	case strings.HasPrefix(raw, SeparatorRelative):
		p.Separator = SeparatorRelative
		rest = raw[len(SeparatorRelative):]
	case strings.Contains(raw, SeparatorScheme):
		idx := strings.Index(raw, SeparatorScheme)
		p.Scheme = raw[:idx]
		p.Separator = SeparatorScheme
		rest = raw[idx+len(SeparatorScheme):]
	default:
		return Parts{}, false
	}

	if idx := strings.Index(rest, "#"); idx >= 0 {
		p.Fragment = rest[idx+1:]
		rest = rest[:idx]
	}

	if idx := strings.Index(rest, "?"); idx >= 0 {
		p.Query = rest[idx+1:]
		rest = rest[:idx]
	}

	if idx := strings.IndexAny(rest, `/\`); idx >= 0 {
		p.Host = rest[:idx]
		p.Path = rest[idx:]
	} else {
		p.Host = rest
	}

	return p, true
}

// webSchemes are the schemes treated as fetchable web-like links.
var webSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"smb":   true,
}

// IsWebLink reports whether the URL looks like a fetchable web link.
// A host without a dot (mailto:, malformed input) is rejected.
func IsWebLink(rawURL string) bool {
	p, ok := Parse(rawURL)
	if !ok {
		return false
	}

	if p.Scheme != "" && !webSchemes[strings.ToLower(p.Scheme)] {
		return false
	}

	return strings.Contains(p.Host, ".")
}

// GetDomain returns scheme + separator + lowercased host, or the empty
// string when the input is not a web-like link. Lowercasing applies only
// to the host, never to path or query.
func GetDomain(rawURL string) string {
	if !IsWebLink(rawURL) {
		return ""
	}

	p, ok := Parse(rawURL)
	if !ok {
		return ""
	}

	return strings.ToLower(p.Scheme) + p.Separator + strings.ToLower(p.Host)
}

// IsDomain reports whether the cleaned URL is domain-level, i.e. equals
// its own GetDomain.
func IsDomain(rawURL string) bool {
	cleaned := CleanLink(rawURL)
	if cleaned == "" {
		return false
	}

	return cleaned == GetDomain(cleaned)
}

// minDomainLabels is the smallest number of host labels Up will descend to.
// Up never goes above example.com.
const minDomainLabels = 2

// Up returns the parent URL, or the empty string when there is none.
// For a domain-level URL the leftmost subdomain label is stripped; for a
// page-level URL the last path segment is dropped.
func Up(rawURL string) string {
	cleaned := CleanLink(rawURL)
	if cleaned == "" {
		return ""
	}

	p, ok := Parse(cleaned)
	if !ok {
		return ""
	}

	if IsDomain(cleaned) {
		labels := strings.Split(p.Host, ".")
		if len(labels) <= minDomainLabels {
			return ""
		}
		return p.Scheme + p.Separator + strings.Join(labels[1:], ".")
	}

	path := p.Path
	sep := "/"
	if strings.Contains(path, `\`) && !strings.Contains(path, "/") {
		sep = `\`
	}

	path = strings.TrimRight(path, sep)
	if idx := strings.LastIndex(path, sep); idx > 0 {
		return CleanLink(p.Scheme + p.Separator + p.Host + path[:idx])
	}

	return GetDomain(cleaned)
}
