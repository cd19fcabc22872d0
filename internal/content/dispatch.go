package content

import (
	"strings"

	"github.com/jonesrussell/webscout/internal/page"
)

// parserFunc constructs a candidate content type from a response.
type parserFunc func(*page.Response) Content

// Candidate constructors by kind.
var parsers = map[Kind]parserFunc{
	KindHTML:    func(resp *page.Response) Content { return NewHTMLContent(resp) },
	KindRSS:     func(resp *page.Response) Content { return NewRSSContent(resp) },
	KindJSON:    func(resp *page.Response) Content { return NewJSONContent(resp) },
	KindXML:     func(resp *page.Response) Content { return NewXMLContent(resp) },
	KindDefault: func(resp *page.Response) Content { return NewDefaultContent(resp) },
}

// fallbackOrder is tried when the declared content type gives no hint,
// or when every hinted parser rejects the body.
var fallbackOrder = []Kind{KindHTML, KindRSS, KindJSON, KindXML, KindDefault}

// Detect parses a response into its concrete content type. The declared
// Content-Type header steers which parsers are tried first; the body
// itself decides, so a mislabeled response still lands on the right
// type. Detect never returns nil: DefaultContent accepts anything.
func Detect(resp *page.Response) Content {
	for _, kind := range hintedOrder(resp.ContentType()) {
		candidate := parsers[kind](resp)
		if candidate.IsValid() {
			return candidate
		}
	}

	for _, kind := range fallbackOrder {
		candidate := parsers[kind](resp)
		if candidate.IsValid() {
			return candidate
		}
	}

	return NewDefaultContent(resp)
}

// hintedOrder maps a declared media type to the parser order to try
// before the generic fallback.
func hintedOrder(contentType string) []Kind {
	mediaType := strings.ToLower(contentType)
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.TrimSpace(mediaType)

	switch {
	case strings.Contains(mediaType, "html"):
		return []Kind{KindHTML, KindRSS, KindJSON}
	case strings.Contains(mediaType, "rss"),
		strings.Contains(mediaType, "atom"),
		strings.Contains(mediaType, "xml"):
		return []Kind{KindRSS, KindHTML, KindJSON}
	case strings.Contains(mediaType, "json"):
		return []Kind{KindJSON, KindRSS, KindHTML}
	default:
		return nil
	}
}
