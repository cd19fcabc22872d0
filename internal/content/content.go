// Package content models the page types extracted from fetched
// responses: HTML pages, RSS/Atom feeds, JSON documents and an opaque
// default, behind one extraction contract.
package content

import (
	"time"

	"github.com/jonesrussell/webscout/internal/page"
)

// Kind identifies a concrete content type.
type Kind string

// Content kinds, in default dispatch order.
const (
	KindHTML    Kind = "html"
	KindRSS     Kind = "rss"
	KindJSON    Kind = "json"
	KindXML     Kind = "xml"
	KindDefault Kind = "default"
)

// Content is the uniform extraction contract over heterogeneous page
// types. Implementations parse lazily-fetched response text; all getters
// are side-effect free.
type Content interface {
	// Kind identifies the concrete type.
	Kind() Kind
	// IsValid reports whether the response parses as this type. The
	// dispatcher accepts the first valid parser.
	IsValid() bool
	// Title returns the extracted title, or "".
	Title() string
	// Description returns the extracted description, or "".
	Description() string
	// Language returns the declared content language, or "".
	Language() string
	// Author returns the extracted author, or "".
	Author() string
	// Album returns the extracted album (music pages), or "".
	Album() string
	// Thumbnail returns the representative image URL, or "".
	Thumbnail() string
	// Tags returns the extracted tag names.
	Tags() []string
	// DatePublished returns the publication instant in UTC, clamped to
	// now; nil when none was extractable.
	DatePublished() *time.Time
	// Rating returns the 0-100 page quality score.
	Rating() int
	// Properties returns the full extracted property set.
	Properties() Properties
}

// Properties is the extracted property map handed to callers.
type Properties map[string]any

// Required property keys, present on every extraction.
const (
	PropLink          = "link"
	PropTitle         = "title"
	PropDescription   = "description"
	PropAuthor        = "author"
	PropAlbum         = "album"
	PropThumbnail     = "thumbnail"
	PropLanguage      = "language"
	PropTags          = "tags"
	PropDatePublished = "date_published"
	PropPageRating    = "page_rating"
)

// Type-specific optional keys.
const (
	PropStatusCode = "status_code"
	PropRSSURLs    = "rss_urls"
	PropContents   = "contents"
	// PropContentsText is the readable article text distilled from the
	// raw contents.
	PropContentsText = "contents_text"
	PropLinks      = "links"
	PropLinksInner = "links_inner"
	PropLinksOuter = "links_outer"
	PropFavicons   = "favicons"
)

// baseProperties assembles the required keys common to all types.
func baseProperties(c Content, resp *page.Response) Properties {
	props := Properties{
		PropLink:          resp.URL,
		PropTitle:         c.Title(),
		PropDescription:   c.Description(),
		PropAuthor:        c.Author(),
		PropAlbum:         c.Album(),
		PropThumbnail:     c.Thumbnail(),
		PropLanguage:      c.Language(),
		PropTags:          c.Tags(),
		PropDatePublished: c.DatePublished(),
		PropPageRating:    c.Rating(),
		PropStatusCode:    resp.StatusCode,
	}

	return props
}
