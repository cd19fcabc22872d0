package content

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/jonesrussell/webscout/internal/page"
)

// XMLContent covers well-formed XML documents that are neither feeds nor
// HTML. It is reserved: it never reports valid on its own, so dispatch
// always falls through to the default type. It exists to keep the
// dispatch order stable once sitemap and OPML extraction land.
type XMLContent struct {
	resp *page.Response
}

// NewXMLContent wraps a response as generic XML.
func NewXMLContent(resp *page.Response) *XMLContent {
	return &XMLContent{resp: resp}
}

// Kind identifies the content as generic XML.
func (c *XMLContent) Kind() Kind { return KindXML }

// IsValid always reports false; the type is reserved.
func (c *XMLContent) IsValid() bool { return false }

// IsWellFormed reports whether the text decodes as XML. Diagnostic only,
// dispatch does not consult it.
func (c *XMLContent) IsWellFormed() bool {
	decoder := xml.NewDecoder(strings.NewReader(c.resp.Text()))
	decoder.Strict = false

	sawElement := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if _, ok := token.(xml.StartElement); ok {
			sawElement = true
		}
	}

	return sawElement
}

// Title returns "".
func (c *XMLContent) Title() string { return "" }

// Description returns "".
func (c *XMLContent) Description() string { return "" }

// Language returns "".
func (c *XMLContent) Language() string { return "" }

// Author returns "".
func (c *XMLContent) Author() string { return "" }

// Album returns "".
func (c *XMLContent) Album() string { return "" }

// Thumbnail returns "".
func (c *XMLContent) Thumbnail() string { return "" }

// Tags returns nil.
func (c *XMLContent) Tags() []string { return nil }

// DatePublished returns nil.
func (c *XMLContent) DatePublished() *time.Time { return nil }

// Rating returns 0.
func (c *XMLContent) Rating() int { return 0 }

// Properties assembles the minimal property set.
func (c *XMLContent) Properties() Properties {
	props := baseProperties(c, c.resp)
	props[PropContents] = c.resp.Text()

	return props
}
