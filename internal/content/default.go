package content

import (
	"time"

	"github.com/jonesrussell/webscout/internal/page"
)

// DefaultContent is the terminal fallback. It accepts any response and
// carries only the response-level properties.
type DefaultContent struct {
	resp *page.Response
}

// NewDefaultContent wraps a response without interpreting its body.
func NewDefaultContent(resp *page.Response) *DefaultContent {
	return &DefaultContent{resp: resp}
}

// Kind identifies the content as the opaque default.
func (c *DefaultContent) Kind() Kind { return KindDefault }

// IsValid always reports true; the default type terminates dispatch.
func (c *DefaultContent) IsValid() bool { return true }

// Title returns "".
func (c *DefaultContent) Title() string { return "" }

// Description returns "".
func (c *DefaultContent) Description() string { return "" }

// Language returns "".
func (c *DefaultContent) Language() string { return "" }

// Author returns "".
func (c *DefaultContent) Author() string { return "" }

// Album returns "".
func (c *DefaultContent) Album() string { return "" }

// Thumbnail returns "".
func (c *DefaultContent) Thumbnail() string { return "" }

// Tags returns nil.
func (c *DefaultContent) Tags() []string { return nil }

// DatePublished returns nil.
func (c *DefaultContent) DatePublished() *time.Time { return nil }

// Rating returns 0.
func (c *DefaultContent) Rating() int { return 0 }

// Properties assembles the response-level property set.
func (c *DefaultContent) Properties() Properties {
	props := baseProperties(c, c.resp)
	if c.resp.HasBody() {
		props[PropContents] = c.resp.Text()
	}

	return props
}
