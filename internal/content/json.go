package content

import (
	"encoding/json"
	"time"

	"github.com/jonesrussell/webscout/internal/page"
	"github.com/jonesrussell/webscout/internal/rating"
)

// JSONContent extracts properties from a JSON document. Well-known
// top-level string fields map onto the extraction contract.
type JSONContent struct {
	resp   *page.Response
	parsed any
	valid  bool
}

// NewJSONContent parses a response as JSON.
func NewJSONContent(resp *page.Response) *JSONContent {
	c := &JSONContent{resp: resp}

	text := resp.Text()
	if text == "" {
		return c
	}

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return c
	}

	c.parsed = parsed
	c.valid = parsed != nil

	return c
}

// Kind identifies the content as JSON.
func (c *JSONContent) Kind() Kind { return KindJSON }

// IsValid reports whether the text decoded into a non-null JSON value.
func (c *JSONContent) IsValid() bool {
	return c.valid
}

// Value returns the decoded document.
func (c *JSONContent) Value() any {
	return c.parsed
}

// Title returns the top-level title field, when the document is an
// object carrying one.
func (c *JSONContent) Title() string {
	return c.stringField("title", "name")
}

// Description returns the top-level description field.
func (c *JSONContent) Description() string {
	return c.stringField("description", "summary")
}

// Language returns the top-level language field.
func (c *JSONContent) Language() string {
	return c.stringField("language", "lang")
}

// Author returns the top-level author field.
func (c *JSONContent) Author() string {
	return c.stringField("author")
}

// Album returns the top-level album field.
func (c *JSONContent) Album() string {
	return c.stringField("album")
}

// Thumbnail returns the top-level thumbnail/image field.
func (c *JSONContent) Thumbnail() string {
	return c.stringField("thumbnail", "image")
}

// Tags returns nil; tag shapes in arbitrary JSON are not guessed at.
func (c *JSONContent) Tags() []string { return nil }

// DatePublished returns nil; date shapes in arbitrary JSON are not
// guessed at.
func (c *JSONContent) DatePublished() *time.Time { return nil }

// Rating computes the page quality score from whatever fields mapped.
func (c *JSONContent) Rating() int {
	description := c.Description()

	signals := rating.PageSignals{
		Title:           c.Title(),
		MetaDescription: description,
		OGDescription:   description,
		Language:        c.Language(),
		Author:          c.Author(),
		OGImage:         c.Thumbnail(),
	}

	return rating.Rate(signals, c.resp.URL)
}

// Properties assembles the JSON property set.
func (c *JSONContent) Properties() Properties {
	props := baseProperties(c, c.resp)
	props[PropContents] = c.resp.Text()

	return props
}

// stringField returns the first present top-level string field among
// the candidates.
func (c *JSONContent) stringField(candidates ...string) string {
	object, ok := c.parsed.(map[string]any)
	if !ok {
		return ""
	}

	for _, candidate := range candidates {
		if value, present := object[candidate].(string); present && value != "" {
			return value
		}
	}

	return ""
}
