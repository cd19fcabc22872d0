package content

import (
	"time"

	"github.com/jonesrussell/webscout/internal/feedparse"
	"github.com/jonesrussell/webscout/internal/page"
	"github.com/jonesrussell/webscout/internal/rating"
)

// RSSContent extracts properties from an RSS or Atom feed.
type RSSContent struct {
	resp *page.Response
	feed *feedparse.Feed
}

// NewRSSContent parses a response as a feed. Parsing is permissive:
// acceptance is decided by IsValid, not by parse errors.
func NewRSSContent(resp *page.Response) *RSSContent {
	c := &RSSContent{resp: resp}

	if text := resp.Text(); text != "" {
		if feed, err := feedparse.Parse(text); err == nil {
			c.feed = feed
		}
	}

	return c
}

// Kind identifies the content as a feed.
func (c *RSSContent) Kind() Kind { return KindRSS }

// IsValid reports whether the text parsed into a feed with at least one
// entry. Content lacking canonical RSS markers still passes when it
// yields entries.
func (c *RSSContent) IsValid() bool {
	return c.feed != nil && len(c.feed.Entries) > 0
}

// Feed returns the parsed feed, or nil when parsing failed.
func (c *RSSContent) Feed() *feedparse.Feed {
	return c.feed
}

// Title returns the feed title.
func (c *RSSContent) Title() string {
	if c.feed == nil {
		return ""
	}

	return c.feed.Title
}

// Description returns the feed description, falling back to the
// subtitle.
func (c *RSSContent) Description() string {
	if c.feed == nil {
		return ""
	}

	if c.feed.Description != "" {
		return c.feed.Description
	}

	return c.feed.Subtitle
}

// Language returns the feed language.
func (c *RSSContent) Language() string {
	if c.feed == nil {
		return ""
	}

	return c.feed.Language
}

// Author returns the feed author.
func (c *RSSContent) Author() string {
	if c.feed == nil {
		return ""
	}

	return c.feed.Author
}

// Album returns ""; feeds carry no album metadata.
func (c *RSSContent) Album() string { return "" }

// Thumbnail returns the channel image URL.
func (c *RSSContent) Thumbnail() string {
	if c.feed == nil {
		return ""
	}

	if c.feed.Image.URL != "" {
		return c.feed.Image.URL
	}

	return c.feed.Image.Href
}

// Tags returns the union of entry tags.
func (c *RSSContent) Tags() []string {
	if c.feed == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var tags []string

	for _, entry := range c.feed.Entries {
		for _, tag := range entry.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return tags
}

// DatePublished returns the feed-level publication date.
func (c *RSSContent) DatePublished() *time.Time {
	if c.feed == nil {
		return nil
	}

	return c.feed.Published
}

// Rating computes the page quality score from the feed-level signals.
func (c *RSSContent) Rating() int {
	description := c.Description()

	signals := rating.PageSignals{
		Title:           c.Title(),
		MetaDescription: description,
		OGDescription:   description,
		Language:        c.Language(),
		Author:          c.Author(),
		HasTags:         len(c.Tags()) > 0,
		DatePublished:   c.DatePublished(),
		OGImage:         c.Thumbnail(),
	}

	return rating.Rate(signals, c.resp.URL)
}

// Links returns the entry links.
func (c *RSSContent) Links() []string {
	if c.feed == nil {
		return nil
	}

	links := make([]string, 0, len(c.feed.Entries))
	for _, entry := range c.feed.Entries {
		links = append(links, entry.Link)
	}

	return links
}

// Properties assembles the full feed property set.
func (c *RSSContent) Properties() Properties {
	props := baseProperties(c, c.resp)
	props[PropLinks] = c.Links()

	return props
}
