// Package feedparse is a dependency-light RSS 2.0 and Atom feed reader.
//
// It deliberately avoids a general feed library: the feeds this engine
// has to read violate the specs in documented vendor-specific ways
// (empty <link> elements, HTML-escaped feed bodies, undeclared media
// namespaces), and recovering from those requires textual access to the
// raw feed alongside the parsed tree.
package feedparse

import (
	"errors"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/webscout/internal/dates"
)

// ErrNotAFeed is returned when the input cannot be parsed into a feed
// with at least the shape of a channel.
var ErrNotAFeed = errors.New("input is not a parseable feed")

// Image describes a feed's channel image.
type Image struct {
	URL    string
	Href   string
	Width  int
	Height int
}

// Feed is a parsed RSS or Atom feed.
type Feed struct {
	Title       string
	Subtitle    string
	Description string
	Language    string
	Author      string
	Image       Image
	Published   *time.Time
	Entries     []Entry
}

// Entry is a single feed item. Link is always non-empty: entries whose
// link cannot be recovered are dropped during parsing.
type Entry struct {
	Link        string
	Title       string
	Description string
	Thumbnail   string
	Author      string
	Published   time.Time
	Tags        []string
}

// Reader parses feed text. The zero value is usable; NewReader applies
// the defaults.
type Reader struct {
	// DefaultPublishedToNow controls whether entries without a published
	// date get the parse time. When false such entries keep a zero time.
	DefaultPublishedToNow bool
	// Now is the clock used for date defaulting and future-date clamping.
	Now func() time.Time
}

// NewReader creates a Reader with default settings.
func NewReader() *Reader {
	return &Reader{
		DefaultPublishedToNow: true,
		Now:                   time.Now,
	}
}

// Parse parses feed text with a default Reader.
func Parse(text string) (*Feed, error) {
	return NewReader().Parse(text)
}

// Parse reads RSS 2.0 or Atom feed text into a Feed.
func (r *Reader) Parse(text string) (*Feed, error) {
	text = recoverEscapedFeed(text)

	ns := scanNamespaces(text)

	root, err := decodeTree(text)
	if err != nil {
		return nil, err
	}

	channel := findChannel(ns, root)
	if channel == nil {
		// No canonical container. Content lacking the RSS/Atom markers
		// is still accepted when it yields entries; the root stands in
		// for the channel.
		entries := r.parseEntries(ns, root, text)
		if len(entries) == 0 {
			return nil, ErrNotAFeed
		}

		feed := r.parseChannel(ns, root)
		feed.Entries = entries

		return feed, nil
	}

	feed := r.parseChannel(ns, channel)
	feed.Entries = r.parseEntries(ns, root, text)

	return feed, nil
}

// recoverEscapedFeed handles feeds returned pre-escaped inside an HTML
// wrapper (observed vendor bug): the substring between the first &lt;
// and the last &gt; is unescaped back into XML.
func recoverEscapedFeed(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(strings.ToLower(trimmed), "<html") {
		return text
	}

	start := strings.Index(trimmed, "&lt;")
	end := strings.LastIndex(trimmed, "&gt;")
	if start < 0 || end < 0 || end <= start {
		return text
	}

	return html.UnescapeString(trimmed[start : end+len("&gt;")])
}

// findChannel locates the element holding the feed-level fields: the
// RSS <channel>, or the Atom <feed> element itself.
func findChannel(ns nsTable, root *xmlNode) *xmlNode {
	if channels := findDeep(root, "channel"); len(channels) > 0 {
		return channels[0]
	}

	for _, child := range root.children {
		if child.local == "feed" {
			return child
		}
	}

	return nil
}

// parseChannel extracts the feed-level fields with per-field fallback
// chains.
func (r *Reader) parseChannel(ns nsTable, channel *xmlNode) *Feed {
	feed := &Feed{
		Title:       ns.textOf(channel, "title", "atom:title"),
		Subtitle:    ns.textOf(channel, "subtitle", "atom:subtitle"),
		Description: ns.textOf(channel, "description", "subtitle", "atom:subtitle", "itunes:summary"),
		Language:    ns.textOf(channel, "language", "dc:language"),
		Author:      r.resolveAuthor(ns, channel, "managingeditor", "webmaster"),
		Image:       r.parseImage(ns, channel),
	}

	if published, ok := r.parseDate(ns.textOf(channel, "pubdate", "lastbuilddate", "updated", "atom:updated", "dc:date")); ok {
		feed.Published = &published
	}

	return feed
}

// parseImage extracts the channel image from the RSS <image> block or
// the Atom logo/icon elements.
func (r *Reader) parseImage(ns nsTable, channel *xmlNode) Image {
	if imageNode := ns.find(channel, "image"); imageNode != nil {
		if href := imageNode.attr("href"); href != "" {
			// itunes:image form.
			return Image{Href: href, URL: href}
		}

		img := Image{
			URL:    ns.textOf(imageNode, "url"),
			Width:  atoiSafe(ns.textOf(imageNode, "width")),
			Height: atoiSafe(ns.textOf(imageNode, "height")),
		}
		img.Href = img.URL
		return img
	}

	if logo := ns.textOf(channel, "logo", "atom:logo", "icon", "atom:icon"); logo != "" {
		return Image{URL: logo, Href: logo}
	}

	return Image{}
}

// resolveAuthor handles both the flat RSS author fields and the Atom
// <author><name> container, plus the dc/itunes fallbacks.
func (r *Reader) resolveAuthor(ns nsTable, n *xmlNode, extra ...string) string {
	if authorNode := ns.find(n, "author", "atom:author"); authorNode != nil {
		if name := ns.textOf(authorNode, "name", "atom:name"); name != "" {
			return name
		}
		if text := strings.TrimSpace(authorNode.text); text != "" {
			return text
		}
	}

	candidates := append([]string{"dc:creator", "itunes:author"}, extra...)
	return ns.textOf(n, candidates...)
}

// parseDate parses a date string, clamping future values to now.
func (r *Reader) parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	return dates.ParseClamped(value, r.now())
}

// now returns the reader's clock, defaulting to time.Now.
func (r *Reader) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}

	return time.Now()
}

// atoiSafe converts a string to int, returning 0 on failure.
func atoiSafe(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}

	return n
}
