package content

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/jonesrussell/webscout/internal/dates"
	"github.com/jonesrussell/webscout/internal/links"
	"github.com/jonesrussell/webscout/internal/page"
	"github.com/jonesrussell/webscout/internal/rating"
	"github.com/jonesrussell/webscout/internal/urlx"
)

// challengeTitle is the anti-bot interstitial title; it is never a real
// page title.
const challengeTitle = "Just a moment..."

// rssIndicators mark feed documents. A document is only HTML when the
// <html tag appears before any of these paired with an entry container.
var rssIndicators = []string{"<rss", "<feed", "<rdf"}

// feedEntryMarkers are the entry containers paired with rssIndicators.
var feedEntryMarkers = []string{"<channel", "<entry", "<item"}

// HTMLContent extracts properties from an HTML page.
type HTMLContent struct {
	resp *page.Response
	doc  *goquery.Document
	now  func() time.Time
}

// NewHTMLContent parses a response as HTML. The returned content is
// usable even when parsing partially fails; IsValid gates acceptance.
func NewHTMLContent(resp *page.Response) *HTMLContent {
	c := &HTMLContent{resp: resp, now: time.Now}

	if text := resp.Text(); text != "" {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			c.doc = doc
		}
	}

	return c
}

// Kind identifies the content as HTML.
func (c *HTMLContent) Kind() Kind { return KindHTML }

// IsValid reports whether the text is an HTML document: an <html tag
// must be present and must come before any feed-indicating tag.
func (c *HTMLContent) IsValid() bool {
	text := c.resp.Text()
	if text == "" || c.doc == nil {
		return false
	}

	lower := strings.ToLower(text)

	htmlIdx := strings.Index(lower, "<html")
	if htmlIdx < 0 {
		return false
	}

	for _, indicator := range rssIndicators {
		idx := strings.Index(lower, indicator)
		if idx < 0 || idx > htmlIdx {
			continue
		}
		for _, marker := range feedEntryMarkers {
			if strings.Contains(lower, marker) {
				return false
			}
		}
	}

	return true
}

// Title returns the page title with the documented precedence: og:title,
// schema.org name, meta title, the <title> element, og:site_name.
// Anti-bot challenge titles count as absent.
func (c *HTMLContent) Title() string {
	title := c.firstOf(
		c.metaProperty("og:title"),
		c.itemProp("name"),
		c.metaName("title"),
		c.headTitle(),
		c.metaProperty("og:site_name"),
	)

	if title == challengeTitle {
		return ""
	}

	return title
}

// Description returns the page description: og:description, schema.org
// description, then the meta description.
func (c *HTMLContent) Description() string {
	return c.firstOf(
		c.metaProperty("og:description"),
		c.itemProp("description"),
		c.metaName("description"),
	)
}

// Language returns the declared language from the html lang attribute
// or the content-language/og:locale declarations.
func (c *HTMLContent) Language() string {
	if c.doc == nil {
		return ""
	}

	if lang, ok := c.doc.Find("html").Attr("lang"); ok && lang != "" {
		return lang
	}

	if lang, ok := c.doc.Find(`meta[http-equiv="content-language"]`).Attr("content"); ok && lang != "" {
		return lang
	}

	return c.metaProperty("og:locale")
}

// Author returns the page author from the meta author or article:author
// declarations.
func (c *HTMLContent) Author() string {
	return c.firstOf(
		c.metaName("author"),
		c.metaProperty("article:author"),
	)
}

// Album returns the music album for audio pages.
func (c *HTMLContent) Album() string {
	return c.metaProperty("music:album")
}

// Thumbnail returns the og:image URL, falling back to the twitter card
// image.
func (c *HTMLContent) Thumbnail() string {
	return c.firstOf(
		c.metaProperty("og:image"),
		c.metaName("twitter:image"),
	)
}

// Tags returns the keywords/article tags.
func (c *HTMLContent) Tags() []string {
	if c.doc == nil {
		return nil
	}

	var tags []string

	if keywords, ok := c.doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
		for _, keyword := range strings.Split(keywords, ",") {
			if keyword = strings.TrimSpace(keyword); keyword != "" {
				tags = append(tags, keyword)
			}
		}
	}

	c.doc.Find(`meta[property="article:tag"]`).Each(func(_ int, s *goquery.Selection) {
		if tag, ok := s.Attr("content"); ok && strings.TrimSpace(tag) != "" {
			tags = append(tags, strings.TrimSpace(tag))
		}
	})

	return tags
}

// DatePublished extracts the publication date with the documented
// precedence, parsed best-effort and clamped to now. Unparseable values
// yield nil rather than an error.
func (c *HTMLContent) DatePublished() *time.Time {
	value := c.firstOf(
		c.metaProperty("article:published_time"),
		c.metaProperty("music:release_date"),
		c.itemProp("datePublished"),
	)
	if value == "" {
		return nil
	}

	parsed, ok := dates.ParseClamped(value, c.now())
	if !ok {
		return nil
	}

	return &parsed
}

// Rating computes the page quality score from the extracted signals and
// the URL itself.
func (c *HTMLContent) Rating() int {
	signals := rating.PageSignals{
		Title:           c.Title(),
		MetaDescription: c.metaName("description"),
		OGDescription:   c.metaProperty("og:description"),
		Language:        c.Language(),
		Author:          c.Author(),
		HasTags:         len(c.Tags()) > 0,
		DatePublished:   c.DatePublished(),
		OGImage:         c.metaProperty("og:image"),
	}

	return rating.Rate(signals, c.resp.URL)
}

// Links returns every outbound link discovered in the page contents.
func (c *HTMLContent) Links() []string {
	return links.NewExtractor(c.resp.URL).Extract(c.resp.Text())
}

// InnerLinks returns the discovered links on the page's own domain.
func (c *HTMLContent) InnerLinks() []string {
	domain := urlx.GetDomain(c.resp.URL)
	return links.KeepByDomain(c.Links(), strings.TrimPrefix(domain, "https://"))
}

// OuterLinks returns the discovered links pointing off-domain.
func (c *HTMLContent) OuterLinks() []string {
	domain := urlx.GetDomain(c.resp.URL)
	return links.DropByDomain(c.Links(), strings.TrimPrefix(domain, "https://"))
}

// RSSURLs returns the feed URLs advertised in the document head.
func (c *HTMLContent) RSSURLs() []string {
	if c.doc == nil {
		return nil
	}

	var feeds []string

	c.doc.Find(`link[type="application/rss+xml"], link[type="application/atom+xml"]`).
		Each(func(_ int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok && href != "" {
				feeds = append(feeds, c.resolve(href))
			}
		})

	return feeds
}

// Favicons returns the icon URLs advertised in the document head.
func (c *HTMLContent) Favicons() []string {
	if c.doc == nil {
		return nil
	}

	var icons []string

	c.doc.Find(`link[rel~="icon"], link[rel="shortcut icon"], link[rel="apple-touch-icon"]`).
		Each(func(_ int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok && href != "" {
				icons = append(icons, c.resolve(href))
			}
		})

	return icons
}

// BodyText returns the readable article text extracted from the page.
func (c *HTMLContent) BodyText() string {
	pageURL, err := url.Parse(c.resp.URL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(c.resp.Text()), pageURL)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(article.TextContent)
}

// Properties assembles the full HTML property set.
func (c *HTMLContent) Properties() Properties {
	props := baseProperties(c, c.resp)
	props[PropLinks] = c.Links()
	props[PropLinksInner] = c.InnerLinks()
	props[PropLinksOuter] = c.OuterLinks()
	props[PropRSSURLs] = c.RSSURLs()
	props[PropFavicons] = c.Favicons()
	props[PropContents] = c.resp.Text()
	if body := c.BodyText(); body != "" {
		props[PropContentsText] = body
	}

	return props
}

// resolve joins a possibly-relative href against the page URL.
func (c *HTMLContent) resolve(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}

	domain := urlx.GetDomain(c.resp.URL)
	if domain == "" {
		return href
	}

	if strings.HasPrefix(href, "/") {
		return domain + href
	}

	return strings.TrimRight(urlx.CleanLink(c.resp.URL), "/") + "/" + href
}

// firstOf returns the first non-empty candidate.
func (c *HTMLContent) firstOf(candidates ...string) string {
	for _, candidate := range candidates {
		if candidate != "" {
			return candidate
		}
	}

	return ""
}

// metaProperty returns the content of a meta property tag.
func (c *HTMLContent) metaProperty(property string) string {
	if c.doc == nil {
		return ""
	}

	value, _ := c.doc.Find(`meta[property="` + property + `"]`).Attr("content")
	return strings.TrimSpace(value)
}

// metaName returns the content of a named meta tag.
func (c *HTMLContent) metaName(name string) string {
	if c.doc == nil {
		return ""
	}

	value, _ := c.doc.Find(`meta[name="` + name + `"]`).Attr("content")
	return strings.TrimSpace(value)
}

// itemProp returns the content of a schema.org itemprop meta tag.
func (c *HTMLContent) itemProp(prop string) string {
	if c.doc == nil {
		return ""
	}

	sel := c.doc.Find(`meta[itemprop="` + prop + `"]`)

	if value, ok := sel.Attr("content"); ok {
		return strings.TrimSpace(value)
	}

	return ""
}

// headTitle returns the text of the head <title> element.
func (c *HTMLContent) headTitle() string {
	if c.doc == nil {
		return ""
	}

	return strings.TrimSpace(c.doc.Find("head title").First().Text())
}
