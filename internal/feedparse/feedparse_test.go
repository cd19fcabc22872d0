package feedparse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/webscout/internal/feedparse"
)

// fixedNow pins the reader clock for deterministic date assertions.
var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestReader() *feedparse.Reader {
	reader := feedparse.NewReader()
	reader.Now = func() time.Time { return fixedNow }

	return reader
}

func TestParseMinimalRSS(t *testing.T) {
	const body = `<rss><channel><title>Feed</title>` +
		`<item><title>E1</title><link>https://x.com/1</link></item>` +
		`</channel></rss>`

	feed, err := newTestReader().Parse(body)
	require.NoError(t, err)

	assert.Equal(t, "Feed", feed.Title)
	require.Len(t, feed.Entries, 1)
	assert.Equal(t, "https://x.com/1", feed.Entries[0].Link)
	assert.Equal(t, "E1", feed.Entries[0].Title)
}

func TestParseRSSFields(t *testing.T) {
	const body = `<?xml version="1.0"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>News Feed</title>
    <description>All the news</description>
    <language>en-us</language>
    <image><url>https://x.com/logo.png</url><width>88</width><height>31</height></image>
    <pubDate>Fri, 01 Mar 2024 10:00:00 +0000</pubDate>
    <item>
      <title>Story</title>
      <link>https://x.com/story</link>
      <description>Body text</description>
      <pubDate>Fri, 01 Mar 2024 09:00:00 +0000</pubDate>
      <media:thumbnail url="https://x.com/thumb.jpg"/>
      <category>tech</category>
      <category>go</category>
    </item>
  </channel>
</rss>`

	feed, err := newTestReader().Parse(body)
	require.NoError(t, err)

	assert.Equal(t, "News Feed", feed.Title)
	assert.Equal(t, "All the news", feed.Description)
	assert.Equal(t, "en-us", feed.Language)
	assert.Equal(t, "https://x.com/logo.png", feed.Image.URL)
	assert.Equal(t, 88, feed.Image.Width)
	require.NotNil(t, feed.Published)

	require.Len(t, feed.Entries, 1)
	entry := feed.Entries[0]
	assert.Equal(t, "https://x.com/story", entry.Link)
	assert.Equal(t, "Body text", entry.Description)
	assert.Equal(t, "https://x.com/thumb.jpg", entry.Thumbnail)
	assert.Equal(t, []string{"tech", "go"}, entry.Tags)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), entry.Published)
}

func TestParseAtom(t *testing.T) {
	const body = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <subtitle>A subtitle</subtitle>
  <updated>2024-03-01T10:00:00Z</updated>
  <author><name>Jane Writer</name></author>
  <entry>
    <title>Post</title>
    <link rel="alternate" href="https://x.com/post"/>
    <summary>Summary text</summary>
    <published>2024-02-01T08:00:00Z</published>
  </entry>
</feed>`

	feed, err := newTestReader().Parse(body)
	require.NoError(t, err)

	assert.Equal(t, "Atom Feed", feed.Title)
	assert.Equal(t, "A subtitle", feed.Subtitle)
	assert.Equal(t, "Jane Writer", feed.Author)

	require.Len(t, feed.Entries, 1)
	entry := feed.Entries[0]
	assert.Equal(t, "https://x.com/post", entry.Link)
	assert.Equal(t, "Summary text", entry.Description)
	assert.Equal(t, time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), entry.Published)
}

// Feeds returned pre-escaped inside an HTML wrapper must be recovered.
func TestParseEscapedHTMLWrapper(t *testing.T) {
	const body = `<html><body>&lt;rss&gt;&lt;channel&gt;&lt;title&gt;Wrapped&lt;/title&gt;` +
		`&lt;item&gt;&lt;title&gt;E1&lt;/title&gt;&lt;link&gt;https://x.com/1&lt;/link&gt;&lt;/item&gt;` +
		`&lt;/channel&gt;&lt;/rss&gt;</body></html>`

	feed, err := newTestReader().Parse(body)
	require.NoError(t, err)

	assert.Equal(t, "Wrapped", feed.Title)
	require.Len(t, feed.Entries, 1)
	assert.Equal(t, "https://x.com/1", feed.Entries[0].Link)
}

// A self-closed <link/> with the URL as stray trailing text is a
// confirmed vendor bug; the link must be recovered from the raw text.
func TestParseRecoversSelfClosedLink(t *testing.T) {
	const body = `<rss><channel><title>Feed</title>` +
		`<item><title>E1</title><link/>https://x.com/1</item>` +
		`</channel></rss>`

	feed, err := newTestReader().Parse(body)
	require.NoError(t, err)

	require.Len(t, feed.Entries, 1)
	assert.Equal(t, "https://x.com/1", feed.Entries[0].Link)
}

// Entries with no recoverable link are dropped, never yielded empty.
func TestParseDropsEntriesWithoutLink(t *testing.T) {
	const body = `<rss><channel><title>Feed</title>` +
		`<item><title>No link here</title></item>` +
		`<item><title>Good</title><link>https://x.com/2</link></item>` +
		`</channel></rss>`

	feed, err := newTestReader().Parse(body)
	require.NoError(t, err)

	require.Len(t, feed.Entries, 1)
	for _, entry := range feed.Entries {
		assert.NotEmpty(t, entry.Link)
	}
	assert.Equal(t, "https://x.com/2", feed.Entries[0].Link)
}

func TestParseBlankAndUndefinedTitlesBecomeLink(t *testing.T) {
	const body = `<rss><channel><title>Feed</title>` +
		`<item><title>undefined</title><link>https://x.com/1</link></item>` +
		`<item><title></title><link>https://x.com/2</link></item>` +
		`</channel></rss>`

	feed, err := newTestReader().Parse(body)
	require.NoError(t, err)

	require.Len(t, feed.Entries, 2)
	assert.Equal(t, "https://x.com/1", feed.Entries[0].Title)
	assert.Equal(t, "https://x.com/2", feed.Entries[1].Title)
}

func TestParsePublishedDefaultsAndClamps(t *testing.T) {
	const body = `<rss><channel><title>Feed</title>` +
		`<item><title>No date</title><link>https://x.com/1</link></item>` +
		`<item><title>Future</title><link>https://x.com/2</link>` +
		`<pubDate>Sat, 01 Jan 2033 00:00:00 +0000</pubDate></item>` +
		`</channel></rss>`

	reader := newTestReader()

	feed, err := reader.Parse(body)
	require.NoError(t, err)
	require.Len(t, feed.Entries, 2)
	assert.Equal(t, fixedNow, feed.Entries[0].Published, "missing date defaults to now")
	assert.Equal(t, fixedNow, feed.Entries[1].Published, "future date clamps to now")

	reader.DefaultPublishedToNow = false
	feed, err = reader.Parse(body)
	require.NoError(t, err)
	assert.True(t, feed.Entries[0].Published.IsZero(), "defaulting disabled")
}

func TestParseUndeclaredMediaNamespace(t *testing.T) {
	const body = `<rss><channel><title>Feed</title>` +
		`<item><title>E1</title><link>https://x.com/1</link>` +
		`<media:thumbnail url="https://x.com/t.jpg"/></item>` +
		`</channel></rss>`

	feed, err := newTestReader().Parse(body)
	require.NoError(t, err)

	require.Len(t, feed.Entries, 1)
	assert.Equal(t, "https://x.com/t.jpg", feed.Entries[0].Thumbnail)
}

// Documents missing the <channel>/<feed> containers are still accepted
// when they yield at least one entry.
func TestParseAcceptsMarkerlessDocument(t *testing.T) {
	const body = `<data><item><title>E1</title><link>https://x.com/1</link></item></data>`

	feed, err := newTestReader().Parse(body)
	require.NoError(t, err)

	require.Len(t, feed.Entries, 1)
	assert.Equal(t, "https://x.com/1", feed.Entries[0].Link)
	assert.Equal(t, "E1", feed.Entries[0].Title)
}

func TestParseRejectsNonFeed(t *testing.T) {
	_, err := newTestReader().Parse("just some text, no xml at all")
	assert.Error(t, err)

	_, err = newTestReader().Parse(`{"json": true}`)
	assert.Error(t, err)
}
