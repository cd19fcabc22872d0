package fetch

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonesrussell/webscout/internal/page"
	"github.com/jonesrussell/webscout/internal/urlx"
)

// videoFeedPrefix is the feed endpoint channel pages resolve to.
const videoFeedPrefix = "https://www.youtube.com/feeds/videos.xml?channel_id="

// channelIDPattern extracts an opaque channel id embedded in a channel
// page's HTML. Vanity and handle URLs do not carry the id themselves.
var channelIDPattern = regexp.MustCompile(`"channelId"\s*:\s*"(UC[0-9A-Za-z_-]{10,})"`)

// channelPathPattern matches URL forms that directly encode the id.
var channelPathPattern = regexp.MustCompile(`/channel/(UC[0-9A-Za-z_-]{10,})`)

// vanityPathPrefixes are the channel URL forms that require scraping
// the id from the page.
var vanityPathPrefixes = []string{"/user/", "/c/", "/@"}

// channelFeedURL resolves a video-platform channel page to its feed
// URL, so the caller fetches structured entries instead of an HTML
// shell. Returns "" when the URL is not a channel page or the id cannot
// be resolved; the caller then proceeds with a normal page fetch.
func (c *Client) channelFeedURL(ctx context.Context, rawURL string) string {
	parts, ok := urlx.Parse(rawURL)
	if !ok {
		return ""
	}

	host := strings.ToLower(parts.Host)
	if host != "youtube.com" && !strings.HasSuffix(host, ".youtube.com") {
		return ""
	}

	// Already a feed URL; nothing to derive.
	if strings.HasPrefix(parts.Path, "/feeds/") {
		return ""
	}

	if m := channelPathPattern.FindStringSubmatch(parts.Path); m != nil {
		return videoFeedPrefix + m[1]
	}

	for _, prefix := range vanityPathPrefixes {
		if strings.HasPrefix(parts.Path, prefix) {
			return c.scrapeChannelFeed(ctx, rawURL)
		}
	}

	return ""
}

// scrapeChannelFeed fetches a vanity channel page and pulls the opaque
// channel id out of its HTML. Only the direct strategy is used; a
// channel id is present in the initial payload without rendering.
func (c *Client) scrapeChannelFeed(ctx context.Context, rawURL string) string {
	req := c.newRequest(rawURL, page.DefaultOptions())

	resp, err := c.direct.Fetch(ctx, req)
	if err != nil || resp == nil || !resp.IsValid() || !resp.HasBody() {
		return ""
	}

	m := channelIDPattern.FindStringSubmatch(resp.Text())
	if m == nil {
		c.log.Debug("channel id not found in page", "url", rawURL)
		return ""
	}

	return videoFeedPrefix + m[1]
}
