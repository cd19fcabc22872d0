package urlx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/webscout/internal/urlx"
)

func TestGetType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  urlx.PageType
	}{
		{"css", "https://example.com/styles/site.css", urlx.TypeCSS},
		{"javascript", "https://example.com/app.js", urlx.TypeJavaScript},
		{"html extension", "https://example.com/index.html", urlx.TypeHTML},
		{"php", "https://example.com/page.php", urlx.TypeHTML},
		{"font", "https://example.com/fonts/main.woff2", urlx.TypeFont},
		{"rss extension", "https://example.com/feed.rss", urlx.TypeRSS},
		{"domain defaults to html", "https://example.com", urlx.TypeHTML},
		{"extension-less page is unknown", "https://example.com/post/123", urlx.TypeUnknown},
		{"unrecognized extension", "https://example.com/data.bin", urlx.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urlx.GetType(tt.input))
		})
	}
}

func TestIsMediaLink(t *testing.T) {
	assert.True(t, urlx.IsMediaLink("https://example.com/episode.mp3"))
	assert.True(t, urlx.IsMediaLink("https://example.com/clip.MP4"))
	assert.False(t, urlx.IsMediaLink("https://example.com/page.html"))
	assert.False(t, urlx.IsMediaLink("https://example.com"))
}

func TestIsLink(t *testing.T) {
	assert.True(t, urlx.IsLink("https://example.com/page"))
	assert.False(t, urlx.IsLink("https://example.com/episode.mp3"))
	assert.False(t, urlx.IsLink("mailto:user@example.com"))
}
