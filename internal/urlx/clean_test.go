package urlx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/webscout/internal/urlx"
)

func TestCleanLink(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing slash stripped",
			input: "https://example.com/",
			want:  "https://example.com",
		},
		{
			name:  "trailing dot stripped",
			input: "https://example.com.",
			want:  "https://example.com",
		},
		{
			name:  "host lowercased path untouched",
			input: "HTTPS://Example.COM/Path?X=Y",
			want:  "https://example.com/Path?X=Y",
		},
		{
			name:  "google redirect unwrapped",
			input: "https://www.google.com/url?sa=t&q=https://target.example/page&usg=abc",
			want:  "https://target.example/page",
		},
		{
			name:  "youtube redirect unwrapped",
			input: "https://www.youtube.com/redirect?event=video_description&q=https%3A%2F%2Ftarget.example%2Fpage",
			want:  "https://target.example/page",
		},
		{
			name:  "unwrapped result recleaned",
			input: "https://www.google.com/url?q=https://Target.Example/Page/&sa=x",
			want:  "https://target.example/Page",
		},
		{
			name:  "plain page untouched",
			input: "https://example.com/a/b",
			want:  "https://example.com/a/b",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urlx.CleanLink(tt.input))
		})
	}
}

// Cleaning must be idempotent: a second pass never changes the result.
func TestCleanLinkIdempotent(t *testing.T) {
	inputs := []string{
		"https://example.com/",
		"https://Example.COM/Path?X=Y",
		"https://www.google.com/url?q=https://target.example/page&sa=x",
		"https://www.youtube.com/redirect?q=https%3A%2F%2Ftarget.example%2Fpage",
		"ftp://files.example.com/pub/",
		`\\fileserver.local\share\`,
		"not a url at all",
	}

	for _, input := range inputs {
		once := urlx.CleanLink(input)
		assert.Equal(t, once, urlx.CleanLink(once), "input %q", input)
	}
}

func TestIsLinkService(t *testing.T) {
	assert.True(t, urlx.IsLinkService("https://bit.ly/abc123"))
	assert.True(t, urlx.IsLinkService("https://www.bit.ly/abc123"))
	assert.True(t, urlx.IsLinkService("https://tinyurl.com/xyz"))
	assert.False(t, urlx.IsLinkService("https://example.com/bit.ly"))
	assert.False(t, urlx.IsLinkService("https://notbit.ly.example.com/a"))
}

func TestIsAnalytics(t *testing.T) {
	assert.True(t, urlx.IsAnalytics("https://www.google-analytics.com/collect"))
	assert.True(t, urlx.IsAnalytics("https://static.doubleclick.net/x"))
	assert.False(t, urlx.IsAnalytics("https://example.com/analytics"))
}
