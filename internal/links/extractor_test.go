package links_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/webscout/internal/links"
)

const testPageURL = "https://example.com"

func TestExtractHrefForms(t *testing.T) {
	const contents = `Visit <a href="/about">us</a> or <a href="https://other.com/x">them</a>`

	got := links.NewExtractor(testPageURL).Extract(contents)

	assert.ElementsMatch(t, []string{
		"https://example.com/about",
		"https://other.com/x",
	}, got)
}

func TestExtractRawTokens(t *testing.T) {
	const contents = `Plain text mentioning https://example.org/page and http://other.example/a.`

	got := links.NewExtractor(testPageURL).Extract(contents)

	assert.Contains(t, got, "https://example.org/page")
	assert.Contains(t, got, "http://other.example/a")
}

func TestExtractEscapedTokens(t *testing.T) {
	const contents = `data: https:&#x2F;&#x2F;escaped.example&#x2F;path more`

	got := links.NewExtractor(testPageURL).Extract(contents)

	assert.Contains(t, got, "https://escaped.example/path")
}

func TestExtractProtocolRelative(t *testing.T) {
	const contents = `<a href="//cdn.example.net/lib.html">lib</a>`

	got := links.NewExtractor(testPageURL).Extract(contents)

	assert.Contains(t, got, "https://cdn.example.net/lib.html")
}

func TestExtractDottedBareDomain(t *testing.T) {
	const contents = `<a href="other.example/page">bare</a>`

	got := links.NewExtractor(testPageURL).Extract(contents)

	assert.Contains(t, got, "https://other.example/page")
}

func TestExtractRelativePath(t *testing.T) {
	const contents = `<a href="about">about</a>`

	got := links.NewExtractor("https://example.com/docs").Extract(contents)

	assert.Contains(t, got, "https://example.com/docs/about")
}

func TestExtractSkipsJunk(t *testing.T) {
	const contents = `<a href="">empty</a> <a href="#top">anchor</a> bare https token`

	got := links.NewExtractor(testPageURL).Extract(contents)

	assert.Empty(t, got)
}

func TestExtractDeduplicatesAfterCleaning(t *testing.T) {
	const contents = `<a href="https://Other.example/x/">one</a> <a href="https://other.example/x">two</a>`

	got := links.NewExtractor(testPageURL).Extract(contents)

	assert.Equal(t, []string{"https://other.example/x"}, got)
}

func TestFilters(t *testing.T) {
	input := []string{
		"https://example.com/a",
		"https://blog.example.com/b",
		"https://other.net/c",
		"https://example.com/episode.mp3",
	}

	assert.Equal(t, []string{
		"https://example.com/a",
		"https://blog.example.com/b",
		"https://example.com/episode.mp3",
	}, links.KeepByDomain(input, "example.com"))

	assert.Equal(t, []string{"https://other.net/c"}, links.DropByDomain(input, "example.com"))

	assert.Equal(t, []string{"https://example.com/episode.mp3"}, links.KeepByURL(input, ".mp3"))

	assert.Equal(t, []string{
		"https://example.com",
		"https://blog.example.com",
		"https://other.net",
	}, links.UniqueDomains(input))

	assert.NotContains(t, links.PageLinksOnly(input), "https://example.com/episode.mp3")
}

func TestNonAnalytics(t *testing.T) {
	input := []string{
		"https://example.com/a",
		"https://www.google-analytics.com/collect",
	}

	assert.Equal(t, []string{"https://example.com/a"}, links.NonAnalytics(input))
}
