package scout_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/webscout/internal/config"
	"github.com/jonesrussell/webscout/internal/content"
	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/pkg/scout"
)

func newScout() *scout.Scout {
	cfg := &config.Config{}
	cfg.Fetch.SSLVerify = true
	cfg.Robots.RespectRobotsTxt = true
	cfg.Robots.DomainCacheSize = 10

	return scout.New(cfg, logger.NewNoOp())
}

func TestGetPropertiesEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html lang="en"><head><title>Example</title>` +
			`<meta property="og:description" content="Desc"></head>` +
			`<body><a href="/about">us</a></body></html>`))
	}))
	defer srv.Close()

	props, err := newScout().GetProperties(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	require.NotNil(t, props)

	assert.Equal(t, "Example", props[content.PropTitle])
	assert.Equal(t, "Desc", props[content.PropDescription])

	links, ok := props[content.PropLinks].([]string)
	require.True(t, ok)
	assert.Contains(t, links, srv.URL+"/about")
}

func TestGetLinksIsPure(t *testing.T) {
	s := newScout()

	links := s.GetLinks(
		`Visit <a href="/about">us</a> or <a href="https://other.com/x">them</a>`,
		"https://example.com",
	)

	assert.ElementsMatch(t, []string{
		"https://example.com/about",
		"https://other.com/x",
	}, links)
}

func TestCleanLink(t *testing.T) {
	s := newScout()

	assert.Equal(t, "https://example.com/Path?X=Y", s.CleanLink("HTTPS://Example.COM/Path?X=Y"))
	assert.Equal(t, s.CleanLink("https://example.com/"), s.CleanLink(s.CleanLink("https://example.com/")))
}

func TestIsAllowedAgainstServedRobots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	s := newScout()

	assert.True(t, s.IsAllowed(srv.URL+"/public"))
	assert.False(t, s.IsAllowed(srv.URL+"/private/x"))
}

func TestSitemapURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("Sitemap: https://example.com/sitemap.xml\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	assert.Equal(t,
		[]string{"https://example.com/sitemap.xml"},
		newScout().SitemapURLs(srv.URL),
	)
}
