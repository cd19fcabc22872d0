// Package domains caches per-domain robots.txt verdicts behind a
// bounded, mutex-guarded cache.
package domains

import (
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/internal/page"
	"github.com/jonesrussell/webscout/internal/urlx"
)

// DefaultCapacity bounds the number of cached domain records.
const DefaultCapacity = 400

// robotsAgent is the user-agent group consulted for allow decisions.
const robotsAgent = "*"

// Fetcher obtains the robots.txt body for a domain. Satisfied by the
// fetch client; kept narrow so the cache stays network-agnostic.
type Fetcher interface {
	Fetch(rawURL string, opts *page.Options) *page.Response
}

// Record is one cached domain entry. Owned exclusively by the cache.
type Record struct {
	// Domain is the canonical scheme://host form.
	Domain string
	// RobotsContents is the raw robots.txt body, "" when the fetch
	// failed or the file was absent.
	RobotsContents string
	// LastAccessed is bumped on every cache hit.
	LastAccessed time.Time

	robots *robotstxt.RobotsData
}

// Cache maps domains to their robots verdicts. Reads and the
// check-fetch-insert-evict sequence are serialized by one mutex so
// concurrent bulk fetches on the same domain do not race.
type Cache struct {
	fetcher       Fetcher
	log           logger.Interface
	capacity      int
	respectRobots bool

	mu      sync.Mutex
	records map[string]*Record
	// order tracks insertion order for eviction. Not access order.
	order []string
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity overrides the record capacity.
func WithCapacity(capacity int) Option {
	return func(c *Cache) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// WithRespectRobots toggles whether IsAllowed consults robots rules at
// all.
func WithRespectRobots(respect bool) Option {
	return func(c *Cache) { c.respectRobots = respect }
}

// NewCache creates a domain cache backed by the given fetcher.
func NewCache(fetcher Fetcher, log logger.Interface, opts ...Option) *Cache {
	c := &Cache{
		fetcher:       fetcher,
		log:           log,
		capacity:      DefaultCapacity,
		respectRobots: true,
		records:       make(map[string]*Record),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.records)
}

// Get returns the record for the URL's domain, fetching and parsing
// robots.txt on a miss. A failed fetch still yields a record, with an
// empty body and permissive rules, so the domain is not re-fetched on
// every call.
func (c *Cache) Get(rawURL string) *Record {
	domain := urlx.GetDomain(rawURL)
	if domain == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if record, ok := c.records[domain]; ok {
		record.LastAccessed = time.Now()
		return record
	}

	record := c.fetchRecord(domain)
	c.insert(record)

	return record
}

// IsAllowed reports whether the URL may be crawled. Always true when
// robots respect is disabled.
func (c *Cache) IsAllowed(rawURL string) bool {
	if !c.respectRobots {
		return true
	}

	record := c.Get(rawURL)
	if record == nil || record.robots == nil {
		return true
	}

	return record.robots.TestAgent(urlPath(rawURL), robotsAgent)
}

// SitemapURLs scans the cached robots.txt for Sitemap declarations.
// The scan is textual line matching rather than parser-provided sitemap
// support, which proved unreliable on real-world files.
func (c *Cache) SitemapURLs(rawURL string) []string {
	record := c.Get(rawURL)
	if record == nil || record.RobotsContents == "" {
		return nil
	}

	var sitemaps []string

	for _, line := range strings.Split(record.RobotsContents, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < len("sitemap:") || !strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
			continue
		}

		if value := strings.TrimSpace(line[len("sitemap:"):]); value != "" {
			sitemaps = append(sitemaps, value)
		}
	}

	return sitemaps
}

// fetchRecord downloads and parses robots.txt for a domain. Caller must
// hold the mutex; the fetch happens under it so a burst of requests for
// one uncached domain produces one fetch.
func (c *Cache) fetchRecord(domain string) *Record {
	record := &Record{
		Domain:       domain,
		LastAccessed: time.Now(),
	}

	// Plain request only. Promoting a robots.txt fetch to a browser is
	// never worth the cost.
	resp := c.fetcher.Fetch(domain+"/robots.txt", &page.Options{SSLVerify: true})
	if resp == nil || !resp.IsValid() || !resp.HasBody() {
		c.log.Debug("no robots.txt for domain", "domain", domain)
		return record
	}

	record.RobotsContents = resp.Text()

	robots, err := robotstxt.FromString(record.RobotsContents)
	if err != nil {
		c.log.Warn("failed to parse robots.txt", "domain", domain, "error", err)
		return record
	}

	record.robots = robots

	return record
}

// insert stores a record, trimming the oldest-inserted entries down to
// capacity-1 first when the cache is full. Caller must hold the mutex.
func (c *Cache) insert(record *Record) {
	if len(c.records) >= c.capacity {
		c.trimOldest()
	}

	c.records[record.Domain] = record
	c.order = append(c.order, record.Domain)
}

// trimOldest drops least-recently-inserted records until capacity-1
// remain.
func (c *Cache) trimOldest() {
	for len(c.records) > c.capacity-1 && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.records, oldest)
	}
}

// urlPath extracts the path-and-query portion used for robots matching.
func urlPath(rawURL string) string {
	parts, ok := urlx.Parse(rawURL)
	if !ok || parts.Path == "" {
		return "/"
	}

	path := parts.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if parts.Query != "" {
		path += "?" + parts.Query
	}

	return path
}
