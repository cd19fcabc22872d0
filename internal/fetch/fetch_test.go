package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/webscout/internal/content"
	"github.com/jonesrussell/webscout/internal/fetch"
	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/internal/page"
)

// stubStrategy returns canned results and records invocations.
type stubStrategy struct {
	mu    sync.Mutex
	name  string
	resp  *page.Response
	err   error
	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Fetch(_ context.Context, _ *page.Request) (*page.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.resp, s.err
}

func (s *stubStrategy) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func validResponse(url string) *page.Response {
	resp := page.NewResponse(url)
	resp.StatusCode = http.StatusOK
	resp.SetText("<html><head><title>ok</title></head></html>")
	return resp
}

func TestChainFirstSuccessWins(t *testing.T) {
	failing := &stubStrategy{name: "direct"}
	succeeding := &stubStrategy{name: "headless", resp: validResponse("https://example.com")}
	never := &stubStrategy{name: "full", resp: validResponse("https://example.com")}

	chain := fetch.NewChain(logger.NewNoOp(), true, failing, succeeding, never)

	resp, err := chain.Fetch(context.Background(), page.NewRequest("https://example.com"))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, failing.callCount())
	assert.Equal(t, 1, succeeding.callCount())
	assert.Equal(t, 0, never.callCount(), "strategies after the first success must not run")
}

func TestChainPromotionPastUnusableStatus(t *testing.T) {
	timedOut := page.NewResponse("https://example.com")
	timedOut.StatusCode = page.StatusTimeout

	first := &stubStrategy{name: "direct", resp: timedOut}
	second := &stubStrategy{name: "headless", resp: validResponse("https://example.com")}

	chain := fetch.NewChain(logger.NewNoOp(), true, first, second)

	resp, err := chain.Fetch(context.Background(), page.NewRequest("https://example.com"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChainWithoutPromotionReturnsFirstResponse(t *testing.T) {
	timedOut := page.NewResponse("https://example.com")
	timedOut.StatusCode = page.StatusTimeout

	first := &stubStrategy{name: "direct", resp: timedOut}
	second := &stubStrategy{name: "headless", resp: validResponse("https://example.com")}

	chain := fetch.NewChain(logger.NewNoOp(), false, first, second)

	resp, err := chain.Fetch(context.Background(), page.NewRequest("https://example.com"))
	require.NoError(t, err)
	assert.Equal(t, page.StatusTimeout, resp.StatusCode)
	assert.Equal(t, 0, second.callCount())
}

func TestChainKeepsUnusableResponseWhenNothingBetter(t *testing.T) {
	timedOut := page.NewResponse("https://example.com")
	timedOut.StatusCode = page.StatusTimeout

	first := &stubStrategy{name: "direct", resp: timedOut}
	second := &stubStrategy{name: "headless"}

	chain := fetch.NewChain(logger.NewNoOp(), true, first, second)

	resp, err := chain.Fetch(context.Background(), page.NewRequest("https://example.com"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, page.StatusTimeout, resp.StatusCode)
}

func TestChainServerErrorAborts(t *testing.T) {
	broken := &stubStrategy{name: "server-basic", err: &fetch.ServerError{Strategy: "server-basic"}}
	after := &stubStrategy{name: "headless", resp: validResponse("https://example.com")}

	chain := fetch.NewChain(logger.NewNoOp(), true, broken, after)

	resp, err := chain.Fetch(context.Background(), page.NewRequest("https://example.com"))
	require.Error(t, err)

	var serverErr *fetch.ServerError
	assert.ErrorAs(t, err, &serverErr)
	assert.Nil(t, resp)
	assert.Equal(t, 0, after.callCount())
}

// recordingBody flags any read attempt.
type recordingBody struct {
	mu   sync.Mutex
	read bool
}

func (b *recordingBody) Read(_ []byte) (int, error) {
	b.mu.Lock()
	b.read = true
	b.mu.Unlock()
	return 0, io.EOF
}

func (b *recordingBody) Close() error { return nil }

func (b *recordingBody) wasRead() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read
}

// staticTransport serves one canned response.
type staticTransport struct {
	resp *http.Response
}

func (t *staticTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.resp.Request = req
	return t.resp, nil
}

func TestDirectTooBigShortCircuits(t *testing.T) {
	body := &recordingBody{}
	transport := &staticTransport{resp: &http.Response{
		StatusCode:    http.StatusOK,
		ContentLength: fetch.MaxContentLength + 1,
		Header:        http.Header{"Content-Type": []string{"text/html"}},
		Body:          body,
	}}

	strategy := fetch.NewDirectStrategy(logger.NewNoOp()).WithTransport(transport)

	resp, err := strategy.Fetch(context.Background(), page.NewRequest("https://example.com/huge"))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, page.StatusFileTooBig, resp.StatusCode)
	assert.False(t, resp.HasBody())
	assert.False(t, body.wasRead(), "the body must never be read for an oversized file")
}

func TestDirectFetchHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "none", r.Header.Get("Accept-Encoding"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<html><head><title>hello</title></head></html>"))
	}))
	defer srv.Close()

	strategy := fetch.NewDirectStrategy(logger.NewNoOp())

	resp, err := strategy.Fetch(context.Background(), page.NewRequest(srv.URL))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "iso-8859-1", resp.Encoding)
	assert.Contains(t, resp.Text(), "<title>hello</title>")
}

// A charset declaration beyond the head sniff window still counts when
// it is the only one in the document.
func TestDirectEncodingDeclarationPastSniffWindow(t *testing.T) {
	padding := strings.Repeat("<!-- filler -->", 100)
	body := "<html><head>" + padding +
		`<meta charset="iso-8859-1"></head><body>ok</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	resp, err := fetch.NewDirectStrategy(logger.NewNoOp()).
		Fetch(context.Background(), page.NewRequest(srv.URL))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "iso-8859-1", resp.Encoding)
}

func TestDirectPingSkipsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	req := page.NewRequest(srv.URL)
	req.Ping = true

	resp, err := fetch.NewDirectStrategy(logger.NewNoOp()).Fetch(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, resp.HasBody())
}

func TestDirectUnsupportedContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47}) //nolint:mnd // png magic
	}))
	defer srv.Close()

	resp, err := fetch.NewDirectStrategy(logger.NewNoOp()).
		Fetch(context.Background(), page.NewRequest(srv.URL))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, page.StatusUnsupported, resp.StatusCode)
	assert.False(t, resp.HasBody())
}

func TestDirectTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	req := page.NewRequest(srv.URL)
	req.Timeout = 20 * time.Millisecond

	resp, err := fetch.NewDirectStrategy(logger.NewNoOp()).Fetch(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, page.StatusTimeout, resp.StatusCode)
	assert.NotEmpty(t, resp.Errors)
}

func TestDirectConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp, err := fetch.NewDirectStrategy(logger.NewNoOp()).
		Fetch(context.Background(), page.NewRequest(url))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, page.StatusConnectionError, resp.StatusCode)
}

func TestClientGetProperties(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Example</title>` +
			`<meta property="og:description" content="Desc"></head><body></body></html>`))
	}))
	defer srv.Close()

	client := fetch.NewClient(logger.NewNoOp(), nil)

	props, err := client.GetProperties(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	require.NotNil(t, props)

	assert.Equal(t, "Example", props[content.PropTitle])
	assert.Equal(t, "Desc", props[content.PropDescription])
	assert.Equal(t, http.StatusOK, props[content.PropStatusCode])
}

// The shortener-domain browser upgrade is a per-call concern and must
// not leak into the caller's options.
func TestClientFetchDoesNotMutateCallerOptions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := fetch.NewClient(logger.NewNoOp(), nil)

	opts := page.DefaultOptions()
	require.False(t, opts.UseFullBrowser)

	_, _ = client.Fetch(ctx, "https://bit.ly/abc123", opts)

	assert.False(t, opts.UseFullBrowser, "caller options changed")
}

func TestClientRefusesNonWebLink(t *testing.T) {
	client := fetch.NewClient(logger.NewNoOp(), nil)

	resp, err := client.Fetch(context.Background(), "mailto:someone@example.com", nil)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestBulkFetchAllAlignsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>" + r.URL.Path + "</title></head></html>"))
	}))
	defer srv.Close()

	client := fetch.NewClient(logger.NewNoOp(), nil)
	bulk := fetch.NewBulkFetcher(client).WithPageSize(2)

	urls := []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c"}

	responses, err := bulk.FetchAll(context.Background(), urls, nil)
	require.NoError(t, err)
	require.Len(t, responses, 3)

	for i, resp := range responses {
		require.NotNil(t, resp, "response %d", i)
		assert.Contains(t, resp.Text(), urls[i][len(srv.URL):])
	}
}
