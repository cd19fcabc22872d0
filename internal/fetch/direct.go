package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/internal/page"
)

// MaxContentLength is the declared-size ceiling; larger bodies are
// never downloaded.
const MaxContentLength = 5_000_000

// fixedHeaders are sent on every direct request unless overridden by
// the caller. Accept-Encoding is "none" so the body arrives undecoded
// and the Content-Length check stays meaningful.
var fixedHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Charset":  "utf-8",
	"Accept-Encoding": "none",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
}

// DirectStrategy fetches with a plain streamed HTTP GET. It is the
// cheapest strategy and always runs first in the basic chain.
type DirectStrategy struct {
	log       logger.Interface
	transport http.RoundTripper
}

// NewDirectStrategy creates the direct-request strategy.
func NewDirectStrategy(log logger.Interface) *DirectStrategy {
	return &DirectStrategy{log: log.WithComponent("fetch.direct")}
}

// WithTransport substitutes the HTTP transport. The substitute owns TLS
// behavior; the request's SSLVerify flag is ignored.
func (s *DirectStrategy) WithTransport(transport http.RoundTripper) *DirectStrategy {
	s.transport = transport
	return s
}

// Name identifies the strategy.
func (s *DirectStrategy) Name() string { return "direct" }

// Fetch performs one streamed GET. All failures land on the response as
// synthetic status codes; the returned response is never nil.
func (s *DirectStrategy) Fetch(ctx context.Context, req *page.Request) (*page.Response, error) {
	resp := page.NewResponse(req.URL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		resp.StatusCode = page.StatusException
		resp.AddError("invalid request: " + err.Error())
		s.log.Warn("invalid request", "url", req.URL, "error", err)
		return resp, nil
	}

	for name, value := range fixedHeaders {
		httpReq.Header.Set(name, value)
	}
	httpReq.Header.Set("User-Agent", req.EffectiveUserAgent())
	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	transport := s.transport
	if transport == nil {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: !req.SSLVerify}, //nolint:gosec // caller-controlled
		}
	}

	client := &http.Client{
		Timeout:   req.EffectiveTimeout(),
		Transport: transport,
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		s.mapTransportError(resp, req.URL, err)
		return resp, nil
	}
	defer httpResp.Body.Close()

	resp.StatusCode = httpResp.StatusCode
	resp.Headers = httpResp.Header
	if httpResp.Request != nil && httpResp.Request.URL != nil {
		resp.URL = httpResp.Request.URL.String()
	}

	// Declared size is checked before any body read.
	if httpResp.ContentLength > MaxContentLength {
		resp.StatusCode = page.StatusFileTooBig
		resp.AddError("content length exceeds ceiling")
		s.log.Info("file too big", "url", req.URL, "content_length", httpResp.ContentLength)
		return resp, nil
	}

	if req.Ping {
		return resp, nil
	}

	if !supportedContentType(httpResp.Header.Get("Content-Type")) {
		resp.StatusCode = page.StatusUnsupported
		resp.AddError("unsupported content type: " + httpResp.Header.Get("Content-Type"))
		s.log.Info("unsupported content type", "url", req.URL,
			"content_type", httpResp.Header.Get("Content-Type"))
		return resp, nil
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, MaxContentLength))
	if err != nil {
		s.mapTransportError(resp, req.URL, err)
		return resp, nil
	}

	resp.SetBinary(body)
	resp.Encoding = resolveEncoding(httpResp.Header.Get("Content-Type"), body)

	return resp, nil
}

// mapTransportError translates a transport failure into a synthetic
// status plus a recorded message.
func (s *DirectStrategy) mapTransportError(resp *page.Response, url string, err error) {
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		resp.StatusCode = page.StatusTimeout
		resp.AddError("timeout: " + err.Error())
		s.log.Info("request timed out", "url", url, "strategy", s.Name())
	case isConnectionError(err):
		resp.StatusCode = page.StatusConnectionError
		resp.AddError("connection error: " + err.Error())
		s.log.Info("connection error", "url", url, "strategy", s.Name(), "error", err)
	default:
		resp.StatusCode = page.StatusException
		resp.AddError("fetch error: " + err.Error())
		s.log.Exc(err, "fetch failed", "url", url, "strategy", s.Name())
	}
}

// isConnectionError reports whether the error is a transport-level
// connection failure rather than a protocol or timeout problem.
func isConnectionError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed)
}

// supportedContentType accepts text/*, application/* and anything
// mentioning xml. An absent header is allowed; the body sniff decides.
func supportedContentType(contentType string) bool {
	if contentType == "" {
		return true
	}

	mediaType := strings.ToLower(contentType)
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.TrimSpace(mediaType)

	return strings.HasPrefix(mediaType, "text/") ||
		strings.HasPrefix(mediaType, "application/") ||
		strings.Contains(mediaType, "xml")
}

// Charset declaration patterns, in resolution order after the header.
var (
	headerCharsetPattern   = regexp.MustCompile(`(?i)charset=["']?([A-Za-z0-9_.:\-]+)`)
	documentCharsetPattern = regexp.MustCompile(`(?i)(?:charset|encoding)=["']?([A-Za-z0-9_.:\-]+)`)
)

// resolveEncoding resolves the body encoding: the Content-Type header
// charset, then an in-document charset/encoding declaration sniffed
// from the first bytes, then a whole-body scan accepted only when the
// declaration is unambiguous, then utf-8.
func resolveEncoding(contentType string, body []byte) string {
	if m := headerCharsetPattern.FindStringSubmatch(contentType); m != nil {
		return strings.ToLower(m[1])
	}

	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	if m := documentCharsetPattern.FindSubmatch(head); m != nil {
		return strings.ToLower(string(m[1]))
	}

	// A declaration past the head counts only when it is the single one
	// in the document.
	if all := documentCharsetPattern.FindAllSubmatch(body, 2); len(all) == 1 {
		return strings.ToLower(string(all[0][1]))
	}

	return page.DefaultEncoding
}
