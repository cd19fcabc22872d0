package page

import (
	"net/http"
	"strings"

	"golang.org/x/net/html/charset"
)

// DefaultEncoding is assumed when no charset can be resolved.
const DefaultEncoding = "utf-8"

// Response is the result of one fetch attempt. Exactly one of text and
// binary is authoritative; the other is derived lazily on access.
type Response struct {
	// URL is the final URL after any redirects.
	URL string
	// RequestURL is the URL the attempt started from.
	RequestURL string
	// StatusCode is the HTTP status, or a synthetic engine status.
	StatusCode int
	// Headers are the response headers, when any were received.
	Headers http.Header
	// Encoding is the resolved character encoding of the body.
	Encoding string
	// Errors collects human-readable failure messages for this attempt.
	Errors []string

	text      string
	hasText   bool
	binary    []byte
	hasBinary bool
}

// NewResponse creates a Response for the given request URL.
func NewResponse(requestURL string) *Response {
	return &Response{
		URL:        requestURL,
		RequestURL: requestURL,
		Encoding:   DefaultEncoding,
	}
}

// SetText sets the decoded body text as the authoritative form.
func (r *Response) SetText(text string) {
	r.text = text
	r.hasText = true
}

// SetBinary sets the raw body bytes as the authoritative form.
func (r *Response) SetBinary(binary []byte) {
	r.binary = binary
	r.hasBinary = true
}

// Text returns the body text, decoding the binary form with the resolved
// encoding on first access.
func (r *Response) Text() string {
	if r.hasText {
		return r.text
	}

	if !r.hasBinary {
		return ""
	}

	r.text = decodeBody(r.binary, r.Encoding)
	r.hasText = true

	return r.text
}

// Binary returns the body bytes, deriving them from the text form when
// only text was set.
func (r *Response) Binary() []byte {
	if r.hasBinary {
		return r.binary
	}

	if !r.hasText {
		return nil
	}

	r.binary = []byte(r.text)
	r.hasBinary = true

	return r.binary
}

// HasBody reports whether any body form was set.
func (r *Response) HasBody() bool {
	return r.hasText || r.hasBinary
}

// AddError appends a failure message to the response.
func (r *Response) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// IsValid reports whether the response represents a usable page.
func (r *Response) IsValid() bool {
	return IsValidStatus(r.StatusCode)
}

// ContentType returns the declared Content-Type header, lowercased,
// without parameters.
func (r *Response) ContentType() string {
	if r.Headers == nil {
		return ""
	}

	value := r.Headers.Get("Content-Type")
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = value[:idx]
	}

	return strings.ToLower(strings.TrimSpace(value))
}

// decodeBody decodes raw bytes using the named encoding, falling back to
// interpreting them as UTF-8 when the encoding is unknown or decoding
// fails.
func decodeBody(body []byte, encoding string) string {
	if encoding == "" || strings.EqualFold(encoding, DefaultEncoding) {
		return string(body)
	}

	enc, _ := charset.Lookup(encoding)
	if enc == nil {
		return string(body)
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}

	return string(decoded)
}
