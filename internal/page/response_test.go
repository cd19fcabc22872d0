package page_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/webscout/internal/page"
)

func TestResponseTextFromBinary(t *testing.T) {
	resp := page.NewResponse("https://example.com")
	resp.SetBinary([]byte("hello"))

	assert.Equal(t, "hello", resp.Text())
	assert.Equal(t, []byte("hello"), resp.Binary())
}

func TestResponseBinaryFromText(t *testing.T) {
	resp := page.NewResponse("https://example.com")
	resp.SetText("hello")

	assert.Equal(t, []byte("hello"), resp.Binary())
}

func TestResponseDecodesDeclaredEncoding(t *testing.T) {
	resp := page.NewResponse("https://example.com")
	resp.Encoding = "iso-8859-1"
	resp.SetBinary([]byte{0x63, 0x61, 0x66, 0xE9}) // "café" in latin-1

	assert.Equal(t, "café", resp.Text())
}

func TestResponseUnknownEncodingFallsBack(t *testing.T) {
	resp := page.NewResponse("https://example.com")
	resp.Encoding = "no-such-charset"
	resp.SetBinary([]byte("plain"))

	assert.Equal(t, "plain", resp.Text())
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, page.IsValidStatus(http.StatusOK))
	assert.True(t, page.IsValidStatus(http.StatusNoContent))
	assert.True(t, page.IsValidStatus(http.StatusForbidden), "403 is valid-adjacent behind bot protection")
	assert.False(t, page.IsValidStatus(http.StatusNotFound))
	assert.False(t, page.IsValidStatus(page.StatusTimeout))
	assert.False(t, page.IsValidStatus(page.StatusFileTooBig))
}

func TestIsSyntheticStatus(t *testing.T) {
	assert.True(t, page.IsSyntheticStatus(page.StatusException))
	assert.True(t, page.IsSyntheticStatus(page.StatusUnsupported))
	assert.False(t, page.IsSyntheticStatus(http.StatusOK))
	assert.False(t, page.IsSyntheticStatus(http.StatusInternalServerError))
}

func TestContentType(t *testing.T) {
	resp := page.NewResponse("https://example.com")
	resp.Headers = http.Header{"Content-Type": []string{"Text/HTML; charset=UTF-8"}}

	assert.Equal(t, "text/html", resp.ContentType())
}
