// Package page defines the fetch request/response model shared by the
// fetch strategies and the content-type layer.
package page

import "net/http"

// Synthetic status codes surfaced on a Response for non-HTTP failures.
// Callers branch on the status code instead of catching errors, so every
// failure mode of a fetch attempt maps to a distinct code.
const (
	// StatusException marks any unexpected error during a fetch attempt.
	StatusException = 600
	// StatusConnectionError marks a transport-level connection failure.
	StatusConnectionError = 603
	// StatusTimeout marks a request or page-load timeout.
	StatusTimeout = 604
	// StatusFileTooBig marks a declared Content-Length over the ceiling.
	StatusFileTooBig = 612
	// StatusUnsupported marks a Content-Type outside the supported set.
	StatusUnsupported = 613
)

// statusForbidden is treated as valid-adjacent: some sites return 403
// for legitimate pages behind bot protection.
const statusForbidden = http.StatusForbidden

// IsValidStatus reports whether a status code counts as a usable page.
// 2xx passes, and so does 403 (anti-bot workaround, field-tested).
func IsValidStatus(code int) bool {
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return true
	}

	return code == statusForbidden
}

// IsSyntheticStatus reports whether the code was produced by the engine
// rather than the remote server.
func IsSyntheticStatus(code int) bool {
	return code >= StatusException
}
