// Package apierr classifies generation API failures into shared sentinels.
// Provider adapters map HTTP statuses with Classify; callers check with
// errors.Is(err, apierr.ErrRateLimit) etc.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for API interaction failures.
var (
	// ErrRateLimit indicates the API rate limit was exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrQuotaExceeded indicates the API quota was exhausted (billing issue).
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTimeout indicates a request timed out.
	ErrTimeout = errors.New("request timeout")

	// ErrAuthFailed indicates API authentication failed (missing or invalid key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")

	// ErrServer indicates a provider-side failure (5xx).
	ErrServer = errors.New("server error")
)

// Classify wraps msg with the sentinel matching an HTTP status code.
// 429 responses mentioning quota or billing are ErrQuotaExceeded, other 429s
// are ErrRateLimit. Unknown statuses return a plain error.
func Classify(status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}

	var sentinel error
	switch {
	case status == http.StatusTooManyRequests:
		sentinel = ErrRateLimit
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "quota") || strings.Contains(lower, "billing") {
			sentinel = ErrQuotaExceeded
		}
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		sentinel = ErrAuthFailed
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		sentinel = ErrTimeout
	case status >= 500:
		sentinel = ErrServer
	case status >= 400:
		sentinel = ErrBadRequest
	default:
		return errors.New(msg)
	}
	return fmt.Errorf("%s: %w", msg, sentinel)
}
