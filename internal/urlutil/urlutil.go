// Package urlutil normalizes the handful of alternate URL schemes the
// database accepts (tcp/ssl aliases and the various unix-socket spellings)
// into a canonical http(s) URL plus, where relevant, a unix socket path to
// dial instead of using the URL's host.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalized is the result of sanitizing a configured endpoint URL.
type Normalized struct {
	// URL is the canonical http(s) URL to use for requests and as the
	// dedup/lookup key in the host list.
	URL string
	// UnixSocketPath is non-empty when the original URL designated a unix
	// domain socket; the endpoint transport should dial this path instead
	// of using the URL's host.
	UnixSocketPath string
}

// Normalize rewrites raw according to the scheme aliases the database
// recognizes: "tcp" becomes "http", "ssl"/"tls" become "https", and the
// "unix://", "http+unix://" and "http://unix:" forms (and their ssl/tls
// variants) are rewritten to an http(s) URL paired with the unix socket
// path to dial.
func Normalize(raw string) (Normalized, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Normalized{}, fmt.Errorf("urlutil: empty URL")
	}

	if socketPath, rest, ok := splitUnixForm(raw); ok {
		scheme := "http"
		if rest != "" {
			parsed, err := url.Parse(rest)
			if err == nil && isTLSScheme(parsed.Scheme) {
				scheme = "https"
			}
		}
		return Normalized{
			URL:            scheme + "://unix",
			UnixSocketPath: socketPath,
		}, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Normalized{}, fmt.Errorf("urlutil: invalid URL %q: %w", raw, err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "tcp":
		parsed.Scheme = "http"
	case "ssl", "tls":
		parsed.Scheme = "https"
	}
	return Normalized{URL: parsed.String()}, nil
}

func isTLSScheme(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "https", "ssl", "tls":
		return true
	default:
		return false
	}
}

// splitUnixForm recognizes the three unix-socket spellings the database
// accepts: "unix:///path", "http+unix:///path" (and https+unix) and
// "http://unix:/path" (and https://unix:/path). It returns the socket
// path and, where present, the original scheme-bearing remainder used to
// decide between http and https.
func splitUnixForm(raw string) (socketPath, schemeHint string, ok bool) {
	switch {
	case strings.HasPrefix(raw, "unix://"):
		return strings.TrimPrefix(raw, "unix://"), "", true
	case strings.HasPrefix(raw, "http+unix://"):
		return strings.TrimPrefix(raw, "http+unix://"), "http://", true
	case strings.HasPrefix(raw, "https+unix://"):
		return strings.TrimPrefix(raw, "https+unix://"), "https://", true
	case strings.HasPrefix(raw, "http://unix:"):
		return strings.TrimPrefix(raw, "http://unix:"), "http://", true
	case strings.HasPrefix(raw, "https://unix:"):
		return strings.TrimPrefix(raw, "https://unix:"), "https://", true
	default:
		return "", "", false
	}
}
