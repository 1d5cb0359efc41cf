// Package requestmeta answers scheme and origin questions about a request.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// Policy controls which request headers are trusted.
//
// TrustForwardedProto must be enabled explicitly; only turn it on behind a
// proxy that overwrites X-Forwarded-Proto.
type Policy struct {
	TrustForwardedProto bool
}

// Scheme returns "https" or "http" for r.
func (p Policy) Scheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustForwardedProto {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.URL != nil {
		if scheme := strings.ToLower(r.URL.Scheme); scheme == "http" || scheme == "https" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// IsHTTPS reports whether r should be treated as HTTPS.
func (p Policy) IsHTTPS(r *http.Request) bool {
	return p.Scheme(r) == "https"
}

// HasSameOriginProof reports whether Origin, or failing that Referer, names
// the same scheme, host and port as r.
func (p Policy) HasSameOriginProof(r *http.Request) bool {
	if r == nil {
		return false
	}
	want, ok := p.origin(r)
	if !ok {
		return false
	}
	for _, header := range []string{"Origin", "Referer"} {
		raw := strings.TrimSpace(r.Header.Get(header))
		if raw == "" {
			continue
		}
		got, ok := parseOrigin(raw)
		return ok && got == want
	}
	return false
}

// IsHTTPS applies the zero Policy.
func IsHTTPS(r *http.Request) bool {
	return Policy{}.IsHTTPS(r)
}

// HasSameOriginProof applies the zero Policy.
func HasSameOriginProof(r *http.Request) bool {
	return Policy{}.HasSameOriginProof(r)
}

type origin struct {
	scheme string
	host   string
	port   string
}

func (p Policy) origin(r *http.Request) (origin, bool) {
	scheme := p.Scheme(r)
	host := r.Host
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}
	parsed, err := url.Parse("//" + strings.TrimSpace(host))
	if err != nil || parsed.Hostname() == "" {
		return origin{}, false
	}
	return normalize(scheme, parsed.Hostname(), parsed.Port())
}

func parseOrigin(raw string) (origin, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Hostname() == "" {
		return origin{}, false
	}
	return normalize(parsed.Scheme, parsed.Hostname(), parsed.Port())
}

func normalize(scheme, host, port string) (origin, bool) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	if port == "" {
		switch scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			return origin{}, false
		}
	}
	return origin{scheme: scheme, host: strings.ToLower(host), port: port}, true
}
