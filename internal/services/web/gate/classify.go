// Package gate decides, per request, whether the caller may proceed or must be
// redirected between the login page and the signed-in area.
package gate

import "strings"

// PathClass groups request paths by how the gate treats them.
type PathClass int

const (
	// PathProtected is the signed-in area; the default for unmatched paths.
	PathProtected PathClass = iota
	// PathLogin is the login surface.
	PathLogin
	// PathBypass is never gated: JSON API, static assets, and anything that
	// looks like a file.
	PathBypass
)

// String returns the class name used in logs and spans.
func (c PathClass) String() string {
	switch c {
	case PathLogin:
		return "login"
	case PathBypass:
		return "bypass"
	default:
		return "protected"
	}
}

// Well-known paths.
const (
	LoginPath = "/login"
	HomePath  = "/"
	APIPath   = "/api"
)

// bypassPrefixes are asset and API mounts the gate never inspects.
var bypassPrefixes = []string{
	APIPath + "/",
	"/_next/static/",
	"/_next/image/",
	"/static/",
}

// Classify places path in exactly one PathClass. Bypass rules win over the
// login prefix, so "/login.css" is a static file.
func Classify(path string) PathClass {
	if isBypass(path) {
		return PathBypass
	}
	if strings.HasPrefix(path, LoginPath) {
		return PathLogin
	}
	return PathProtected
}

func isBypass(path string) bool {
	if path == APIPath || path == "/favicon.ico" {
		return true
	}
	if strings.Contains(path, ".") {
		return true
	}
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
