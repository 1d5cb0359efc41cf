// Package static embeds the stylesheet served under /static/.
package static

import "embed"

// FS exposes web static assets for HTTP serving.
//
//go:embed app.css
var FS embed.FS
