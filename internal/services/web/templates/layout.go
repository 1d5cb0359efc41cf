// Package templates holds the HTML views of the web service as templ components.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/bengkel/internal/services/web/routepath"
)

// AppName is shown in the page chrome.
const AppName = "Bengkel"

// Viewer is the signed-in staff member shown in the header.
type Viewer struct {
	DisplayName string
	Role        string
}

// Notice is a one-time message rendered above the page body.
type Notice struct {
	Kind    string
	Message string
}

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title       string
	CurrentPath string
	Viewer      *Viewer
	Notice      *Notice
}

type navItem struct {
	label string
	path  string
}

var navItems = []navItem{
	{label: "Dasbor", path: routepath.Home},
	{label: "Transaksi", path: routepath.Transactions},
	{label: "Mekanik", path: routepath.Mechanics},
	{label: "Barang", path: routepath.Parts},
	{label: "Jasa", path: routepath.Services},
	{label: "Pemasok", path: routepath.Suppliers},
	{label: "Pengeluaran", path: routepath.Expenses},
	{label: "Kinerja", path: routepath.Performance},
}

// Layout renders the HTML shell around the children in ctx.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		title := AppName
		if page.Title != "" {
			title = page.Title + " · " + AppName
		}
		h.raw(`<!DOCTYPE html><html lang="id"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="`, routepath.StaticStylesheet, `"></head><body>`)
		if page.Viewer != nil {
			writeNav(h, page)
		}
		h.raw(`<main class="page">`)
		if page.Notice != nil {
			h.raw(`<div class="notice notice-`)
			h.text(page.Notice.Kind)
			h.raw(`" role="status">`)
			h.text(page.Notice.Message)
			h.raw(`</div>`)
		}
		if h.err != nil {
			return h.err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

func writeNav(h *htmlWriter, page PageContext) {
	h.raw(`<header class="topbar"><span class="brand">`, AppName, `</span><nav>`)
	for _, item := range navItems {
		h.raw(`<a`)
		h.attr("href", item.path)
		if routepath.IsSection(page.CurrentPath, item.path) {
			h.raw(` class="active" aria-current="page"`)
		}
		h.raw(`>`)
		h.text(item.label)
		h.raw(`</a>`)
	}
	h.raw(`</nav><form method="post"`)
	h.attr("action", routepath.Logout)
	h.raw(` class="logout"><span class="viewer">`)
	h.text(page.Viewer.DisplayName)
	h.raw(`</span><button type="submit">Keluar</button></form></header>`)
}
