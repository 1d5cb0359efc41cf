package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/bengkel/internal/services/web/routepath"
)

// LoginView is the sign-in page state.
type LoginView struct {
	Username string
	Error    string
}

// LoginPage renders the sign-in form.
func LoginPage(view LoginView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="login" id="login">`)
		h.raw(`<h1>`, AppName, `</h1>`)
		writeForm(h, FormView{
			Title:  "Masuk",
			Action: routepath.Login,
			Submit: "Masuk",
			Error:  view.Error,
			Fields: []Field{
				{Name: "username", Label: "Nama pengguna", Value: view.Username, Required: true},
				{Name: "password", Label: "Kata sandi", Type: "password", Required: true},
			},
		})
		h.raw(`</section>`)
		return h.err
	})
}

// ErrorView describes an error page.
type ErrorView struct {
	Status  int
	Message string
}

// ErrorPage renders an error state.
func ErrorPage(view ErrorView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="card error-state" id="error-state"><h1>`)
		h.text(itoa(view.Status) + " " + http.StatusText(view.Status))
		h.raw(`</h1><p>`)
		h.text(view.Message)
		h.raw(`</p><a`)
		h.attr("href", routepath.Home)
		h.raw(`>Kembali ke dasbor</a></section>`)
		return h.err
	})
}

// MonthFilter is a month picker that reloads the page.
type MonthFilter struct {
	Action string
	Key    string
	Label  string
}

func writeMonthFilter(h *htmlWriter, filter MonthFilter) {
	h.raw(`<form method="get" class="filter"`)
	h.attr("action", filter.Action)
	h.raw(`><label>Bulan <input type="month" name="month"`)
	h.attr("value", filter.Key)
	h.raw(`></label><button type="submit">Tampilkan</button><span class="muted">`)
	h.text(filter.Label)
	h.raw(`</span></form>`)
}

// Table is a plain data table with an optional action link per row.
type Table struct {
	Columns []string
	Rows    []TableRow
	Empty   string
}

// TableRow is one table line. Link, when set, wraps the first cell.
type TableRow struct {
	Link  string
	Cells []string
}

func writeTable(h *htmlWriter, table Table) {
	if len(table.Rows) == 0 {
		h.raw(`<p class="empty">`)
		empty := table.Empty
		if empty == "" {
			empty = "Belum ada data."
		}
		h.text(empty)
		h.raw(`</p>`)
		return
	}
	h.raw(`<table><thead><tr>`)
	for _, col := range table.Columns {
		h.raw(`<th>`)
		h.text(col)
		h.raw(`</th>`)
	}
	h.raw(`</tr></thead><tbody>`)
	for _, row := range table.Rows {
		h.raw(`<tr>`)
		for idx, cell := range row.Cells {
			h.raw(`<td>`)
			if idx == 0 && row.Link != "" {
				h.raw(`<a`)
				h.attr("href", row.Link)
				h.raw(`>`)
				h.text(cell)
				h.raw(`</a>`)
			} else {
				h.text(cell)
			}
			h.raw(`</td>`)
		}
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table>`)
}

// ResourceListView lists one collection next to its create form.
type ResourceListView struct {
	Title   string
	Filter  *MonthFilter
	Summary string
	Table   Table
	Form    FormView
}

// ResourceListPage renders a collection page.
func ResourceListPage(view ResourceListView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<h1>`)
		h.text(view.Title)
		h.raw(`</h1>`)
		if view.Filter != nil {
			writeMonthFilter(h, *view.Filter)
		}
		if view.Summary != "" {
			h.raw(`<p class="summary">`)
			h.text(view.Summary)
			h.raw(`</p>`)
		}
		h.raw(`<div class="split"><section class="card">`)
		writeTable(h, view.Table)
		h.raw(`</section>`)
		writeForm(h, view.Form)
		h.raw(`</div>`)
		return h.err
	})
}

// ResourceEditView edits one record.
type ResourceEditView struct {
	Title        string
	BackLink     string
	Form         FormView
	DeleteAction string
}

// ResourceEditPage renders the edit form of one record with a delete button.
func ResourceEditPage(view ResourceEditView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<p><a`)
		h.attr("href", view.BackLink)
		h.raw(`>&larr; Kembali</a></p><h1>`)
		h.text(view.Title)
		h.raw(`</h1>`)
		writeForm(h, view.Form)
		if view.DeleteAction != "" {
			h.raw(`<form method="post" class="danger"`)
			h.attr("action", view.DeleteAction)
			h.raw(`><button type="submit">Hapus</button></form>`)
		}
		return h.err
	})
}
