package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/bengkel/internal/services/web/routepath"
)

// TransactionListView lists one month of sales.
type TransactionListView struct {
	Filter  MonthFilter
	Summary string
	Table   Table
}

// TransactionListPage renders the sales list.
func TransactionListPage(view TransactionListView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<h1>Transaksi</h1><p><a class="button"`)
		h.attr("href", routepath.TransactionsNew)
		h.raw(`>Transaksi baru</a></p>`)
		writeMonthFilter(h, view.Filter)
		if view.Summary != "" {
			h.raw(`<p class="summary">`)
			h.text(view.Summary)
			h.raw(`</p>`)
		}
		h.raw(`<section class="card">`)
		writeTable(h, view.Table)
		h.raw(`</section>`)
		return h.err
	})
}

// LineView is one editable line of a new sale.
type LineView struct {
	Item string
	Qty  string
}

// NewTransactionView is the point-of-sale form.
type NewTransactionView struct {
	Error     string
	Customer  string
	Plate     string
	Paid      string
	Rating    string
	Mechanics []Option
	Catalogue []Option
	Lines     []LineView
}

// NewTransactionPage renders the point-of-sale form.
func NewTransactionPage(view NewTransactionView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<h1>Transaksi baru</h1><form method="post" class="card form" id="new-transaction"`)
		h.attr("action", routepath.Transactions)
		h.raw(`>`)
		if view.Error != "" {
			h.raw(`<p class="form-error" role="alert">`)
			h.text(view.Error)
			h.raw(`</p>`)
		}
		writeField(h, Field{Name: "customer_name", Label: "Pelanggan", Value: view.Customer})
		writeField(h, Field{Name: "vehicle_plate", Label: "Nomor polisi", Value: view.Plate})
		writeField(h, Field{Name: "mechanic_id", Label: "Mekanik", Type: "select", Options: view.Mechanics})
		h.raw(`<fieldset><legend>Item</legend>`)
		for _, line := range view.Lines {
			h.raw(`<div class="line">`)
			writeField(h, Field{Name: "item", Label: "Barang / jasa", Type: "select", Options: markSelected(view.Catalogue, line.Item)})
			writeField(h, Field{Name: "qty", Label: "Jumlah", Type: "number", Value: line.Qty})
			h.raw(`</div>`)
		}
		h.raw(`</fieldset>`)
		writeField(h, Field{Name: "rating", Label: "Rating pelanggan (1-5)", Type: "number", Value: view.Rating})
		writeField(h, Field{Name: "paid", Label: "Dibayar", Value: view.Paid, Required: true})
		h.raw(`<button type="submit">Simpan transaksi</button></form>`)
		return h.err
	})
}

func markSelected(options []Option, value string) []Option {
	out := make([]Option, len(options))
	for idx, opt := range options {
		opt.Selected = value != "" && opt.Value == value
		out[idx] = opt
	}
	return out
}

// ReceiptLine is one printed receipt line.
type ReceiptLine struct {
	Name      string
	Qty       int
	UnitPrice string
	Subtotal  string
}

// ReceiptView is a printable receipt.
type ReceiptView struct {
	Number   string
	Date     string
	Customer string
	Plate    string
	Mechanic string
	Rating   string
	Lines    []ReceiptLine
	Total    string
	Paid     string
	Change   string
}

// ReceiptPage renders a printable receipt.
func ReceiptPage(view ReceiptView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<article class="receipt" id="receipt"><header><h1>`, AppName, `</h1><p class="receipt-number">`)
		h.text(view.Number)
		h.raw(`</p><p>`)
		h.text(view.Date)
		h.raw(`</p></header><dl>`)
		for _, pair := range [][2]string{
			{"Pelanggan", view.Customer},
			{"Nomor polisi", view.Plate},
			{"Mekanik", view.Mechanic},
			{"Rating", view.Rating},
		} {
			if pair[1] == "" {
				continue
			}
			h.raw(`<dt>`)
			h.text(pair[0])
			h.raw(`</dt><dd>`)
			h.text(pair[1])
			h.raw(`</dd>`)
		}
		h.raw(`</dl><table><thead><tr><th>Item</th><th>Jml</th><th>Harga</th><th>Subtotal</th></tr></thead><tbody>`)
		for _, line := range view.Lines {
			h.raw(`<tr><td>`)
			h.text(line.Name)
			h.raw(`</td><td>`)
			h.text(itoa(line.Qty))
			h.raw(`</td><td>`)
			h.text(line.UnitPrice)
			h.raw(`</td><td>`)
			h.text(line.Subtotal)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody><tfoot>`)
		for _, pair := range [][2]string{{"Total", view.Total}, {"Dibayar", view.Paid}, {"Kembali", view.Change}} {
			h.raw(`<tr><th colspan="3">`)
			h.text(pair[0])
			h.raw(`</th><td>`)
			h.text(pair[1])
			h.raw(`</td></tr>`)
		}
		h.raw(`</tfoot></table><p class="no-print"><button type="button" onclick="window.print()">Cetak</button> <a`)
		h.attr("href", routepath.Transactions)
		h.raw(`>Kembali</a></p></article>`)
		return h.err
	})
}
