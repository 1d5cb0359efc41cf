package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// RankRow is one mechanic on a ranking table.
type RankRow struct {
	Rank         int
	Name         string
	Score        int
	Revenue      string
	Transactions int
	Rating       string
}

// DashboardView is the month overview.
type DashboardView struct {
	Filter       MonthFilter
	Revenue      string
	Expenses     string
	Net          string
	Transactions int
	TopMechanics []RankRow
	Recent       Table
}

// DashboardPage renders the month overview.
func DashboardPage(view DashboardView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<h1>Dasbor</h1>`)
		writeMonthFilter(h, view.Filter)
		h.raw(`<div class="stats" id="dashboard-stats">`)
		writeStat(h, "Pendapatan", view.Revenue)
		writeStat(h, "Pengeluaran", view.Expenses)
		writeStat(h, "Laba bersih", view.Net)
		writeStat(h, "Transaksi", itoa(view.Transactions))
		h.raw(`</div><div class="split"><section class="card"><h2>Mekanik terbaik</h2>`)
		writeRanking(h, view.TopMechanics)
		h.raw(`</section><section class="card"><h2>Transaksi terakhir</h2>`)
		writeTable(h, view.Recent)
		h.raw(`</section></div>`)
		return h.err
	})
}

func writeStat(h *htmlWriter, label, value string) {
	h.raw(`<div class="stat"><span class="stat-label">`)
	h.text(label)
	h.raw(`</span><span class="stat-value">`)
	h.text(value)
	h.raw(`</span></div>`)
}

// PerformanceView ranks mechanics for one month.
type PerformanceView struct {
	Filter MonthFilter
	Rows   []RankRow
}

// PerformancePage renders the mechanic ranking.
func PerformancePage(view PerformanceView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<h1>Kinerja Mekanik</h1>`)
		writeMonthFilter(h, view.Filter)
		h.raw(`<section class="card" id="performance">`)
		writeRanking(h, view.Rows)
		h.raw(`</section>`)
		return h.err
	})
}

func writeRanking(h *htmlWriter, rows []RankRow) {
	table := Table{
		Columns: []string{"#", "Mekanik", "Skor", "Pendapatan", "Transaksi", "Rating"},
		Empty:   "Belum ada mekanik.",
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, TableRow{Cells: []string{
			itoa(row.Rank),
			row.Name,
			itoa(row.Score),
			row.Revenue,
			itoa(row.Transactions),
			row.Rating,
		}})
	}
	writeTable(h, table)
}
