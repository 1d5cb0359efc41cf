package dashboard

import (
	"net/http"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/platform/format"
	"github.com/louisbranch/bengkel/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/bengkel/internal/services/web/reporting"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

const topMechanics = 5

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	month, err := h.RequestMonth(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	overview, err := h.service.loadOverview(r.Context(), month.From, month.To)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(w, r, "Dasbor", http.StatusOK, webtemplates.DashboardPage(webtemplates.DashboardView{
		Filter:       month.Filter(routepath.Home),
		Revenue:      format.Rupiah(overview.Totals.Revenue),
		Expenses:     format.Rupiah(overview.Totals.ExpenseTotal),
		Net:          format.Rupiah(overview.Net),
		Transactions: overview.Totals.TransactionCount,
		TopMechanics: reporting.RankRows(overview.Ranking, topMechanics),
		Recent:       h.recentTable(overview),
	}))
}

func (h handlers) recentTable(overview Overview) webtemplates.Table {
	table := webtemplates.Table{
		Columns: []string{"No. Nota", "Waktu", "Pelanggan", "Mekanik", "Total"},
		Empty:   "Belum ada transaksi bulan ini.",
	}
	for _, tx := range overview.Recent {
		table.Rows = append(table.Rows, webtemplates.TableRow{
			Link: routepath.Receipt(tx.ID),
			Cells: []string{
				tx.ReceiptNumber,
				format.DateTime(tx.CreatedAt.In(h.Location())),
				tx.CustomerName,
				tx.MechanicName,
				format.Rupiah(tx.Total),
			},
		})
	}
	return table
}
