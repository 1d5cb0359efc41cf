package transactions

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/louisbranch/bengkel/internal/platform/id"
	module "github.com/louisbranch/bengkel/internal/services/web/module"
	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/flash"
	"github.com/louisbranch/bengkel/internal/services/web/platform/format"
	"github.com/louisbranch/bengkel/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

// createAttempts bounds how often a sale is retried with fresh ids after a
// receipt number collision.
const createAttempts = 2

type handlers struct {
	modulehandler.Base
	service          service
	newID            func() (string, error)
	newReceiptNumber func(time.Time) (string, error)
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{
		Base:             modulehandler.NewBase(deps),
		service:          s,
		newID:            id.NewID,
		newReceiptNumber: id.NewReceiptNumber,
	}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	month, err := h.RequestMonth(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	list, err := h.service.list(r.Context(), month.From, month.To)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	table := webtemplates.Table{
		Columns: []string{"No. Nota", "Waktu", "Pelanggan", "Nomor polisi", "Mekanik", "Total"},
		Empty:   "Belum ada transaksi bulan ini.",
	}
	var total int64
	for _, tx := range list {
		total += tx.Total
		table.Rows = append(table.Rows, webtemplates.TableRow{
			Link: routepath.Receipt(tx.ID),
			Cells: []string{
				tx.ReceiptNumber,
				format.DateTime(tx.CreatedAt.In(h.Location())),
				tx.CustomerName,
				tx.VehiclePlate,
				tx.MechanicName,
				format.Rupiah(tx.Total),
			},
		})
	}
	h.WritePage(w, r, "Transaksi", http.StatusOK, webtemplates.TransactionListPage(webtemplates.TransactionListView{
		Filter:  month.Filter(routepath.Transactions),
		Summary: strconv.Itoa(len(list)) + " transaksi, total " + format.Rupiah(total),
		Table:   table,
	}))
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, saleForm{}, "")
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := h.ParseForm(r); err != nil {
		h.WriteError(w, r, err)
		return
	}
	sale := readSaleForm(r.PostForm)
	in, err := sale.request()
	if err != nil {
		h.renderForm(w, r, apperrors.HTTPStatus(err), sale, apperrors.PublicMessage(err))
		return
	}

	now := h.Now()
	in.CashierID = h.RequestUserID(r)
	in.CreatedAt = now

	var tx storage.Transaction
	for attempt := 0; attempt < createAttempts; attempt++ {
		if in.ID, err = h.newID(); err != nil {
			h.WriteError(w, r, err)
			return
		}
		if in.ReceiptNumber, err = h.newReceiptNumber(now); err != nil {
			h.WriteError(w, r, err)
			return
		}
		tx, err = h.service.create(r.Context(), in)
		if !errors.Is(err, storage.ErrConflict) {
			break
		}
	}
	if err != nil {
		if status, message, ok := saleError(err); ok {
			h.renderForm(w, r, status, sale, message)
			return
		}
		h.WriteError(w, r, fmt.Errorf("create transaction: %w", err))
		return
	}
	h.RedirectWithNotice(w, r, routepath.Receipt(tx.ID), flash.Success("Transaksi "+tx.ReceiptNumber+" tersimpan."))
}

func (h handlers) handleReceipt(w http.ResponseWriter, r *http.Request) {
	tx, err := h.service.receipt(r.Context(), r.PathValue("id"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	view := webtemplates.ReceiptView{
		Number:   tx.ReceiptNumber,
		Date:     format.DateTime(tx.CreatedAt.In(h.Location())),
		Customer: tx.CustomerName,
		Plate:    tx.VehiclePlate,
		Mechanic: tx.MechanicName,
		Total:    format.Rupiah(tx.Total),
		Paid:     format.Rupiah(tx.Paid),
		Change:   format.Rupiah(tx.Change),
	}
	if tx.Rating != nil {
		view.Rating = strconv.Itoa(*tx.Rating) + "/5"
	}
	for _, item := range tx.Items {
		view.Lines = append(view.Lines, webtemplates.ReceiptLine{
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: format.Rupiah(item.UnitPrice),
			Subtotal:  format.Rupiah(item.Subtotal),
		})
	}
	h.WritePage(w, r, "Nota "+tx.ReceiptNumber, http.StatusOK, webtemplates.ReceiptPage(view))
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, sale saleForm, formErr string) {
	mechanics, catalogue, err := h.service.formOptions(r.Context(), sale.MechanicID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	lines := append([]webtemplates.LineView(nil), sale.Lines...)
	for len(lines) < lineSlots {
		lines = append(lines, webtemplates.LineView{Qty: "1"})
	}
	h.WritePage(w, r, "Transaksi baru", status, webtemplates.NewTransactionPage(webtemplates.NewTransactionView{
		Error:     formErr,
		Customer:  sale.Customer,
		Plate:     sale.Plate,
		Paid:      sale.Paid,
		Rating:    sale.Rating,
		Mechanics: mechanics,
		Catalogue: catalogue,
		Lines:     lines,
	}))
}

// saleError maps store rejections the cashier can fix to a form status and
// message.
func saleError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, storage.ErrInsufficientStock):
		return http.StatusConflict, "Stok barang tidak mencukupi.", true
	case errors.Is(err, storage.ErrAmountTooLarge):
		return http.StatusBadRequest, "Total transaksi terlalu besar.", true
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict, "Nomor nota bentrok dengan transaksi lain. Silakan simpan ulang.", true
	case errors.Is(err, storage.ErrInsufficientPayment):
		return http.StatusBadRequest, "Jumlah dibayar kurang dari total.", true
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusBadRequest, "Item atau mekanik yang dipilih sudah tidak ada.", true
	case apperrors.KindOf(err) == apperrors.KindInvalidInput:
		return http.StatusBadRequest, apperrors.PublicMessage(err), true
	default:
		return 0, "", false
	}
}
