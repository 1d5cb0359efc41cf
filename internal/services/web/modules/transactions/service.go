package transactions

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/format"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

// lineSlots is the number of item lines the sale form offers.
const lineSlots = 5

// Store is the persistence surface the transactions module needs.
type Store interface {
	ListMechanics(ctx context.Context) ([]storage.Mechanic, error)
	ListParts(ctx context.Context) ([]storage.Part, error)
	ListServices(ctx context.Context) ([]storage.Service, error)
	storage.TransactionStore
}

type service struct {
	store Store
}

func newService(store Store) service {
	return service{store: store}
}

// saleForm is the submitted point-of-sale form.
type saleForm struct {
	Customer   string
	Plate      string
	MechanicID string
	Rating     string
	Paid       string
	Lines      []webtemplates.LineView
}

func readSaleForm(form url.Values) saleForm {
	sale := saleForm{
		Customer:   strings.TrimSpace(form.Get("customer_name")),
		Plate:      strings.TrimSpace(form.Get("vehicle_plate")),
		MechanicID: strings.TrimSpace(form.Get("mechanic_id")),
		Rating:     strings.TrimSpace(form.Get("rating")),
		Paid:       strings.TrimSpace(form.Get("paid")),
	}
	items := form["item"]
	qtys := form["qty"]
	for idx, item := range items {
		line := webtemplates.LineView{Item: strings.TrimSpace(item)}
		if idx < len(qtys) {
			line.Qty = strings.TrimSpace(qtys[idx])
		}
		sale.Lines = append(sale.Lines, line)
	}
	return sale
}

func invalid(message string) error {
	return apperrors.E(apperrors.KindInvalidInput, message)
}

// request validates the form into a store request without ids or clock.
func (f saleForm) request() (storage.NewTransaction, error) {
	in := storage.NewTransaction{
		CustomerName: f.Customer,
		VehiclePlate: f.Plate,
		MechanicID:   f.MechanicID,
	}
	for idx, line := range f.Lines {
		if line.Item == "" {
			continue
		}
		kind, ref, ok := strings.Cut(line.Item, ":")
		if !ok || ref == "" || (storage.ItemKind(kind) != storage.ItemPart && storage.ItemKind(kind) != storage.ItemService) {
			return in, invalid(fmt.Sprintf("Item baris %d tidak dikenal.", idx+1))
		}
		qty := 1
		if line.Qty != "" {
			n, err := strconv.Atoi(line.Qty)
			if err != nil || n <= 0 {
				return in, invalid(fmt.Sprintf("Jumlah baris %d harus bilangan bulat positif.", idx+1))
			}
			if n > storage.MaxItemQty {
				return in, invalid(fmt.Sprintf("Jumlah baris %d paling banyak %s.", idx+1, format.Number(storage.MaxItemQty)))
			}
			qty = n
		}
		in.Items = append(in.Items, storage.ItemRequest{Kind: storage.ItemKind(kind), RefID: ref, Qty: qty})
	}
	if len(in.Items) == 0 {
		return in, invalid("Pilih minimal satu barang atau jasa.")
	}
	if f.Rating != "" {
		rating, err := strconv.Atoi(f.Rating)
		if err != nil || rating < 1 || rating > 5 {
			return in, invalid("Rating harus antara 1 dan 5.")
		}
		in.Rating = &rating
	}
	paid, err := format.ParseRupiah(f.Paid)
	if err != nil {
		return in, invalid("Jumlah dibayar harus berupa angka rupiah.")
	}
	in.Paid = paid
	return in, nil
}

// formOptions loads the selectable mechanics and catalogue items.
func (s service) formOptions(ctx context.Context, mechanicID string) ([]webtemplates.Option, []webtemplates.Option, error) {
	mechanics, err := s.store.ListMechanics(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list mechanics: %w", err)
	}
	parts, err := s.store.ListParts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list parts: %w", err)
	}
	services, err := s.store.ListServices(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list services: %w", err)
	}

	mechanicOptions := []webtemplates.Option{{Value: "", Label: "Tanpa mekanik", Selected: mechanicID == ""}}
	for _, m := range mechanics {
		if !m.Active && m.ID != mechanicID {
			continue
		}
		mechanicOptions = append(mechanicOptions, webtemplates.Option{Value: m.ID, Label: m.Name, Selected: m.ID == mechanicID})
	}

	catalogue := []webtemplates.Option{{Value: "", Label: "-"}}
	for _, sv := range services {
		catalogue = append(catalogue, webtemplates.Option{
			Value: string(storage.ItemService) + ":" + sv.ID,
			Label: "Jasa: " + sv.Name + " (" + format.Rupiah(sv.Price) + ")",
		})
	}
	for _, p := range parts {
		catalogue = append(catalogue, webtemplates.Option{
			Value: string(storage.ItemPart) + ":" + p.ID,
			Label: "Barang: " + p.Name + " (" + format.Rupiah(p.UnitPrice) + ", stok " + strconv.Itoa(p.Stock) + ")",
		})
	}
	return mechanicOptions, catalogue, nil
}

func (s service) create(ctx context.Context, in storage.NewTransaction) (storage.Transaction, error) {
	return s.store.CreateTransaction(ctx, in)
}

func (s service) receipt(ctx context.Context, id string) (storage.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s service) list(ctx context.Context, from, to time.Time) ([]storage.Transaction, error) {
	list, err := s.store.ListTransactions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return list, nil
}
