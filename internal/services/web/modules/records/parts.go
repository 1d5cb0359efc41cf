package records

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/platform/format"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

func parts(deps module.Dependencies) collection[storage.Part] {
	store := deps.Store
	return collection[storage.Part]{
		path:     routepath.Parts,
		title:    "Barang",
		noun:     "Barang",
		columns:  []string{"SKU", "Nama", "Harga", "Stok"},
		empty:    "Belum ada barang.",
		recordID: func(p storage.Part) string { return p.ID },
		setID:    func(p *storage.Part, id string) { p.ID = id },
		row: func(p storage.Part) []string {
			return []string{p.SKU, p.Name, format.Rupiah(p.UnitPrice), strconv.Itoa(p.Stock)}
		},
		list: func(ctx context.Context, _, _ time.Time) ([]storage.Part, error) {
			return store.ListParts(ctx)
		},
		get:    store.GetPart,
		put:    store.PutPart,
		remove: store.DeletePart,
		fields: func(ctx context.Context, p storage.Part) ([]webtemplates.Field, error) {
			list, err := store.ListSuppliers(ctx)
			if err != nil {
				return nil, fmt.Errorf("list suppliers: %w", err)
			}
			options := []webtemplates.Option{{Value: "", Label: "Tanpa pemasok", Selected: p.SupplierID == ""}}
			for _, s := range list {
				options = append(options, webtemplates.Option{Value: s.ID, Label: s.Name, Selected: s.ID == p.SupplierID})
			}
			return []webtemplates.Field{
				{Name: "sku", Label: "SKU", Value: p.SKU, Required: true},
				{Name: "name", Label: "Nama", Value: p.Name, Required: true},
				{Name: "unit_price", Label: "Harga satuan (Rp)", Value: strconv.FormatInt(p.UnitPrice, 10), Required: true},
				{Name: "stock", Label: "Stok", Type: "number", Value: strconv.Itoa(p.Stock)},
				{Name: "supplier_id", Label: "Pemasok", Type: "select", Options: options},
			}, nil
		},
		decode: func(form url.Values, p storage.Part) (storage.Part, error) {
			var err error
			if p.SKU, err = requiredText(form, "sku", "SKU"); err != nil {
				return p, err
			}
			if p.Name, err = requiredText(form, "name", "Nama"); err != nil {
				return p, err
			}
			if p.UnitPrice, err = rupiahField(form, "unit_price", "Harga satuan"); err != nil {
				return p, err
			}
			if p.Stock, err = countField(form, "stock", "Stok"); err != nil {
				return p, err
			}
			p.SupplierID = strings.TrimSpace(form.Get("supplier_id"))
			return p, nil
		},
		blank: func(time.Time) storage.Part { return storage.Part{} },
	}
}
