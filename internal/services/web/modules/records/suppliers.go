package records

import (
	"context"
	"net/url"
	"strings"
	"time"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

func suppliers(deps module.Dependencies) collection[storage.Supplier] {
	store := deps.Store
	return collection[storage.Supplier]{
		path:     routepath.Suppliers,
		title:    "Pemasok",
		noun:     "Pemasok",
		columns:  []string{"Nama", "Telepon", "Alamat"},
		empty:    "Belum ada pemasok.",
		recordID: func(s storage.Supplier) string { return s.ID },
		setID:    func(s *storage.Supplier, id string) { s.ID = id },
		row: func(s storage.Supplier) []string {
			return []string{s.Name, s.Phone, s.Address}
		},
		list: func(ctx context.Context, _, _ time.Time) ([]storage.Supplier, error) {
			return store.ListSuppliers(ctx)
		},
		get:    store.GetSupplier,
		put:    store.PutSupplier,
		remove: store.DeleteSupplier,
		fields: func(_ context.Context, s storage.Supplier) ([]webtemplates.Field, error) {
			return []webtemplates.Field{
				{Name: "name", Label: "Nama", Value: s.Name, Required: true},
				{Name: "phone", Label: "Telepon", Type: "tel", Value: s.Phone},
				{Name: "address", Label: "Alamat", Type: "textarea", Value: s.Address},
			}, nil
		},
		decode: func(form url.Values, s storage.Supplier) (storage.Supplier, error) {
			name, err := requiredText(form, "name", "Nama")
			if err != nil {
				return s, err
			}
			s.Name = name
			s.Phone = strings.TrimSpace(form.Get("phone"))
			s.Address = strings.TrimSpace(form.Get("address"))
			return s, nil
		},
		blank: func(time.Time) storage.Supplier { return storage.Supplier{} },
	}
}
