package records

import (
	"context"
	"net/url"
	"strconv"
	"time"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/platform/format"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

func services(deps module.Dependencies) collection[storage.Service] {
	store := deps.Store
	return collection[storage.Service]{
		path:     routepath.Services,
		title:    "Jasa",
		noun:     "Jasa",
		columns:  []string{"Nama", "Harga"},
		empty:    "Belum ada jasa.",
		recordID: func(s storage.Service) string { return s.ID },
		setID:    func(s *storage.Service, id string) { s.ID = id },
		row: func(s storage.Service) []string {
			return []string{s.Name, format.Rupiah(s.Price)}
		},
		list: func(ctx context.Context, _, _ time.Time) ([]storage.Service, error) {
			return store.ListServices(ctx)
		},
		get:    store.GetService,
		put:    store.PutService,
		remove: store.DeleteService,
		fields: func(_ context.Context, s storage.Service) ([]webtemplates.Field, error) {
			return []webtemplates.Field{
				{Name: "name", Label: "Nama", Value: s.Name, Required: true},
				{Name: "price", Label: "Harga (Rp)", Value: strconv.FormatInt(s.Price, 10), Required: true},
			}, nil
		},
		decode: func(form url.Values, s storage.Service) (storage.Service, error) {
			var err error
			if s.Name, err = requiredText(form, "name", "Nama"); err != nil {
				return s, err
			}
			if s.Price, err = rupiahField(form, "price", "Harga"); err != nil {
				return s, err
			}
			return s, nil
		},
		blank: func(time.Time) storage.Service { return storage.Service{} },
	}
}
