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

func mechanics(deps module.Dependencies) collection[storage.Mechanic] {
	store := deps.Store
	return collection[storage.Mechanic]{
		path:     routepath.Mechanics,
		title:    "Mekanik",
		noun:     "Mekanik",
		columns:  []string{"Nama", "Telepon", "Status"},
		empty:    "Belum ada mekanik.",
		recordID: func(m storage.Mechanic) string { return m.ID },
		setID:    func(m *storage.Mechanic, id string) { m.ID = id },
		row: func(m storage.Mechanic) []string {
			status := "Nonaktif"
			if m.Active {
				status = "Aktif"
			}
			return []string{m.Name, m.Phone, status}
		},
		list: func(ctx context.Context, _, _ time.Time) ([]storage.Mechanic, error) {
			return store.ListMechanics(ctx)
		},
		get:    store.GetMechanic,
		put:    store.PutMechanic,
		remove: store.DeleteMechanic,
		fields: func(_ context.Context, m storage.Mechanic) ([]webtemplates.Field, error) {
			return []webtemplates.Field{
				{Name: "name", Label: "Nama", Value: m.Name, Required: true},
				{Name: "phone", Label: "Telepon", Type: "tel", Value: m.Phone},
				{Name: "active", Label: "Aktif", Type: "checkbox", Value: checkbox(m.Active)},
			}, nil
		},
		decode: func(form url.Values, m storage.Mechanic) (storage.Mechanic, error) {
			name, err := requiredText(form, "name", "Nama")
			if err != nil {
				return m, err
			}
			m.Name = name
			m.Phone = strings.TrimSpace(form.Get("phone"))
			m.Active = form.Get("active") == "1"
			return m, nil
		},
		blank: func(time.Time) storage.Mechanic { return storage.Mechanic{Active: true} },
	}
}
