package records

import (
	"context"
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

func expenses(deps module.Dependencies) collection[storage.Expense] {
	store := deps.Store
	loc := deps.Zone()
	return collection[storage.Expense]{
		path:     routepath.Expenses,
		title:    "Pengeluaran",
		noun:     "Pengeluaran",
		columns:  []string{"Tanggal", "Kategori", "Keterangan", "Jumlah"},
		empty:    "Belum ada pengeluaran bulan ini.",
		monthly:  true,
		recordID: func(e storage.Expense) string { return e.ID },
		setID:    func(e *storage.Expense, id string) { e.ID = id },
		row: func(e storage.Expense) []string {
			return []string{format.Date(e.SpentAt.In(loc)), e.Category, e.Description, format.Rupiah(e.Amount)}
		},
		summary: func(list []storage.Expense) string {
			var total int64
			for _, e := range list {
				total += e.Amount
			}
			return "Total pengeluaran: " + format.Rupiah(total)
		},
		list:   store.ListExpenses,
		get:    store.GetExpense,
		put:    store.PutExpense,
		remove: store.DeleteExpense,
		fields: func(_ context.Context, e storage.Expense) ([]webtemplates.Field, error) {
			spentAt := ""
			if !e.SpentAt.IsZero() {
				spentAt = e.SpentAt.In(loc).Format("2006-01-02")
			}
			return []webtemplates.Field{
				{Name: "spent_at", Label: "Tanggal", Type: "date", Value: spentAt, Required: true},
				{Name: "category", Label: "Kategori", Value: e.Category, Required: true},
				{Name: "description", Label: "Keterangan", Type: "textarea", Value: e.Description},
				{Name: "amount", Label: "Jumlah (Rp)", Value: strconv.FormatInt(e.Amount, 10), Required: true},
			}, nil
		},
		decode: func(form url.Values, e storage.Expense) (storage.Expense, error) {
			var err error
			if e.Category, err = requiredText(form, "category", "Kategori"); err != nil {
				return e, err
			}
			if e.Amount, err = rupiahField(form, "amount", "Jumlah"); err != nil {
				return e, err
			}
			spentAt, err := format.ParseDate(form.Get("spent_at"), loc)
			if err != nil {
				return e, invalid("Tanggal tidak valid.")
			}
			e.SpentAt = spentAt
			e.Description = strings.TrimSpace(form.Get("description"))
			return e, nil
		},
		blank: func(now time.Time) storage.Expense {
			day := now.In(loc)
			return storage.Expense{SpentAt: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)}
		},
	}
}
