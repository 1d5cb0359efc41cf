package records

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/platform/flash"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
	"github.com/louisbranch/bengkel/internal/services/web/storage/sqlite"
	"github.com/louisbranch/bengkel/internal/services/web/webtest"
)

type mountable interface {
	ID() string
	Mount(module.Dependencies) (module.Mount, error)
}

func mount(t *testing.T, m mountable, store storage.Store) module.Mount {
	t.Helper()
	mounted, err := m.Mount(module.Dependencies{Store: store, Now: webtest.Now})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mounted
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, webtest.SignedIn(r))
	return rr
}

func get(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func post(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func openSeededStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := webtest.OpenStore(t)
	ctx := context.Background()
	if err := store.PutSupplier(ctx, storage.Supplier{ID: "sup-1", Name: "Astra Otoparts"}); err != nil {
		t.Fatalf("PutSupplier() error = %v", err)
	}
	if err := store.PutSupplier(ctx, storage.Supplier{ID: "sup-2", Name: "Toko Jaya"}); err != nil {
		t.Fatalf("PutSupplier() error = %v", err)
	}
	if err := store.PutPart(ctx, storage.Part{ID: "p-1", SKU: "OLI-10W40", Name: "Oli 10W-40", UnitPrice: 65_000, Stock: 12, SupplierID: "sup-1"}); err != nil {
		t.Fatalf("PutPart() error = %v", err)
	}
	return store
}

func TestModuleIDsAndPrefixes(t *testing.T) {
	t.Parallel()

	store := webtest.OpenStore(t)
	tests := []struct {
		module mountable
		id     string
		prefix string
	}{
		{module: NewMechanics(), id: "records.mechanics", prefix: "/mechanics/"},
		{module: NewParts(), id: "records.parts", prefix: "/parts/"},
		{module: NewServices(), id: "records.services", prefix: "/services/"},
		{module: NewSuppliers(), id: "records.suppliers", prefix: "/suppliers/"},
		{module: NewExpenses(), id: "records.expenses", prefix: "/expenses/"},
	}
	for _, tc := range tests {
		if got := tc.module.ID(); got != tc.id {
			t.Fatalf("ID() = %q, want %q", got, tc.id)
		}
		if got := mount(t, tc.module, store).Prefix; got != tc.prefix {
			t.Fatalf("%s prefix = %q, want %q", tc.id, got, tc.prefix)
		}
	}
}

func TestMountRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := NewParts().Mount(module.Dependencies{}); err == nil {
		t.Fatalf("Mount() error = nil, want store error")
	}
}

func TestListRendersRecordsAndCreateForm(t *testing.T) {
	t.Parallel()

	h := mount(t, NewParts(), openSeededStore(t)).Handler
	rr := serve(h, get("/parts"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"OLI-10W40", "Rp 65.000", `href="/parts/p-1"`, `name="supplier_id"`, "Astra Otoparts"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestCreateStoresRecordAndRedirectsWithNotice(t *testing.T) {
	t.Parallel()

	store := openSeededStore(t)
	h := mount(t, NewParts(), store).Handler
	rr := serve(h, post("/parts", url.Values{
		"sku":         {"kampas-01"},
		"name":        {"Kampas rem"},
		"unit_price":  {"Rp 45.000"},
		"stock":       {"8"},
		"supplier_id": {"sup-2"},
	}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/parts" {
		t.Fatalf("Location = %q, want %q", got, "/parts")
	}
	if !strings.Contains(rr.Header().Get("Set-Cookie"), flash.CookieName+"=") {
		t.Fatalf("Set-Cookie = %q, want flash notice", rr.Header().Get("Set-Cookie"))
	}

	list, err := store.ListParts(context.Background())
	if err != nil {
		t.Fatalf("ListParts() error = %v", err)
	}
	var created *storage.Part
	for i := range list {
		if list[i].SKU == "KAMPAS-01" {
			created = &list[i]
		}
	}
	if created == nil {
		t.Fatalf("created part not found in %+v", list)
	}
	if created.UnitPrice != 45_000 || created.Stock != 8 || created.SupplierID != "sup-2" {
		t.Fatalf("created = %+v", *created)
	}
	if len(created.ID) != 26 {
		t.Fatalf("ID = %q, want generated id", created.ID)
	}
}

func TestCreateInvalidInputRerendersForm(t *testing.T) {
	t.Parallel()

	h := mount(t, NewParts(), openSeededStore(t)).Handler
	rr := serve(h, post("/parts", url.Values{"sku": {"X-1"}, "name": {"Busi"}, "unit_price": {"12,5"}}))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Harga satuan harus berupa angka rupiah") {
		t.Fatalf("body missing price error")
	}
	if !strings.Contains(body, `value="Busi"`) {
		t.Fatalf("body did not keep submitted name")
	}
}

func TestCreateDuplicateSKUIsConflict(t *testing.T) {
	t.Parallel()

	h := mount(t, NewParts(), openSeededStore(t)).Handler
	rr := serve(h, post("/parts", url.Values{"sku": {"oli-10w40"}, "name": {"Oli lain"}, "unit_price": {"1000"}}))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	if !strings.Contains(rr.Body.String(), "Data bentrok") {
		t.Fatalf("body missing conflict message")
	}
}

func TestEditAndUpdate(t *testing.T) {
	t.Parallel()

	store := openSeededStore(t)
	h := mount(t, NewParts(), store).Handler

	rr := serve(h, get("/parts/p-1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("edit status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `action="/parts/p-1/delete"`) {
		t.Fatalf("edit page missing delete action")
	}

	rr = serve(h, post("/parts/p-1", url.Values{"sku": {"OLI-10W40"}, "name": {"Oli 10W-40 1L"}, "unit_price": {"70000"}, "stock": {"20"}}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("update status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	part, err := store.GetPart(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetPart() error = %v", err)
	}
	if part.Name != "Oli 10W-40 1L" || part.UnitPrice != 70_000 || part.Stock != 20 || part.SupplierID != "" {
		t.Fatalf("part = %+v", part)
	}
}

func TestEditUnknownRecordIsNotFound(t *testing.T) {
	t.Parallel()

	h := mount(t, NewParts(), openSeededStore(t)).Handler
	for _, req := range []*http.Request{
		get("/parts/missing"),
		post("/parts/missing", url.Values{"name": {"x"}}),
		post("/parts/missing/delete", nil),
	} {
		if rr := serve(h, req); rr.Code != http.StatusNotFound {
			t.Fatalf("%s %s status = %d, want %d", req.Method, req.URL.Path, rr.Code, http.StatusNotFound)
		}
	}
}

func TestDeleteReferencedSupplierRedirectsWithError(t *testing.T) {
	t.Parallel()

	store := openSeededStore(t)
	h := mount(t, NewSuppliers(), store).Handler

	rr := serve(h, post("/suppliers/sup-1/delete", nil))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/suppliers/sup-1" {
		t.Fatalf("Location = %q, want %q", got, "/suppliers/sup-1")
	}
	if _, err := store.GetSupplier(context.Background(), "sup-1"); err != nil {
		t.Fatalf("referenced supplier was deleted: %v", err)
	}

	rr = serve(h, post("/suppliers/sup-2/delete", nil))
	if got := rr.Header().Get("Location"); got != "/suppliers" {
		t.Fatalf("Location = %q, want %q", got, "/suppliers")
	}
	if _, err := store.GetSupplier(context.Background(), "sup-2"); err == nil {
		t.Fatalf("supplier sup-2 still exists")
	}
}

func TestMechanicCheckboxUnchecked(t *testing.T) {
	t.Parallel()

	store := webtest.OpenStore(t)
	if err := store.PutMechanic(context.Background(), storage.Mechanic{ID: "m-1", Name: "Andi", Active: true}); err != nil {
		t.Fatalf("PutMechanic() error = %v", err)
	}
	h := mount(t, NewMechanics(), store).Handler
	rr := serve(h, post("/mechanics/m-1", url.Values{"name": {"Andi"}}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	m, err := store.GetMechanic(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("GetMechanic() error = %v", err)
	}
	if m.Active {
		t.Fatalf("Active = true, want false")
	}
}

func TestExpensesListFiltersByMonthAndTotals(t *testing.T) {
	t.Parallel()

	store := webtest.OpenStore(t)
	ctx := context.Background()
	for _, e := range []storage.Expense{
		{ID: "e-1", Category: "Listrik", Amount: 400_000, SpentAt: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "e-2", Category: "Air", Amount: 100_000, SpentAt: time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "e-3", Category: "Sewa", Amount: 3_000_000, SpentAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
	} {
		if err := store.PutExpense(ctx, e); err != nil {
			t.Fatalf("PutExpense() error = %v", err)
		}
	}
	h := mount(t, NewExpenses(), store).Handler

	rr := serve(h, get("/expenses"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Total pengeluaran: Rp 500.000") {
		t.Fatalf("body missing March total")
	}
	if strings.Contains(body, "Sewa") {
		t.Fatalf("March list includes February expense")
	}
	if !strings.Contains(body, `value="2026-03-10"`) {
		t.Fatalf("create form does not default to today")
	}

	rr = serve(h, get("/expenses?month=2026-02"))
	if !strings.Contains(rr.Body.String(), "Total pengeluaran: Rp 3.000.000") {
		t.Fatalf("body missing February total")
	}

	if rr := serve(h, get("/expenses?month=bad")); rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateExpenseParsesDate(t *testing.T) {
	t.Parallel()

	store := webtest.OpenStore(t)
	h := mount(t, NewExpenses(), store).Handler
	rr := serve(h, post("/expenses", url.Values{"spent_at": {"2026-03-04"}, "category": {"Bensin"}, "amount": {"50.000"}}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	list, err := store.ListExpenses(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(list) != 1 || list[0].Amount != 50_000 || list[0].SpentAt.Day() != 4 {
		t.Fatalf("expenses = %+v", list)
	}

	rr = serve(h, post("/expenses", url.Values{"spent_at": {"04/03/2026"}, "category": {"Bensin"}, "amount": {"1"}}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestUnknownSubpathIsNotFound(t *testing.T) {
	t.Parallel()

	h := mount(t, NewServices(), webtest.OpenStore(t)).Handler
	if rr := serve(h, get("/services/a/b")); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
