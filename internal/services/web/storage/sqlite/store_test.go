package sqlite

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "bengkel.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func intPtr(v int) *int { return &v }

// seedCatalogue stores one mechanic, one supplier, two parts and one service.
func seedCatalogue(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	if err := store.PutMechanic(ctx, storage.Mechanic{ID: "mech-1", Name: "Agus", Active: true, CreatedAt: created}); err != nil {
		t.Fatalf("put mechanic: %v", err)
	}
	if err := store.PutSupplier(ctx, storage.Supplier{ID: "sup-1", Name: "Sumber Jaya", CreatedAt: created}); err != nil {
		t.Fatalf("put supplier: %v", err)
	}
	if err := store.PutPart(ctx, storage.Part{ID: "part-oil", SKU: "oli-1", Name: "Oli Mesin", UnitPrice: 55000, Stock: 10, SupplierID: "sup-1", CreatedAt: created}); err != nil {
		t.Fatalf("put part: %v", err)
	}
	if err := store.PutPart(ctx, storage.Part{ID: "part-plug", SKU: "bus-1", Name: "Busi", UnitPrice: 25000, Stock: 1, CreatedAt: created}); err != nil {
		t.Fatalf("put part: %v", err)
	}
	if err := store.PutService(ctx, storage.Service{ID: "svc-tuneup", Name: "Servis Ringan", Price: 75000, CreatedAt: created}); err != nil {
		t.Fatalf("put service: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestStoreNilSafe(t *testing.T) {
	var store *Store
	if store.DB() != nil {
		t.Fatal("expected nil DB for nil store")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
	if _, err := store.ListParts(context.Background()); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bengkel.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.PutService(context.Background(), storage.Service{ID: "svc-1", Name: "Cuci", Price: 20000}); err != nil {
		t.Fatalf("put service: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if _, err := second.GetService(context.Background(), "svc-1"); err != nil {
		t.Fatalf("get service after reopen: %v", err)
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	input := storage.User{
		ID:           "user-1",
		Username:     " Budi ",
		DisplayName:  "Budi Santoso",
		Role:         storage.RoleOwner,
		PasswordHash: "hash",
		CreatedAt:    time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.PutUser(ctx, input); err != nil {
		t.Fatalf("put user: %v", err)
	}

	got, err := store.GetUserByUsername(ctx, "BUDI")
	if err != nil {
		t.Fatalf("get user by username: %v", err)
	}
	if got.ID != "user-1" || got.Username != "budi" || got.DisplayName != "Budi Santoso" || got.Disabled {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !got.UpdatedAt.Equal(input.CreatedAt) {
		t.Fatalf("updated at = %v, want %v", got.UpdatedAt, input.CreatedAt)
	}

	byID, err := store.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if byID.Username != "budi" {
		t.Fatalf("username = %q, want %q", byID.Username, "budi")
	}
}

func TestPutUserValidation(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	for _, u := range []storage.User{
		{Username: "a", Role: storage.RoleOwner, PasswordHash: "h"},
		{ID: "u", Role: storage.RoleOwner, PasswordHash: "h"},
		{ID: "u", Username: "a", Role: "admin", PasswordHash: "h"},
		{ID: "u", Username: "a", Role: storage.RoleCashier},
	} {
		if err := store.PutUser(ctx, u); err == nil {
			t.Fatalf("expected error for %+v", u)
		}
	}
}

func TestPutUserDuplicateUsernameConflicts(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	if err := store.PutUser(ctx, storage.User{ID: "u1", Username: "sari", Role: storage.RoleCashier, PasswordHash: "h"}); err != nil {
		t.Fatalf("put user: %v", err)
	}
	err := store.PutUser(ctx, storage.User{ID: "u2", Username: "sari", Role: storage.RoleCashier, PasswordHash: "h"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := openTempStore(t)

	_, err := store.GetUser(context.Background(), "missing")
	if err != storage.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMasterDataCRUD(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedCatalogue(t, store)

	parts, err := store.ListParts(ctx)
	if err != nil {
		t.Fatalf("list parts: %v", err)
	}
	if len(parts) != 2 || parts[0].Name != "Busi" || parts[1].SKU != "OLI-1" {
		t.Fatalf("unexpected parts: %+v", parts)
	}
	if parts[1].SupplierID != "sup-1" || parts[0].SupplierID != "" {
		t.Fatalf("unexpected supplier ids: %+v", parts)
	}

	oil := parts[1]
	oil.UnitPrice = 60000
	if err := store.PutPart(ctx, oil); err != nil {
		t.Fatalf("update part: %v", err)
	}
	got, err := store.GetPart(ctx, "part-oil")
	if err != nil {
		t.Fatalf("get part: %v", err)
	}
	if got.UnitPrice != 60000 {
		t.Fatalf("unit price = %d, want %d", got.UnitPrice, 60000)
	}

	if err := store.DeletePart(ctx, "part-plug"); err != nil {
		t.Fatalf("delete part: %v", err)
	}
	if _, err := store.GetPart(ctx, "part-plug"); err != storage.ErrNotFound {
		t.Fatalf("get deleted part err = %v, want ErrNotFound", err)
	}
	if err := store.DeletePart(ctx, "part-plug"); err != storage.ErrNotFound {
		t.Fatalf("delete missing part err = %v, want ErrNotFound", err)
	}

	mechanics, err := store.ListMechanics(ctx)
	if err != nil || len(mechanics) != 1 || !mechanics[0].Active {
		t.Fatalf("list mechanics = %+v, %v", mechanics, err)
	}
	services, err := store.ListServices(ctx)
	if err != nil || len(services) != 1 || services[0].Price != 75000 {
		t.Fatalf("list services = %+v, %v", services, err)
	}
	suppliers, err := store.ListSuppliers(ctx)
	if err != nil || len(suppliers) != 1 {
		t.Fatalf("list suppliers = %+v, %v", suppliers, err)
	}
}

func TestPartDuplicateSKUConflicts(t *testing.T) {
	store := openTempStore(t)
	seedCatalogue(t, store)

	err := store.PutPart(context.Background(), storage.Part{ID: "part-new", SKU: "OLI-1", Name: "Oli Lain", UnitPrice: 1})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestDeleteReferencedSupplierConflicts(t *testing.T) {
	store := openTempStore(t)
	seedCatalogue(t, store)

	err := store.DeleteSupplier(context.Background(), "sup-1")
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestPartUnknownSupplierConflicts(t *testing.T) {
	store := openTempStore(t)

	err := store.PutPart(context.Background(), storage.Part{ID: "p", SKU: "X", Name: "X", SupplierID: "ghost"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestExpensesRange(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	for _, e := range []storage.Expense{
		{ID: "e1", Category: "Listrik", Amount: 300000, SpentAt: jan},
		{ID: "e2", Category: "Gaji", Amount: 2000000, SpentAt: feb},
	} {
		if err := store.PutExpense(ctx, e); err != nil {
			t.Fatalf("put expense: %v", err)
		}
	}

	febOnly, err := store.ListExpenses(ctx, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(febOnly) != 1 || febOnly[0].ID != "e2" {
		t.Fatalf("unexpected expenses: %+v", febOnly)
	}

	all, err := store.ListExpenses(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("list all expenses: %v", err)
	}
	if len(all) != 2 || all[0].ID != "e2" {
		t.Fatalf("unexpected expenses: %+v", all)
	}

	if err := store.PutExpense(ctx, storage.Expense{ID: "e3", Category: "X"}); err == nil {
		t.Fatal("expected error for missing expense date")
	}
}

func TestCreateTransactionDecrementsStock(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedCatalogue(t, store)

	created := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	txn, err := store.CreateTransaction(ctx, storage.NewTransaction{
		ID:            "txn-1",
		ReceiptNumber: "INV-20260310-ABC234",
		CustomerName:  "Rina",
		VehiclePlate:  "b 1234 xy",
		MechanicID:    "mech-1",
		Rating:        intPtr(5),
		Paid:          200000,
		CreatedAt:     created,
		Items: []storage.ItemRequest{
			{Kind: storage.ItemPart, RefID: "part-oil", Qty: 2},
			{Kind: storage.ItemService, RefID: "svc-tuneup", Qty: 1},
		},
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if txn.Total != 185000 || txn.Change != 15000 {
		t.Fatalf("total/change = %d/%d, want 185000/15000", txn.Total, txn.Change)
	}
	if txn.MechanicName != "Agus" || txn.VehiclePlate != "B 1234 XY" {
		t.Fatalf("unexpected transaction: %+v", txn)
	}

	oil, err := store.GetPart(ctx, "part-oil")
	if err != nil {
		t.Fatalf("get part: %v", err)
	}
	if oil.Stock != 8 {
		t.Fatalf("stock = %d, want %d", oil.Stock, 8)
	}

	got, err := store.GetTransaction(ctx, "txn-1")
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if len(got.Items) != 2 || got.Items[0].Name != "Oli Mesin" || got.Items[0].Subtotal != 110000 || got.Items[1].Kind != storage.ItemService {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if got.Rating == nil || *got.Rating != 5 {
		t.Fatalf("rating = %v, want 5", got.Rating)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, created)
	}

	list, err := store.ListTransactions(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(list) != 1 || list[0].Items != nil {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestCreateTransactionInsufficientStockRollsBack(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedCatalogue(t, store)

	_, err := store.CreateTransaction(ctx, storage.NewTransaction{
		ID:            "txn-1",
		ReceiptNumber: "INV-1",
		Paid:          1000000,
		Items: []storage.ItemRequest{
			{Kind: storage.ItemPart, RefID: "part-oil", Qty: 1},
			{Kind: storage.ItemPart, RefID: "part-plug", Qty: 2},
		},
	})
	if !errors.Is(err, storage.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	oil, err := store.GetPart(ctx, "part-oil")
	if err != nil {
		t.Fatalf("get part: %v", err)
	}
	if oil.Stock != 10 {
		t.Fatalf("stock = %d, want %d after rollback", oil.Stock, 10)
	}
	if _, err := store.GetTransaction(ctx, "txn-1"); err != storage.ErrNotFound {
		t.Fatalf("get transaction err = %v, want ErrNotFound", err)
	}
}

func TestCreateTransactionErrors(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedCatalogue(t, store)

	base := func() storage.NewTransaction {
		return storage.NewTransaction{
			ID:            "txn-x",
			ReceiptNumber: "INV-X",
			Paid:          100000,
			Items:         []storage.ItemRequest{{Kind: storage.ItemService, RefID: "svc-tuneup", Qty: 1}},
		}
	}

	underpaid := base()
	underpaid.Paid = 1000
	if _, err := store.CreateTransaction(ctx, underpaid); !errors.Is(err, storage.ErrInsufficientPayment) {
		t.Fatalf("underpaid err = %v, want ErrInsufficientPayment", err)
	}

	unknownItem := base()
	unknownItem.Items = []storage.ItemRequest{{Kind: storage.ItemPart, RefID: "ghost", Qty: 1}}
	if _, err := store.CreateTransaction(ctx, unknownItem); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown item err = %v, want ErrNotFound", err)
	}

	unknownMechanic := base()
	unknownMechanic.MechanicID = "ghost"
	if _, err := store.CreateTransaction(ctx, unknownMechanic); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown mechanic err = %v, want ErrNotFound", err)
	}

	badRating := base()
	badRating.Rating = intPtr(6)
	if _, err := store.CreateTransaction(ctx, badRating); err == nil {
		t.Fatal("expected error for rating out of range")
	}

	empty := base()
	empty.Items = nil
	if _, err := store.CreateTransaction(ctx, empty); err == nil {
		t.Fatal("expected error for empty transaction")
	}

	if _, err := store.CreateTransaction(ctx, base()); err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	dup := base()
	dup.ID = "txn-y"
	if _, err := store.CreateTransaction(ctx, dup); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("duplicate receipt err = %v, want ErrConflict", err)
	}
}

func TestCreateTransactionRejectsOversizedAmounts(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedCatalogue(t, store)
	if err := store.PutService(ctx, storage.Service{ID: "svc-restore", Name: "Restorasi total", Price: math.MaxInt64 / 2}); err != nil {
		t.Fatalf("put service: %v", err)
	}

	tests := []struct {
		name  string
		items []storage.ItemRequest
		want  error
	}{
		{
			name:  "quantity above limit",
			items: []storage.ItemRequest{{Kind: storage.ItemService, RefID: "svc-tuneup", Qty: 46116860184274}},
		},
		{
			name:  "line subtotal overflows",
			items: []storage.ItemRequest{{Kind: storage.ItemService, RefID: "svc-restore", Qty: 3}},
			want:  storage.ErrAmountTooLarge,
		},
		{
			name: "sale total overflows",
			items: []storage.ItemRequest{
				{Kind: storage.ItemService, RefID: "svc-restore", Qty: 1},
				{Kind: storage.ItemService, RefID: "svc-restore", Qty: 1},
				{Kind: storage.ItemService, RefID: "svc-tuneup", Qty: 1},
			},
			want: storage.ErrAmountTooLarge,
		},
	}
	for _, tc := range tests {
		_, err := store.CreateTransaction(ctx, storage.NewTransaction{
			ID:            "txn-big",
			ReceiptNumber: "INV-BIG",
			Paid:          0,
			Items:         tc.items,
		})
		if err == nil {
			t.Fatalf("%s: err = nil, want rejection", tc.name)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
		if got := apperrors.KindOf(err); got != apperrors.KindInvalidInput {
			t.Fatalf("%s: kind = %q, want %q", tc.name, got, apperrors.KindInvalidInput)
		}
	}
	if _, err := store.GetTransaction(ctx, "txn-big"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get transaction err = %v, want ErrNotFound", err)
	}
}

func TestReports(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedCatalogue(t, store)
	if err := store.PutMechanic(ctx, storage.Mechanic{ID: "mech-2", Name: "Bayu", Active: true}); err != nil {
		t.Fatalf("put mechanic: %v", err)
	}
	if err := store.PutMechanic(ctx, storage.Mechanic{ID: "mech-3", Name: "Cahyo", Active: false}); err != nil {
		t.Fatalf("put mechanic: %v", err)
	}

	march := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	for i, rating := range []*int{intPtr(4), nil} {
		_, err := store.CreateTransaction(ctx, storage.NewTransaction{
			ID:            "txn-" + string(rune('a'+i)),
			ReceiptNumber: "INV-" + string(rune('a'+i)),
			MechanicID:    "mech-1",
			Rating:        rating,
			Paid:          75000,
			CreatedAt:     march.Add(time.Duration(i) * time.Hour),
			Items:         []storage.ItemRequest{{Kind: storage.ItemService, RefID: "svc-tuneup", Qty: 1}},
		})
		if err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}
	if _, err := store.CreateTransaction(ctx, storage.NewTransaction{
		ID:            "txn-april",
		ReceiptNumber: "INV-april",
		MechanicID:    "mech-2",
		Paid:          75000,
		CreatedAt:     time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Items:         []storage.ItemRequest{{Kind: storage.ItemService, RefID: "svc-tuneup", Qty: 1}},
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if err := store.PutExpense(ctx, storage.Expense{ID: "e1", Category: "Sewa", Amount: 50000, SpentAt: march}); err != nil {
		t.Fatalf("put expense: %v", err)
	}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	stats, err := store.MechanicStats(ctx, from, to)
	if err != nil {
		t.Fatalf("mechanic stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %+v, want two active mechanics", stats)
	}
	agus, bayu := stats[0], stats[1]
	if agus.Name != "Agus" || agus.TotalRevenue != 150000 || agus.TransactionCount != 2 || agus.RatingSum != 4 || agus.RatingCount != 1 {
		t.Fatalf("unexpected stats for Agus: %+v", agus)
	}
	if bayu.Name != "Bayu" || bayu.TransactionCount != 0 || bayu.TotalRevenue != 0 {
		t.Fatalf("unexpected stats for Bayu: %+v", bayu)
	}

	totals, err := store.DashboardTotals(ctx, from, to)
	if err != nil {
		t.Fatalf("dashboard totals: %v", err)
	}
	if totals.Revenue != 150000 || totals.TransactionCount != 2 || totals.ExpenseTotal != 50000 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestDeleteMechanicWithTransactionsConflicts(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedCatalogue(t, store)

	if _, err := store.CreateTransaction(ctx, storage.NewTransaction{
		ID:            "txn-1",
		ReceiptNumber: "INV-1",
		MechanicID:    "mech-1",
		Paid:          75000,
		Items:         []storage.ItemRequest{{Kind: storage.ItemService, RefID: "svc-tuneup", Qty: 1}},
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if err := store.DeleteMechanic(ctx, "mech-1"); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}
