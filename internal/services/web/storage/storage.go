// Package storage defines the shop records and the persistence contracts the
// web service depends on.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = apperrors.E(apperrors.KindNotFound, "record not found")
	// ErrConflict indicates a unique value is taken or the record is still referenced.
	ErrConflict = apperrors.E(apperrors.KindConflict, "record conflicts with existing data")
	// ErrInsufficientStock indicates a sale asks for more units than are on hand.
	ErrInsufficientStock = apperrors.E(apperrors.KindConflict, "insufficient stock")
	// ErrInsufficientPayment indicates the amount paid is below the total.
	ErrInsufficientPayment = apperrors.E(apperrors.KindInvalidInput, "amount paid is below the total")
	// ErrAmountTooLarge indicates a line subtotal or sale total does not fit in an int64.
	ErrAmountTooLarge = apperrors.E(apperrors.KindInvalidInput, "amount is too large")
)

// Role values for users.
const (
	RoleOwner   = "owner"
	RoleCashier = "cashier"
)

// ValidRole reports whether role is a known user role.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleCashier
}

// User is a staff account able to sign in.
type User struct {
	ID           string
	Username     string
	DisplayName  string
	Role         string
	PasswordHash string
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Mechanic performs services and is credited with transactions.
type Mechanic struct {
	ID        string
	Name      string
	Phone     string
	Active    bool
	CreatedAt time.Time
}

// Part is a stocked item sold over the counter or fitted during a service.
type Part struct {
	ID         string
	SKU        string
	Name       string
	UnitPrice  int64
	Stock      int
	SupplierID string
	CreatedAt  time.Time
}

// Service is a labour item with a fixed price.
type Service struct {
	ID        string
	Name      string
	Price     int64
	CreatedAt time.Time
}

// Supplier provides parts.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
}

// Expense is money spent by the shop.
type Expense struct {
	ID          string
	Category    string
	Description string
	Amount      int64
	SpentAt     time.Time
	CreatedAt   time.Time
}

// ItemKind distinguishes sold parts from performed services.
type ItemKind string

const (
	ItemPart    ItemKind = "part"
	ItemService ItemKind = "service"
)

// TransactionItem is one priced line on a receipt.
type TransactionItem struct {
	Kind      ItemKind
	RefID     string
	Name      string
	Qty       int
	UnitPrice int64
	Subtotal  int64
}

// Transaction is a completed sale.
type Transaction struct {
	ID            string
	ReceiptNumber string
	CustomerName  string
	VehiclePlate  string
	MechanicID    string
	MechanicName  string
	CashierID     string
	Rating        *int
	Total         int64
	Paid          int64
	Change        int64
	CreatedAt     time.Time
	Items         []TransactionItem
}

// MaxItemQty is the largest quantity one sale line may ask for.
const MaxItemQty = 10_000

// ItemRequest asks for Qty units of a part or service; the store prices it.
type ItemRequest struct {
	Kind  ItemKind
	RefID string
	Qty   int
}

// NewTransaction is the input for recording a sale.
type NewTransaction struct {
	ID            string
	ReceiptNumber string
	CustomerName  string
	VehiclePlate  string
	MechanicID    string
	CashierID     string
	Rating        *int
	Paid          int64
	Items         []ItemRequest
	CreatedAt     time.Time
}

// MechanicStat aggregates one mechanic's transactions over a period.
type MechanicStat struct {
	MechanicID       string
	Name             string
	TotalRevenue     int64
	TransactionCount int
	RatingSum        int
	RatingCount      int
}

// Totals summarizes the shop's books over a period.
type Totals struct {
	Revenue          int64
	TransactionCount int
	ExpenseTotal     int64
}

// UserStore persists staff accounts.
type UserStore interface {
	PutUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

// MechanicStore persists mechanics.
type MechanicStore interface {
	PutMechanic(ctx context.Context, m Mechanic) error
	GetMechanic(ctx context.Context, id string) (Mechanic, error)
	ListMechanics(ctx context.Context) ([]Mechanic, error)
	DeleteMechanic(ctx context.Context, id string) error
}

// PartStore persists parts.
type PartStore interface {
	PutPart(ctx context.Context, p Part) error
	GetPart(ctx context.Context, id string) (Part, error)
	ListParts(ctx context.Context) ([]Part, error)
	DeletePart(ctx context.Context, id string) error
}

// ServiceStore persists services.
type ServiceStore interface {
	PutService(ctx context.Context, s Service) error
	GetService(ctx context.Context, id string) (Service, error)
	ListServices(ctx context.Context) ([]Service, error)
	DeleteService(ctx context.Context, id string) error
}

// SupplierStore persists suppliers.
type SupplierStore interface {
	PutSupplier(ctx context.Context, s Supplier) error
	GetSupplier(ctx context.Context, id string) (Supplier, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

// ExpenseStore persists expenses. A zero from or to leaves that side open.
type ExpenseStore interface {
	PutExpense(ctx context.Context, e Expense) error
	GetExpense(ctx context.Context, id string) (Expense, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

// TransactionStore records sales. CreateTransaction prices every item,
// decrements part stock and stores the sale atomically.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, in NewTransaction) (Transaction, error)
	GetTransaction(ctx context.Context, id string) (Transaction, error)
	ListTransactions(ctx context.Context, from, to time.Time) ([]Transaction, error)
}

// ReportStore aggregates over [from, to).
type ReportStore interface {
	MechanicStats(ctx context.Context, from, to time.Time) ([]MechanicStat, error)
	DashboardTotals(ctx context.Context, from, to time.Time) (Totals, error)
}

// Store is the full persistence surface of the web service.
type Store interface {
	UserStore
	MechanicStore
	PartStore
	ServiceStore
	SupplierStore
	ExpenseStore
	TransactionStore
	ReportStore
}
