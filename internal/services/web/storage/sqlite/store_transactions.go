package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// CreateTransaction prices each requested item from the catalogue, takes
// sold parts out of stock and records the sale in one SQL transaction.
func (s *Store) CreateTransaction(ctx context.Context, in storage.NewTransaction) (storage.Transaction, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Transaction{}, err
	}
	in, err := normalizeNewTransaction(in)
	if err != nil {
		return storage.Transaction{}, err
	}
	createdAt := s.stamp(in.CreatedAt)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.Transaction{}, fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var mechanicName string
	if in.MechanicID != "" {
		if err := tx.QueryRowContext(ctx, `SELECT name FROM mechanics WHERE id = ?`, in.MechanicID).Scan(&mechanicName); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.Transaction{}, fmt.Errorf("mechanic %s: %w", in.MechanicID, storage.ErrNotFound)
			}
			return storage.Transaction{}, fmt.Errorf("get mechanic: %w", err)
		}
	}

	items := make([]storage.TransactionItem, 0, len(in.Items))
	var total int64
	for idx, req := range in.Items {
		item, err := priceItem(ctx, tx, req)
		if err != nil {
			return storage.Transaction{}, fmt.Errorf("item %d: %w", idx+1, err)
		}
		if total > math.MaxInt64-item.Subtotal {
			return storage.Transaction{}, fmt.Errorf("item %d: %w", idx+1, storage.ErrAmountTooLarge)
		}
		total += item.Subtotal
		items = append(items, item)
	}
	if in.Paid < total {
		return storage.Transaction{}, storage.ErrInsufficientPayment
	}

	for idx, item := range items {
		if item.Kind != storage.ItemPart {
			continue
		}
		res, err := tx.ExecContext(ctx, `UPDATE parts SET stock = stock - ?1 WHERE id = ?2 AND stock >= ?1`, item.Qty, item.RefID)
		if err != nil {
			return storage.Transaction{}, fmt.Errorf("decrement stock for %s: %w", item.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storage.Transaction{}, fmt.Errorf("decrement stock for %s: %w", item.Name, err)
		}
		if n == 0 {
			return storage.Transaction{}, fmt.Errorf("item %d (%s): %w", idx+1, item.Name, storage.ErrInsufficientStock)
		}
	}

	var rating sql.NullInt64
	if in.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*in.Rating), Valid: true}
	}
	change := in.Paid - total
	if _, err := tx.ExecContext(ctx, `
INSERT INTO transactions (id, receipt_number, customer_name, vehicle_plate, mechanic_id, cashier_id, rating, total, paid, change_due, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID,
		in.ReceiptNumber,
		in.CustomerName,
		in.VehiclePlate,
		nullString(in.MechanicID),
		in.CashierID,
		rating,
		total,
		in.Paid,
		change,
		toMillis(createdAt),
	); err != nil {
		return storage.Transaction{}, classify("insert transaction", err)
	}
	for idx, item := range items {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO transaction_items (transaction_id, position, kind, ref_id, name, qty, unit_price, subtotal)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			in.ID, idx, string(item.Kind), item.RefID, item.Name, item.Qty, item.UnitPrice, item.Subtotal,
		); err != nil {
			return storage.Transaction{}, classify("insert transaction item", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storage.Transaction{}, fmt.Errorf("commit transaction: %w", err)
	}

	return storage.Transaction{
		ID:            in.ID,
		ReceiptNumber: in.ReceiptNumber,
		CustomerName:  in.CustomerName,
		VehiclePlate:  in.VehiclePlate,
		MechanicID:    in.MechanicID,
		MechanicName:  mechanicName,
		CashierID:     in.CashierID,
		Rating:        in.Rating,
		Total:         total,
		Paid:          in.Paid,
		Change:        change,
		CreatedAt:     createdAt,
		Items:         items,
	}, nil
}

func normalizeNewTransaction(in storage.NewTransaction) (storage.NewTransaction, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.ReceiptNumber = strings.TrimSpace(in.ReceiptNumber)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.VehiclePlate = strings.ToUpper(strings.TrimSpace(in.VehiclePlate))
	in.MechanicID = strings.TrimSpace(in.MechanicID)
	in.CashierID = strings.TrimSpace(in.CashierID)
	if in.ID == "" {
		return in, invalidf("transaction id is required")
	}
	if in.ReceiptNumber == "" {
		return in, invalidf("receipt number is required")
	}
	if len(in.Items) == 0 {
		return in, invalidf("transaction needs at least one item")
	}
	in.Items = append([]storage.ItemRequest(nil), in.Items...)
	if in.Paid < 0 {
		return in, invalidf("amount paid must not be negative")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return in, invalidf("rating must be between 1 and 5")
	}
	for idx, item := range in.Items {
		if item.Kind != storage.ItemPart && item.Kind != storage.ItemService {
			return in, invalidf("item %d: unknown kind %q", idx+1, item.Kind)
		}
		if strings.TrimSpace(item.RefID) == "" {
			return in, invalidf("item %d: reference id is required", idx+1)
		}
		if item.Qty <= 0 {
			return in, invalidf("item %d: quantity must be positive", idx+1)
		}
		if item.Qty > storage.MaxItemQty {
			return in, invalidf("item %d: quantity must not exceed %d", idx+1, storage.MaxItemQty)
		}
		in.Items[idx].RefID = strings.TrimSpace(item.RefID)
	}
	return in, nil
}

func priceItem(ctx context.Context, tx *sql.Tx, req storage.ItemRequest) (storage.TransactionItem, error) {
	item := storage.TransactionItem{Kind: req.Kind, RefID: req.RefID, Qty: req.Qty}
	var err error
	switch req.Kind {
	case storage.ItemPart:
		err = tx.QueryRowContext(ctx, `SELECT name, unit_price FROM parts WHERE id = ?`, req.RefID).Scan(&item.Name, &item.UnitPrice)
	case storage.ItemService:
		err = tx.QueryRowContext(ctx, `SELECT name, price FROM services WHERE id = ?`, req.RefID).Scan(&item.Name, &item.UnitPrice)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.TransactionItem{}, fmt.Errorf("%s %s: %w", req.Kind, req.RefID, storage.ErrNotFound)
		}
		return storage.TransactionItem{}, fmt.Errorf("price %s %s: %w", req.Kind, req.RefID, err)
	}
	if item.UnitPrice > 0 && int64(item.Qty) > math.MaxInt64/item.UnitPrice {
		return storage.TransactionItem{}, fmt.Errorf("%s %s: %w", req.Kind, req.RefID, storage.ErrAmountTooLarge)
	}
	item.Subtotal = item.UnitPrice * int64(item.Qty)
	return item, nil
}

const transactionSelect = `
SELECT t.id, t.receipt_number, t.customer_name, t.vehicle_plate, COALESCE(t.mechanic_id, ''), COALESCE(m.name, ''),
       t.cashier_id, t.rating, t.total, t.paid, t.change_due, t.created_at
FROM transactions t
LEFT JOIN mechanics m ON m.id = t.mechanic_id`

func scanTransaction(scan func(...any) error) (storage.Transaction, error) {
	var (
		t         storage.Transaction
		rating    sql.NullInt64
		createdAt int64
	)
	if err := scan(
		&t.ID,
		&t.ReceiptNumber,
		&t.CustomerName,
		&t.VehiclePlate,
		&t.MechanicID,
		&t.MechanicName,
		&t.CashierID,
		&rating,
		&t.Total,
		&t.Paid,
		&t.Change,
		&createdAt,
	); err != nil {
		return storage.Transaction{}, err
	}
	if rating.Valid {
		value := int(rating.Int64)
		t.Rating = &value
	}
	t.CreatedAt = fromMillis(createdAt)
	return t, nil
}

// GetTransaction fetches a sale with its items in receipt order.
func (s *Store) GetTransaction(ctx context.Context, id string) (storage.Transaction, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Transaction{}, err
	}
	id = strings.TrimSpace(id)
	t, err := scanTransaction(s.sqlDB.QueryRowContext(ctx, transactionSelect+` WHERE t.id = ?`, id).Scan)
	if err != nil {
		return storage.Transaction{}, classify("get transaction", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT kind, ref_id, name, qty, unit_price, subtotal
FROM transaction_items
WHERE transaction_id = ?
ORDER BY position`, id)
	if err != nil {
		return storage.Transaction{}, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			item storage.TransactionItem
			kind string
		)
		if err := rows.Scan(&kind, &item.RefID, &item.Name, &item.Qty, &item.UnitPrice, &item.Subtotal); err != nil {
			return storage.Transaction{}, fmt.Errorf("scan transaction item: %w", err)
		}
		item.Kind = storage.ItemKind(kind)
		t.Items = append(t.Items, item)
	}
	if err := rows.Err(); err != nil {
		return storage.Transaction{}, fmt.Errorf("list transaction items: %w", err)
	}
	return t, nil
}

// ListTransactions returns sales made in [from, to), newest first, without items.
func (s *Store) ListTransactions(ctx context.Context, from, to time.Time) ([]storage.Transaction, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	lo, hi := rangeArgs(from, to)
	rows, err := s.sqlDB.QueryContext(ctx, transactionSelect+`
WHERE (?1 IS NULL OR t.created_at >= ?1) AND (?2 IS NULL OR t.created_at < ?2)
ORDER BY t.created_at DESC, t.id`, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []storage.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}
