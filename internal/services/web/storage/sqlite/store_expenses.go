package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// PutExpense inserts or updates an expense.
func (s *Store) PutExpense(ctx context.Context, e storage.Expense) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	e.ID = strings.TrimSpace(e.ID)
	e.Category = strings.TrimSpace(e.Category)
	if e.ID == "" {
		return invalidf("expense id is required")
	}
	if e.Category == "" {
		return invalidf("expense category is required")
	}
	if e.Amount < 0 {
		return invalidf("expense amount must not be negative")
	}
	if e.SpentAt.IsZero() {
		return invalidf("expense date is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO expenses (id, category, description, amount, spent_at, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    category = excluded.category,
    description = excluded.description,
    amount = excluded.amount,
    spent_at = excluded.spent_at`,
		e.ID, e.Category, strings.TrimSpace(e.Description), e.Amount, toMillis(e.SpentAt), toMillis(s.stamp(e.CreatedAt)),
	)
	return classify("put expense", err)
}

// GetExpense fetches an expense by id.
func (s *Store) GetExpense(ctx context.Context, id string) (storage.Expense, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Expense{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT id, category, description, amount, spent_at, created_at FROM expenses WHERE id = ?`, strings.TrimSpace(id))
	e, err := scanExpense(row.Scan)
	if err != nil {
		return storage.Expense{}, classify("get expense", err)
	}
	return e, nil
}

// ListExpenses returns expenses spent in [from, to), newest first.
func (s *Store) ListExpenses(ctx context.Context, from, to time.Time) ([]storage.Expense, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	lo, hi := rangeArgs(from, to)
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, category, description, amount, spent_at, created_at
FROM expenses
WHERE (?1 IS NULL OR spent_at >= ?1) AND (?2 IS NULL OR spent_at < ?2)
ORDER BY spent_at DESC, id`, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []storage.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return out, nil
}

// DeleteExpense removes an expense.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "expenses", id)
}

func scanExpense(scan func(...any) error) (storage.Expense, error) {
	var (
		e                  storage.Expense
		spentAt, createdAt int64
	)
	if err := scan(&e.ID, &e.Category, &e.Description, &e.Amount, &spentAt, &createdAt); err != nil {
		return storage.Expense{}, err
	}
	e.SpentAt = fromMillis(spentAt)
	e.CreatedAt = fromMillis(createdAt)
	return e, nil
}
