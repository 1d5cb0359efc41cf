package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// mechanicStatsQuery keeps active mechanics with no sales in the result so
// they still show up in rankings.
const mechanicStatsQuery = `
SELECT m.id,
       m.name,
       COALESCE(SUM(t.total), 0),
       COUNT(t.id),
       COALESCE(SUM(t.rating), 0),
       COUNT(t.rating)
FROM mechanics m
LEFT JOIN transactions t
       ON t.mechanic_id = m.id
      AND (?1 IS NULL OR t.created_at >= ?1)
      AND (?2 IS NULL OR t.created_at < ?2)
GROUP BY m.id, m.name
HAVING MAX(m.active) = 1 OR COUNT(t.id) > 0
ORDER BY m.name COLLATE NOCASE, m.id`

// MechanicStats aggregates revenue, sale count and ratings per mechanic over [from, to).
func (s *Store) MechanicStats(ctx context.Context, from, to time.Time) ([]storage.MechanicStat, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	lo, hi := rangeArgs(from, to)
	rows, err := s.sqlDB.QueryContext(ctx, mechanicStatsQuery, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("mechanic stats: %w", err)
	}
	defer rows.Close()

	var out []storage.MechanicStat
	for rows.Next() {
		var stat storage.MechanicStat
		if err := rows.Scan(
			&stat.MechanicID,
			&stat.Name,
			&stat.TotalRevenue,
			&stat.TransactionCount,
			&stat.RatingSum,
			&stat.RatingCount,
		); err != nil {
			return nil, fmt.Errorf("scan mechanic stats: %w", err)
		}
		out = append(out, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mechanic stats: %w", err)
	}
	return out, nil
}

// DashboardTotals sums sales and expenses over [from, to).
func (s *Store) DashboardTotals(ctx context.Context, from, to time.Time) (storage.Totals, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Totals{}, err
	}
	lo, hi := rangeArgs(from, to)

	var totals storage.Totals
	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COALESCE(SUM(total), 0), COUNT(*)
FROM transactions
WHERE (?1 IS NULL OR created_at >= ?1) AND (?2 IS NULL OR created_at < ?2)`, lo, hi).
		Scan(&totals.Revenue, &totals.TransactionCount); err != nil {
		return storage.Totals{}, fmt.Errorf("sum transactions: %w", err)
	}
	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COALESCE(SUM(amount), 0)
FROM expenses
WHERE (?1 IS NULL OR spent_at >= ?1) AND (?2 IS NULL OR spent_at < ?2)`, lo, hi).
		Scan(&totals.ExpenseTotal); err != nil {
		return storage.Totals{}, fmt.Errorf("sum expenses: %w", err)
	}
	return totals, nil
}
