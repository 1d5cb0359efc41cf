// Package reporting reads period figures from storage and shapes them for
// the dashboard, the ranking page and the JSON API.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/bengkel/internal/services/web/performance"
	"github.com/louisbranch/bengkel/internal/services/web/platform/format"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

// MechanicRanking scores every mechanic with activity or an active record in
// [from, to) and orders them best first.
func MechanicRanking(ctx context.Context, store storage.ReportStore, from, to time.Time) ([]performance.Ranked, error) {
	stats, err := store.MechanicStats(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load mechanic stats: %w", err)
	}
	return performance.Rank(Entries(stats)), nil
}

// Entries converts stored aggregates to scorer entries.
func Entries(stats []storage.MechanicStat) []performance.Entry {
	entries := make([]performance.Entry, 0, len(stats))
	for _, stat := range stats {
		entries = append(entries, Entry(stat))
	}
	return entries
}

// Entry converts one stored aggregate to a scorer entry.
func Entry(stat storage.MechanicStat) performance.Entry {
	return performance.Entry{
		MechanicID: stat.MechanicID,
		Name:       stat.Name,
		Stats: performance.Stats{
			TotalRevenue:     stat.TotalRevenue,
			TransactionCount: stat.TransactionCount,
			RatingSum:        stat.RatingSum,
			RatingCount:      stat.RatingCount,
		},
	}
}

// RankRows renders ranked mechanics for a ranking table, keeping at most
// limit rows when limit is positive.
func RankRows(ranked []performance.Ranked, limit int) []webtemplates.RankRow {
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	rows := make([]webtemplates.RankRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, webtemplates.RankRow{
			Rank:         r.Rank,
			Name:         r.Name,
			Score:        r.Score,
			Revenue:      format.Rupiah(r.Stats.TotalRevenue),
			Transactions: r.Stats.TransactionCount,
			Rating:       format.Rating(r.Input.CustomerSatisfaction),
		})
	}
	return rows
}
