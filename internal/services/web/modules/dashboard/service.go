package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/bengkel/internal/services/web/performance"
	"github.com/louisbranch/bengkel/internal/services/web/reporting"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

const recentLimit = 10

// Store is the read surface the dashboard needs.
type Store interface {
	storage.ReportStore
	ListTransactions(ctx context.Context, from, to time.Time) ([]storage.Transaction, error)
}

// Overview is one month of the shop's books.
type Overview struct {
	Totals  storage.Totals
	Net     int64
	Ranking []performance.Ranked
	Recent  []storage.Transaction
}

type service struct {
	store Store
}

func newService(store Store) service {
	return service{store: store}
}

func (s service) loadOverview(ctx context.Context, from, to time.Time) (Overview, error) {
	totals, err := s.store.DashboardTotals(ctx, from, to)
	if err != nil {
		return Overview{}, fmt.Errorf("load totals: %w", err)
	}
	ranking, err := reporting.MechanicRanking(ctx, s.store, from, to)
	if err != nil {
		return Overview{}, err
	}
	recent, err := s.store.ListTransactions(ctx, from, to)
	if err != nil {
		return Overview{}, fmt.Errorf("load transactions: %w", err)
	}
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return Overview{
		Totals:  totals,
		Net:     totals.Revenue - totals.ExpenseTotal,
		Ranking: ranking,
		Recent:  recent,
	}, nil
}
